package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/backoffice-api/internal/application/analytics"
	"github.com/jhoicas/backoffice-api/internal/application/auth"
	appsale "github.com/jhoicas/backoffice-api/internal/application/sale"
	appstock "github.com/jhoicas/backoffice-api/internal/application/stock"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/observability/prometrics"
	infrapdf "github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// repos agrupa los adaptadores de persistencia ya construidos para un driver.
type repos struct {
	products   repository.ProductRepository
	movements  repository.MovementRepository
	sales      repository.SaleRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
	feedback   repository.FeedbackRepository
	analytics  repository.AnalyticsRepository
	stockTx    appstock.TxRunner
	saleTx     appsale.TxRunner
	close      func()
}

func buildPostgresRepos(ctx context.Context, cfg config.DBConfig) (*repos, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	txRunner := postgres.NewTxRunner(pool)
	return &repos{
		products:   postgres.NewProductRepository(pool),
		movements:  postgres.NewMovementRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		users:      postgres.NewUserRepository(pool),
		feedback:   postgres.NewFeedbackRepository(pool),
		analytics:  postgres.NewAnalyticsRepository(pool),
		stockTx:    txRunner,
		saleTx:     txRunner,
		close:      pool.Close,
	}, nil
}

func buildMemoryRepos() *repos {
	products := memory.NewProductRepository()
	movements := memory.NewMovementRepository(true)
	sales := memory.NewSaleRepository()
	txRunner := memory.NewTxRunner(products, movements, sales)
	return &repos{
		products:   products,
		movements:  movements,
		sales:      sales,
		categories: memory.NewCategoryRepository(),
		users:      memory.NewUserRepository(),
		feedback:   memory.NewFeedbackRepository(),
		analytics:  memory.NewAnalyticsRepository(products, sales, movements),
		stockTx:    txRunner,
		saleTx:     txRunner,
		close:      func() {},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var r *repos
	if cfg.DB.Driver == "memory" {
		r = buildMemoryRepos()
	} else {
		r, err = buildPostgresRepos(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
	}
	defer r.close()

	ledger := appstock.NewLedgerEngine(r.stockTx, r.movements)
	receiptGen := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	saleUC := appsale.NewCompleteSaleUseCase(r.saleTx, ledger, r.sales, receiptGen)

	productUC := usecase.NewProductUseCase(r.products)
	categoryUC := usecase.NewCategoryUseCase(r.categories)
	feedbackUC := usecase.NewFeedbackUseCase(r.feedback)
	dashboardUC := appanalytics.NewDashboardUseCase(r.analytics, ledger, cfg.Stock.LowStockThreshold)
	authUC := auth.NewAuthUseCase(r.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	metrics := prometrics.New("backoffice")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		FeedbackUC:  feedbackUC,
		Ledger:      ledger,
		SaleUC:      saleUC,
		DashboardUC: dashboardUC,
		AuthUC:      authUC,
		Metrics:     metrics,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
