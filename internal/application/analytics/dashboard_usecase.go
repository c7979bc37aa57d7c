package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/stock"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// salesWindow ventana de tiempo de los agregados de ventas del tablero.
const salesWindow = 30 * 24 * time.Hour

// DashboardUseCase agregados de solo lectura para el tablero principal.
// Lee datos ya consistentes; no participa del núcleo transaccional y su
// resultado puede correr detrás de mutaciones concurrentes.
type DashboardUseCase struct {
	analyticsRepo     repository.AnalyticsRepository
	ledger            *stock.LedgerEngine
	lowStockThreshold int64
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, ledger *stock.LedgerEngine, lowStockThreshold int64) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo:     analyticsRepo,
		ledger:            ledger,
		lowStockThreshold: lowStockThreshold,
	}
}

// Summary arma el resumen del tablero: totales de catálogo, ventas de
// los últimos 30 días y los movimientos más recientes del libro.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	since := time.Now().Add(-salesWindow)
	summary, err := uc.analyticsRepo.GetDashboardSummary(ctx, since, uc.lowStockThreshold)
	if err != nil {
		return nil, err
	}

	// El feed de actividad reutiliza el listado del motor (incluido su
	// camino de respaldo sin índice).
	recent, err := uc.ledger.ListMovements(ctx, "", 10)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardSummaryResponse{
		TotalProducts:  summary.TotalProducts,
		LowStockCount:  summary.LowStockCount,
		SalesCount:     summary.SalesCount,
		SalesRevenue:   summary.SalesRevenue,
		MovementsCount: summary.MovementsCount,
		RecentActivity: recent.Movements,
	}, nil
}
