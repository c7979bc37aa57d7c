package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/stock"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/backoffice-api/internal/interfaces/http"
)

// buildStockApp monta solo las rutas de stock, sin auth, sobre
// adaptadores en memoria con el producto p1 sembrado.
func buildStockApp(t *testing.T, initialStock int64) (*fiber.App, *memory.ProductRepository) {
	t.Helper()
	products := memory.NewProductRepository()
	movements := memory.NewMovementRepository(true)
	sales := memory.NewSaleRepository()
	runner := memory.NewTxRunner(products, movements, sales)
	ledger := stock.NewLedgerEngine(runner, movements)

	now := time.Now()
	require.NoError(t, products.Create(&entity.Product{
		ID:        "p1",
		Name:      "Yerba 1kg",
		Price:     decimal.NewFromInt(1500),
		Stock:     initialStock,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}))

	app := fiber.New()
	handler := apphttp.NewStockHandler(ledger, nil)
	app.Post("/api/stock/movements", handler.RegisterMovement)
	app.Get("/api/stock/movements", handler.ListMovements)
	return app, products
}

func postMovement(t *testing.T, app *fiber.App, body dto.CreateMovementRequest) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/stock/movements", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestStockHandler_RegistrarEntrada(t *testing.T) {
	app, products := buildStockApp(t, 10)

	resp := postMovement(t, app, dto.CreateMovementRequest{
		ProductID: "p1",
		Kind:      entity.MovementKindEntry,
		Quantity:  5,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.CreateMovementResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.EqualValues(t, 15, out.NewStock)
	assert.Equal(t, entity.DefaultEntryDescription, out.Movement.Description)

	p, err := products.GetByID("p1")
	require.NoError(t, err)
	assert.EqualValues(t, 15, p.Stock)
}

func TestStockHandler_StockInsuficiente_Retorna400(t *testing.T) {
	app, products := buildStockApp(t, 3)

	resp := postMovement(t, app, dto.CreateMovementRequest{
		ProductID: "p1",
		Kind:      entity.MovementKindExit,
		Quantity:  4,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"una salida mayor al stock disponible es un error del caller, no un conflicto")

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)

	p, err := products.GetByID("p1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, p.Stock, "el rechazo no debe haber mutado el stock")
}

func TestStockHandler_ProductoInexistente_Retorna404(t *testing.T) {
	app, _ := buildStockApp(t, 3)

	resp := postMovement(t, app, dto.CreateMovementRequest{
		ProductID: "fantasma",
		Kind:      entity.MovementKindEntry,
		Quantity:  1,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStockHandler_TipoInvalido_Retorna400(t *testing.T) {
	app, _ := buildStockApp(t, 3)

	resp := postMovement(t, app, dto.CreateMovementRequest{
		ProductID: "p1",
		Kind:      "ajuste",
		Quantity:  1,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStockHandler_ListarMovimientos(t *testing.T) {
	app, _ := buildStockApp(t, 100)

	for i := 0; i < 3; i++ {
		resp := postMovement(t, app, dto.CreateMovementRequest{
			ProductID: "p1",
			Kind:      entity.MovementKindExit,
			Quantity:  1,
		})
		resp.Body.Close()
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stock/movements?product_id=p1&limit=2", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.MovementListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out.Movements, 2)
	assert.Equal(t, 2, out.Limit)
}
