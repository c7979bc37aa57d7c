package sale_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/sale"
	"github.com/jhoicas/backoffice-api/internal/application/stock"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// stubReceipts evita arrastrar el generador PDF real a estos tests.
type stubReceipts struct{}

func (stubReceipts) GenerateReceipt(_ context.Context, s *entity.Sale) ([]byte, error) {
	return []byte("pdf:" + s.ID), nil
}

type saleFixture struct {
	uc        *sale.CompleteSaleUseCase
	products  *memory.ProductRepository
	movements *memory.MovementRepository
	sales     *memory.SaleRepository
}

func newSaleFixture() *saleFixture {
	products := memory.NewProductRepository()
	movements := memory.NewMovementRepository(true)
	sales := memory.NewSaleRepository()
	runner := memory.NewTxRunner(products, movements, sales)
	ledger := stock.NewLedgerEngine(runner, movements)
	return &saleFixture{
		uc:        sale.NewCompleteSaleUseCase(runner, ledger, sales, stubReceipts{}),
		products:  products,
		movements: movements,
		sales:     sales,
	}
}

func (f *saleFixture) seedProduct(t *testing.T, id, name string, price int64, stockUnits int64, active bool) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.products.Create(&entity.Product{
		ID:        id,
		Name:      name,
		Price:     decimal.NewFromInt(price),
		Stock:     stockUnits,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func (f *saleFixture) stockOf(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.products.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func twoItemRequest() dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		PaymentMethod: "efectivo",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(1500)},
			{ProductID: "p2", Quantity: 1, UnitPrice: decimal.NewFromInt(800)},
		},
		Total: decimal.NewFromInt(3800),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CompleteSale — camino feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestCompleteSale_MultiItem(t *testing.T) {
	f := newSaleFixture()
	f.seedProduct(t, "p1", "Yerba 1kg", 1500, 10, true)
	f.seedProduct(t, "p2", "Azúcar 1kg", 800, 5, true)

	out, err := f.uc.CompleteSale(context.Background(), testUserID, twoItemRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, testUserID, out.UserID)
	assert.True(t, decimal.NewFromInt(3800).Equal(out.Total))
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Yerba 1kg", out.Items[0].ProductName, "la línea debe llevar snapshot del nombre")
	assert.True(t, decimal.NewFromInt(3000).Equal(out.Items[0].Subtotal))

	// Stock descontado por línea.
	assert.EqualValues(t, 8, f.stockOf(t, "p1"))
	assert.EqualValues(t, 4, f.stockOf(t, "p2"))

	// Un asiento de salida por línea, con referencia a la venta.
	assert.Equal(t, 2, f.movements.Len())
	movs, err := f.movements.ListRecent("p1", 10)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementKindExit, movs[0].Kind)
	assert.Equal(t,
		fmt.Sprintf("Venta completada - Producto: Yerba 1kg (ID: p1) - Venta ID: %s", out.ID),
		movs[0].Description)

	// La venta quedó persistida.
	assert.Equal(t, 1, f.sales.Len())
}

// ──────────────────────────────────────────────────────────────────────────────
// CompleteSale — rechazos sin efectos
// ──────────────────────────────────────────────────────────────────────────────

func TestCompleteSale_EntradaInvalida(t *testing.T) {
	f := newSaleFixture()
	f.seedProduct(t, "p1", "Yerba 1kg", 1500, 10, true)

	price := decimal.NewFromInt(1500)
	cases := []struct {
		name   string
		userID string
		in     dto.CreateSaleRequest
	}{
		{"sin usuario", "", twoItemRequest()},
		{"sin líneas", testUserID, dto.CreateSaleRequest{Total: decimal.NewFromInt(100)}},
		{"cantidad cero", testUserID, dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 0, UnitPrice: price}},
			Total: decimal.Zero,
		}},
		{"precio cero", testUserID, dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.Zero}},
			Total: decimal.Zero,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.CompleteSale(context.Background(), tc.userID, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	assert.EqualValues(t, 10, f.stockOf(t, "p1"))
	assert.Zero(t, f.sales.Len())
	assert.Zero(t, f.movements.Len())
}

func TestCompleteSale_TotalNoCoincide(t *testing.T) {
	f := newSaleFixture()
	f.seedProduct(t, "p1", "Yerba 1kg", 1500, 10, true)

	in := dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(1500)}},
		Total: decimal.NewFromInt(2999), // el servidor calcula 3000
	}
	_, err := f.uc.CompleteSale(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.EqualValues(t, 10, f.stockOf(t, "p1"))
	assert.Zero(t, f.sales.Len())
}

func TestCompleteSale_ProductoInexistente(t *testing.T) {
	f := newSaleFixture()
	f.seedProduct(t, "p1", "Yerba 1kg", 1500, 10, true)

	in := dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(1500)},
			{ProductID: "fantasma", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
		Total: decimal.NewFromInt(1600),
	}
	_, err := f.uc.CompleteSale(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// La línea válida tampoco se aplicó.
	assert.EqualValues(t, 10, f.stockOf(t, "p1"))
	assert.Zero(t, f.sales.Len())
	assert.Zero(t, f.movements.Len())
}

func TestCompleteSale_ProductoInactivo(t *testing.T) {
	f := newSaleFixture()
	f.seedProduct(t, "p1", "Yerba 1kg", 1500, 10, false)

	in := dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(1500)}},
		Total: decimal.NewFromInt(1500),
	}
	_, err := f.uc.CompleteSale(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.sales.Len())
}

// Falla de stock en la segunda línea: la primera, que sí tenía stock,
// no debe haber mutado nada. Todo o nada a nivel venta.
func TestCompleteSale_StockInsuficienteEnUnaLinea(t *testing.T) {
	f := newSaleFixture()
	f.seedProduct(t, "p1", "Yerba 1kg", 1500, 10, true)
	f.seedProduct(t, "p2", "Azúcar 1kg", 800, 2, true)

	in := dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(1500)},
			{ProductID: "p2", Quantity: 3, UnitPrice: decimal.NewFromInt(800)},
		},
		Total: decimal.NewFromInt(5400),
	}
	_, err := f.uc.CompleteSale(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, "p2", insufficientErr.ProductID)
	assert.EqualValues(t, 3, insufficientErr.Requested)
	assert.EqualValues(t, 2, insufficientErr.Available)

	assert.EqualValues(t, 10, f.stockOf(t, "p1"))
	assert.EqualValues(t, 2, f.stockOf(t, "p2"))
	assert.Zero(t, f.sales.Len())
	assert.Zero(t, f.movements.Len())
}

// Una venta puede repetir el mismo producto en varias líneas. El stock
// debe cubrir la cantidad ACUMULADA: dos líneas de 5 contra stock 8
// pasan por separado pero no juntas, y el rechazo debe ocurrir en la
// validación, antes de persistir nada.
func TestCompleteSale_LineasDuplicadasExcedenStock(t *testing.T) {
	f := newSaleFixture()
	f.seedProduct(t, "p1", "Yerba 1kg", 1500, 8, true)

	in := dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 5, UnitPrice: decimal.NewFromInt(1500)},
			{ProductID: "p1", Quantity: 5, UnitPrice: decimal.NewFromInt(1500)},
		},
		Total: decimal.NewFromInt(15000),
	}
	_, err := f.uc.CompleteSale(context.Background(), testUserID, in)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.EqualValues(t, 10, insufficientErr.Requested, "el faltante debe reportar la suma de las líneas")
	assert.EqualValues(t, 8, insufficientErr.Available)

	// Todo o nada: ni venta, ni asientos, ni stock mutado a medias.
	assert.EqualValues(t, 8, f.stockOf(t, "p1"))
	assert.Zero(t, f.sales.Len())
	assert.Zero(t, f.movements.Len())
}

func TestCompleteSale_LineasDuplicadasDentroDelStock(t *testing.T) {
	f := newSaleFixture()
	f.seedProduct(t, "p1", "Yerba 1kg", 1500, 8, true)

	in := dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 5, UnitPrice: decimal.NewFromInt(1500)},
			{ProductID: "p1", Quantity: 3, UnitPrice: decimal.NewFromInt(1500)},
		},
		Total: decimal.NewFromInt(12000),
	}
	out, err := f.uc.CompleteSale(context.Background(), testUserID, in)
	require.NoError(t, err, "líneas repetidas cuya suma entra en el stock deben aceptarse")

	require.Len(t, out.Items, 2)
	assert.EqualValues(t, 0, f.stockOf(t, "p1"))
	assert.Equal(t, 2, f.movements.Len(), "cada línea conserva su propio asiento de salida")
	assert.Equal(t, 1, f.sales.Len())
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas, borrado y comprobante
// ──────────────────────────────────────────────────────────────────────────────

func TestSale_GetByID(t *testing.T) {
	f := newSaleFixture()
	f.seedProduct(t, "p1", "Yerba 1kg", 1500, 10, true)
	f.seedProduct(t, "p2", "Azúcar 1kg", 800, 5, true)

	created, err := f.uc.CompleteSale(context.Background(), testUserID, twoItemRequest())
	require.NoError(t, err)

	got, err := f.uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Len(t, got.Items, 2)

	_, err = f.uc.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Borrar una venta es administración del registro: el stock descontado
// no se repone.
func TestSale_DeleteNoReponeStock(t *testing.T) {
	f := newSaleFixture()
	f.seedProduct(t, "p1", "Yerba 1kg", 1500, 10, true)
	f.seedProduct(t, "p2", "Azúcar 1kg", 800, 5, true)

	created, err := f.uc.CompleteSale(context.Background(), testUserID, twoItemRequest())
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(created.ID))
	assert.Zero(t, f.sales.Len())
	assert.EqualValues(t, 8, f.stockOf(t, "p1"), "el borrado no debe devolver stock")

	assert.ErrorIs(t, f.uc.Delete(created.ID), domain.ErrNotFound)
}

func TestSale_Receipt(t *testing.T) {
	f := newSaleFixture()
	f.seedProduct(t, "p1", "Yerba 1kg", 1500, 10, true)
	f.seedProduct(t, "p2", "Azúcar 1kg", 800, 5, true)

	created, err := f.uc.CompleteSale(context.Background(), testUserID, twoItemRequest())
	require.NoError(t, err)

	pdf, err := f.uc.Receipt(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf:"+created.ID), pdf)

	_, err = f.uc.Receipt(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
