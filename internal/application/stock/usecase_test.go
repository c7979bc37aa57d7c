package stock_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/stock"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type ledgerFixture struct {
	engine    *stock.LedgerEngine
	products  *memory.ProductRepository
	movements *memory.MovementRepository
}

// newLedger arma el motor sobre adaptadores en memoria.
// withIndex controla si el listado filtrado dispone del índice compuesto.
func newLedger(withIndex bool) *ledgerFixture {
	products := memory.NewProductRepository()
	movements := memory.NewMovementRepository(withIndex)
	sales := memory.NewSaleRepository()
	runner := memory.NewTxRunner(products, movements, sales)
	return &ledgerFixture{
		engine:    stock.NewLedgerEngine(runner, movements),
		products:  products,
		movements: movements,
	}
}

func (f *ledgerFixture) seedProduct(t *testing.T, id string, initialStock int64) {
	t.Helper()
	now := time.Now()
	err := f.products.Create(&entity.Product{
		ID:        id,
		Name:      "Producto " + id,
		Price:     decimal.NewFromInt(1000),
		Stock:     initialStock,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
}

func (f *ledgerFixture) stockOf(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.products.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement — validación
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaInvalida(t *testing.T) {
	f := newLedger(true)
	f.seedProduct(t, "p1", 10)

	cases := []struct {
		name string
		in   stock.MovementInput
	}{
		{"producto vacío", stock.MovementInput{ProductID: "", Kind: entity.MovementKindEntry, Quantity: 1}},
		{"tipo inválido", stock.MovementInput{ProductID: "p1", Kind: "ajuste", Quantity: 1}},
		{"cantidad cero", stock.MovementInput{ProductID: "p1", Kind: entity.MovementKindEntry, Quantity: 0}},
		{"cantidad negativa", stock.MovementInput{ProductID: "p1", Kind: entity.MovementKindExit, Quantity: -3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.engine.RegisterMovement(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// Nada se mutó ni quedó en el libro.
	assert.EqualValues(t, 10, f.stockOf(t, "p1"))
	assert.Zero(t, f.movements.Len())
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	f := newLedger(true)

	_, err := f.engine.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID: "no-existe",
		Kind:      entity.MovementKindEntry,
		Quantity:  5,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.movements.Len())
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement — mutación atómica
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaSumaStock(t *testing.T) {
	f := newLedger(true)
	f.seedProduct(t, "p1", 10)

	out, err := f.engine.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID: "p1",
		Kind:      entity.MovementKindEntry,
		Quantity:  7,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 17, out.NewStock)
	assert.EqualValues(t, 17, f.stockOf(t, "p1"))
	assert.Equal(t, entity.MovementKindEntry, out.Movement.Kind)
	assert.Equal(t, entity.DefaultEntryDescription, out.Movement.Description,
		"sin descripción debe aplicarse la descripción por defecto de entrada")
	assert.NotEmpty(t, out.Movement.ID)
	assert.Equal(t, 1, f.movements.Len())
}

func TestRegisterMovement_SalidaRestaStock(t *testing.T) {
	f := newLedger(true)
	f.seedProduct(t, "p1", 10)

	out, err := f.engine.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID:   "p1",
		Kind:        entity.MovementKindExit,
		Quantity:    4,
		Description: "rotura en depósito",
	})
	require.NoError(t, err)

	assert.EqualValues(t, 6, out.NewStock)
	assert.EqualValues(t, 6, f.stockOf(t, "p1"))
	assert.Equal(t, "rotura en depósito", out.Movement.Description,
		"la descripción del caller no debe pisarse con la default")
}

func TestRegisterMovement_SalidaHastaCero(t *testing.T) {
	f := newLedger(true)
	f.seedProduct(t, "p1", 5)

	out, err := f.engine.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID: "p1",
		Kind:      entity.MovementKindExit,
		Quantity:  5,
	})
	require.NoError(t, err, "salida que deja el stock exactamente en cero debe aceptarse")
	assert.EqualValues(t, 0, out.NewStock)
}

func TestRegisterMovement_StockInsuficiente(t *testing.T) {
	f := newLedger(true)
	f.seedProduct(t, "p1", 3)

	_, err := f.engine.RegisterMovement(context.Background(), stock.MovementInput{
		ProductID: "p1",
		Kind:      entity.MovementKindExit,
		Quantity:  4,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Todo o nada: ni stock mutado ni asiento en el libro.
	assert.EqualValues(t, 3, f.stockOf(t, "p1"))
	assert.Zero(t, f.movements.Len())
}

// Salidas concurrentes sobre el mismo producto: con stock S y N>S
// intentos de salida de 1 unidad, exactamente S deben confirmarse y el
// resto rechazarse; el stock final es 0 y nunca negativo.
func TestRegisterMovement_SalidasConcurrentes(t *testing.T) {
	const (
		initialStock = 25
		attempts     = 60
	)
	f := newLedger(true)
	f.seedProduct(t, "p1", initialStock)

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.engine.RegisterMovement(context.Background(), stock.MovementInput{
				ProductID: "p1",
				Kind:      entity.MovementKindExit,
				Quantity:  1,
			})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, initialStock, ok, "deben confirmarse exactamente tantas salidas como stock había")
	assert.Equal(t, attempts-initialStock, insufficient)
	assert.EqualValues(t, 0, f.stockOf(t, "p1"))
	assert.Equal(t, initialStock, f.movements.Len(),
		"el libro debe tener un asiento por cada salida confirmada, ninguno por los rechazos")
}

// ──────────────────────────────────────────────────────────────────────────────
// ListMovements — camino ideal y respaldo sin índice
// ──────────────────────────────────────────────────────────────────────────────

// seedHistory inserta movimientos directamente en el libro con fechas
// crecientes, intercalando dos productos.
func seedHistory(t *testing.T, movements *memory.MovementRepository, total int) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < total; i++ {
		productID := "p1"
		if i%3 == 0 {
			productID = "p2"
		}
		require.NoError(t, movements.Create(&entity.StockMovement{
			ID:          fmt.Sprintf("m-%03d", i),
			ProductID:   productID,
			Kind:        entity.MovementKindEntry,
			Quantity:    1,
			Description: entity.DefaultEntryDescription,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}
}

func TestListMovements_LimiteDefault(t *testing.T) {
	f := newLedger(true)
	seedHistory(t, f.movements, 50)

	out, err := f.engine.ListMovements(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, out.Movements, 20, "sin límite explícito deben devolverse 20 movimientos")
	assert.Equal(t, 20, out.Limit)
}

func TestListMovements_OrdenDescendente(t *testing.T) {
	f := newLedger(true)
	seedHistory(t, f.movements, 30)

	out, err := f.engine.ListMovements(context.Background(), "", 10)
	require.NoError(t, err)
	require.Len(t, out.Movements, 10)
	for i := 1; i < len(out.Movements); i++ {
		assert.False(t, out.Movements[i].CreatedAt.After(out.Movements[i-1].CreatedAt),
			"los movimientos deben venir de más reciente a más antiguo")
	}
	assert.Equal(t, "m-029", out.Movements[0].ID, "el primero debe ser el más reciente")
}

func TestListMovements_FiltraPorProducto(t *testing.T) {
	f := newLedger(true)
	seedHistory(t, f.movements, 30)

	out, err := f.engine.ListMovements(context.Background(), "p2", 100)
	require.NoError(t, err)
	require.NotEmpty(t, out.Movements)
	for _, m := range out.Movements {
		assert.Equal(t, "p2", m.ProductID)
	}
}

func TestListMovements_HistorialVacio(t *testing.T) {
	f := newLedger(true)

	out, err := f.engine.ListMovements(context.Background(), "", 10)
	require.NoError(t, err, "un historial vacío es un resultado válido, no un error")
	assert.Empty(t, out.Movements)
}

// Sin el índice compuesto el listado filtrado degrada al camino de
// respaldo: sobre-lee, ordena en memoria y trunca. El resultado debe ser
// idéntico al del camino con índice.
func TestListMovements_RespaldoSinIndice(t *testing.T) {
	const total = 150

	indexed := newLedger(true)
	unindexed := newLedger(false)
	seedHistory(t, indexed.movements, total)
	seedHistory(t, unindexed.movements, total)

	want, err := indexed.engine.ListMovements(context.Background(), "p1", 15)
	require.NoError(t, err)
	got, err := unindexed.engine.ListMovements(context.Background(), "p1", 15)
	require.NoError(t, err, "el ErrIndexRequired del store no debe llegar al caller")

	require.Len(t, got.Movements, 15)
	assert.Equal(t, want.Movements, got.Movements,
		"con y sin índice el caller debe ver el mismo listado ordenado")
}

func TestListMovements_RespaldoSinFiltroNoAplica(t *testing.T) {
	// Sin filtro por producto no hace falta índice compuesto, así que el
	// adaptador sin índice responde por el camino ideal.
	f := newLedger(false)
	seedHistory(t, f.movements, 40)

	out, err := f.engine.ListMovements(context.Background(), "", 5)
	require.NoError(t, err)
	assert.Len(t, out.Movements, 5)
	assert.Equal(t, "m-039", out.Movements[0].ID)
}
