package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/application/sale"
	"github.com/jhoicas/backoffice-api/internal/application/stock"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)
var _ sale.TxRunner = (*TxRunner)(nil)

// TxRunner en memoria: un mutex global serializa todas las
// transacciones, que es exactamente la garantía que el motor de stock
// necesita (los read-check-write concurrentes sobre un producto no se
// intercalan). No hay rollback: los casos de uso validan antes de
// escribir, así que un rechazo ocurre siempre antes de la primera
// mutación.
type TxRunner struct {
	mu           sync.Mutex
	productRepo  *ProductRepository
	movementRepo *MovementRepository
	saleRepo     *SaleRepository
}

// NewTxRunner construye el runner sobre los repositorios en memoria.
func NewTxRunner(productRepo *ProductRepository, movementRepo *MovementRepository, saleRepo *SaleRepository) *TxRunner {
	return &TxRunner{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		saleRepo:     saleRepo,
	}
}

// Run ejecuta fn en exclusión mutua con cualquier otra transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) error) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.productRepo, r.movementRepo)
}

// RunSale ejecuta fn con los tres repositorios, en exclusión mutua.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	saleRepo repository.SaleRepository,
) error) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.productRepo, r.movementRepo, r.saleRepo)
}
