package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository adaptador en memoria para tests y modo local.
// La exclusión transaccional la da el TxRunner; el mutex propio protege
// las lecturas fuera de transacción.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
}

// NewProductRepository construye el repositorio vacío.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]*entity.Product)}
}

// Create guarda un producto nuevo.
func (r *ProductRepository) Create(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = cloneProduct(product)
	return nil
}

// GetByID devuelve el producto o nil si no existe.
func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneProduct(r.products[id]), nil
}

// GetForUpdate en memoria equivale a GetByID: el lock de fila lo
// reemplaza la exclusión mutua del TxRunner.
func (r *ProductRepository) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

// Update reemplaza los campos editables (no Stock).
func (r *ProductRepository) Update(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[product.ID]
	if !ok {
		return nil
	}
	clone := cloneProduct(product)
	clone.Stock = existing.Stock
	r.products[product.ID] = clone
	return nil
}

// UpdateStock escribe el stock resultante y updated_at.
func (r *ProductRepository) UpdateStock(productID string, stock int64, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[productID]; ok {
		p.Stock = stock
		p.UpdatedAt = updatedAt
	}
	return nil
}

// List lista productos, más reciente primero.
func (r *ProductRepository) List(limit, offset int, onlyActive bool) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.products {
		if onlyActive && !p.Active {
			continue
		}
		list = append(list, cloneProduct(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// Delete borra un producto.
func (r *ProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func cloneProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
