package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepository)(nil)

// SaleRepository adaptador en memoria para ventas.
type SaleRepository struct {
	mu    sync.RWMutex
	sales map[string]*entity.Sale
}

// NewSaleRepository construye el repositorio vacío.
func NewSaleRepository() *SaleRepository {
	return &SaleRepository{sales: make(map[string]*entity.Sale)}
}

// Create guarda una venta.
func (r *SaleRepository) Create(sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales[sale.ID] = cloneSale(sale)
	return nil
}

// GetByID devuelve la venta o nil si no existe.
func (r *SaleRepository) GetByID(id string) (*entity.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneSale(r.sales[id]), nil
}

// List lista ventas, más reciente primero.
func (r *SaleRepository) List(limit, offset int) ([]*entity.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Sale
	for _, s := range r.sales {
		list = append(list, cloneSale(s))
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

// Delete borra una venta.
func (r *SaleRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sales, id)
	return nil
}

// Len cantidad de ventas persistidas.
func (r *SaleRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sales)
}

func cloneSale(s *entity.Sale) *entity.Sale {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Items = append([]entity.SaleItem(nil), s.Items...)
	return &clone
}
