package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepository)(nil)

// MovementRepository libro de movimientos en memoria (append-only).
//
// Con withCompositeIndex=false simula un store al que le falta el índice
// compuesto producto+fecha: la consulta ordenada con filtro devuelve
// domain.ErrIndexRequired y obliga al motor a usar el camino de
// respaldo. Así el fallback es una rama ejercitable, no código muerto.
type MovementRepository struct {
	mu                 sync.RWMutex
	movements          []*entity.StockMovement
	withCompositeIndex bool
}

// NewMovementRepository construye el libro. withCompositeIndex indica si
// el "índice" producto+fecha está disponible.
func NewMovementRepository(withCompositeIndex bool) *MovementRepository {
	return &MovementRepository{withCompositeIndex: withCompositeIndex}
}

// Create agrega un movimiento al final del libro.
func (r *MovementRepository) Create(movement *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *movement
	r.movements = append(r.movements, &clone)
	return nil
}

// Len cantidad total de movimientos registrados.
func (r *MovementRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.movements)
}

// ListRecent lista ordenado por fecha descendente. Filtrar por producto
// sin el índice compuesto dispara ErrIndexRequired.
func (r *MovementRepository) ListRecent(productID string, limit int) ([]*entity.StockMovement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if productID != "" && !r.withCompositeIndex {
		return nil, domain.ErrIndexRequired
	}
	list := r.filtered(productID)
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// ListUnordered devuelve hasta limit movimientos en orden de inserción
// (sin garantía de orden por fecha, como un scan sin índice).
func (r *MovementRepository) ListUnordered(productID string, limit int) ([]*entity.StockMovement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.filtered(productID)
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *MovementRepository) filtered(productID string) []*entity.StockMovement {
	var list []*entity.StockMovement
	for _, m := range r.movements {
		if productID != "" && m.ProductID != productID {
			continue
		}
		clone := *m
		list = append(list, &clone)
	}
	return list
}
