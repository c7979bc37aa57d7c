package repository

import (
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Stock y UpdatedAt solo deben mutarse vía UpdateStock dentro de la
// transacción del motor de stock; Update no toca esos campos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// el read-check-write atómico del motor de stock.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock int64, updatedAt time.Time) error
	List(limit, offset int, onlyActive bool) ([]*entity.Product, error)
	Delete(id string) error
}
