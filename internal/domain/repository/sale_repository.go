package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas.
// Create inserta cabecera y líneas; las ventas no se actualizan nunca
// (Delete existe solo como operación administrativa).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	Delete(id string) error
}
