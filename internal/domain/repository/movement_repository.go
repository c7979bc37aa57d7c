package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para el libro de
// movimientos de stock (append-only: create y consultas, nunca update).
//
// ListRecent puede devolver domain.ErrIndexRequired si el store necesita
// un índice compuesto (filtro por producto + orden por fecha) que no
// existe; el motor de stock resuelve esa señal con ListUnordered.
type MovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListRecent devuelve movimientos ordenados por CreatedAt descendente,
	// filtrados por producto si productID no es vacío, truncados a limit.
	ListRecent(productID string, limit int) ([]*entity.StockMovement, error)
	// ListUnordered es el camino de respaldo: hasta limit movimientos que
	// cumplan el filtro, sin garantía de orden del lado del store.
	ListUnordered(productID string, limit int) ([]*entity.StockMovement, error)
}
