package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: solo INSERT y SELECT.
//
// PostgreSQL resuelve filtro + ORDER BY sin necesitar un índice
// compuesto precalculado, así que este adaptador nunca devuelve
// domain.ErrIndexRequired; la señal es parte del contrato del puerto
// para stores que sí lo exigen (el adaptador en memoria la simula).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento del libro de stock.
func (r *MovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, kind, quantity, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Kind,
		movement.Quantity, movement.Description, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListRecent lista movimientos ordenados por fecha descendente,
// opcionalmente filtrados por producto, truncados a limit.
func (r *MovementRepo) ListRecent(productID string, limit int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, kind, quantity, description, created_at
		FROM stock_movements`
	args := []any{}
	if productID != "" {
		query += ` WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2`
		args = append(args, productID, limit)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1`
		args = append(args, limit)
	}
	return r.list(query, args...)
}

// ListUnordered camino de respaldo: hasta limit filas que cumplan el
// filtro, sin ORDER BY (el motor ordena en memoria).
func (r *MovementRepo) ListUnordered(productID string, limit int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, kind, quantity, description, created_at
		FROM stock_movements`
	args := []any{}
	if productID != "" {
		query += ` WHERE product_id = $1 LIMIT $2`
		args = append(args, productID, limit)
	} else {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	return r.list(query, args...)
}

func (r *MovementRepo) list(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.Description, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
