package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con
// pool o tx). Cabecera en sales, líneas en sale_items.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera y todas las líneas. Pensado para correr
// dentro de la transacción de CompleteSale.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, user_id, payment_method, total, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	paymentMethod := (*string)(nil)
	if sale.PaymentMethod != "" {
		paymentMethod = &sale.PaymentMethod
	}
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.UserID, paymentMethod, sale.Total, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (sale_id, product_id, product_name, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	for _, item := range sale.Items {
		_, err := r.q.Exec(context.Background(), itemQuery,
			sale.ID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta con sus líneas.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, user_id, payment_method, total, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	var paymentMethod *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.UserID, &paymentMethod, &s.Total, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if paymentMethod != nil {
		s.PaymentMethod = *paymentMethod
	}
	items, err := r.itemsFor(id)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

// List lista ventas paginadas, más reciente primero, con sus líneas.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, user_id, payment_method, total, created_at
		FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var paymentMethod *string
		if err := rows.Scan(&s.ID, &s.UserID, &paymentMethod, &s.Total, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if paymentMethod != nil {
			s.PaymentMethod = *paymentMethod
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		items, err := r.itemsFor(s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return list, nil
}

// Delete borra una venta y sus líneas (operación administrativa).
func (r *SaleRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM sale_items WHERE sale_id = $1`, id); err != nil {
		return fmt.Errorf("delete sale items: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) itemsFor(saleID string) ([]entity.SaleItem, error) {
	query := `
		SELECT product_id, product_name, quantity, unit_price
		FROM sale_items WHERE sale_id = $1`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var items []entity.SaleItem
	for rows.Next() {
		var item entity.SaleItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
