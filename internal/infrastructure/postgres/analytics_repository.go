package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetDashboardSummary agrega en una sola consulta los totales del
// tablero: catálogo, stock bajo, ventas e historial desde `since`.
func (r *AnalyticsRepo) GetDashboardSummary(ctx context.Context, since time.Time, lowStockThreshold int64) (*repository.DashboardSummary, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM products)                                          AS total_products,
	    (SELECT COUNT(*) FROM products WHERE active AND stock < $2)              AS low_stock_count,
	    (SELECT COUNT(*) FROM sales WHERE created_at >= $1)                      AS sales_count,
	    (SELECT COALESCE(SUM(total), 0) FROM sales WHERE created_at >= $1)       AS sales_revenue,
	    (SELECT COUNT(*) FROM stock_movements WHERE created_at >= $1)            AS movements_count`

	var s repository.DashboardSummary
	err := r.pool.QueryRow(ctx, query, since, lowStockThreshold).Scan(
		&s.TotalProducts, &s.LowStockCount, &s.SalesCount, &s.SalesRevenue, &s.MovementsCount,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetDashboardSummary: %w", err)
	}
	return &s, nil
}
