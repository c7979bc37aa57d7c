package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)

// AnalyticsRepository agregados del dashboard calculados sobre los
// repositorios en memoria.
type AnalyticsRepository struct {
	products  *ProductRepository
	sales     *SaleRepository
	movements *MovementRepository
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(products *ProductRepository, sales *SaleRepository, movements *MovementRepository) *AnalyticsRepository {
	return &AnalyticsRepository{products: products, sales: sales, movements: movements}
}

// GetDashboardSummary recorre los stores en memoria y arma los totales.
func (r *AnalyticsRepository) GetDashboardSummary(ctx context.Context, since time.Time, lowStockThreshold int64) (*repository.DashboardSummary, error) {
	_ = ctx
	summary := &repository.DashboardSummary{SalesRevenue: decimal.Zero}

	r.products.mu.RLock()
	for _, p := range r.products.products {
		summary.TotalProducts++
		if p.Active && p.Stock < lowStockThreshold {
			summary.LowStockCount++
		}
	}
	r.products.mu.RUnlock()

	r.sales.mu.RLock()
	for _, s := range r.sales.sales {
		if s.CreatedAt.Before(since) {
			continue
		}
		summary.SalesCount++
		summary.SalesRevenue = summary.SalesRevenue.Add(s.Total)
	}
	r.sales.mu.RUnlock()

	r.movements.mu.RLock()
	for _, m := range r.movements.movements {
		if !m.CreatedAt.Before(since) {
			summary.MovementsCount++
		}
	}
	r.movements.mu.RUnlock()

	return summary, nil
}
