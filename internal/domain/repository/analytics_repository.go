package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummary agregados de solo lectura para el tablero principal.
// Se calcula sobre datos ya consistentes; no participa del núcleo
// transaccional.
type DashboardSummary struct {
	TotalProducts  int64
	LowStockCount  int64 // productos activos con stock por debajo del umbral
	SalesCount     int64
	SalesRevenue   decimal.Decimal
	MovementsCount int64
}

// AnalyticsRepository consultas agregadas para el dashboard.
type AnalyticsRepository interface {
	GetDashboardSummary(ctx context.Context, since time.Time, lowStockThreshold int64) (*DashboardSummary, error)
}
