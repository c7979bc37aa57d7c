package dto

import "github.com/shopspring/decimal"

// DashboardSummaryResponse agregados para el tablero principal.
// SalesCount/SalesRevenue cubren los últimos 30 días.
type DashboardSummaryResponse struct {
	TotalProducts  int64              `json:"total_products"`
	LowStockCount  int64              `json:"low_stock_count"`
	SalesCount     int64              `json:"sales_count"`
	SalesRevenue   decimal.Decimal    `json:"sales_revenue"`
	MovementsCount int64              `json:"movements_count"`
	RecentActivity []MovementResponse `json:"recent_activity"`
}
