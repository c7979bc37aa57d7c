package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta enviada por el caller.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest datos para completar una venta multi-ítem.
// Total se valida contra la suma de cantidad × precio unitario.
type CreateSaleRequest struct {
	PaymentMethod string            `json:"payment_method"`
	Items         []SaleItemRequest `json:"items"`
	Total         decimal.Decimal   `json:"total"`
}

// SaleItemResponse línea de venta persistida.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse representación HTTP de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Sales  []SaleResponse `json:"sales"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
