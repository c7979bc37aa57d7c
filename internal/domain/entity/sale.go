package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem es una línea de venta. ProductName es un snapshot al momento
// de vender (el producto puede renombrarse o borrarse después).
type SaleItem struct {
	ProductID   string
	ProductName string
	Quantity    int64           // siempre > 0
	UnitPrice   decimal.Decimal // precio unitario al momento de la venta, > 0
}

// Sale es el registro inmutable de una venta completada. Cada línea
// produce exactamente un movimiento de salida en el libro de stock con
// una descripción que referencia el ID de la venta (trazabilidad).
type Sale struct {
	ID            string
	UserID        string
	PaymentMethod string // opcional: "efectivo", "tarjeta", etc.
	Items         []SaleItem
	Total         decimal.Decimal // > 0, igual a la suma de los subtotales
	CreatedAt     time.Time
}

// Subtotal de una línea (cantidad × precio unitario).
func (i SaleItem) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(i.Quantity).Mul(i.UnitPrice)
}
