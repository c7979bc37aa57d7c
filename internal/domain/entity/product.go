package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock es la cantidad disponible actual; solo se muta a través del
// motor de stock (movimientos), nunca por escrituras directas, para que
// siempre coincida con la suma del historial de movimientos.
type Product struct {
	ID         string
	Name       string
	Price      decimal.Decimal // precio de venta unitario
	Stock      int64           // invariante: siempre >= 0
	CategoryID string          // referencia opcional a Category
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
