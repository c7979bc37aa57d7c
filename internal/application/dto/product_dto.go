package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest datos para crear un producto.
// InitialStock permite arrancar con existencias; queda registrado como
// stock inicial del producto (no genera movimiento).
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	InitialStock int64           `json:"initial_stock"`
	CategoryID   string          `json:"category_id"`
}

// UpdateProductRequest campos actualizables. Stock no se toca aquí:
// solo se muta vía movimientos de stock.
type UpdateProductRequest struct {
	Name       *string          `json:"name"`
	Price      *decimal.Decimal `json:"price"`
	CategoryID *string          `json:"category_id"`
	Active     *bool            `json:"active"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int64           `json:"stock"`
	CategoryID string          `json:"category_id,omitempty"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}
