package dto

import "time"

// CreateMovementRequest datos para registrar un movimiento de stock.
// Description es opcional; si viene vacía se usa la descripción por
// defecto según el tipo (entrada/salida manual).
type CreateMovementRequest struct {
	ProductID   string `json:"product_id"`
	Kind        string `json:"kind"` // entry | exit
	Quantity    int64  `json:"quantity"`
	Description string `json:"description"`
}

// MovementResponse representación HTTP de un movimiento del libro de stock.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Kind        string    `json:"kind"`
	Quantity    int64     `json:"quantity"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateMovementResponse resultado de registrar un movimiento: el
// movimiento persistido y el stock resultante del producto.
type CreateMovementResponse struct {
	Movement MovementResponse `json:"movement"`
	NewStock int64            `json:"new_stock"`
}

// MovementListResponse listado de movimientos, más reciente primero.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Limit     int                `json:"limit"`
}
