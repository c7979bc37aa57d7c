package entity

import "time"

// Tipos de movimiento de stock (value object conceptual).
const (
	MovementKindEntry = "entry" // entrada: suma al stock
	MovementKindExit  = "exit"  // salida: resta del stock
)

// Descripciones por defecto cuando el caller no envía una.
const (
	DefaultEntryDescription = "Entrada manual"
	DefaultExitDescription  = "Salida manual"
)

// ValidMovementKind indica si el tipo es entry o exit.
func ValidMovementKind(kind string) bool {
	return kind == MovementKindEntry || kind == MovementKindExit
}

// StockMovement es una anotación del libro de stock: inmutable una vez
// creada. El historial es append-only; nunca se edita ni se borra.
type StockMovement struct {
	ID          string
	ProductID   string
	Kind        string // entry | exit
	Quantity    int64  // siempre > 0; el signo lo da Kind
	Description string // ej: "venta", "compra proveedor"
	CreatedAt   time.Time
}
