package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// ErrIndexRequired es una señal interna de la capa de almacenamiento:
	// la consulta ordenada necesita un índice compuesto que no está
	// disponible. El motor de stock la resuelve con la consulta de
	// respaldo; nunca debe llegar a un caller HTTP como error.
	ErrIndexRequired = errors.New("la consulta requiere un índice compuesto")
)

// NotFoundError identifica qué recurso faltó (el mensaje al usuario
// debe poder decir cuál producto no existe, no solo "404").
type NotFoundError struct {
	Resource string // "producto", "venta", "categoría"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Resource, e.ID)
}

// Is permite errors.Is(err, domain.ErrNotFound).
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InsufficientStockError detalla producto, cantidad solicitada y
// disponible para que el caller arme un mensaje accionable.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s (%s): solicitado %d, disponible %d",
		e.ProductName, e.ProductID, e.Requested, e.Available)
}

// Is permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }
