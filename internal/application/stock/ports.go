package stock

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del store,
// pasando repositorios atados a esa tx. Es la única vía por la que el
// motor de stock muta datos: garantiza que la lectura del stock, la
// verificación y la escritura (producto + movimiento) sean atómicas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error
}
