package stock

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

const (
	// DefaultListLimit movimientos devueltos cuando el caller no pide un límite.
	DefaultListLimit = 20
	// fallbackFetchSize mínimo de filas a sobre-leer en el camino de
	// respaldo sin índice, para que el orden en memoria no deje afuera
	// movimientos recientes que el store devolvió desordenados.
	fallbackFetchSize = 100
)

// LedgerEngine es el motor del libro de stock: registra movimientos
// (entrada/salida) mutando el stock del producto y anotando el historial
// en una sola transacción, y lista el historial con estrategia de
// respaldo cuando falta el índice compuesto.
type LedgerEngine struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository
}

// NewLedgerEngine construye el motor.
func NewLedgerEngine(txRunner TxRunner, movementRepo repository.MovementRepository) *LedgerEngine {
	return &LedgerEngine{txRunner: txRunner, movementRepo: movementRepo}
}

// MovementInput entrada para registrar un movimiento de stock.
type MovementInput struct {
	ProductID   string
	Kind        string // entry | exit
	Quantity    int64
	Description string // opcional; vacío = descripción por defecto según Kind
}

// RegisterMovement ejecuta el read-check-write atómico del libro de stock:
//  1. valida la entrada antes de tocar el store;
//  2. dentro de una transacción: lee el producto con bloqueo de fila,
//     calcula el nuevo stock, rechaza si quedaría negativo, escribe
//     stock+updated_at y agrega el movimiento al historial.
//
// Todo o nada: un rechazo (producto inexistente, stock insuficiente o
// fallo del store) no deja ni mutación ni movimiento. Llamadas
// concurrentes sobre el mismo producto se serializan en el lock de fila,
// así el stock nunca queda negativo ni desalineado del historial.
func (uc *LedgerEngine) RegisterMovement(ctx context.Context, in MovementInput) (*dto.CreateMovementResponse, error) {
	if in.ProductID == "" || !entity.ValidMovementKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Description == "" {
		if in.Kind == entity.MovementKindEntry {
			in.Description = entity.DefaultEntryDescription
		} else {
			in.Description = entity.DefaultExitDescription
		}
	}

	var movement *entity.StockMovement
	var newStock int64

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		mov, stock, err := applyMovement(productRepo, movementRepo, in, time.Now())
		if err != nil {
			return err
		}
		movement = mov
		newStock = stock
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateMovementResponse{
		Movement: toMovementResponse(movement),
		NewStock: newStock,
	}, nil
}

// applyMovement hace la parte transaccional del registro con los
// repositorios del caller. Lo reutiliza el proceso de venta para
// descontar cada línea dentro de su propia transacción.
func applyMovement(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	in MovementInput,
	now time.Time,
) (*entity.StockMovement, int64, error) {
	product, err := productRepo.GetForUpdate(in.ProductID)
	if err != nil {
		return nil, 0, err
	}
	if product == nil {
		return nil, 0, &domain.NotFoundError{Resource: "producto", ID: in.ProductID}
	}

	newStock := product.Stock + in.Quantity
	if in.Kind == entity.MovementKindExit {
		newStock = product.Stock - in.Quantity
	}
	if newStock < 0 {
		return nil, 0, &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   in.Quantity,
			Available:   product.Stock,
		}
	}

	if err := productRepo.UpdateStock(product.ID, newStock, now); err != nil {
		return nil, 0, err
	}
	movement := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		Kind:        in.Kind,
		Quantity:    in.Quantity,
		Description: in.Description,
		CreatedAt:   now,
	}
	if err := movementRepo.Create(movement); err != nil {
		return nil, 0, err
	}
	return movement, newStock, nil
}

// RecordExitInTx registra una salida usando los repositorios del caller
// (misma transacción). Lo usa el proceso de venta para que todas las
// líneas y la venta misma se confirmen o reviertan juntas.
func (uc *LedgerEngine) RecordExitInTx(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	productID string,
	quantity int64,
	description string,
	now time.Time,
) (*entity.StockMovement, error) {
	mov, _, err := applyMovement(productRepo, movementRepo, MovementInput{
		ProductID:   productID,
		Kind:        entity.MovementKindExit,
		Quantity:    quantity,
		Description: description,
	}, now)
	return mov, err
}

// ListMovements lista el historial, más reciente primero, filtrado por
// producto si productID no es vacío. limit <= 0 usa DefaultListLimit.
//
// Camino ideal: el store filtra y ordena (puede requerir un índice
// compuesto). Si el store responde ErrIndexRequired, se degrada a una
// lectura sin orden de hasta max(limit, 100) filas que se ordenan en
// memoria antes de truncar — nunca se devuelven resultados sin ordenar.
// Cualquier otro error del store se propaga; un historial vacío es un
// resultado válido, no un error.
func (uc *LedgerEngine) ListMovements(ctx context.Context, productID string, limit int) (*dto.MovementListResponse, error) {
	_ = ctx
	if limit <= 0 {
		limit = DefaultListLimit
	}

	movements, err := uc.movementRepo.ListRecent(productID, limit)
	if err != nil {
		if !errors.Is(err, domain.ErrIndexRequired) {
			return nil, err
		}
		// Respaldo: sobre-leer y ordenar en memoria. Cambia costo de
		// lectura por disponibilidad cuando falta el índice.
		fetch := limit
		if fetch < fallbackFetchSize {
			fetch = fallbackFetchSize
		}
		movements, err = uc.movementRepo.ListUnordered(productID, fetch)
		if err != nil {
			return nil, err
		}
		sort.Slice(movements, func(i, j int) bool {
			return movements[i].CreatedAt.After(movements[j].CreatedAt)
		})
		if len(movements) > limit {
			movements = movements[:limit]
		}
	}

	out := &dto.MovementListResponse{
		Movements: make([]dto.MovementResponse, 0, len(movements)),
		Limit:     limit,
	}
	for _, m := range movements {
		out.Movements = append(out.Movements, toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}
