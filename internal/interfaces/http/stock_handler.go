package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/stock"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/observability/prometrics"
)

// StockHandler maneja el libro de movimientos de stock (protegido).
type StockHandler struct {
	ledger  *stock.LedgerEngine
	metrics *prometrics.Metrics
}

// NewStockHandler construye el handler. metrics puede ser nil en tests.
func NewStockHandler(ledger *stock.LedgerEngine, metrics *prometrics.Metrics) *StockHandler {
	return &StockHandler{ledger: ledger, metrics: metrics}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Aplica una entrada o salida de forma atómica: valida el
//
//	stock resultante, lo persiste y deja el asiento en el libro.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product_id, kind (entry|exit), quantity, description (opcional)"
// @Success      201   {object}  dto.CreateMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledger.RegisterMovement(c.Context(), stock.MovementInput{
		ProductID:   in.ProductID,
		Kind:        in.Kind,
		Quantity:    in.Quantity,
		Description: in.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if h.metrics != nil {
		h.metrics.MovementsRecorded.WithLabelValues(out.Movement.Kind).Inc()
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos de stock
// @Description  Más recientes primero. Con product_id filtra por producto;
//
//	sin él devuelve el libro completo.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "filtrar por producto"
// @Param        limit       query  int     false  "máx. resultados (default 20)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	limit := c.QueryInt("limit", 0)

	out, err := h.ledger.ListMovements(c.Context(), productID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
