package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventas-pro/internal/application/dto"
	"github.com/tu-usuario/ventas-pro/internal/application/stock"
	"github.com/tu-usuario/ventas-pro/internal/domain"
)

// StockHandler maneja los movimientos manuales de stock (protegido).
type StockHandler struct {
	ledger *stock.Ledger
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.Ledger) *StockHandler {
	return &StockHandler{ledger: ledger}
}

// ApplyMovement godoc
// @Summary      Registrar movimiento de stock (entrada/salida)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "Movimiento"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) ApplyMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledger.ApplyMovement(c.Context(), userID, in)
	if err != nil {
		return stockErrorResponse(c, err)
	}
	return c.JSON(out)
}

// stockErrorResponse mapea errores del ledger a respuestas HTTP. Compartido
// con el handler de ventas, que debita stock por la misma vía.
func stockErrorResponse(c *fiber.Ctx, err error) error {
	var insufficientErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficientErr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: insufficientErr.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y type (in|out) son requeridos"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "quantity debe ser un entero positivo"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
