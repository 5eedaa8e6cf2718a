package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/application/inventory"
)

// StockHandler consulta y ajuste manual de stock.
type StockHandler struct {
	uc *inventory.AdjustmentUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.AdjustmentUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// ListByVariant stock de una variante en todas sus bodegas.
// GET /api/stock-items?variant_id=
func (h *StockHandler) ListByVariant(c *fiber.Ctx) error {
	variantID := c.Query("variant_id")
	if variantID == "" {
		return badRequest(c, dto.CodeValidation, "variant_id es requerido")
	}
	out, err := h.uc.ListByVariant(c.UserContext(), variantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Suma (cantidad positiva) o resta (negativa) stock y registra el movimiento ADJUSTMENT.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustmentRequest  true  "variante, bodega, cantidad con signo"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-items/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, dto.CodeInvalidBody, "cuerpo inválido")
	}
	out, err := h.uc.Adjust(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
