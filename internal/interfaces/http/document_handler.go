package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-backoffice/internal/application/billing"
	"github.com/jhoicas/retail-backoffice/internal/application/dto"
)

// DocumentHandler maneja cotizaciones o facturas según el tipo del caso de uso.
// Se registra una instancia por tipo (/api/quotes y /api/billings).
type DocumentHandler struct {
	uc  *billing.DocumentUseCase
	pdf *billing.PDFUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *billing.DocumentUseCase, pdf *billing.PDFUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc, pdf: pdf}
}

// Create godoc
// @Summary      Crear cotización o factura
// @Description  Las facturas descuentan inventario de la bodega indicada en la misma transacción.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDocumentRequest  true  "shop, stock_id, cliente, líneas"
// @Success      201   {object}  dto.DocumentSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/billings [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, dto.CodeInvalidBody, "cuerpo inválido")
	}
	if in.Shop == "" {
		return badRequest(c, dto.CodeValidation, "shop es requerido")
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update reemplaza cliente, descuento, envío, notas y líneas de un documento editable.
// PUT /api/{quotes|billings}/:id
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, dto.CodeInvalidBody, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina el documento; una factura no anulada devuelve su stock.
// DELETE /api/{quotes|billings}/:id (solo admin)
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true, "id": c.Params("id")})
}

// Cancel anula una factura y reintegra su inventario.
// POST /api/billings/:id/cancel
func (h *DocumentHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus aplica una transición de estado.
// PATCH /api/{quotes|billings}/:id/status
func (h *DocumentHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, dto.CodeInvalidBody, "cuerpo inválido")
	}
	if in.Status == "" {
		return badRequest(c, dto.CodeValidation, "status es requerido")
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetBySerial godoc
// @Summary      Detalle de un documento por número de serie
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        serial  path  string  true  "Número de serie (ej. FAC-000001)"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billings/{serial} [get]
func (h *DocumentHandler) GetBySerial(c *fiber.Ctx) error {
	out, err := h.uc.GetBySerial(c.UserContext(), c.Params("serial"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List lista documentos paginados. Query: shop, status, limit, offset.
// GET /api/{quotes|billings}
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, dto.CodeInvalidQuery, "parámetros de paginación inválidos")
	}
	out, err := h.uc.List(c.UserContext(), c.Query("shop"), c.Query("status"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF descarga la representación impresa del documento.
// GET /api/{quotes|billings}/:serial/pdf
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	body, filename, err := h.pdf.Render(c.UserContext(), h.uc.Kind(), c.Params("serial"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}
