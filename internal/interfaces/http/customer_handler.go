package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-backoffice/internal/application/billing"
	"github.com/jhoicas/retail-backoffice/internal/application/dto"
)

// CustomerHandler maneja las peticiones HTTP de clientes (protegido).
type CustomerHandler struct {
	uc *billing.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create crea un cliente en la tienda indicada por ?shop=slug.
// POST /api/customers?shop=
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerPayload
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, dto.CodeInvalidBody, "cuerpo inválido")
	}
	shop := c.Query("shop")
	if shop == "" {
		return badRequest(c, dto.CodeValidation, "shop es requerido")
	}
	out, err := h.uc.Create(c.UserContext(), shop, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update actualiza persona y dirección.
// PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerPayload
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, dto.CodeInvalidBody, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List lista clientes. Query: shop, search, limit, offset.
// GET /api/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, dto.CodeInvalidQuery, "parámetros de paginación inválidos")
	}
	page.DefaultPage()
	list, err := h.uc.List(c.UserContext(), c.Query("shop"), c.Query("search"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CustomerListResponse{Items: list, Page: dto.NewPageResponse(page, len(list))})
}
