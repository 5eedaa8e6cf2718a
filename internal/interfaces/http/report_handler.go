package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-backoffice/internal/application/analytics"
	"github.com/jhoicas/retail-backoffice/internal/application/dto"
)

const dateLayout = "2006-01-02"

// ReportHandler reportes de ventas sobre facturas pagadas.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// MonthlySales godoc
// @Summary      Ventas pagadas por mes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        shop  query  string  false  "Slug de la tienda (vacío = todas)"
// @Param        year  query  int     false  "Año (default: actual)"
// @Success      200  {object}  dto.MonthlySalesReport
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/monthly-sales [get]
func (h *ReportHandler) MonthlySales(c *fiber.Ctx) error {
	out, err := h.uc.MonthlySales(c.UserContext(), c.Query("shop"), c.QueryInt("year", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TopSelling variantes más vendidas en el rango.
// GET /api/reports/top-selling?shop=&from=YYYY-MM-DD&to=YYYY-MM-DD&limit=
func (h *ReportHandler) TopSelling(c *fiber.Ctx) error {
	var from, to time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, time.Local)
		if err != nil {
			return badRequest(c, dto.CodeValidation, "from debe tener formato YYYY-MM-DD")
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, time.Local)
		if err != nil {
			return badRequest(c, dto.CodeValidation, "to debe tener formato YYYY-MM-DD")
		}
		// incluye el día completo
		to = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	out, err := h.uc.TopSelling(c.UserContext(), c.Query("shop"), from, to, c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary ventas de hoy, del mes y top del mes.
// GET /api/reports/summary?shop=
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), c.Query("shop"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
