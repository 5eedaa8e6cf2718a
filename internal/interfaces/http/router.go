package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-backoffice/internal/application/analytics"
	"github.com/jhoicas/retail-backoffice/internal/application/auth"
	"github.com/jhoicas/retail-backoffice/internal/application/billing"
	"github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	QuoteUC    *billing.DocumentUseCase
	BillingUC  *billing.DocumentUseCase
	PDFUC      *billing.PDFUseCase
	CustomerUC *billing.CustomerUseCase
	StockUC    *inventory.AdjustmentUseCase
	ReportUC   *analytics.ReportUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
	DB         Pinger // nil con almacenamiento en memoria
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.DB))

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Users (alta con rol, solo admin)
	protected.Post("/users", adminOnly, authHandler.CreateUser)

	// Quotes
	quotes := protected.Group("/quotes")
	quoteHandler := NewDocumentHandler(deps.QuoteUC, deps.PDFUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:serial/pdf", quoteHandler.PDF)
	quotes.Get("/:serial", quoteHandler.GetBySerial)
	quotes.Put("/:id", quoteHandler.Update)
	quotes.Patch("/:id/status", quoteHandler.ChangeStatus)
	quotes.Delete("/:id", adminOnly, quoteHandler.Delete)

	// Billings (descuentan inventario)
	billings := protected.Group("/billings")
	billingHandler := NewDocumentHandler(deps.BillingUC, deps.PDFUC)
	billings.Post("/", billingHandler.Create)
	billings.Get("/", billingHandler.List)
	billings.Get("/:serial/pdf", billingHandler.PDF)
	billings.Get("/:serial", billingHandler.GetBySerial)
	billings.Put("/:id", billingHandler.Update)
	billings.Patch("/:id/status", billingHandler.ChangeStatus)
	billings.Post("/:id/cancel", billingHandler.Cancel)
	billings.Delete("/:id", adminOnly, billingHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Stock (lectura para todos, ajustes admin/bodeguero)
	stock := protected.Group("/stock-items")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/", stockHandler.ListByVariant)
	stock.Post("/adjustments", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), stockHandler.Adjust)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/monthly-sales", reportHandler.MonthlySales)
	reports.Get("/top-selling", reportHandler.TopSelling)
	reports.Get("/summary", reportHandler.Summary)
}
