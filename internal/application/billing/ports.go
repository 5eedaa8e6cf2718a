package billing

import (
	"context"
	"time"

	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Repos repositorios atados a una misma transacción (o al pool, para lecturas).
type Repos struct {
	Customers  repository.CustomerRepository
	Shops      repository.ShopRepository
	Variants   repository.ProductVariantRepository
	StockItems repository.StockItemRepository
	Movements  repository.StockMovementRepository
	Sequences  repository.SequenceRepository
	Documents  repository.DocumentRepository
	Items      repository.LineItemRepository
}

// TxRunner ejecuta una función dentro de una transacción que incluye repos de inventario y documentos.
// Cualquier error devuelto por fn provoca rollback.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(r Repos) error) error
}

// DocumentPDFGenerator puerto hacia el generador de PDF (infraestructura).
type DocumentPDFGenerator interface {
	Generate(data PDFData) ([]byte, error)
}

// PDFData datos ya resueltos para la representación impresa de un documento.
type PDFData struct {
	Title        string // "Cotización" | "Factura"
	SerialNumber string
	Status       string
	Date         time.Time
	ShopName     string
	Currency     string
	CustomerName string
	CustomerDoc  string
	CustomerAddr string
	Notes        string
	Lines        []PDFLine
	Subtotal     decimal.Decimal
	DiscountType string
	Discount     decimal.Decimal
	Shipping     decimal.Decimal
	Total        decimal.Decimal
}

// PDFLine línea de detalle del PDF.
type PDFLine struct {
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}
