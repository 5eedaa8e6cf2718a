package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind distingue cotizaciones de facturas.
type DocumentKind string

const (
	KindQuote   DocumentKind = "QUOTE"
	KindBilling DocumentKind = "BILLING"
)

// DeductsStock indica si las líneas de este tipo de documento mueven inventario.
func (k DocumentKind) DeductsStock() bool { return k == KindBilling }

// Estados de documento. Billing: PENDING, PAID, CANCELED.
// Quote: PENDING, ACCEPTED, CANCELED, REVISION, OVERDUE.
const (
	StatusPending  = "PENDING"
	StatusPaid     = "PAID"
	StatusCanceled = "CANCELED"
	StatusAccepted = "ACCEPTED"
	StatusRevision = "REVISION"
	StatusOverdue  = "OVERDUE"
)

// Tipos de descuento. Vacío = sin descuento.
const (
	DiscountPercentage = "PERCENTAGE"
	DiscountFixed      = "FIXED"
)

// Document cabecera de una cotización o factura con sus líneas.
type Document struct {
	ID           string
	Kind         DocumentKind
	ShopID       string
	StockID      string // bodega de la que se descuenta (facturas)
	CustomerID   string // vacío = documento anónimo
	Status       string
	Currency     string
	DiscountType string // PERCENTAGE | FIXED | ""
	Discount     decimal.Decimal
	Shipping     decimal.Decimal
	Subtotal     decimal.Decimal
	Total        decimal.Decimal
	SerialNumber string
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Items        []LineItem
}

// LineItem línea de un documento. Name es una copia del nombre de la variante
// al momento de crear la línea.
type LineItem struct {
	ID               string
	DocumentID       string
	ProductVariantID string
	Name             string
	Quantity         decimal.Decimal
	UnitPrice        decimal.Decimal
	TotalPrice       decimal.Decimal
}
