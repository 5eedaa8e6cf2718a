package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentItemRequest línea de cotización o factura.
// UnitPrice en cero toma el precio de la variante.
type DocumentItemRequest struct {
	ProductVariantID string          `json:"product_variant_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
}

// CreateDocumentRequest body para POST /api/quotes y POST /api/billings.
// Customer crea o actualiza un cliente; CustomerID usa uno existente; ambos vacíos = anónimo.
// Total es opcional: si viene, debe coincidir con el calculado.
type CreateDocumentRequest struct {
	Shop         string                `json:"shop"`               // slug de la tienda
	StockID      string                `json:"stock_id,omitempty"` // obligatorio en facturas
	CustomerID   string                `json:"customer_id,omitempty"`
	Customer     *CustomerPayload      `json:"customer,omitempty"`
	DiscountType string                `json:"discount_type,omitempty"`
	Discount     decimal.Decimal       `json:"discount"`
	Shipping     decimal.Decimal       `json:"shipping"`
	Total        *decimal.Decimal      `json:"total,omitempty"`
	Notes        string                `json:"notes,omitempty"`
	Items        []DocumentItemRequest `json:"items"`
}

// UpdateDocumentRequest body para PUT /api/quotes/:id y PUT /api/billings/:id.
// Items reemplaza todas las líneas del documento.
type UpdateDocumentRequest struct {
	CustomerID   string                `json:"customer_id,omitempty"`
	Customer     *CustomerPayload      `json:"customer,omitempty"`
	DiscountType string                `json:"discount_type,omitempty"`
	Discount     decimal.Decimal       `json:"discount"`
	Shipping     decimal.Decimal       `json:"shipping"`
	Total        *decimal.Decimal      `json:"total,omitempty"`
	Notes        string                `json:"notes,omitempty"`
	Items        []DocumentItemRequest `json:"items"`
}

// ChangeStatusRequest body para PATCH /api/{quotes|billings}/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// DocumentSummary respuesta de creación/actualización.
type DocumentSummary struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	SerialNumber string          `json:"serial_number"`
	Status       string          `json:"status"`
	Currency     string          `json:"currency"`
	CustomerID   string          `json:"customer_id,omitempty"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"item_count,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// DocumentItemResponse línea en la respuesta.
type DocumentItemResponse struct {
	ID               string          `json:"id"`
	ProductVariantID string          `json:"product_variant_id"`
	Name             string          `json:"name"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalPrice       decimal.Decimal `json:"total_price"`
}

// DocumentResponse documento completo para GET /api/{quotes|billings}/:serial,
// con cliente, persona y dirección denormalizados.
type DocumentResponse struct {
	ID                   string                 `json:"id"`
	Kind                 string                 `json:"kind"`
	SerialNumber         string                 `json:"serial_number"`
	ShopID               string                 `json:"shop_id"`
	StockID              string                 `json:"stock_id,omitempty"`
	Status               string                 `json:"status"`
	Currency             string                 `json:"currency"`
	DiscountType         string                 `json:"discount_type,omitempty"`
	Discount             decimal.Decimal        `json:"discount"`
	Shipping             decimal.Decimal        `json:"shipping"`
	Subtotal             decimal.Decimal        `json:"subtotal"`
	Total                decimal.Decimal        `json:"total"`
	Notes                string                 `json:"notes,omitempty"`
	CustomerID           string                 `json:"customer_id,omitempty"`
	CustomerName         string                 `json:"customer_name,omitempty"`
	CustomerDocument     string                 `json:"customer_document,omitempty"`
	CustomerEmail        string                 `json:"customer_email,omitempty"`
	CustomerPhone        string                 `json:"customer_phone,omitempty"`
	CustomerAddress      string                 `json:"customer_address,omitempty"`
	CustomerCity         string                 `json:"customer_city,omitempty"`
	CreatedBy            string                 `json:"created_by"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
	Items                []DocumentItemResponse `json:"items"`
}

// DocumentListResponse listado paginado.
type DocumentListResponse struct {
	Items []DocumentSummary `json:"items"`
	Page  PageResponse      `json:"page"`
}
