package dto

import "github.com/shopspring/decimal"

// MonthlySalesDTO ventas pagadas de un mes en una moneda.
type MonthlySalesDTO struct {
	Month        int             `json:"month"` // 1..12
	Currency     string          `json:"currency"`
	BillingCount int             `json:"billing_count"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Shipping     decimal.Decimal `json:"shipping"`
	Total        decimal.Decimal `json:"total"`
}

// MonthlySalesReport respuesta de GET /api/reports/monthly-sales.
type MonthlySalesReport struct {
	Shop   string            `json:"shop"`
	Year   int               `json:"year"`
	Months []MonthlySalesDTO `json:"months"`
}

// TopSellingDTO variante más vendida en un período.
type TopSellingDTO struct {
	ProductVariantID string          `json:"product_variant_id"`
	Name             string          `json:"name"`
	Currency         string          `json:"currency"`
	Quantity         decimal.Decimal `json:"quantity"`
	Revenue          decimal.Decimal `json:"revenue"`
}

// CurrencyTotalDTO total por moneda.
type CurrencyTotalDTO struct {
	Currency     string          `json:"currency"`
	BillingCount int             `json:"billing_count"`
	Total        decimal.Decimal `json:"total"`
}

// SalesSummaryDTO respuesta de GET /api/reports/summary: hoy, mes en curso y top 5 del mes.
type SalesSummaryDTO struct {
	Shop       string             `json:"shop"`
	Today      []CurrencyTotalDTO `json:"today"`
	Month      []CurrencyTotalDTO `json:"month"`
	TopSelling []TopSellingDTO    `json:"top_selling"`
	DateLabel  string             `json:"date_label"` // ej: "Febrero 2026"
}
