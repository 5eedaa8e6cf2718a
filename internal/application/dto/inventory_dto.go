package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAdjustmentRequest body para POST /api/stock-items/adjustments.
// Quantity con signo: positivo suma, negativo resta.
type StockAdjustmentRequest struct {
	ProductVariantID string          `json:"product_variant_id"`
	StockID          string          `json:"stock_id"`
	Quantity         decimal.Decimal `json:"quantity"`
}

// StockItemResponse stock de una variante en una bodega.
type StockItemResponse struct {
	ID               string          `json:"id"`
	StockID          string          `json:"stock_id"`
	ProductVariantID string          `json:"product_variant_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	Price            decimal.Decimal `json:"price"`
	Currency         string          `json:"currency"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
