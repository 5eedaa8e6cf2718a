package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de movimiento del ledger de inventario.
const (
	MovementReasonSale       = "SALE"       // venta (delta negativo)
	MovementReasonRestock    = "RESTOCK"    // anulación o eliminación de factura (delta positivo)
	MovementReasonEdit       = "EDIT"       // reemplazo de líneas de una factura
	MovementReasonAdjustment = "ADJUSTMENT" // ajuste manual
)

// StockItem cantidad disponible de una variante en una ubicación de stock.
// Quantity nunca queda negativa después de un descuento.
type StockItem struct {
	ID               string
	StockID          string
	ProductVariantID string
	Quantity         decimal.Decimal
	Price            decimal.Decimal
	Currency         string
	UpdatedAt        time.Time
}

// StockMovement registro de auditoría de cada delta aplicado por el ledger.
type StockMovement struct {
	ID               string
	StockItemID      string
	StockID          string
	ProductVariantID string
	Delta            decimal.Decimal // negativo = salida, positivo = entrada
	Reason           string
	DocumentID       string // vacío en ajustes manuales
	CreatedBy        string
	CreatedAt        time.Time
}
