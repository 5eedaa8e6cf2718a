package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySalesRow ventas pagadas de un mes en una moneda.
type MonthlySalesRow struct {
	Month        int
	Currency     string
	BillingCount int
	Subtotal     decimal.Decimal
	Shipping     decimal.Decimal
	Total        decimal.Decimal
}

// TopSellingRow variante agrupada por cantidad vendida.
type TopSellingRow struct {
	ProductVariantID string
	Name             string
	Currency         string
	Quantity         decimal.Decimal
	Revenue          decimal.Decimal
}

// PeriodSales total de facturas pagadas en un rango, por moneda.
type PeriodSales struct {
	Currency     string
	BillingCount int
	Total        decimal.Decimal
}

// ReportRepository consultas de solo lectura sobre facturas pagadas.
type ReportRepository interface {
	MonthlySales(ctx context.Context, shopID string, year int) ([]MonthlySalesRow, error)
	TopSelling(ctx context.Context, shopID string, from, to time.Time, limit int) ([]TopSellingRow, error)
	SalesBetween(ctx context.Context, shopID string, from, to time.Time) ([]PeriodSales, error)
}
