package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados sobre facturas PAID. shopID vacío = todas las tiendas.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// MonthlySales ventas pagadas del año agrupadas por mes y moneda.
func (r *ReportRepo) MonthlySales(ctx context.Context, shopID string, year int) ([]repository.MonthlySalesRow, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(1, 0, 0)
	query := `
		SELECT EXTRACT(MONTH FROM created_at)::INT AS month, currency,
		       COUNT(*)::INT, COALESCE(SUM(subtotal), 0), COALESCE(SUM(shipping), 0), COALESCE(SUM(total), 0)
		FROM documents
		WHERE kind = 'BILLING' AND status = 'PAID'
		  AND ($1 = '' OR shop_id::TEXT = $1)
		  AND created_at >= $2 AND created_at < $3
		GROUP BY month, currency
		ORDER BY month, currency`
	rows, err := r.q.Query(ctx, query, shopID, from, to)
	if err != nil {
		return nil, fmt.Errorf("monthly sales: %w", err)
	}
	defer rows.Close()
	var out []repository.MonthlySalesRow
	for rows.Next() {
		var row repository.MonthlySalesRow
		if err := rows.Scan(&row.Month, &row.Currency, &row.BillingCount, &row.Subtotal, &row.Shipping, &row.Total); err != nil {
			return nil, fmt.Errorf("scan monthly sales: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// TopSelling variantes más vendidas en [from, to] por cantidad.
func (r *ReportRepo) TopSelling(ctx context.Context, shopID string, from, to time.Time, limit int) ([]repository.TopSellingRow, error) {
	query := `
		SELECT i.product_variant_id, MAX(i.name), d.currency, SUM(i.quantity), SUM(i.total_price)
		FROM document_items i
		JOIN documents d ON d.id = i.document_id
		WHERE d.kind = 'BILLING' AND d.status = 'PAID'
		  AND ($1 = '' OR d.shop_id::TEXT = $1)
		  AND d.created_at BETWEEN $2 AND $3
		GROUP BY i.product_variant_id, d.currency
		ORDER BY SUM(i.quantity) DESC, i.product_variant_id
		LIMIT $4`
	rows, err := r.q.Query(ctx, query, shopID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top selling: %w", err)
	}
	defer rows.Close()
	var out []repository.TopSellingRow
	for rows.Next() {
		var row repository.TopSellingRow
		if err := rows.Scan(&row.ProductVariantID, &row.Name, &row.Currency, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan top selling: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SalesBetween total pagado en [from, to] por moneda.
func (r *ReportRepo) SalesBetween(ctx context.Context, shopID string, from, to time.Time) ([]repository.PeriodSales, error) {
	query := `
		SELECT currency, COUNT(*)::INT, COALESCE(SUM(total), 0)
		FROM documents
		WHERE kind = 'BILLING' AND status = 'PAID'
		  AND ($1 = '' OR shop_id::TEXT = $1)
		  AND created_at BETWEEN $2 AND $3
		GROUP BY currency
		ORDER BY currency`
	rows, err := r.q.Query(ctx, query, shopID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales between: %w", err)
	}
	defer rows.Close()
	var out []repository.PeriodSales
	for rows.Next() {
		var row repository.PeriodSales
		if err := rows.Scan(&row.Currency, &row.BillingCount, &row.Total); err != nil {
			return nil, fmt.Errorf("scan sales: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
