package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados sobre facturas pagadas.
type ReportRepo struct{ h handle }

// paid recorre las facturas PAID de la tienda (shopID vacío = todas) creadas en [from, to].
func (r *ReportRepo) paid(shopID string, from, to time.Time, fn func(d *state, doc entity.Document)) error {
	return r.h.do(func(d *state) error {
		for _, doc := range d.documents {
			if doc.Kind != entity.KindBilling || doc.Status != entity.StatusPaid {
				continue
			}
			if shopID != "" && doc.ShopID != shopID {
				continue
			}
			if doc.CreatedAt.Before(from) || doc.CreatedAt.After(to) {
				continue
			}
			fn(d, doc)
		}
		return nil
	})
}

func (r *ReportRepo) MonthlySales(_ context.Context, shopID string, year int) ([]repository.MonthlySalesRow, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(1, 0, 0).Add(-time.Nanosecond)
	type key struct {
		month    int
		currency string
	}
	acc := map[key]*repository.MonthlySalesRow{}
	err := r.paid(shopID, from, to, func(_ *state, doc entity.Document) {
		k := key{int(doc.CreatedAt.Month()), doc.Currency}
		row, ok := acc[k]
		if !ok {
			row = &repository.MonthlySalesRow{Month: k.month, Currency: k.currency}
			acc[k] = row
		}
		row.BillingCount++
		row.Subtotal = row.Subtotal.Add(doc.Subtotal)
		row.Shipping = row.Shipping.Add(doc.Shipping)
		row.Total = row.Total.Add(doc.Total)
	})
	out := make([]repository.MonthlySalesRow, 0, len(acc))
	for _, row := range acc {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Currency < out[j].Currency
	})
	return out, err
}

func (r *ReportRepo) TopSelling(_ context.Context, shopID string, from, to time.Time, limit int) ([]repository.TopSellingRow, error) {
	type key struct {
		variant  string
		currency string
	}
	acc := map[key]*repository.TopSellingRow{}
	err := r.paid(shopID, from, to, func(d *state, doc entity.Document) {
		for _, it := range d.items[doc.ID] {
			k := key{it.ProductVariantID, doc.Currency}
			row, ok := acc[k]
			if !ok {
				row = &repository.TopSellingRow{ProductVariantID: it.ProductVariantID, Name: it.Name, Currency: doc.Currency}
				acc[k] = row
			}
			row.Quantity = row.Quantity.Add(it.Quantity)
			row.Revenue = row.Revenue.Add(it.TotalPrice)
		}
	})
	out := make([]repository.TopSellingRow, 0, len(acc))
	for _, row := range acc {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Quantity.Cmp(out[j].Quantity); c != 0 {
			return c > 0
		}
		return out[i].ProductVariantID < out[j].ProductVariantID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (r *ReportRepo) SalesBetween(_ context.Context, shopID string, from, to time.Time) ([]repository.PeriodSales, error) {
	acc := map[string]*repository.PeriodSales{}
	err := r.paid(shopID, from, to, func(_ *state, doc entity.Document) {
		row, ok := acc[doc.Currency]
		if !ok {
			row = &repository.PeriodSales{Currency: doc.Currency, Total: decimal.Zero}
			acc[doc.Currency] = row
		}
		row.BillingCount++
		row.Total = row.Total.Add(doc.Total)
	})
	out := make([]repository.PeriodSales, 0, len(acc))
	for _, row := range acc {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, err
}
