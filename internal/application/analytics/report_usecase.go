// Package analytics contiene los casos de uso de reportes sobre facturas pagadas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

const (
	summaryTopVariants = 5 // variantes en el resumen
	defaultTopLimit    = 10
	maxTopLimit        = 100
)

// ReportUseCase reportes de ventas (solo facturas en estado PAID).
//
// Fuente de datos: ReportRepository (consultas read-only).
type ReportUseCase struct {
	shops   repository.ShopRepository
	reports repository.ReportRepository
	now     func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(shops repository.ShopRepository, reports repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{shops: shops, reports: reports, now: time.Now}
}

// MonthlySales ventas pagadas por mes y moneda del año indicado (0 = año en curso).
func (uc *ReportUseCase) MonthlySales(ctx context.Context, shopSlug string, year int) (*dto.MonthlySalesReport, error) {
	shopID, err := uc.shopID(ctx, shopSlug)
	if err != nil {
		return nil, err
	}
	if year == 0 {
		year = uc.now().Year()
	}
	if year < 2000 || year > 9999 {
		return nil, fmt.Errorf("%w: año %d", domain.ErrValidation, year)
	}
	rows, err := uc.reports.MonthlySales(ctx, shopID, year)
	if err != nil {
		return nil, fmt.Errorf("reporte mensual: %w", err)
	}
	out := &dto.MonthlySalesReport{Shop: shopSlug, Year: year, Months: make([]dto.MonthlySalesDTO, 0, len(rows))}
	for _, r := range rows {
		out.Months = append(out.Months, dto.MonthlySalesDTO{
			Month:        r.Month,
			Currency:     r.Currency,
			BillingCount: r.BillingCount,
			Subtotal:     r.Subtotal.Round(2),
			Shipping:     r.Shipping.Round(2),
			Total:        r.Total.Round(2),
		})
	}
	return out, nil
}

// TopSelling variantes más vendidas en [from, to]. Sin fechas toma el mes en curso.
func (uc *ReportUseCase) TopSelling(ctx context.Context, shopSlug string, from, to time.Time, limit int) ([]dto.TopSellingDTO, error) {
	shopID, err := uc.shopID(ctx, shopSlug)
	if err != nil {
		return nil, err
	}
	if from.IsZero() && to.IsZero() {
		from, to = monthRange(uc.now())
	}
	if to.IsZero() {
		to = uc.now()
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: rango de fechas inválido", domain.ErrValidation)
	}
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}
	rows, err := uc.reports.TopSelling(ctx, shopID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top vendidos: %w", err)
	}
	return toTopSelling(rows), nil
}

// Summary totales de hoy y del mes en curso más el top 5 del mes.
//
// Tres llamadas en paralelo:
//  1. SalesBetween(hoy)
//  2. SalesBetween(mes)
//  3. TopSelling(mes, top 5)
func (uc *ReportUseCase) Summary(ctx context.Context, shopSlug string) (*dto.SalesSummaryDTO, error) {
	shopID, err := uc.shopID(ctx, shopSlug)
	if err != nil {
		return nil, err
	}
	now := uc.now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart, _ := monthRange(now)

	// ── Goroutines para paralelizar las 3 consultas ───────────────────────────
	type salesResult struct {
		rows []repository.PeriodSales
		err  error
	}
	type topResult struct {
		rows []repository.TopSellingRow
		err  error
	}

	todayCh := make(chan salesResult, 1)
	monthCh := make(chan salesResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		rows, err := uc.reports.SalesBetween(ctx, shopID, todayStart, todayEnd)
		todayCh <- salesResult{rows, err}
	}()
	go func() {
		rows, err := uc.reports.SalesBetween(ctx, shopID, monthStart, todayEnd)
		monthCh <- salesResult{rows, err}
	}()
	go func() {
		rows, err := uc.reports.TopSelling(ctx, shopID, monthStart, todayEnd, summaryTopVariants)
		topCh <- topResult{rows, err}
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh

	if today.err != nil {
		return nil, fmt.Errorf("resumen: ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("resumen: ventas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("resumen: top vendidos: %w", top.err)
	}

	return &dto.SalesSummaryDTO{
		Shop:       shopSlug,
		Today:      toCurrencyTotals(today.rows),
		Month:      toCurrencyTotals(month.rows),
		TopSelling: toTopSelling(top.rows),
		DateLabel:  monthLabel(now),
	}, nil
}

// shopID resuelve el slug; vacío = todas las tiendas.
func (uc *ReportUseCase) shopID(ctx context.Context, slug string) (string, error) {
	if slug == "" {
		return "", nil
	}
	shop, err := uc.shops.GetBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if shop == nil {
		return "", fmt.Errorf("%w: tienda %s", domain.ErrNotFound, slug)
	}
	return shop.ID, nil
}

func monthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

func toCurrencyTotals(rows []repository.PeriodSales) []dto.CurrencyTotalDTO {
	out := make([]dto.CurrencyTotalDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CurrencyTotalDTO{Currency: r.Currency, BillingCount: r.BillingCount, Total: r.Total.Round(2)})
	}
	return out
}

func toTopSelling(rows []repository.TopSellingRow) []dto.TopSellingDTO {
	out := make([]dto.TopSellingDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopSellingDTO{
			ProductVariantID: r.ProductVariantID,
			Name:             r.Name,
			Currency:         r.Currency,
			Quantity:         r.Quantity,
			Revenue:          r.Revenue.Round(2),
		})
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
