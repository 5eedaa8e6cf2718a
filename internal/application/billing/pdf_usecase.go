package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// PDFUseCase genera la representación impresa (PDF) de una cotización o factura.
type PDFUseCase struct {
	reads     Repos
	generator DocumentPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(reads Repos, generator DocumentPDFGenerator) *PDFUseCase {
	return &PDFUseCase{reads: reads, generator: generator}
}

// Render recupera el documento por serie y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el documento no existe.
func (uc *PDFUseCase) Render(ctx context.Context, kind entity.DocumentKind, serial string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar documento, líneas y cliente ─────────────────────────────────
	doc, customer, err := loadDocument(ctx, uc.reads, kind, serial)
	if err != nil {
		return nil, "", err
	}

	// ── 2. Cargar tienda ──────────────────────────────────────────────────────
	shopName := ""
	if shop, sErr := uc.reads.Shops.GetByID(ctx, doc.ShopID); sErr == nil && shop != nil {
		shopName = shop.Name
	}

	// ── 3. Armar datos ────────────────────────────────────────────────────────
	data := PDFData{
		Title:        "Cotización",
		SerialNumber: doc.SerialNumber,
		Status:       doc.Status,
		Date:         doc.CreatedAt,
		ShopName:     shopName,
		Currency:     doc.Currency,
		CustomerName: "Consumidor final",
		Notes:        doc.Notes,
		Subtotal:     doc.Subtotal,
		DiscountType: doc.DiscountType,
		Discount:     doc.Discount,
		Shipping:     doc.Shipping,
		Total:        doc.Total,
	}
	if kind == entity.KindBilling {
		data.Title = "Factura"
	}
	if customer != nil {
		data.CustomerName = customer.Person.FullName()
		data.CustomerDoc = strings.TrimSpace(customer.Person.DocumentType + " " + customer.Person.DocumentNumber)
		if customer.Address != nil {
			data.CustomerAddr = strings.TrimSpace(customer.Address.Location + ", " + customer.Address.City)
		}
	}
	for _, it := range doc.Items {
		data.Lines = append(data.Lines, PDFLine{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.TotalPrice,
		})
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.Generate(data)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("%s_%s.pdf", strings.ToLower(string(kind)), doc.SerialNumber)
	return pdfBytes, filename, nil
}
