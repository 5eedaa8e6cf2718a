package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/document"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DocumentUseCase orquesta cotizaciones o facturas (una instancia por tipo).
// Cada mutación corre en una sola transacción: cliente, tienda, consecutivo,
// cabecera y líneas (con descuento de inventario en facturas).
type DocumentUseCase struct {
	kind      entity.DocumentKind
	txRunner  TxRunner
	reads     Repos
	customers *CustomerUseCase
	serials   *SerialGenerator
	items     *LineItemStore
	log       zerolog.Logger
}

// NewDocumentUseCase construye el caso de uso para un tipo de documento.
func NewDocumentUseCase(
	kind entity.DocumentKind,
	txRunner TxRunner,
	reads Repos,
	customers *CustomerUseCase,
	serials *SerialGenerator,
	items *LineItemStore,
	log zerolog.Logger,
) *DocumentUseCase {
	return &DocumentUseCase{
		kind:      kind,
		txRunner:  txRunner,
		reads:     reads,
		customers: customers,
		serials:   serials,
		items:     items,
		log:       log.With().Str("kind", string(kind)).Logger(),
	}
}

// Kind tipo de documento que maneja esta instancia.
func (uc *DocumentUseCase) Kind() entity.DocumentKind { return uc.kind }

// Create crea el documento con sus líneas. Facturas descuentan inventario de StockID.
func (uc *DocumentUseCase) Create(ctx context.Context, userID string, in dto.CreateDocumentRequest) (*dto.DocumentSummary, error) {
	items, err := uc.prepare(in.Items, in.Shipping)
	if err != nil {
		return nil, err
	}
	if in.Shop == "" {
		return nil, fmt.Errorf("%w: shop es obligatorio", domain.ErrValidation)
	}
	if uc.kind.DeductsStock() && in.StockID == "" {
		return nil, fmt.Errorf("%w: stock_id es obligatorio en facturas", domain.ErrValidation)
	}

	now := time.Now()
	var doc *entity.Document
	err = uc.txRunner.RunBilling(ctx, func(r Repos) error {
		shop, err := r.Shops.GetBySlug(ctx, in.Shop)
		if err != nil {
			return err
		}
		if shop == nil {
			return fmt.Errorf("%w: tienda %s", domain.ErrNotFound, in.Shop)
		}
		if in.StockID != "" {
			if err := checkStock(ctx, r.Shops, shop.ID, in.StockID); err != nil {
				return err
			}
		}
		customerID, err := uc.customers.Resolve(ctx, r.Customers, shop.ID, in.CustomerID, in.Customer, now)
		if err != nil {
			return err
		}
		if err := resolveVariants(ctx, r.Variants, items); err != nil {
			return err
		}
		dtype, subtotal, total, err := computeTotals(items, in.DiscountType, in.Discount, in.Shipping, in.Total)
		if err != nil {
			return err
		}
		serial, err := uc.serials.Next(ctx, r.Sequences, uc.kind)
		if err != nil {
			return err
		}

		doc = &entity.Document{
			ID:           uuid.New().String(),
			Kind:         uc.kind,
			ShopID:       shop.ID,
			StockID:      in.StockID,
			CustomerID:   customerID,
			Status:       entity.StatusPending,
			Currency:     shop.Currency,
			DiscountType: dtype,
			Discount:     in.Discount,
			Shipping:     in.Shipping,
			Subtotal:     subtotal,
			Total:        total,
			SerialNumber: serial,
			Notes:        in.Notes,
			CreatedBy:    userID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := r.Documents.Create(ctx, doc); err != nil {
			return err
		}
		for i := range items {
			if err := uc.items.Create(ctx, r, doc, &items[i], uc.kind.DeductsStock(), userID); err != nil {
				return err
			}
		}
		doc.Items = items
		return nil
	})
	if err != nil {
		uc.logStorage(err, "crear documento")
		return nil, err
	}
	uc.log.Info().Str("serial", doc.SerialNumber).Str("total", doc.Total.StringFixed(2)).Msg("documento creado")
	out := toSummary(doc)
	return &out, nil
}

// Update reemplaza cliente, descuento, envío, notas y todas las líneas.
// Solo se editan documentos en PENDING o REVISION.
func (uc *DocumentUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateDocumentRequest) (*dto.DocumentSummary, error) {
	items, err := uc.prepare(in.Items, in.Shipping)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var doc *entity.Document
	err = uc.txRunner.RunBilling(ctx, func(r Repos) error {
		var err error
		doc, err = r.Documents.GetByIDForUpdate(ctx, uc.kind, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, id)
		}
		if !document.Editable(doc.Status) {
			return fmt.Errorf("%w: documento %s en estado %s no es editable", domain.ErrInvalidTransition, doc.SerialNumber, doc.Status)
		}
		if in.Customer != nil || in.CustomerID != "" {
			customerID, err := uc.customers.Resolve(ctx, r.Customers, doc.ShopID, in.CustomerID, in.Customer, now)
			if err != nil {
				return err
			}
			doc.CustomerID = customerID
		}
		if err := resolveVariants(ctx, r.Variants, items); err != nil {
			return err
		}
		dtype, subtotal, total, err := computeTotals(items, in.DiscountType, in.Discount, in.Shipping, in.Total)
		if err != nil {
			return err
		}
		doc.DiscountType = dtype
		doc.Discount = in.Discount
		doc.Shipping = in.Shipping
		doc.Subtotal = subtotal
		doc.Total = total
		doc.Notes = in.Notes
		doc.UpdatedAt = now
		if err := r.Documents.Update(ctx, doc); err != nil {
			return err
		}
		if err := uc.items.ReplaceItems(ctx, r, doc, items, uc.kind.DeductsStock(), userID); err != nil {
			return err
		}
		doc.Items = items
		return nil
	})
	if err != nil {
		uc.logStorage(err, "actualizar documento")
		return nil, err
	}
	out := toSummary(doc)
	return &out, nil
}

// Delete elimina el documento y sus líneas. Una factura no anulada devuelve
// primero sus cantidades al stock.
func (uc *DocumentUseCase) Delete(ctx context.Context, userID, id string) error {
	err := uc.txRunner.RunBilling(ctx, func(r Repos) error {
		doc, err := r.Documents.GetByIDForUpdate(ctx, uc.kind, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, id)
		}
		if uc.kind.DeductsStock() && doc.Status != entity.StatusCanceled {
			items, err := r.Items.ListByDocument(ctx, doc.ID)
			if err != nil {
				return err
			}
			if err := uc.items.Restock(ctx, r, doc, items, entity.MovementReasonRestock, userID); err != nil {
				return err
			}
		}
		n, err := r.Documents.Delete(ctx, uc.kind, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, id)
		}
		return nil
	})
	if err != nil {
		uc.logStorage(err, "eliminar documento")
		return err
	}
	uc.log.Info().Str("id", id).Msg("documento eliminado")
	return nil
}

// Cancel anula el documento. En facturas devuelve todas las líneas al stock.
// Un documento ya anulado devuelve ErrInvalidTransition sin tocar el inventario.
func (uc *DocumentUseCase) Cancel(ctx context.Context, userID, id string) (*dto.DocumentSummary, error) {
	var doc *entity.Document
	err := uc.txRunner.RunBilling(ctx, func(r Repos) error {
		var err error
		doc, err = r.Documents.GetByIDForUpdate(ctx, uc.kind, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, id)
		}
		if err := document.CheckTransition(uc.kind, doc.Status, entity.StatusCanceled); err != nil {
			return err
		}
		items, err := r.Items.ListByDocument(ctx, doc.ID)
		if err != nil {
			return err
		}
		if uc.kind.DeductsStock() {
			if err := uc.items.Restock(ctx, r, doc, items, entity.MovementReasonRestock, userID); err != nil {
				return err
			}
		}
		now := time.Now()
		if err := r.Documents.UpdateStatus(ctx, doc.ID, entity.StatusCanceled, now); err != nil {
			return err
		}
		doc.Status = entity.StatusCanceled
		doc.UpdatedAt = now
		doc.Items = items
		return nil
	})
	if err != nil {
		uc.logStorage(err, "anular documento")
		return nil, err
	}
	uc.log.Info().Str("serial", doc.SerialNumber).Msg("documento anulado")
	out := toSummary(doc)
	return &out, nil
}

// ChangeStatus aplica una transición validada. CANCELED se delega en Cancel.
func (uc *DocumentUseCase) ChangeStatus(ctx context.Context, userID, id, status string) (*dto.DocumentSummary, error) {
	if !document.ValidStatus(uc.kind, status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrValidation, status)
	}
	if status == entity.StatusCanceled {
		return uc.Cancel(ctx, userID, id)
	}
	var doc *entity.Document
	err := uc.txRunner.RunBilling(ctx, func(r Repos) error {
		var err error
		doc, err = r.Documents.GetByIDForUpdate(ctx, uc.kind, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("%w: documento %s", domain.ErrNotFound, id)
		}
		if err := document.CheckTransition(uc.kind, doc.Status, status); err != nil {
			return err
		}
		now := time.Now()
		if err := r.Documents.UpdateStatus(ctx, doc.ID, status, now); err != nil {
			return err
		}
		doc.Status = status
		doc.UpdatedAt = now
		return nil
	})
	if err != nil {
		uc.logStorage(err, "cambiar estado")
		return nil, err
	}
	out := toSummary(doc)
	return &out, nil
}

// GetBySerial devuelve el documento con cliente, persona, dirección y líneas.
func (uc *DocumentUseCase) GetBySerial(ctx context.Context, serial string) (*dto.DocumentResponse, error) {
	doc, customer, err := uc.load(ctx, serial)
	if err != nil {
		return nil, err
	}
	out := toResponse(doc, customer)
	return &out, nil
}

// List lista documentos filtrando por tienda (slug) y estado.
func (uc *DocumentUseCase) List(ctx context.Context, shopSlug, status string, page dto.PageRequest) (*dto.DocumentListResponse, error) {
	page.DefaultPage()
	filter := repository.DocumentFilter{Kind: uc.kind, Status: status, Limit: page.Limit, Offset: page.Offset}
	if status != "" && !document.ValidStatus(uc.kind, status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrValidation, status)
	}
	if shopSlug != "" {
		shop, err := uc.reads.Shops.GetBySlug(ctx, shopSlug)
		if err != nil {
			return nil, err
		}
		if shop == nil {
			return nil, fmt.Errorf("%w: tienda %s", domain.ErrNotFound, shopSlug)
		}
		filter.ShopID = shop.ID
	}
	docs, err := uc.reads.Documents.List(ctx, filter)
	if err != nil {
		uc.logStorage(err, "listar documentos")
		return nil, err
	}
	out := &dto.DocumentListResponse{
		Items: make([]dto.DocumentSummary, 0, len(docs)),
		Page:  dto.NewPageResponse(page, len(docs)),
	}
	for _, d := range docs {
		out.Items = append(out.Items, toSummary(d))
	}
	return out, nil
}

// load lee cabecera, líneas y cliente (si tiene) de un documento por serie.
func (uc *DocumentUseCase) load(ctx context.Context, serial string) (*entity.Document, *entity.Customer, error) {
	return loadDocument(ctx, uc.reads, uc.kind, serial)
}

// prepare convierte y valida las líneas de la petición (sin tocar BD).
func (uc *DocumentUseCase) prepare(in []dto.DocumentItemRequest, shipping decimal.Decimal) ([]entity.LineItem, error) {
	if err := document.ValidateMoney("el envío", shipping); err != nil {
		return nil, err
	}
	items := make([]entity.LineItem, 0, len(in))
	for _, it := range in {
		items = append(items, entity.LineItem{
			ProductVariantID: it.ProductVariantID,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice,
		})
	}
	if err := document.ValidateItems(items); err != nil {
		return nil, err
	}
	return items, nil
}

func loadDocument(ctx context.Context, r Repos, kind entity.DocumentKind, serial string) (*entity.Document, *entity.Customer, error) {
	doc, err := r.Documents.GetBySerial(ctx, kind, serial)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, fmt.Errorf("%w: documento %s", domain.ErrNotFound, serial)
	}
	doc.Items, err = r.Items.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, nil, err
	}
	var customer *entity.Customer
	if doc.CustomerID != "" {
		customer, err = r.Customers.GetByID(ctx, doc.CustomerID)
		if err != nil {
			return nil, nil, err
		}
	}
	return doc, customer, nil
}

func (uc *DocumentUseCase) logStorage(err error, op string) {
	if !domain.IsBusiness(err) {
		uc.log.Error().Err(err).Msg(op)
	}
}

// checkStock valida que la bodega exista y sea de la tienda.
func checkStock(ctx context.Context, shops repository.ShopRepository, shopID, stockID string) error {
	stock, err := shops.GetStock(ctx, stockID)
	if err != nil {
		return err
	}
	if stock == nil || stock.ShopID != shopID {
		return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, stockID)
	}
	return nil
}

// resolveVariants copia el nombre de cada variante en la línea, toma su precio
// cuando la petición trae cero y calcula el total de la línea.
func resolveVariants(ctx context.Context, variants repository.ProductVariantRepository, items []entity.LineItem) error {
	for i := range items {
		v, err := variants.GetByID(ctx, items[i].ProductVariantID)
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("%w: variante %s", domain.ErrNotFound, items[i].ProductVariantID)
		}
		items[i].Name = v.DisplayName()
		if items[i].UnitPrice.IsZero() {
			items[i].UnitPrice = v.Price
		}
		items[i].TotalPrice = document.LineTotal(items[i].Quantity, items[i].UnitPrice)
	}
	return nil
}

// computeTotals valida el descuento y el total enviado y devuelve el tipo normalizado.
func computeTotals(items []entity.LineItem, discountType string, discount, shipping decimal.Decimal, claimed *decimal.Decimal) (string, decimal.Decimal, decimal.Decimal, error) {
	dtype, err := document.NormalizeDiscount(discountType, discount, document.Base(items))
	if err != nil {
		return "", decimal.Zero, decimal.Zero, err
	}
	subtotal, total := document.Totals(items, dtype, discount, shipping)
	if err := document.CheckTotal(claimed, total); err != nil {
		return "", decimal.Zero, decimal.Zero, err
	}
	return dtype, subtotal, total, nil
}

func toSummary(d *entity.Document) dto.DocumentSummary {
	return dto.DocumentSummary{
		ID:           d.ID,
		Kind:         string(d.Kind),
		SerialNumber: d.SerialNumber,
		Status:       d.Status,
		Currency:     d.Currency,
		CustomerID:   d.CustomerID,
		Subtotal:     d.Subtotal,
		Total:        d.Total,
		ItemCount:    len(d.Items),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toResponse(d *entity.Document, c *entity.Customer) dto.DocumentResponse {
	out := dto.DocumentResponse{
		ID:           d.ID,
		Kind:         string(d.Kind),
		SerialNumber: d.SerialNumber,
		ShopID:       d.ShopID,
		StockID:      d.StockID,
		Status:       d.Status,
		Currency:     d.Currency,
		DiscountType: d.DiscountType,
		Discount:     d.Discount,
		Shipping:     d.Shipping,
		Subtotal:     d.Subtotal,
		Total:        d.Total,
		Notes:        d.Notes,
		CustomerID:   d.CustomerID,
		CreatedBy:    d.CreatedBy,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		Items:        make([]dto.DocumentItemResponse, 0, len(d.Items)),
	}
	if c != nil {
		out.CustomerName = c.Person.FullName()
		out.CustomerDocument = c.Person.DocumentNumber
		out.CustomerEmail = c.Person.Email
		out.CustomerPhone = c.Person.Phone
		if c.Address != nil {
			out.CustomerAddress = c.Address.Location
			out.CustomerCity = c.Address.City
		}
	}
	for _, it := range d.Items {
		out.Items = append(out.Items, dto.DocumentItemResponse{
			ID:               it.ID,
			ProductVariantID: it.ProductVariantID,
			Name:             it.Name,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice,
			TotalPrice:       it.TotalPrice,
		})
	}
	return out
}
