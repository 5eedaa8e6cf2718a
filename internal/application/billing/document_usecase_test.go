package billing_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/retail-backoffice/internal/application/billing"
	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	shopSlug = "tienda-centro"
	stockID  = "bodega-1"
	userID   = "user-1"
)

type fixture struct {
	store    *memory.Store
	billings *billing.DocumentUseCase
	quotes   *billing.DocumentUseCase
	ctx      context.Context
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	store.AddShop(entity.Shop{ID: "shop-1", Name: "Tienda Centro", Slug: shopSlug, Currency: entity.CurrencyCOP, CreatedAt: now})
	store.AddStock(entity.Stock{ID: stockID, ShopID: "shop-1", Name: "Principal"})
	store.AddVariant(entity.ProductVariant{ID: "v-camisa", ProductName: "Camisa", Name: "Talla M", Price: d("10000")})
	store.AddVariant(entity.ProductVariant{ID: "v-gorra", ProductName: "Gorra", Price: d("2500")})
	store.AddStockItem(entity.StockItem{ID: "si-1", StockID: stockID, ProductVariantID: "v-camisa", Quantity: d("5"), Currency: entity.CurrencyCOP})
	store.AddStockItem(entity.StockItem{ID: "si-2", StockID: stockID, ProductVariantID: "v-gorra", Quantity: d("10"), Currency: entity.CurrencyCOP})

	log := zerolog.Nop()
	reads := store.Reads()
	customers := billing.NewCustomerUseCase(store, reads, log)
	serials := billing.NewSerialGenerator("COT", "FV")
	items := billing.NewLineItemStore(inventory.NewLedger())
	return &fixture{
		store:    store,
		billings: billing.NewDocumentUseCase(entity.KindBilling, store, reads, customers, serials, items, log),
		quotes:   billing.NewDocumentUseCase(entity.KindQuote, store, reads, customers, serials, items, log),
		ctx:      context.Background(),
	}
}

func (f *fixture) qty(t *testing.T, variantID string) string {
	t.Helper()
	it, err := f.store.Reads().StockItems.Get(f.ctx, variantID, stockID)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Quantity.String()
}

func billingReq(items ...dto.DocumentItemRequest) dto.CreateDocumentRequest {
	return dto.CreateDocumentRequest{Shop: shopSlug, StockID: stockID, Items: items}
}

func quoteReq(items ...dto.DocumentItemRequest) dto.CreateDocumentRequest {
	return dto.CreateDocumentRequest{Shop: shopSlug, Items: items}
}

func line(variantID, qty string) dto.DocumentItemRequest {
	return dto.DocumentItemRequest{ProductVariantID: variantID, Quantity: d(qty)}
}

func TestCreateBilling_DescuentaStockYAsignaSerial(t *testing.T) {
	f := newFixture(t)

	out, err := f.billings.Create(f.ctx, userID, billingReq(line("v-camisa", "2"), line("v-gorra", "3")))
	require.NoError(t, err)
	assert.Equal(t, "FV-000001", out.SerialNumber)
	assert.Equal(t, entity.StatusPending, out.Status)
	assert.Equal(t, entity.CurrencyCOP, out.Currency)
	assert.Equal(t, 2, out.ItemCount)
	assert.True(t, out.Total.Equal(d("27500")), out.Total.String())

	assert.Equal(t, "3", f.qty(t, "v-camisa"))
	assert.Equal(t, "7", f.qty(t, "v-gorra"))

	movs := f.store.Movements()
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementReasonSale, m.Reason)
		assert.Equal(t, out.ID, m.DocumentID)
		assert.True(t, m.Delta.IsNegative())
	}

	second, err := f.billings.Create(f.ctx, userID, billingReq(line("v-gorra", "1")))
	require.NoError(t, err)
	assert.Equal(t, "FV-000002", second.SerialNumber)
}

func TestCreate_SinItems(t *testing.T) {
	f := newFixture(t)

	_, err := f.billings.Create(f.ctx, userID, billingReq())
	assert.ErrorIs(t, err, domain.ErrValidation)

	// el consecutivo no se consumió
	out, err := f.billings.Create(f.ctx, userID, billingReq(line("v-gorra", "1")))
	require.NoError(t, err)
	assert.Equal(t, "FV-000001", out.SerialNumber)
}

func TestCreate_TiendaInexistente(t *testing.T) {
	f := newFixture(t)

	req := billingReq(line("v-camisa", "1"))
	req.Shop = "no-existe"
	_, err := f.billings.Create(f.ctx, userID, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "5", f.qty(t, "v-camisa"))
}

func TestCreateBilling_SinBodega(t *testing.T) {
	f := newFixture(t)

	req := billingReq(line("v-camisa", "1"))
	req.StockID = ""
	_, err := f.billings.Create(f.ctx, userID, req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateBilling_StockInsuficienteHaceRollback(t *testing.T) {
	f := newFixture(t)

	_, err := f.billings.Create(f.ctx, userID, billingReq(line("v-gorra", "4"), line("v-camisa", "6")))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, "10", f.qty(t, "v-gorra"))
	assert.Equal(t, "5", f.qty(t, "v-camisa"))
	assert.Empty(t, f.store.Movements())

	list, err := f.billings.List(f.ctx, "", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestCreate_TotalNoCoincide(t *testing.T) {
	f := newFixture(t)

	req := billingReq(line("v-gorra", "2"))
	wrong := d("1")
	req.Total = &wrong
	_, err := f.billings.Create(f.ctx, userID, req)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "10", f.qty(t, "v-gorra"))

	ok := d("5000")
	req.Total = &ok
	_, err = f.billings.Create(f.ctx, userID, req)
	assert.NoError(t, err)
}

func TestCreate_RechazaDecimalesFueraDeEscala(t *testing.T) {
	f := newFixture(t)

	priced := quoteReq(dto.DocumentItemRequest{ProductVariantID: "v-gorra", Quantity: d("1"), UnitPrice: d("10.005")})
	_, err := f.quotes.Create(f.ctx, userID, priced)
	assert.ErrorIs(t, err, domain.ErrValidation, "precio con 3 decimales")

	_, err = f.quotes.Create(f.ctx, userID, quoteReq(line("v-gorra", "0.00001")))
	assert.ErrorIs(t, err, domain.ErrValidation, "cantidad con 5 decimales")

	shipped := quoteReq(line("v-gorra", "1"))
	shipped.Shipping = d("1.001")
	_, err = f.quotes.Create(f.ctx, userID, shipped)
	assert.ErrorIs(t, err, domain.ErrValidation, "envío con 3 decimales")

	discounted := quoteReq(line("v-gorra", "1"))
	discounted.DiscountType = entity.DiscountFixed
	discounted.Discount = d("0.125")
	_, err = f.quotes.Create(f.ctx, userID, discounted)
	assert.ErrorIs(t, err, domain.ErrValidation, "descuento con 3 decimales")

	// ceros a la derecha no cuentan como decimales
	_, err = f.quotes.Create(f.ctx, userID, quoteReq(
		dto.DocumentItemRequest{ProductVariantID: "v-gorra", Quantity: d("0.0001"), UnitPrice: d("10.500")},
	))
	assert.NoError(t, err)
}

func TestCreate_SubtotalCuadraConLineasRedondeadas(t *testing.T) {
	f := newFixture(t)
	half := dto.DocumentItemRequest{ProductVariantID: "v-gorra", Quantity: d("0.5"), UnitPrice: d("10.01")}

	out, err := f.quotes.Create(f.ctx, userID, quoteReq(half, half))
	require.NoError(t, err)
	assert.True(t, out.Subtotal.Equal(d("10.02")), out.Subtotal.String())
	assert.True(t, out.Total.Equal(d("10.02")), out.Total.String())

	doc, err := f.quotes.GetBySerial(f.ctx, out.SerialNumber)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, it := range doc.Items {
		assert.True(t, it.TotalPrice.Equal(d("5.01")), it.TotalPrice.String())
		sum = sum.Add(it.TotalPrice)
	}
	assert.True(t, sum.Equal(doc.Subtotal), "suma de líneas %s vs subtotal %s", sum, doc.Subtotal)
}

func TestCreate_DescuentoYEnvio(t *testing.T) {
	f := newFixture(t)

	req := billingReq(line("v-camisa", "2"))
	req.DiscountType = entity.DiscountPercentage
	req.Discount = d("10")
	req.Shipping = d("5000")
	out, err := f.billings.Create(f.ctx, userID, req)
	require.NoError(t, err)
	assert.True(t, out.Subtotal.Equal(d("20000")))
	assert.True(t, out.Total.Equal(d("23000")), out.Total.String())

	req.DiscountType = entity.DiscountFixed
	req.Discount = d("50000")
	_, err = f.billings.Create(f.ctx, userID, req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_TipoDescuentoConCeroSeNormaliza(t *testing.T) {
	f := newFixture(t)

	req := dto.CreateDocumentRequest{Shop: shopSlug, Items: []dto.DocumentItemRequest{line("v-gorra", "1")}, DiscountType: entity.DiscountFixed}
	out, err := f.quotes.Create(f.ctx, userID, req)
	require.NoError(t, err)

	doc, err := f.quotes.GetBySerial(f.ctx, out.SerialNumber)
	require.NoError(t, err)
	assert.Equal(t, "", doc.DiscountType)
}

func TestCreateQuote_NoDescuentaStock(t *testing.T) {
	f := newFixture(t)

	out, err := f.quotes.Create(f.ctx, userID, dto.CreateDocumentRequest{
		Shop:  shopSlug,
		Items: []dto.DocumentItemRequest{line("v-camisa", "50")},
	})
	require.NoError(t, err)
	assert.Equal(t, "COT-000001", out.SerialNumber)
	assert.Equal(t, "5", f.qty(t, "v-camisa"))
	assert.Empty(t, f.store.Movements())
}

func TestCreate_PrecioDeLaVarianteYNombre(t *testing.T) {
	f := newFixture(t)

	req := billingReq(line("v-camisa", "1"), dto.DocumentItemRequest{ProductVariantID: "v-gorra", Quantity: d("1"), UnitPrice: d("3000")})
	out, err := f.billings.Create(f.ctx, userID, req)
	require.NoError(t, err)

	doc, err := f.billings.GetBySerial(f.ctx, out.SerialNumber)
	require.NoError(t, err)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Camisa - Talla M", doc.Items[0].Name)
	assert.True(t, doc.Items[0].UnitPrice.Equal(d("10000")))
	assert.Equal(t, "Gorra", doc.Items[1].Name)
	assert.True(t, doc.Items[1].UnitPrice.Equal(d("3000")))
}

func TestCancelBilling_RestauraStockUnaSolaVez(t *testing.T) {
	f := newFixture(t)

	out, err := f.billings.Create(f.ctx, userID, billingReq(line("v-camisa", "2")))
	require.NoError(t, err)
	assert.Equal(t, "3", f.qty(t, "v-camisa"))

	canceled, err := f.billings.Cancel(f.ctx, userID, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCanceled, canceled.Status)
	assert.Equal(t, "5", f.qty(t, "v-camisa"))

	_, err = f.billings.Cancel(f.ctx, userID, out.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "5", f.qty(t, "v-camisa"))
}

func TestCancelBilling_DesdePagada(t *testing.T) {
	f := newFixture(t)

	out, err := f.billings.Create(f.ctx, userID, billingReq(line("v-gorra", "4")))
	require.NoError(t, err)
	_, err = f.billings.ChangeStatus(f.ctx, userID, out.ID, entity.StatusPaid)
	require.NoError(t, err)

	_, err = f.billings.ChangeStatus(f.ctx, userID, out.ID, entity.StatusCanceled)
	require.NoError(t, err)
	assert.Equal(t, "10", f.qty(t, "v-gorra"))
}

func TestCancel_Inexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.billings.Cancel(f.ctx, userID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateBilling_ReemplazaLineasYStock(t *testing.T) {
	f := newFixture(t)

	out, err := f.billings.Create(f.ctx, userID, billingReq(line("v-camisa", "2"), line("v-gorra", "1")))
	require.NoError(t, err)

	upd, err := f.billings.Update(f.ctx, userID, out.ID, dto.UpdateDocumentRequest{
		Items: []dto.DocumentItemRequest{line("v-camisa", "4")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, upd.ItemCount)
	assert.True(t, upd.Total.Equal(d("40000")))

	assert.Equal(t, "1", f.qty(t, "v-camisa"))
	assert.Equal(t, "10", f.qty(t, "v-gorra"))

	doc, err := f.billings.GetBySerial(f.ctx, out.SerialNumber)
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "v-camisa", doc.Items[0].ProductVariantID)
}

func TestUpdateBilling_StockInsuficienteNoCambiaNada(t *testing.T) {
	f := newFixture(t)

	out, err := f.billings.Create(f.ctx, userID, billingReq(line("v-camisa", "2")))
	require.NoError(t, err)

	_, err = f.billings.Update(f.ctx, userID, out.ID, dto.UpdateDocumentRequest{
		Items: []dto.DocumentItemRequest{line("v-camisa", "8")},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "3", f.qty(t, "v-camisa"))

	doc, err := f.billings.GetBySerial(f.ctx, out.SerialNumber)
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	assert.True(t, doc.Items[0].Quantity.Equal(d("2")))
}

func TestUpdate_Errores(t *testing.T) {
	f := newFixture(t)

	_, err := f.billings.Update(f.ctx, userID, "no-existe", dto.UpdateDocumentRequest{Items: []dto.DocumentItemRequest{line("v-camisa", "1")}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := f.billings.Create(f.ctx, userID, billingReq(line("v-camisa", "1")))
	require.NoError(t, err)

	_, err = f.billings.Update(f.ctx, userID, out.ID, dto.UpdateDocumentRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.billings.Cancel(f.ctx, userID, out.ID)
	require.NoError(t, err)
	_, err = f.billings.Update(f.ctx, userID, out.ID, dto.UpdateDocumentRequest{Items: []dto.DocumentItemRequest{line("v-camisa", "1")}})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeleteBilling_RestauraStock(t *testing.T) {
	f := newFixture(t)

	out, err := f.billings.Create(f.ctx, userID, billingReq(line("v-gorra", "6")))
	require.NoError(t, err)
	assert.Equal(t, "4", f.qty(t, "v-gorra"))

	require.NoError(t, f.billings.Delete(f.ctx, userID, out.ID))
	assert.Equal(t, "10", f.qty(t, "v-gorra"))

	_, err = f.billings.GetBySerial(f.ctx, out.SerialNumber)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, f.billings.Delete(f.ctx, userID, out.ID), domain.ErrNotFound)
}

func TestDeleteBilling_AnuladaNoDevuelveDosVeces(t *testing.T) {
	f := newFixture(t)

	out, err := f.billings.Create(f.ctx, userID, billingReq(line("v-gorra", "6")))
	require.NoError(t, err)
	_, err = f.billings.Cancel(f.ctx, userID, out.ID)
	require.NoError(t, err)

	require.NoError(t, f.billings.Delete(f.ctx, userID, out.ID))
	assert.Equal(t, "10", f.qty(t, "v-gorra"))
}

func TestCreateBilling_UltimaUnidadConcurrente(t *testing.T) {
	f := newFixture(t)
	f.store.AddStockItem(entity.StockItem{ID: "si-1", StockID: stockID, ProductVariantID: "v-camisa", Quantity: d("1")})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.billings.Create(f.ctx, userID, billingReq(line("v-camisa", "1")))
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, "0", f.qty(t, "v-camisa"))
}

func TestCreate_ResolucionDeCliente(t *testing.T) {
	f := newFixture(t)

	req := billingReq(line("v-gorra", "1"))
	req.Customer = &dto.CustomerPayload{
		FirstName:      "Ana",
		LastName:       "Gómez",
		DocumentType:   "CC",
		DocumentNumber: "1020304050",
		Email:          "ana@correo.co",
		Address:        &dto.AddressPayload{Location: "Calle 10 # 5-20", City: "Medellín"},
	}
	out, err := f.billings.Create(f.ctx, userID, req)
	require.NoError(t, err)
	require.NotEmpty(t, out.CustomerID)

	doc, err := f.billings.GetBySerial(f.ctx, out.SerialNumber)
	require.NoError(t, err)
	assert.Equal(t, "Ana Gómez", doc.CustomerName)
	assert.Equal(t, "1020304050", doc.CustomerDocument)
	assert.Equal(t, "Medellín", doc.CustomerCity)

	// cliente existente por id
	req2 := billingReq(line("v-gorra", "1"))
	req2.CustomerID = out.CustomerID
	out2, err := f.billings.Create(f.ctx, userID, req2)
	require.NoError(t, err)
	assert.Equal(t, out.CustomerID, out2.CustomerID)

	// id desconocido
	req3 := billingReq(line("v-gorra", "1"))
	req3.CustomerID = "no-existe"
	_, err = f.billings.Create(f.ctx, userID, req3)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// persona desconocida
	req4 := billingReq(line("v-gorra", "1"))
	req4.Customer = &dto.CustomerPayload{PersonID: "no-existe", FirstName: "X", DocumentNumber: "1"}
	_, err = f.billings.Create(f.ctx, userID, req4)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, "8", f.qty(t, "v-gorra"))
}

func TestCreate_Anonimo(t *testing.T) {
	f := newFixture(t)

	out, err := f.billings.Create(f.ctx, userID, billingReq(line("v-gorra", "1")))
	require.NoError(t, err)
	assert.Empty(t, out.CustomerID)

	doc, err := f.billings.GetBySerial(f.ctx, out.SerialNumber)
	require.NoError(t, err)
	assert.Empty(t, doc.CustomerName)
}

func TestQuote_TransicionesDeEstado(t *testing.T) {
	f := newFixture(t)

	out, err := f.quotes.Create(f.ctx, userID, dto.CreateDocumentRequest{Shop: shopSlug, Items: []dto.DocumentItemRequest{line("v-gorra", "1")}})
	require.NoError(t, err)

	s, err := f.quotes.ChangeStatus(f.ctx, userID, out.ID, entity.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAccepted, s.Status)

	_, err = f.quotes.ChangeStatus(f.ctx, userID, out.ID, entity.StatusRevision)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.quotes.ChangeStatus(f.ctx, userID, out.ID, entity.StatusPaid)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestList_FiltraPorEstado(t *testing.T) {
	f := newFixture(t)

	a, err := f.billings.Create(f.ctx, userID, billingReq(line("v-gorra", "1")))
	require.NoError(t, err)
	_, err = f.billings.Create(f.ctx, userID, billingReq(line("v-gorra", "1")))
	require.NoError(t, err)
	_, err = f.billings.ChangeStatus(f.ctx, userID, a.ID, entity.StatusPaid)
	require.NoError(t, err)

	paid, err := f.billings.List(f.ctx, shopSlug, entity.StatusPaid, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, paid.Items, 1)
	assert.Equal(t, a.SerialNumber, paid.Items[0].SerialNumber)

	_, err = f.billings.List(f.ctx, "no-existe", "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_Paginacion(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 3; i++ {
		_, err := f.billings.Create(f.ctx, userID, billingReq(line("v-gorra", "1")))
		require.NoError(t, err)
	}

	first, err := f.billings.List(f.ctx, shopSlug, "", dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, first.Items, 2)
	assert.Equal(t, dto.PageResponse{Limit: 2, Offset: 0, Count: 2, HasMore: true}, first.Page)

	rest, err := f.billings.List(f.ctx, shopSlug, "", dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, rest.Items, 1)
	assert.False(t, rest.Page.HasMore)

	all, err := f.billings.List(f.ctx, shopSlug, "", dto.PageRequest{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, dto.MaxLimit, all.Page.Limit)
	assert.Len(t, all.Items, 3)
}
