package billing_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/retail-backoffice/internal/application/billing"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePDF struct {
	got billing.PDFData
	err error
}

func (g *fakePDF) Generate(data billing.PDFData) ([]byte, error) {
	g.got = data
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.4"), nil
}

func TestPDFUseCase_Render(t *testing.T) {
	f := newFixture(t)
	out, err := f.billings.Create(f.ctx, userID, billingReq(line("v-camisa", "1"), line("v-gorra", "2")))
	require.NoError(t, err)

	gen := &fakePDF{}
	uc := billing.NewPDFUseCase(f.store.Reads(), gen)
	pdf, filename, err := uc.Render(f.ctx, entity.KindBilling, out.SerialNumber)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(pdf))
	assert.Equal(t, "billing_FV-000001.pdf", filename)

	assert.Equal(t, "Factura", gen.got.Title)
	assert.Equal(t, "Tienda Centro", gen.got.ShopName)
	assert.Equal(t, "Consumidor final", gen.got.CustomerName)
	require.Len(t, gen.got.Lines, 2)
	assert.True(t, gen.got.Total.Equal(d("15000")))
}

func TestPDFUseCase_Errores(t *testing.T) {
	f := newFixture(t)
	gen := &fakePDF{err: errors.New("maroto")}
	uc := billing.NewPDFUseCase(f.store.Reads(), gen)

	_, _, err := uc.Render(f.ctx, entity.KindQuote, "COT-999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := f.quotes.Create(f.ctx, userID, quoteReq(line("v-gorra", "1")))
	require.NoError(t, err)
	_, _, err = uc.Render(f.ctx, entity.KindQuote, out.SerialNumber)
	assert.Error(t, err)
}
