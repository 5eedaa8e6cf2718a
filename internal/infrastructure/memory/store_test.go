package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/retail-backoffice/internal/application/billing"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBilling_RollbackRestauraTodo(t *testing.T) {
	s := NewStore()
	s.AddStockItem(entity.StockItem{ID: "si", StockID: "b", ProductVariantID: "v", Quantity: decimal.NewFromInt(3)})
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.RunBilling(ctx, func(r billing.Repos) error {
		if _, err := r.Sequences.Next(ctx, entity.KindBilling); err != nil {
			return err
		}
		if err := r.StockItems.UpdateQuantity(ctx, "si", decimal.Zero, time.Now()); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	it, err := s.Reads().StockItems.Get(ctx, "v", "b")
	require.NoError(t, err)
	assert.Equal(t, "3", it.Quantity.String())

	n, err := s.Reads().Sequences.Next(ctx, entity.KindBilling)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDocumentRepo_SerialDuplicado(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	docs := s.Reads().Documents

	require.NoError(t, docs.Create(ctx, &entity.Document{ID: "a", Kind: entity.KindBilling, SerialNumber: "FV-000001"}))
	err := docs.Create(ctx, &entity.Document{ID: "b", Kind: entity.KindBilling, SerialNumber: "FV-000001"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	n, err := docs.Delete(ctx, entity.KindQuote, "a")
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = docs.Delete(ctx, entity.KindBilling, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRun_ContextoCancelado(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.RunBilling(ctx, func(billing.Repos) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
