package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/document"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

func TestCanTransition_Factura(t *testing.T) {
	assert.True(t, document.CanTransition(entity.KindBilling, entity.StatusPending, entity.StatusPaid))
	assert.True(t, document.CanTransition(entity.KindBilling, entity.StatusPending, entity.StatusCanceled))
	assert.True(t, document.CanTransition(entity.KindBilling, entity.StatusPaid, entity.StatusCanceled))
	assert.False(t, document.CanTransition(entity.KindBilling, entity.StatusCanceled, entity.StatusCanceled))
	assert.False(t, document.CanTransition(entity.KindBilling, entity.StatusCanceled, entity.StatusPending))
	assert.False(t, document.CanTransition(entity.KindBilling, entity.StatusPaid, entity.StatusPending))
	assert.False(t, document.CanTransition(entity.KindBilling, entity.StatusPending, entity.StatusAccepted))
}

func TestCanTransition_Cotizacion(t *testing.T) {
	for _, to := range []string{entity.StatusAccepted, entity.StatusCanceled, entity.StatusRevision, entity.StatusOverdue} {
		assert.True(t, document.CanTransition(entity.KindQuote, entity.StatusPending, to), to)
	}
	assert.False(t, document.CanTransition(entity.KindQuote, entity.StatusAccepted, entity.StatusPending))
	assert.False(t, document.CanTransition(entity.KindQuote, entity.StatusCanceled, entity.StatusAccepted))
	assert.False(t, document.CanTransition(entity.KindQuote, entity.StatusPending, entity.StatusPaid))
}

func TestCheckTransition_Error(t *testing.T) {
	err := document.CheckTransition(entity.KindBilling, entity.StatusCanceled, entity.StatusPaid)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestEditableYValidStatus(t *testing.T) {
	assert.True(t, document.Editable(entity.StatusPending))
	assert.True(t, document.Editable(entity.StatusRevision))
	assert.False(t, document.Editable(entity.StatusPaid))
	assert.True(t, document.ValidStatus(entity.KindBilling, entity.StatusPaid))
	assert.False(t, document.ValidStatus(entity.KindQuote, entity.StatusPaid))
	assert.False(t, document.ValidStatus(entity.KindBilling, "NOPE"))
}
