package document

import (
	"fmt"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

var billingTransitions = map[string][]string{
	entity.StatusPending: {entity.StatusPaid, entity.StatusCanceled},
	// Compensación: una factura pagada puede anularse (devuelve stock).
	entity.StatusPaid: {entity.StatusCanceled},
}

var quoteTransitions = map[string][]string{
	entity.StatusPending:  {entity.StatusAccepted, entity.StatusCanceled, entity.StatusRevision, entity.StatusOverdue},
	entity.StatusRevision: {entity.StatusPending, entity.StatusCanceled},
	entity.StatusOverdue:  {entity.StatusCanceled},
}

// CanTransition indica si el tipo de documento permite pasar de from a to.
func CanTransition(kind entity.DocumentKind, from, to string) bool {
	table := quoteTransitions
	if kind == entity.KindBilling {
		table = billingTransitions
	}
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CheckTransition devuelve ErrInvalidTransition si el cambio no está permitido.
func CheckTransition(kind entity.DocumentKind, from, to string) error {
	if !CanTransition(kind, from, to) {
		return fmt.Errorf("%w: %s de %s a %s", domain.ErrInvalidTransition, kind, from, to)
	}
	return nil
}

// Editable indica si las líneas del documento pueden reemplazarse.
func Editable(status string) bool {
	return status == entity.StatusPending || status == entity.StatusRevision
}

// ValidStatus indica si el estado existe para el tipo de documento.
func ValidStatus(kind entity.DocumentKind, status string) bool {
	switch status {
	case entity.StatusPending, entity.StatusCanceled:
		return true
	case entity.StatusPaid:
		return kind == entity.KindBilling
	case entity.StatusAccepted, entity.StatusRevision, entity.StatusOverdue:
		return kind == entity.KindQuote
	}
	return false
}
