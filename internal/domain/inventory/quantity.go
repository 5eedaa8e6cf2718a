package inventory

import (
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/shopspring/decimal"
)

// NextQuantity aplica un delta con signo a la cantidad actual (servicio de dominio).
// Nuevo = Actual + Delta. Un resultado negativo devuelve ErrInsufficientStock.
func NextQuantity(current, delta decimal.Decimal) (decimal.Decimal, error) {
	next := current.Add(delta)
	if next.IsNegative() {
		return current, domain.ErrInsufficientStock
	}
	return next, nil
}
