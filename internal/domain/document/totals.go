// Package document contiene las reglas puras del agregado Documento
// (cotización o factura): totales, descuentos y máquina de estados.
package document

import (
	"fmt"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Escalas de las columnas NUMERIC: montos (18,2) y cantidades (18,4).
const (
	MoneyScale    int32 = 2
	QuantityScale int32 = 4
)

var hundred = decimal.NewFromInt(100)

// LineTotal = cantidad × precio unitario, redondeado a MoneyScale. La base se
// suma sobre los totales ya redondeados: lo persistido cuadra con el subtotal.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(MoneyScale)
}

// fitsScale indica si d no tiene más de places decimales significativos.
func fitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Round(places))
}

// ValidateMoney rechaza montos negativos o con más decimales de los que guarda la BD.
func ValidateMoney(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrValidation, field)
	}
	if !fitsScale(amount, MoneyScale) {
		return fmt.Errorf("%w: %s admite máximo %d decimales", domain.ErrValidation, field, MoneyScale)
	}
	return nil
}

// Base suma los totales de línea.
func Base(items []entity.LineItem) decimal.Decimal {
	base := decimal.Zero
	for _, it := range items {
		base = base.Add(it.TotalPrice)
	}
	return base
}

// Discounted aplica el descuento sobre la base según su tipo.
//
//	PERCENTAGE: base × (1 − descuento/100)
//	FIXED:      base × (1 − descuento/base), con base 0 ⇒ base
//	sin tipo:   base
func Discounted(base decimal.Decimal, discountType string, discount decimal.Decimal) decimal.Decimal {
	switch discountType {
	case entity.DiscountPercentage:
		return base.Mul(decimal.NewFromInt(1).Sub(discount.Div(hundred)))
	case entity.DiscountFixed:
		if base.IsZero() {
			return base
		}
		// base × (1 − d/base) == base − d, sin perder precisión en la división.
		return base.Sub(discount)
	default:
		return base
	}
}

// Totals devuelve (subtotal, total) de un documento: total = descontado + envío,
// con el descontado redondeado a MoneyScale.
func Totals(items []entity.LineItem, discountType string, discount, shipping decimal.Decimal) (subtotal, total decimal.Decimal) {
	subtotal = Base(items)
	total = Discounted(subtotal, discountType, discount).Round(MoneyScale).Add(shipping)
	return subtotal, total
}

// NormalizeDiscount valida el par (tipo, monto) y devuelve el tipo normalizado.
// Un descuento en cero siempre queda sin tipo.
func NormalizeDiscount(discountType string, discount, base decimal.Decimal) (string, error) {
	if err := ValidateMoney("el descuento", discount); err != nil {
		return "", err
	}
	if discount.IsZero() {
		return "", nil
	}
	switch discountType {
	case entity.DiscountPercentage:
		if discount.GreaterThan(hundred) {
			return "", fmt.Errorf("%w: el descuento porcentual no puede superar 100", domain.ErrValidation)
		}
	case entity.DiscountFixed:
		if discount.GreaterThan(base) {
			return "", fmt.Errorf("%w: el descuento fijo supera el subtotal", domain.ErrValidation)
		}
	case "":
		return "", fmt.Errorf("%w: descuento sin tipo (PERCENTAGE o FIXED)", domain.ErrValidation)
	default:
		return "", fmt.Errorf("%w: tipo de descuento desconocido %q", domain.ErrValidation, discountType)
	}
	return discountType, nil
}

// ValidateItems exige al menos una línea, cantidades positivas y precios no
// negativos, sin más decimales de los que guarda la BD.
func ValidateItems(items []entity.LineItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: el documento debe tener al menos un ítem", domain.ErrValidation)
	}
	for i, it := range items {
		if it.ProductVariantID == "" {
			return fmt.Errorf("%w: ítem %d sin variante de producto", domain.ErrValidation, i+1)
		}
		if !it.Quantity.IsPositive() {
			return fmt.Errorf("%w: ítem %d con cantidad no positiva", domain.ErrValidation, i+1)
		}
		if !fitsScale(it.Quantity, QuantityScale) {
			return fmt.Errorf("%w: ítem %d: la cantidad admite máximo %d decimales", domain.ErrValidation, i+1, QuantityScale)
		}
		if err := ValidateMoney(fmt.Sprintf("ítem %d: el precio", i+1), it.UnitPrice); err != nil {
			return err
		}
	}
	return nil
}

// CheckTotal compara un total enviado por el cliente contra el calculado (2 decimales).
func CheckTotal(claimed *decimal.Decimal, computed decimal.Decimal) error {
	if claimed == nil {
		return nil
	}
	if !claimed.Round(2).Equal(computed.Round(2)) {
		return fmt.Errorf("%w: total %s no coincide con el calculado %s",
			domain.ErrValidation, claimed.StringFixed(2), computed.StringFixed(2))
	}
	return nil
}
