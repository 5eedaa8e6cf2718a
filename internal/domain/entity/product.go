package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductVariant referencia de solo lectura a una variante de producto (talla, color...).
type ProductVariant struct {
	ID          string
	ProductID   string
	ProductName string
	Name        string // nombre de la variante; vacío si el producto no tiene variantes
	SKU         string
	Price       decimal.Decimal
}

// DisplayName nombre que se copia a la línea de documento (snapshot).
func (v *ProductVariant) DisplayName() string {
	name := strings.TrimSpace(v.Name)
	if name == "" {
		return v.ProductName
	}
	return v.ProductName + " - " + name
}
