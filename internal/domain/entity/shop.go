package entity

import "time"

// Monedas soportadas por las tiendas.
const (
	CurrencyCOP = "COP"
	CurrencyUSD = "USD"
)

// Shop representa una tienda (punto de venta). Se resuelve por Slug en los flujos de facturación.
type Shop struct {
	ID        string
	Name      string
	Slug      string
	Currency  string // COP | USD
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stock representa una ubicación física de inventario (bodega) de una tienda.
type Stock struct {
	ID        string
	ShopID    string
	Name      string
	CreatedAt time.Time
}
