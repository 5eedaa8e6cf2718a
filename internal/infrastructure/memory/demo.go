package memory

import (
	"fmt"
	"time"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SeedDemo carga una tienda, una bodega y un catálogo mínimo para STORAGE=memory.
func SeedDemo(s *Store) {
	now := time.Now()
	s.AddShop(entity.Shop{ID: "shop-demo", Name: "Tienda Demo", Slug: "demo", Currency: entity.CurrencyCOP, CreatedAt: now, UpdatedAt: now})
	s.AddStock(entity.Stock{ID: "stock-demo", ShopID: "shop-demo", Name: "Bodega principal", CreatedAt: now})

	catalog := []struct {
		id, product, variant string
		price, qty           int64
	}{
		{"variant-camisa-m", "Camisa", "Talla M", 45000, 20},
		{"variant-camisa-l", "Camisa", "Talla L", 45000, 15},
		{"variant-gorra", "Gorra", "", 25000, 30},
	}
	for i, c := range catalog {
		s.AddVariant(entity.ProductVariant{
			ID: c.id, ProductID: "product-" + c.product, ProductName: c.product, Name: c.variant,
			SKU: c.id, Price: decimal.NewFromInt(c.price),
		})
		s.AddStockItem(entity.StockItem{
			ID: fmt.Sprintf("stock-item-%d", i+1), StockID: "stock-demo", ProductVariantID: c.id,
			Quantity: decimal.NewFromInt(c.qty), Price: decimal.NewFromInt(c.price),
			Currency: entity.CurrencyCOP, UpdatedAt: now,
		})
	}
}
