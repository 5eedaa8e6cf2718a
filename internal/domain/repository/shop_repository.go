package repository

import (
	"context"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// ShopRepository lectura de tiendas y bodegas (colaborador externo al núcleo).
// Los Get* devuelven (nil, nil) si no existe.
type ShopRepository interface {
	GetBySlug(ctx context.Context, slug string) (*entity.Shop, error)
	GetByID(ctx context.Context, id string) (*entity.Shop, error)
	GetStock(ctx context.Context, stockID string) (*entity.Stock, error)
}

// ProductVariantRepository referencia de solo lectura a variantes de producto.
type ProductVariantRepository interface {
	GetByID(ctx context.Context, id string) (*entity.ProductVariant, error)
}
