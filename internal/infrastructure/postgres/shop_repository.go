package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var (
	_ repository.ShopRepository           = (*ShopRepo)(nil)
	_ repository.ProductVariantRepository = (*ProductVariantRepo)(nil)
)

// ShopRepo lectura de tiendas y bodegas (usable con pool o tx).
type ShopRepo struct {
	q Querier
}

// NewShopRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShopRepository(q Querier) *ShopRepo {
	return &ShopRepo{q: q}
}

const shopColumns = `id, name, slug, currency, created_at, updated_at`

// GetBySlug obtiene una tienda por slug.
func (r *ShopRepo) GetBySlug(ctx context.Context, slug string) (*entity.Shop, error) {
	return r.get(ctx, `SELECT `+shopColumns+` FROM shops WHERE slug = $1`, slug)
}

// GetByID obtiene una tienda por ID.
func (r *ShopRepo) GetByID(ctx context.Context, id string) (*entity.Shop, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.get(ctx, `SELECT `+shopColumns+` FROM shops WHERE id = $1`, id)
}

func (r *ShopRepo) get(ctx context.Context, query string, arg string) (*entity.Shop, error) {
	var s entity.Shop
	err := r.q.QueryRow(ctx, query, arg).Scan(&s.ID, &s.Name, &s.Slug, &s.Currency, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapRead("get shop", err)
	}
	return &s, nil
}

// GetStock obtiene una bodega por ID.
func (r *ShopRepo) GetStock(ctx context.Context, stockID string) (*entity.Stock, error) {
	if !validID(stockID) {
		return nil, nil
	}
	query := `SELECT id, shop_id, name, created_at FROM stocks WHERE id = $1`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, stockID).Scan(&s.ID, &s.ShopID, &s.Name, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapRead("get stock", err)
	}
	return &s, nil
}

// ProductVariantRepo lectura de variantes con el nombre del producto.
type ProductVariantRepo struct {
	q Querier
}

// NewProductVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductVariantRepository(q Querier) *ProductVariantRepo {
	return &ProductVariantRepo{q: q}
}

// GetByID obtiene una variante por ID.
func (r *ProductVariantRepo) GetByID(ctx context.Context, id string) (*entity.ProductVariant, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `
		SELECT v.id, v.product_id, p.name, v.name, v.sku, v.price
		FROM product_variants v
		JOIN products p ON p.id = v.product_id
		WHERE v.id = $1`
	var v entity.ProductVariant
	err := r.q.QueryRow(ctx, query, id).Scan(&v.ID, &v.ProductID, &v.ProductName, &v.Name, &v.SKU, &v.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapRead("get product variant", err)
	}
	return &v, nil
}
