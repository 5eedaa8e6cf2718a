package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.StockItemRepository     = (*StockItemRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, stock_id, product_variant_id, quantity, price, currency, updated_at`

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	if err := row.Scan(&s.ID, &s.StockID, &s.ProductVariantID, &s.Quantity, &s.Price, &s.Currency, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Get obtiene el stock actual de una variante en una bodega.
func (r *StockItemRepo) Get(ctx context.Context, productVariantID, stockID string) (*entity.StockItem, error) {
	if !validID(productVariantID) || !validID(stockID) {
		return nil, nil
	}
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE product_variant_id = $1 AND stock_id = $2`
	s, err := scanStockItem(r.q.QueryRow(ctx, query, productVariantID, stockID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapRead("get stock item", err)
	}
	return s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockItemRepo) GetForUpdate(ctx context.Context, productVariantID, stockID string) (*entity.StockItem, error) {
	if !validID(productVariantID) || !validID(stockID) {
		return nil, nil
	}
	query := `SELECT ` + stockItemColumns + ` FROM stock_items
		WHERE product_variant_id = $1 AND stock_id = $2
		FOR UPDATE`
	s, err := scanStockItem(r.q.QueryRow(ctx, query, productVariantID, stockID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapRead("get stock item for update", err)
	}
	return s, nil
}

// UpdateQuantity reescribe la cantidad de la fila.
func (r *StockItemRepo) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE stock_items SET quantity = $2, updated_at = $3 WHERE id = $1`, id, quantity, at)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByVariant stock de la variante en todas las bodegas.
func (r *StockItemRepo) ListByVariant(ctx context.Context, productVariantID string) ([]*entity.StockItem, error) {
	if !validID(productVariantID) {
		return nil, nil
	}
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE product_variant_id = $1 ORDER BY stock_id`
	rows, err := r.q.Query(ctx, query, productVariantID)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		s, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// StockMovementRepo auditoría de movimientos del ledger.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, stock_item_id, stock_id, product_variant_id, delta, reason, document_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.StockItemID, m.StockID, m.ProductVariantID, m.Delta, m.Reason,
		nullable(m.DocumentID), m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return wrapWrite("insert stock movement", err)
	}
	return nil
}

// ListByDocument movimientos generados por un documento.
func (r *StockMovementRepo) ListByDocument(ctx context.Context, documentID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, stock_item_id, stock_id, product_variant_id, delta, reason, document_id, created_by, created_at
		FROM stock_movements WHERE document_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var docID *string
		if err := rows.Scan(&m.ID, &m.StockItemID, &m.StockID, &m.ProductVariantID, &m.Delta, &m.Reason, &docID, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.DocumentID = deref(docID)
		list = append(list, &m)
	}
	return list, rows.Err()
}
