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
)

var (
	_ repository.DocumentRepository = (*DocumentRepo)(nil)
	_ repository.LineItemRepository = (*LineItemRepo)(nil)
	_ repository.SequenceRepository = (*SequenceRepo)(nil)
)

// DocumentRepo cabeceras de cotizaciones y facturas (tabla documents, columna kind).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `
	id, kind, shop_id, stock_id, customer_id, status, currency, discount_type, discount,
	shipping, subtotal, total, serial_number, notes, created_by, created_at, updated_at`

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	var kind string
	var stockID, customerID *string
	err := row.Scan(
		&d.ID, &kind, &d.ShopID, &stockID, &customerID, &d.Status, &d.Currency, &d.DiscountType, &d.Discount,
		&d.Shipping, &d.Subtotal, &d.Total, &d.SerialNumber, &d.Notes, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Kind = entity.DocumentKind(kind)
	d.StockID = deref(stockID)
	d.CustomerID = deref(customerID)
	return &d, nil
}

// Create inserta la cabecera. Serie repetida → ErrDuplicate.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		d.ID, string(d.Kind), d.ShopID, nullable(d.StockID), nullable(d.CustomerID), d.Status, d.Currency,
		d.DiscountType, d.Discount, d.Shipping, d.Subtotal, d.Total, d.SerialNumber, d.Notes,
		d.CreatedBy, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert document", err)
	}
	return nil
}

// Update reescribe cliente, descuento, envío, totales y notas.
func (r *DocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	query := `
		UPDATE documents
		SET customer_id = $2, discount_type = $3, discount = $4, shipping = $5,
		    subtotal = $6, total = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		d.ID, nullable(d.CustomerID), d.DiscountType, d.Discount, d.Shipping,
		d.Subtotal, d.Total, d.Notes, d.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("update document", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE documents SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene la cabecera por ID y tipo.
func (r *DocumentRepo) GetByID(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE kind = $1 AND id = $2`, kind, id)
}

// GetByIDForUpdate obtiene la cabecera bloqueándola (SELECT FOR UPDATE).
func (r *DocumentRepo) GetByIDForUpdate(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE kind = $1 AND id = $2 FOR UPDATE`, kind, id)
}

// GetBySerial obtiene la cabecera por número de serie.
func (r *DocumentRepo) GetBySerial(ctx context.Context, kind entity.DocumentKind, serial string) (*entity.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE kind = $1 AND serial_number = $2`, kind, serial)
}

func (r *DocumentRepo) get(ctx context.Context, query string, kind entity.DocumentKind, arg string) (*entity.Document, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, query, string(kind), arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapRead("get document", err)
	}
	return d, nil
}

// List lista cabeceras por tipo con filtros opcionales de tienda y estado.
func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE kind = $1
		  AND ($2 = '' OR shop_id::TEXT = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, string(f.Kind), f.ShopID, f.Status, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Delete elimina la cabecera; las líneas caen por ON DELETE CASCADE.
func (r *DocumentRepo) Delete(ctx context.Context, kind entity.DocumentKind, id string) (int64, error) {
	if !validID(id) {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM documents WHERE kind = $1 AND id = $2`, string(kind), id)
	if err != nil {
		return 0, fmt.Errorf("delete document: %w", err)
	}
	return tag.RowsAffected(), nil
}

// LineItemRepo líneas de documento.
type LineItemRepo struct {
	q Querier
}

// NewLineItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLineItemRepository(q Querier) *LineItemRepo {
	return &LineItemRepo{q: q}
}

// Create inserta una línea al final del documento (position conserva el orden de inserción).
func (r *LineItemRepo) Create(ctx context.Context, it *entity.LineItem) error {
	query := `
		INSERT INTO document_items (id, document_id, product_variant_id, name, quantity, unit_price, total_price, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
		        (SELECT COALESCE(MAX(position), 0) + 1 FROM document_items WHERE document_id = $2))`
	_, err := r.q.Exec(ctx, query, it.ID, it.DocumentID, it.ProductVariantID, it.Name, it.Quantity, it.UnitPrice, it.TotalPrice)
	if err != nil {
		return wrapWrite("insert document item", err)
	}
	return nil
}

// ListByDocument líneas en orden de inserción.
func (r *LineItemRepo) ListByDocument(ctx context.Context, documentID string) ([]entity.LineItem, error) {
	query := `
		SELECT id, document_id, product_variant_id, name, quantity, unit_price, total_price
		FROM document_items WHERE document_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()
	var list []entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ID, &it.DocumentID, &it.ProductVariantID, &it.Name, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan document item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// DeleteByDocument borra todas las líneas del documento.
func (r *LineItemRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM document_items WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("delete document items: %w", err)
	}
	return nil
}

// SequenceRepo consecutivos por tipo de documento.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Usar con tx para que un rollback libere el número.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa el consecutivo; el UPSERT toma el bloqueo de fila hasta el fin de la tx.
func (r *SequenceRepo) Next(ctx context.Context, kind entity.DocumentKind) (int64, error) {
	query := `
		INSERT INTO document_sequences (kind, last_value) VALUES ($1, 1)
		ON CONFLICT (kind) DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`
	var n int64
	if err := r.q.QueryRow(ctx, query, string(kind)).Scan(&n); err != nil {
		return 0, fmt.Errorf("next document sequence: %w", err)
	}
	return n, nil
}
