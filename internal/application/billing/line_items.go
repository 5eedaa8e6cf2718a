package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// LineItemStore persiste líneas de documento y mantiene el ledger consistente.
// Todas las operaciones usan los repos de la transacción del caller.
type LineItemStore struct {
	ledger *inventory.Ledger
}

// NewLineItemStore construye el store.
func NewLineItemStore(ledger *inventory.Ledger) *LineItemStore {
	return &LineItemStore{ledger: ledger}
}

// Create inserta una línea y, si deduct, descuenta su cantidad (SALE).
func (s *LineItemStore) Create(ctx context.Context, r Repos, doc *entity.Document, item *entity.LineItem, deduct bool, userID string) error {
	return s.create(ctx, r, doc, item, deduct, entity.MovementReasonSale, userID)
}

// ReplaceItems borra todas las líneas del documento y reinserta las recibidas.
// Si deduct, primero devuelve al stock las cantidades anteriores (EDIT).
func (s *LineItemStore) ReplaceItems(ctx context.Context, r Repos, doc *entity.Document, items []entity.LineItem, deduct bool, userID string) error {
	if deduct {
		previous, err := r.Items.ListByDocument(ctx, doc.ID)
		if err != nil {
			return err
		}
		if err := s.Restock(ctx, r, doc, previous, entity.MovementReasonEdit, userID); err != nil {
			return err
		}
	}
	if err := r.Items.DeleteByDocument(ctx, doc.ID); err != nil {
		return err
	}
	for i := range items {
		if err := s.create(ctx, r, doc, &items[i], deduct, entity.MovementReasonEdit, userID); err != nil {
			return err
		}
	}
	return nil
}

// Restock suma al stock las cantidades de las líneas (anulación, eliminación o edición).
func (s *LineItemStore) Restock(ctx context.Context, r Repos, doc *entity.Document, items []entity.LineItem, reason, userID string) error {
	now := time.Now()
	for _, it := range items {
		if _, err := s.ledger.ApplyDelta(ctx, r.StockItems, r.Movements, inventory.Delta{
			ProductVariantID: it.ProductVariantID,
			StockID:          doc.StockID,
			Quantity:         it.Quantity,
			Reason:           reason,
			DocumentID:       doc.ID,
			UserID:           userID,
			At:               now,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *LineItemStore) create(ctx context.Context, r Repos, doc *entity.Document, item *entity.LineItem, deduct bool, reason, userID string) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.DocumentID = doc.ID
	if err := r.Items.Create(ctx, item); err != nil {
		return err
	}
	if !deduct {
		return nil
	}
	_, err := s.ledger.ApplyDelta(ctx, r.StockItems, r.Movements, inventory.Delta{
		ProductVariantID: item.ProductVariantID,
		StockID:          doc.StockID,
		Quantity:         item.Quantity.Neg(),
		Reason:           reason,
		DocumentID:       doc.ID,
		UserID:           userID,
		At:               time.Now(),
	})
	return err
}
