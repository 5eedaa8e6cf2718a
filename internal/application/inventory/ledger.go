package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Delta cambio con signo sobre el stock de una variante en una bodega.
type Delta struct {
	ProductVariantID string
	StockID          string
	Quantity         decimal.Decimal // negativo = salida
	Reason           string
	DocumentID       string
	UserID           string
	At               time.Time
}

// Ledger aplica deltas de inventario. No abre ni cierra transacciones: los
// repositorios recibidos deben estar atados a la transacción del caller.
type Ledger struct{}

// NewLedger construye el ledger.
func NewLedger() *Ledger { return &Ledger{} }

// ApplyDelta bloquea la fila de stock (SELECT FOR UPDATE), valida que no quede
// negativa, actualiza la cantidad y registra el movimiento.
func (l *Ledger) ApplyDelta(
	ctx context.Context,
	stockItems repository.StockItemRepository,
	movements repository.StockMovementRepository,
	d Delta,
) (*entity.StockItem, error) {
	if d.ProductVariantID == "" || d.StockID == "" {
		return nil, fmt.Errorf("%w: variante y bodega son obligatorias", domain.ErrValidation)
	}
	item, err := stockItems.GetForUpdate(ctx, d.ProductVariantID, d.StockID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: no hay stock de la variante %s en la bodega %s", domain.ErrNotFound, d.ProductVariantID, d.StockID)
	}
	next, err := inventory.NextQuantity(item.Quantity, d.Quantity)
	if err != nil {
		return nil, fmt.Errorf("%w: variante %s disponible %s, requerido %s",
			err, d.ProductVariantID, item.Quantity.String(), d.Quantity.Neg().String())
	}
	at := d.At
	if at.IsZero() {
		at = time.Now()
	}
	if err := stockItems.UpdateQuantity(ctx, item.ID, next, at); err != nil {
		return nil, err
	}
	item.Quantity = next
	item.UpdatedAt = at

	mov := &entity.StockMovement{
		ID:               uuid.New().String(),
		StockItemID:      item.ID,
		StockID:          d.StockID,
		ProductVariantID: d.ProductVariantID,
		Delta:            d.Quantity,
		Reason:           d.Reason,
		DocumentID:       d.DocumentID,
		CreatedBy:        d.UserID,
		CreatedAt:        at,
	}
	if err := movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return item, nil
}
