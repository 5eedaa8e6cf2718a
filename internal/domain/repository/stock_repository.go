package repository

import (
	"context"
	"time"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockItemRepository define el puerto para consultar/actualizar stock por variante+bodega.
// Usado dentro de transacciones para garantizar consistencia.
type StockItemRepository interface {
	Get(ctx context.Context, productVariantID, stockID string) (*entity.StockItem, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	// Devuelve (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, productVariantID, stockID string) (*entity.StockItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal, at time.Time) error
	ListByVariant(ctx context.Context, productVariantID string) ([]*entity.StockItem, error)
}

// StockMovementRepository auditoría de deltas aplicados por el ledger.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByDocument(ctx context.Context, documentID string) ([]*entity.StockMovement, error)
}
