package inventory

import (
	"context"

	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para los ajustes manuales de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockItems repository.StockItemRepository,
		movements repository.StockMovementRepository,
	) error) error
}
