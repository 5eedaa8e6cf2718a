package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/document"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/rs/zerolog"
)

// AdjustmentUseCase ajustes manuales de stock y consulta por variante.
type AdjustmentUseCase struct {
	txRunner   TxRunner
	ledger     *Ledger
	stockItems repository.StockItemRepository
	log        zerolog.Logger
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	ledger *Ledger,
	stockItems repository.StockItemRepository,
	log zerolog.Logger,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:   txRunner,
		ledger:     ledger,
		stockItems: stockItems,
		log:        log,
	}
}

// Adjust aplica un delta manual (ADJUSTMENT) en su propia transacción.
func (uc *AdjustmentUseCase) Adjust(ctx context.Context, userID string, in dto.StockAdjustmentRequest) (*dto.StockItemResponse, error) {
	if in.ProductVariantID == "" || in.StockID == "" {
		return nil, fmt.Errorf("%w: product_variant_id y stock_id son obligatorios", domain.ErrValidation)
	}
	if in.Quantity.IsZero() {
		return nil, fmt.Errorf("%w: quantity no puede ser cero", domain.ErrValidation)
	}
	if !in.Quantity.Equal(in.Quantity.Round(document.QuantityScale)) {
		return nil, fmt.Errorf("%w: quantity admite máximo %d decimales", domain.ErrValidation, document.QuantityScale)
	}

	var updated *entity.StockItem
	err := uc.txRunner.Run(ctx, func(stockItems repository.StockItemRepository, movements repository.StockMovementRepository) error {
		item, err := uc.ledger.ApplyDelta(ctx, stockItems, movements, Delta{
			ProductVariantID: in.ProductVariantID,
			StockID:          in.StockID,
			Quantity:         in.Quantity,
			Reason:           entity.MovementReasonAdjustment,
			UserID:           userID,
			At:               time.Now(),
		})
		if err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		if !domain.IsBusiness(err) {
			uc.log.Error().Err(err).Str("variant_id", in.ProductVariantID).Msg("ajuste de stock")
		}
		return nil, err
	}
	out := toStockItemResponse(updated)
	return &out, nil
}

// ListByVariant devuelve el stock de una variante en todas las bodegas.
func (uc *AdjustmentUseCase) ListByVariant(ctx context.Context, variantID string) ([]dto.StockItemResponse, error) {
	if variantID == "" {
		return nil, fmt.Errorf("%w: variant_id es obligatorio", domain.ErrValidation)
	}
	items, err := uc.stockItems.ListByVariant(ctx, variantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toStockItemResponse(it))
	}
	return out, nil
}

func toStockItemResponse(it *entity.StockItem) dto.StockItemResponse {
	return dto.StockItemResponse{
		ID:               it.ID,
		StockID:          it.StockID,
		ProductVariantID: it.ProductVariantID,
		Quantity:         it.Quantity,
		Price:            it.Price,
		Currency:         it.Currency,
		UpdatedAt:        it.UpdatedAt,
	}
}
