package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/retail-backoffice/internal/application/billing"
	"github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ billing.TxRunner   = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ejecuta fn con los repos del ledger atados a la tx (ajustes manuales).
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockItems repository.StockItemRepository,
	movements repository.StockMovementRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewStockItemRepository(tx), NewStockMovementRepository(tx))
	})
}

// RunBilling ejecuta fn con todos los repos de documentos atados a la misma tx.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(r billing.Repos) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewRepos(tx))
	})
}

// NewRepos arma el conjunto de repos sobre un Querier (pool para lecturas, tx dentro de RunBilling).
func NewRepos(q Querier) billing.Repos {
	return billing.Repos{
		Customers:  NewCustomerRepository(q),
		Shops:      NewShopRepository(q),
		Variants:   NewProductVariantRepository(q),
		StockItems: NewStockItemRepository(q),
		Movements:  NewStockMovementRepository(q),
		Sequences:  NewSequenceRepository(q),
		Documents:  NewDocumentRepository(q),
		Items:      NewLineItemRepository(q),
	}
}

// inTx inicia la transacción, ejecuta fn y hace Commit; cualquier error deja el Rollback diferido.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
