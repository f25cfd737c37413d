package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función de negocio dentro de una transacción,
// entregándole repositorios ligados a esa transacción. Si la función retorna
// error se hace rollback; de lo contrario commit.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) Run(ctx context.Context, fn func(batchRepo repository.InventoryBatchRepository, movementRepo repository.MovementRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	batchRepo := NewInventoryBatchRepository(tx)
	movementRepo := NewMovementRepository(tx)

	if err := fn(batchRepo, movementRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("confirmar transacción: %w", err)
	}
	return nil
}
