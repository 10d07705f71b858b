package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Trastienda-api/internal/application/batch"
	"github.com/jhoicas/Trastienda-api/internal/application/classification"
	"github.com/jhoicas/Trastienda-api/internal/domain"
	"github.com/jhoicas/Trastienda-api/internal/domain/repository"
)

// Ensure TxRunner implements classification.TxRunner and batch.TxRunner.
var _ classification.TxRunner = (*TxRunner)(nil)
var _ batch.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Es el único
// mecanismo de exclusión mutua del core: el proceso no guarda locks propios.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos de caja y
// clasificaciones atados a la tx y hace Commit o Rollback. Un fallo de
// aislamiento se traduce a ErrAtomicityViolation para que el caller reintente
// la operación completa.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.CashMovementRepository,
	classRepo repository.ClassificationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewCashMovementRepository(tx)
	classRepo := NewClassificationRepository(tx)

	if err := fn(movRepo, classRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrAtomicityViolation, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock inicia una transacción con el repo de movimientos de stock (para
// el commit del lote de reposición).
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrAtomicityViolation, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
