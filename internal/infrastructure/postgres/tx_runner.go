package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stok-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// maxTxAttempts intentos ante deadlock o fallo de serialización.
const maxTxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewTxRunner construye el runner con el pool. timeout <= 0 = sin límite propio (solo el del ctx).
func NewTxRunner(pool *pgxpool.Pool, timeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, timeout: timeout}
}

// Run abre una transacción READ COMMITTED; la consistencia la dan los SELECT ... FOR UPDATE de los repos.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// RunReadOnly abre una transacción REPEATABLE READ de solo lectura: todas las consultas ven el mismo snapshot.
func (r *TxRunner) RunReadOnly(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (r *TxRunner) run(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = r.once(ctx, opts, fn)
		if err == nil || !isSerializationFailure(err) || ctx.Err() != nil {
			return err
		}
	}
	return err
}

func (r *TxRunner) once(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, ReposFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ReposFor arma los repositorios del motor de stock sobre un Querier (pool o tx).
func ReposFor(q Querier) inventory.TxRepos {
	return inventory.TxRepos{
		Movements: NewMovementRepository(q),
		Balances:  NewBalanceRepository(q),
		Catalog:   NewCatalogRepository(q),
		Locations: NewLocationRepository(q),
		Opname:    NewOpnameRepository(q),
	}
}
