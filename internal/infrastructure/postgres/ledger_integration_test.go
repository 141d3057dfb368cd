package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stok-api/internal/application/inventory"
	"github.com/jhoicas/stok-api/internal/domain"
	"github.com/jhoicas/stok-api/internal/domain/entity"
	"github.com/jhoicas/stok-api/internal/domain/repository"
	"github.com/jhoicas/stok-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stok-api/pkg/config"
)

// pgEnv motor de stock completo sobre una base PostgreSQL real.
type pgEnv struct {
	pool     *pgxpool.Pool
	runner   *postgres.TxRunner
	resolver *inventory.VariantResolver
	ledger   *inventory.LedgerUseCase
	balances *inventory.BalanceUseCase
	opname   *inventory.OpnameUseCase
	gudang   int64
	toko     int64
}

// setupTestDB usa TEST_DATABASE_URL (nunca la base de la app), aplica migraciones y deja las tablas vacías.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL no definido: se omite el test de integración")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dbURL, MaxConns: 30})
	require.NoError(t, err, "conectar a la base de test")
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool, zerolog.Nop()))
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE opname_items, opname_sessions, stock_movements, stock_balances,
			variants, product_colors, sizes, colors, products, locations
		RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "limpiar la base de test")
	return pool
}

func newPgEnv(t *testing.T, cfg inventory.LedgerConfig) *pgEnv {
	t.Helper()
	pool := setupTestDB(t)
	log := zerolog.Nop()
	env := &pgEnv{pool: pool, runner: postgres.NewTxRunner(pool, 0)}
	env.resolver = inventory.NewVariantResolver(env.runner, log)
	env.ledger = inventory.NewLedgerUseCase(env.runner, env.resolver, cfg, log)
	env.balances = inventory.NewBalanceUseCase(env.runner, log)
	env.opname = inventory.NewOpnameUseCase(env.runner, env.ledger, log)

	ctx := context.Background()
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO locations (name, is_default) VALUES ('Gudang', true) RETURNING id`).Scan(&env.gudang))
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO locations (name, is_default) VALUES ('Toko', false) RETURNING id`).Scan(&env.toko))
	return env
}

func (e *pgEnv) variant(t *testing.T, product, color, size string) int64 {
	t.Helper()
	res, err := e.resolver.ResolveByNames(context.Background(), product, color, size)
	require.NoError(t, err)
	return res.VariantID
}

func (e *pgEnv) move(ctx context.Context, variantID, locationID int64, dir entity.Direction, reason entity.ReasonCode, qty int64) (*entity.Movement, error) {
	return e.ledger.CreateMovement(ctx, inventory.MovementInput{
		VariantID:  variantID,
		LocationID: locationID,
		Direction:  dir,
		ReasonCode: reason,
		Quantity:   qty,
	})
}

func (e *pgEnv) in(t *testing.T, variantID, locationID, qty int64) {
	t.Helper()
	_, err := e.move(context.Background(), variantID, locationID, entity.DirectionIN, entity.ReasonOverprodIn, qty)
	require.NoError(t, err)
}

func (e *pgEnv) qty(t *testing.T, variantID, locationID int64) int64 {
	t.Helper()
	b, err := postgres.NewBalanceRepository(e.pool).Get(context.Background(), variantID, locationID)
	require.NoError(t, err)
	if b == nil {
		return 0
	}
	return b.Quantity
}

func (e *pgEnv) ledgerSum(t *testing.T, variantID, locationID int64) int64 {
	t.Helper()
	var sum int64
	err := e.pool.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(CASE WHEN direction = 'IN' THEN quantity ELSE -quantity END), 0)
		FROM stock_movements WHERE variant_id = $1 AND location_id = $2`, variantID, locationID).Scan(&sum)
	require.NoError(t, err)
	return sum
}

func (e *pgEnv) assertNoDrift(t *testing.T) {
	t.Helper()
	report, err := e.balances.VerifyLedger(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Drifts)
	assert.Positive(t, report.CheckedPairs)
}

// ── Concurrencia ──

func TestLedgerPG_SalidasConcurrentesNuncaDejanSaldoNegativo(t *testing.T) {
	env := newPgEnv(t, inventory.LedgerConfig{AllowNegativeStock: false})
	ctx := context.Background()
	v := env.variant(t, "T-Shirt", "Hitam", "M")
	const stock, workers = 8, 20
	env.in(t, v, env.gudang, stock)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		rejected  int
		unexpects []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.move(ctx, v, env.gudang, entity.DirectionOUT, entity.ReasonSalesOut, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				unexpects = append(unexpects, err)
			}
		}()
	}
	wg.Wait()

	require.Empty(t, unexpects)
	assert.Equal(t, stock, ok)
	assert.Equal(t, workers-stock, rejected)
	assert.Zero(t, env.qty(t, v, env.gudang))
	assert.Zero(t, env.ledgerSum(t, v, env.gudang))
	env.assertNoDrift(t)
}

func TestLedgerPG_EntradasYSalidasConcurrentesCuadranConLedger(t *testing.T) {
	env := newPgEnv(t, inventory.LedgerConfig{})
	ctx := context.Background()
	v := env.variant(t, "Hoodie", "Navy", "L")
	env.in(t, v, env.gudang, 50)

	var wg sync.WaitGroup
	errCh := make(chan error, 40)
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := env.move(ctx, v, env.gudang, entity.DirectionIN, entity.ReasonReturnIn, 2)
			errCh <- err
		}()
		go func() {
			defer wg.Done()
			_, err := env.move(ctx, v, env.gudang, entity.DirectionOUT, entity.ReasonSalesOut, 1)
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		assert.NoError(t, err)
	}

	assert.EqualValues(t, 70, env.qty(t, v, env.gudang))
	assert.EqualValues(t, 70, env.ledgerSum(t, v, env.gudang))
	env.assertNoDrift(t)
}

func TestTransferPG_CruzadosConcurrentesSinDeadlock(t *testing.T) {
	env := newPgEnv(t, inventory.LedgerConfig{})
	ctx := context.Background()
	v := env.variant(t, "Kemeja", "Putih", "S")
	env.in(t, v, env.gudang, 30)
	env.in(t, v, env.toko, 30)

	var wg sync.WaitGroup
	errCh := make(chan error, 20)
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _, err := env.ledger.Transfer(ctx, inventory.TransferInput{VariantID: v, FromLocationID: env.gudang, ToLocationID: env.toko, Quantity: 1})
			errCh <- err
		}()
		go func() {
			defer wg.Done()
			_, _, err := env.ledger.Transfer(ctx, inventory.TransferInput{VariantID: v, FromLocationID: env.toko, ToLocationID: env.gudang, Quantity: 2})
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		assert.NoError(t, err)
	}

	assert.EqualValues(t, 40, env.qty(t, v, env.gudang))
	assert.EqualValues(t, 20, env.qty(t, v, env.toko))
	env.assertNoDrift(t)
}

// ── TxRunner ──

func TestTxRunnerPG_ReintentaFalloDeSerializacion(t *testing.T) {
	env := newPgEnv(t, inventory.LedgerConfig{})
	attempts := 0
	err := env.runner.Run(context.Background(), func(ctx context.Context, repos inventory.TxRepos) error {
		attempts++
		if attempts == 1 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestTxRunnerPG_AgotaIntentosConDeadlock(t *testing.T) {
	env := newPgEnv(t, inventory.LedgerConfig{})
	attempts := 0
	err := env.runner.Run(context.Background(), func(ctx context.Context, repos inventory.TxRepos) error {
		attempts++
		return &pgconn.PgError{Code: "40P01"}
	})
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "40P01", pgErr.Code)
	assert.Equal(t, 3, attempts)
}

func TestTxRunnerPG_ErrorDelCallbackRevierteTodo(t *testing.T) {
	env := newPgEnv(t, inventory.LedgerConfig{})
	v := env.variant(t, "T-Shirt", "Merah", "S")
	boom := errors.New("fallo posterior")
	attempts := 0
	err := env.runner.Run(context.Background(), func(ctx context.Context, repos inventory.TxRepos) error {
		attempts++
		if _, err := env.ledger.CreateMovementInTx(ctx, repos, inventory.MovementInput{
			VariantID:  v,
			LocationID: env.gudang,
			Direction:  entity.DirectionIN,
			ReasonCode: entity.ReasonOverprodIn,
			Quantity:   5,
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts, "un error de negocio no se reintenta")
	assert.Zero(t, env.qty(t, v, env.gudang))
	assert.Zero(t, env.ledgerSum(t, v, env.gudang))
}

// ── Opname y consultas ──

func TestOpnamePG_SnapshotEnLoteYConfirmacion(t *testing.T) {
	env := newPgEnv(t, inventory.LedgerConfig{})
	ctx := context.Background()
	a := env.variant(t, "T-Shirt", "Hitam", "M")
	b := env.variant(t, "T-Shirt", "Hitam", "L")
	c := env.variant(t, "T-Shirt", "Hitam", "XL")
	env.in(t, a, env.gudang, 10)
	env.in(t, b, env.gudang, 5)
	env.in(t, c, env.gudang, 4)
	env.in(t, a, env.toko, 2)

	gudang := env.gudang
	session, err := env.opname.Start(ctx, inventory.StartOpnameInput{LocationID: &gudang, CreatedBy: "u1"})
	require.NoError(t, err)
	require.Len(t, session.Items, 3)
	for _, it := range session.Items {
		assert.Equal(t, env.gudang, it.LocationID)
		assert.Nil(t, it.CountedQty)
	}

	for variantID, counted := range map[int64]int64{a: 7, b: 5, c: 6} {
		_, err := env.opname.UpdateCount(ctx, inventory.CountInput{SessionID: session.ID, VariantID: variantID, LocationID: env.gudang, CountedQty: counted})
		require.NoError(t, err)
	}

	res, err := env.opname.Commit(ctx, session.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, string(entity.OpnameCompleted), res.Session.Status)
	require.Len(t, res.Adjustments, 2)
	assert.Equal(t, 3, res.Summary.TotalItems)
	assert.EqualValues(t, -1, res.Summary.NetVariance)

	assert.EqualValues(t, 7, env.qty(t, a, env.gudang))
	assert.EqualValues(t, 5, env.qty(t, b, env.gudang))
	assert.EqualValues(t, 6, env.qty(t, c, env.gudang))
	assert.EqualValues(t, 2, env.qty(t, a, env.toko))
	env.assertNoDrift(t)
}

func TestListMovementsPG_Filtros(t *testing.T) {
	env := newPgEnv(t, inventory.LedgerConfig{})
	ctx := context.Background()
	v := env.variant(t, "Hoodie", "Abu", "M")
	w := env.variant(t, "Hoodie", "Abu", "L")
	env.in(t, v, env.gudang, 10)
	env.in(t, w, env.gudang, 3)
	_, err := env.move(ctx, v, env.gudang, entity.DirectionOUT, entity.ReasonGiftOut, 1)
	require.NoError(t, err)
	out, _, err := env.ledger.Transfer(ctx, inventory.TransferInput{VariantID: v, FromLocationID: env.gudang, ToLocationID: env.toko, Quantity: 4})
	require.NoError(t, err)

	cases := []struct {
		name   string
		filter repository.MovementFilter
		want   int
	}{
		{"por variante", repository.MovementFilter{VariantID: v}, 4},
		{"por ubicación", repository.MovementFilter{LocationID: env.toko}, 1},
		{"por dirección", repository.MovementFilter{VariantID: v, Direction: entity.DirectionOUT}, 2},
		{"por motivo", repository.MovementFilter{ReasonCode: entity.ReasonGiftOut}, 1},
		{"por referencia", repository.MovementFilter{RefTable: inventory.TransferRefTable, RefCode: out.Ref.Code}, 2},
		{"valor malicioso", repository.MovementFilter{RefCode: "' OR 1=1 --"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := env.ledger.ListMovements(ctx, tc.filter)
			require.NoError(t, err)
			assert.Len(t, got, tc.want)
		})
	}

	asc, err := env.ledger.ListMovements(ctx, repository.MovementFilter{VariantID: v, Ascending: true, Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, asc, 2)
	assert.Equal(t, entity.ReasonGiftOut, asc[0].ReasonCode)
	assert.Equal(t, entity.ReasonTransferOut, asc[1].ReasonCode)
}
