package inventory_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stok-api/internal/application/inventory"
	"github.com/jhoicas/stok-api/internal/application/inventory/inventorytest"
	"github.com/jhoicas/stok-api/internal/domain/entity"
)

// fixture motor de stock completo sobre el store en memoria, con dos ubicaciones.
type fixture struct {
	store    *inventorytest.Store
	resolver *inventory.VariantResolver
	ledger   *inventory.LedgerUseCase
	balances *inventory.BalanceUseCase
	cards    *inventory.StockCardUseCase
	opname   *inventory.OpnameUseCase
	imports  *inventory.ImportUseCase
	gudang   int64
	toko     int64
}

func newFixture(t *testing.T, cfg inventory.LedgerConfig) *fixture {
	t.Helper()
	log := zerolog.Nop()
	store := inventorytest.NewStore()
	f := &fixture{store: store}
	f.gudang = store.AddLocation("Gudang", true)
	f.toko = store.AddLocation("Toko", false)
	f.resolver = inventory.NewVariantResolver(store, log)
	f.ledger = inventory.NewLedgerUseCase(store, f.resolver, cfg, log)
	f.balances = inventory.NewBalanceUseCase(store, log)
	f.cards = inventory.NewStockCardUseCase(store, 0, log)
	f.opname = inventory.NewOpnameUseCase(store, f.ledger, log)
	f.imports = inventory.NewImportUseCase(store, f.resolver, f.ledger, log)
	return f
}

func (f *fixture) variant(t *testing.T, product, color, size string) int64 {
	t.Helper()
	res, err := f.resolver.ResolveByNames(context.Background(), product, color, size)
	require.NoError(t, err)
	return res.VariantID
}

func (f *fixture) in(t *testing.T, variantID, locationID, qty int64, cost string) *entity.Movement {
	t.Helper()
	in := inventory.MovementInput{
		VariantID:  variantID,
		LocationID: locationID,
		Direction:  entity.DirectionIN,
		ReasonCode: entity.ReasonOverprodIn,
		Quantity:   qty,
	}
	if cost != "" {
		c := decimal.RequireFromString(cost)
		in.UnitCost = &c
	}
	m, err := f.ledger.CreateMovement(context.Background(), in)
	require.NoError(t, err)
	return m
}

func (f *fixture) out(variantID, locationID, qty int64) (*entity.Movement, error) {
	return f.ledger.CreateMovement(context.Background(), inventory.MovementInput{
		VariantID:  variantID,
		LocationID: locationID,
		Direction:  entity.DirectionOUT,
		ReasonCode: entity.ReasonSalesOut,
		Quantity:   qty,
	})
}
