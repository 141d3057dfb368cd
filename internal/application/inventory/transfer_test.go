package inventory_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stok-api/internal/application/inventory"
	"github.com/jhoicas/stok-api/internal/domain"
	"github.com/jhoicas/stok-api/internal/domain/entity"
)

func TestTransfer_ParDeMovimientosConMismaReferencia(t *testing.T) {
	f := newFixture(t, inventory.LedgerConfig{})
	v := f.variant(t, "Hoodie", "Abu", "L")
	f.in(t, v, f.gudang, 10, "80000")

	out, in, err := f.ledger.Transfer(context.Background(), inventory.TransferInput{
		VariantID: v, FromLocationID: f.gudang, ToLocationID: f.toko, Quantity: 4, CreatedBy: "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReasonTransferOut, out.ReasonCode)
	assert.Equal(t, entity.ReasonTransferIn, in.ReasonCode)
	assert.Equal(t, out.Ref.Code, in.Ref.Code)
	assert.True(t, strings.HasPrefix(out.Ref.Code, "TRF-"), out.Ref.Code)
	assert.Equal(t, inventory.TransferRefTable, in.Ref.Table)

	assert.EqualValues(t, 6, f.store.Balance(v, f.gudang).Quantity)
	dst := f.store.Balance(v, f.toko)
	assert.EqualValues(t, 4, dst.Quantity)
	assert.True(t, dst.AvgCost.Equal(decimal.NewFromInt(80000)), "el destino hereda el costo del origen")
	require.NotNil(t, in.UnitCost)
}

func TestTransfer_ReferenciaExplicita(t *testing.T) {
	f := newFixture(t, inventory.LedgerConfig{})
	v := f.variant(t, "Hoodie", "Abu", "L")
	f.in(t, v, f.toko, 3, "")

	out, in, err := f.ledger.Transfer(context.Background(), inventory.TransferInput{
		VariantID: v, FromLocationID: f.toko, ToLocationID: f.gudang, Quantity: 3,
		Ref: entity.Reference{Code: "SJ-0042"},
	})
	require.NoError(t, err)
	assert.Equal(t, "SJ-0042", out.Ref.Code)
	assert.Equal(t, "SJ-0042", in.Ref.Code)
	assert.Nil(t, in.UnitCost, "sin costo en origen la entrada no trae costo")
}

func TestTransfer_MismaUbicacion(t *testing.T) {
	f := newFixture(t, inventory.LedgerConfig{})
	v := f.variant(t, "Hoodie", "Abu", "L")
	_, _, err := f.ledger.Transfer(context.Background(), inventory.TransferInput{
		VariantID: v, FromLocationID: f.gudang, ToLocationID: f.gudang, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestTransfer_StockInsuficienteNoMueveNada(t *testing.T) {
	f := newFixture(t, inventory.LedgerConfig{})
	v := f.variant(t, "Hoodie", "Abu", "L")
	f.in(t, v, f.gudang, 1, "")

	_, _, err := f.ledger.Transfer(context.Background(), inventory.TransferInput{
		VariantID: v, FromLocationID: f.gudang, ToLocationID: f.toko, Quantity: 2,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Len(t, f.store.Movements(), 1)
	assert.EqualValues(t, 1, f.store.Balance(v, f.gudang).Quantity)
}

func TestTransfer_FallaEnLaEntradaRevierteLaSalida(t *testing.T) {
	f := newFixture(t, inventory.LedgerConfig{})
	v := f.variant(t, "Hoodie", "Abu", "L")
	f.in(t, v, f.gudang, 5, "")

	calls := 0
	f.store.Fail["Balances.Update"] = func() error {
		calls++
		if calls == 2 {
			return errors.New("conexión perdida")
		}
		return nil
	}
	_, _, err := f.ledger.Transfer(context.Background(), inventory.TransferInput{
		VariantID: v, FromLocationID: f.gudang, ToLocationID: f.toko, Quantity: 2,
	})
	require.Error(t, err)
	assert.Len(t, f.store.Movements(), 1, "solo la entrada inicial")
	assert.EqualValues(t, 5, f.store.Balance(v, f.gudang).Quantity)
	assert.Zero(t, f.store.Balance(v, f.toko).Quantity)
}

func TestTransfer_UbicacionInexistente(t *testing.T) {
	f := newFixture(t, inventory.LedgerConfig{})
	v := f.variant(t, "Hoodie", "Abu", "L")
	_, _, err := f.ledger.Transfer(context.Background(), inventory.TransferInput{
		VariantID: v, FromLocationID: f.gudang, ToLocationID: 777, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
