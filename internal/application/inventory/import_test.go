package inventory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stok-api/internal/application/inventory"
	"github.com/jhoicas/stok-api/internal/domain"
	"github.com/jhoicas/stok-api/internal/domain/entity"
	"github.com/jhoicas/stok-api/internal/domain/repository"
)

func TestImport_ErroresPorFilaNoDetienenElLote(t *testing.T) {
	f := newFixture(t, inventory.LedgerConfig{})
	cost := decimal.NewFromInt(45000)
	rows := []inventory.ImportRow{
		{Line: 2, ProductName: "tshirt", ColorName: "hitam", SizeName: "m", LocationName: "gudang utama", ReasonCode: "overprod", Quantity: 10, UnitCost: &cost},
		{Line: 3, ProductName: "T-Shirt", ColorName: "Hitam", SizeName: "M", LocationName: "store", ReasonCode: "SALE", Quantity: 1},
		{Line: 4, ProductName: "T-Shirt", ColorName: "Hitam", SizeName: "M", LocationName: "wh", ReasonCode: "FREE_ITEM", Quantity: 2},
		{Line: 5, ProductName: "T-Shirt", ColorName: "Hitam", SizeName: "M", LocationName: "Gudang", ReasonCode: "TELEPORT", Quantity: 1},
		{Line: 6, ProductName: "T-Shirt", ColorName: "Hitam", SizeName: "L", LocationName: "Gudang", ReasonCode: "RETURN", Quantity: 0},
		{Line: 7, ProductName: "T-Shirt", ColorName: "Hitam", SizeName: "M", LocationName: "Mars", ReasonCode: "RETURN", Quantity: 1},
	}

	report, err := f.imports.Import(context.Background(), rows, "u1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(report.BatchCode, "IMP-"))
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 4, report.Failed)
	assert.Equal(t, 1, report.ProductsCreated)
	assert.Equal(t, 1, report.VariantsCreated)

	failed := map[int]string{}
	for _, e := range report.Errors {
		failed[e.Row] = e.Message
	}
	assert.Contains(t, failed, 3, "venta en Toko sin stock")
	assert.Contains(t, failed[3], "stock insuficiente")
	assert.Contains(t, failed, 5)
	assert.Contains(t, failed, 6)
	assert.Contains(t, failed, 7)

	v := f.variant(t, "T-Shirt", "Hitam", "M")
	b := f.store.Balance(v, f.gudang)
	assert.EqualValues(t, 8, b.Quantity, "10 de producción menos 2 de regalo en gudang")
	assert.True(t, b.AvgCost.Equal(cost))

	list, err := f.ledger.ListMovements(context.Background(), repository.MovementFilter{RefTable: inventory.ImportRefTable})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, report.BatchCode, list[0].Ref.Code)
	assert.Equal(t, entity.ReasonSalesOut, list[0].ReasonCode, "FREE_ITEM se registra como venta")
}

func TestImport_EntradaSinUbicacionVaALaPorDefecto(t *testing.T) {
	f := newFixture(t, inventory.LedgerConfig{})
	report, err := f.imports.Import(context.Background(), []inventory.ImportRow{
		{ProductName: "Sweater", ColorName: "Cream", SizeName: "All Size", ReasonCode: "ADJ_IN", Quantity: 4},
		{ProductName: "Sweater", ColorName: "Cream", SizeName: "All Size", ReasonCode: "GIFT", Quantity: 1},
	}, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 2, report.Errors[0].Row, "sin número de línea se usa la posición")
}

func TestNormalizeImportReason(t *testing.T) {
	cases := []struct {
		reason, dir string
		code        entity.ReasonCode
		direction   entity.Direction
	}{
		{"sale", "", entity.ReasonSalesOut, entity.DirectionOUT},
		{"free item", "", entity.ReasonSalesOut, entity.DirectionOUT},
		{"GIFT", "out", entity.ReasonGiftOut, entity.DirectionOUT},
		{"return", "", entity.ReasonReturnIn, entity.DirectionIN},
		{"OVERPROD_IN", "IN", entity.ReasonOverprodIn, entity.DirectionIN},
		{"adj out", "", entity.ReasonAdjustmentOut, entity.DirectionOUT},
	}
	for _, tc := range cases {
		code, dir, err := inventory.NormalizeImportReason(tc.reason, tc.dir)
		require.NoError(t, err, tc.reason)
		assert.Equal(t, tc.code, code, tc.reason)
		assert.Equal(t, tc.direction, dir, tc.reason)
	}

	_, _, err := inventory.NormalizeImportReason("SALE", "IN")
	assert.ErrorIs(t, err, domain.ErrInvalidReasonCode)
	_, _, err = inventory.NormalizeImportReason("", "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, _, err = inventory.NormalizeImportReason("RETURN", "LEFT")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestCanonicalLocationName(t *testing.T) {
	assert.Equal(t, "Gudang", inventory.CanonicalLocationName("  Warehouse "))
	assert.Equal(t, "Online", inventory.CanonicalLocationName("shopee"))
	assert.Equal(t, "Toko Cabang 2", inventory.CanonicalLocationName("Toko   Cabang 2"))
}
