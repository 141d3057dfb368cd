package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stok-api/internal/domain/entity"
	"github.com/jhoicas/stok-api/internal/domain/inventory"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func counted(n int64) *int64 { return &n }

// ──────────────────────────────────────────────────────────────────────────────
// Costo promedio móvil
// ──────────────────────────────────────────────────────────────────────────────

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// 10 @ 40000 + 10 @ 50000 → 45000
	got := inventory.CostCalculator(10, decimal.NewFromInt(40000), 10, dec("50000"))
	assert.True(t, got.Equal(decimal.NewFromInt(45000)), "got %s", got)
}

func TestCostCalculator_PrimeraEntrada(t *testing.T) {
	got := inventory.CostCalculator(0, decimal.Zero, 5, dec("12500.5"))
	assert.Equal(t, "12500.5", got.String())
}

func TestCostCalculator_SinCostoNoCambia(t *testing.T) {
	prev := decimal.NewFromInt(30000)
	assert.True(t, inventory.CostCalculator(4, prev, 6, nil).Equal(prev))
	assert.True(t, inventory.CostCalculator(4, prev, 6, dec("0")).Equal(prev))
}

func TestCostCalculator_StockNegativoSeTrataComoCero(t *testing.T) {
	got := inventory.CostCalculator(-3, decimal.NewFromInt(99999), 5, dec("20000"))
	assert.True(t, got.Equal(decimal.NewFromInt(20000)), "got %s", got)
}

func TestCostCalculator_ResultadoNoPositivoConservaPromedio(t *testing.T) {
	prev := decimal.NewFromInt(100)
	got := inventory.CostCalculator(-5, prev, 3, dec("200"))
	assert.True(t, got.Equal(prev), "saldo final -2: got %s", got)
	got = inventory.CostCalculator(-3, prev, 3, dec("200"))
	assert.True(t, got.Equal(prev), "saldo final 0: got %s", got)
}

func TestCostCalculator_RedondeoCuatroDecimales(t *testing.T) {
	// (1*10 + 2*11) / 3 = 10.6666...
	got := inventory.CostCalculator(1, decimal.NewFromInt(10), 2, dec("11"))
	assert.Equal(t, "10.6667", got.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Motivos por dirección
// ──────────────────────────────────────────────────────────────────────────────

func TestReasonCode_ConjuntoPorDireccion(t *testing.T) {
	ins := []entity.ReasonCode{entity.ReasonOverprodIn, entity.ReasonReturnIn, entity.ReasonAdjustmentIn, entity.ReasonTransferIn}
	outs := []entity.ReasonCode{entity.ReasonSalesOut, entity.ReasonGiftOut, entity.ReasonAdjustmentOut, entity.ReasonTransferOut}
	for _, r := range ins {
		assert.True(t, r.AllowedFor(entity.DirectionIN), r)
		assert.False(t, r.AllowedFor(entity.DirectionOUT), r)
	}
	for _, r := range outs {
		assert.True(t, r.AllowedFor(entity.DirectionOUT), r)
		assert.False(t, r.AllowedFor(entity.DirectionIN), r)
	}
	assert.False(t, entity.ReasonCode("PURCHASE_IN").AllowedFor(entity.DirectionIN))
	assert.False(t, entity.ReasonSalesOut.AllowedFor(entity.Direction("SIDEWAYS")))
}

func TestMovement_SignedQuantity(t *testing.T) {
	assert.EqualValues(t, 5, entity.Movement{Direction: entity.DirectionIN, Quantity: 5}.SignedQuantity())
	assert.EqualValues(t, -5, entity.Movement{Direction: entity.DirectionOUT, Quantity: 5}.SignedQuantity())
}

// ──────────────────────────────────────────────────────────────────────────────
// Opname: resumen y ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestSummarizeOpname(t *testing.T) {
	items := []entity.OpnameItem{
		{VariantID: 1, SystemQty: 10, CountedQty: counted(7)}, // -3
		{VariantID: 2, SystemQty: 5, CountedQty: counted(5)},  // 0
		{VariantID: 3, SystemQty: 0, CountedQty: counted(3)},  // +3
		{VariantID: 4, SystemQty: 8, CountedQty: counted(10)}, // +2
		{VariantID: 5, SystemQty: 4},                          // sin contar
	}
	s := inventory.SummarizeOpname(items)
	assert.Equal(t, inventory.OpnameSummary{TotalItems: 5, Counted: 4, Positive: 2, Negative: 1, NetVariance: 2}, s)
}

func TestPlanAdjustments(t *testing.T) {
	items := []entity.OpnameItem{
		{VariantID: 1, LocationID: 1, SystemQty: 10, CountedQty: counted(7)},
		{VariantID: 2, LocationID: 1, SystemQty: 5, CountedQty: counted(5)},
		{VariantID: 3, LocationID: 1, SystemQty: 0, CountedQty: counted(3)},
		{VariantID: 4, LocationID: 1, SystemQty: 4},
	}
	plans := inventory.PlanAdjustments(items)
	require.Len(t, plans, 2)

	assert.Equal(t, entity.DirectionOUT, plans[0].Direction)
	assert.Equal(t, entity.ReasonAdjustmentOut, plans[0].ReasonCode)
	assert.EqualValues(t, 3, plans[0].Quantity)

	assert.Equal(t, entity.DirectionIN, plans[1].Direction)
	assert.Equal(t, entity.ReasonAdjustmentIn, plans[1].ReasonCode)
	assert.EqualValues(t, 3, plans[1].Quantity)
	assert.EqualValues(t, 3, plans[1].Item.VariantID)
}

func TestOpnameItem_VarianzaSinContarEsCero(t *testing.T) {
	it := entity.OpnameItem{SystemQty: 9}
	assert.False(t, it.Counted())
	assert.Zero(t, it.Variance())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tarjeta de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestReplayStockCard_SaldoCorrido(t *testing.T) {
	movs := []entity.Movement{
		{ID: 1, Direction: entity.DirectionIN, Quantity: 10},
		{ID: 2, Direction: entity.DirectionOUT, Quantity: 3},
		{ID: 3, Direction: entity.DirectionIN, Quantity: 1},
	}
	lines, closing := inventory.ReplayStockCard(5, movs)
	require.Len(t, lines, 3)
	assert.EqualValues(t, 15, lines[0].Balance)
	assert.EqualValues(t, 10, lines[0].QtyIn)
	assert.EqualValues(t, 12, lines[1].Balance)
	assert.EqualValues(t, 3, lines[1].QtyOut)
	assert.EqualValues(t, 13, lines[2].Balance)
	assert.EqualValues(t, 13, closing)
	assert.EqualValues(t, 8, inventory.LedgerSum(movs))
}

func TestReplayStockCard_SinMovimientos(t *testing.T) {
	lines, closing := inventory.ReplayStockCard(7, nil)
	assert.Empty(t, lines)
	assert.EqualValues(t, 7, closing)
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden de tallas
// ──────────────────────────────────────────────────────────────────────────────

func TestSizeSortOrder(t *testing.T) {
	s, ok := inventory.SizeSortOrder("s")
	require.True(t, ok)
	xl, _ := inventory.SizeSortOrder("XL")
	n30, ok := inventory.SizeSortOrder("30")
	require.True(t, ok)
	n32, _ := inventory.SizeSortOrder("32")

	assert.Less(t, s, xl)
	assert.Less(t, xl, n30)
	assert.Less(t, n30, n32)

	_, ok = inventory.SizeSortOrder("Jumbo")
	assert.False(t, ok)
}
