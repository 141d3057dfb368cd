package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stok-api/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "25.000", formatMoney("25000"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
	assert.Equal(t, "999", formatMoney("999"))
	assert.Equal(t, "-12.500", formatMoney("-12500"))
}

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "0", formatQty(0))
	assert.Equal(t, "1.250", formatQty(1250))
	assert.Equal(t, "-3", formatQty(-3))
	assert.Equal(t, "—", qtyOrDash(0))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "corto", truncate("corto", 10))
	assert.Equal(t, "abcd…", truncate("abcdefghij", 5))
}

func TestStockCardPDF_GeneraDocumento(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	card := &dto.StockCardResponse{
		VariantID:  7,
		LocationID: 1,
		OpeningQty: 10,
		Lines: []dto.StockCardLineDTO{
			{MovementID: 1, CreatedAt: at, ReasonCode: "OVERPROD_IN", QtyIn: 5, Balance: 15},
			{MovementID: 2, CreatedAt: at.Add(time.Hour), ReasonCode: "SALES_OUT", RefCode: "INV-001", QtyOut: 3, Balance: 12},
		},
		ClosingQty: 12,
		CurrentQty: 12,
		AvgCost:    decimal.RequireFromString("45000"),
		Truncated:  true,
	}

	out, err := NewStockCardPDF().Generate(context.Background(), card, StockCardHeader{Variant: "T-Shirt / Hitam / XL", Location: "Gudang"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestStockCardPDF_TarjetaNil(t *testing.T) {
	_, err := NewStockCardPDF().Generate(context.Background(), nil, StockCardHeader{})
	assert.Error(t, err)
}
