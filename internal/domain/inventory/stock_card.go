package inventory

import "github.com/jhoicas/stok-api/internal/domain/entity"

// StockCardLine movimiento de la tarjeta de stock con su saldo acumulado.
type StockCardLine struct {
	Movement entity.Movement
	QtyIn    int64
	QtyOut   int64
	Balance  int64
}

// ReplayStockCard reproduce los movimientos (ya en orden cronológico) desde el saldo inicial
// y devuelve cada línea con su saldo corrido, junto con el saldo final.
func ReplayStockCard(opening int64, movements []entity.Movement) ([]StockCardLine, int64) {
	running := opening
	lines := make([]StockCardLine, 0, len(movements))
	for _, m := range movements {
		line := StockCardLine{Movement: m}
		switch m.Direction {
		case entity.DirectionIN:
			line.QtyIn = m.Quantity
		case entity.DirectionOUT:
			line.QtyOut = m.Quantity
		}
		running += m.SignedQuantity()
		line.Balance = running
		lines = append(lines, line)
	}
	return lines, running
}

// LedgerSum suma con signo todos los movimientos dados (saldo reproducido desde cero).
func LedgerSum(movements []entity.Movement) int64 {
	var total int64
	for _, m := range movements {
		total += m.SignedQuantity()
	}
	return total
}
