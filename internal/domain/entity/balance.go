package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance es el saldo en caché de una variante en una ubicación.
// Quantity siempre debe ser igual a la suma con signo de los movimientos del par.
type Balance struct {
	VariantID  int64
	LocationID int64
	Quantity   int64
	AvgCost    decimal.Decimal // costo promedio móvil
	UpdatedAt  time.Time
}
