package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indica el signo del movimiento.
type Direction string

const (
	DirectionIN  Direction = "IN"  // entrada
	DirectionOUT Direction = "OUT" // salida
)

// ReasonCode motivo de negocio del movimiento; cada uno pertenece a una sola dirección.
type ReasonCode string

const (
	ReasonOverprodIn    ReasonCode = "OVERPROD_IN"
	ReasonReturnIn      ReasonCode = "RETURN_IN"
	ReasonAdjustmentIn  ReasonCode = "ADJUSTMENT_IN"
	ReasonTransferIn    ReasonCode = "TRANSFER_IN"
	ReasonSalesOut      ReasonCode = "SALES_OUT"
	ReasonGiftOut       ReasonCode = "GIFT_OUT"
	ReasonAdjustmentOut ReasonCode = "ADJUSTMENT_OUT"
	ReasonTransferOut   ReasonCode = "TRANSFER_OUT"
)

var reasonsByDirection = map[Direction]map[ReasonCode]struct{}{
	DirectionIN: {
		ReasonOverprodIn:   {},
		ReasonReturnIn:     {},
		ReasonAdjustmentIn: {},
		ReasonTransferIn:   {},
	},
	DirectionOUT: {
		ReasonSalesOut:      {},
		ReasonGiftOut:       {},
		ReasonAdjustmentOut: {},
		ReasonTransferOut:   {},
	},
}

// Valid indica si la dirección es IN u OUT.
func (d Direction) Valid() bool {
	_, ok := reasonsByDirection[d]
	return ok
}

// Sign devuelve +1 para IN y -1 para OUT.
func (d Direction) Sign() int64 {
	if d == DirectionOUT {
		return -1
	}
	return 1
}

// AllowedFor indica si el motivo pertenece al conjunto fijo de la dirección.
func (r ReasonCode) AllowedFor(d Direction) bool {
	set, ok := reasonsByDirection[d]
	if !ok {
		return false
	}
	_, ok = set[r]
	return ok
}

// Reference vincula el movimiento con el documento que lo originó (venta, traslado, opname...).
type Reference struct {
	Table string
	ID    int64
	Code  string
}

// Movement es un evento inmutable del ledger. Quantity es siempre positiva; Direction da el signo.
type Movement struct {
	ID         int64
	VariantID  int64
	LocationID int64
	Direction  Direction
	ReasonCode ReasonCode
	Quantity   int64
	Unit       string
	UnitCost   *decimal.Decimal // nil si el movimiento no trae costo
	Currency   string
	Ref        Reference
	Note       string
	PIC        string
	CreatedBy  string
	CreatedAt  time.Time
}

// SignedQuantity devuelve la cantidad con signo según la dirección.
func (m Movement) SignedQuantity() int64 {
	return m.Direction.Sign() * m.Quantity
}
