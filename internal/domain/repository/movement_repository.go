package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stok-api/internal/domain/entity"
)

// MovementFilter filtro estructurado para listar el ledger. Los campos cero no filtran.
type MovementFilter struct {
	VariantID  int64
	LocationID int64
	Direction  entity.Direction
	ReasonCode entity.ReasonCode
	RefTable   string
	RefCode    string
	From       *time.Time // inclusivo
	To         *time.Time // inclusivo
	Limit      int
	Offset     int
	Ascending  bool // orden cronológico (created_at, id); por defecto el más reciente primero
}

// PairSum suma con signo de los movimientos de un par (variante, ubicación).
type PairSum struct {
	VariantID  int64
	LocationID int64
	Quantity   int64
}

// MovementRepository puerto del ledger append-only. No hay Update ni Delete.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	List(ctx context.Context, f MovementFilter) ([]entity.Movement, error)
	// SumBefore suma con signo los movimientos del par estrictamente antes de before (nil = todos).
	SumBefore(ctx context.Context, variantID, locationID int64, before *time.Time) (int64, error)
	// SumsByPair reproduce el ledger completo agrupado por par.
	SumsByPair(ctx context.Context) ([]PairSum, error)
}
