package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stok-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// BalanceFilter filtro del árbol de saldos. Los campos cero no filtran.
type BalanceFilter struct {
	ProductID    int64
	ColorID      int64
	LocationID   int64
	OnlyPositive bool
	Search       string // coincidencia parcial por nombre de producto
}

// BalanceRow saldo con los nombres del catálogo, para vistas de inventario.
type BalanceRow struct {
	VariantID     int64
	ProductID     int64
	ProductName   string
	ColorID       int64
	ColorName     string
	ColorHex      string
	SizeID        int64
	SizeName      string
	SizeSortOrder int
	LocationID    int64
	LocationName  string
	Quantity      int64
	AvgCost       decimal.Decimal
	UpdatedAt     time.Time
}

// BalanceRepository puerto del saldo en caché por (variante, ubicación).
type BalanceRepository interface {
	// EnsureZero crea filas en cero para la variante en las ubicaciones dadas (sin tocar las existentes).
	EnsureZero(ctx context.Context, variantID int64, locationIDs []int64) error
	// Get devuelve el saldo sin bloquear; saldo cero si la fila no existe.
	Get(ctx context.Context, variantID, locationID int64) (*entity.Balance, error)
	// GetForUpdate garantiza la fila y la bloquea (SELECT ... FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, variantID, locationID int64) (*entity.Balance, error)
	Update(ctx context.Context, b *entity.Balance) error
	// ListPositive saldos con cantidad > 0; locationID nil = todas las ubicaciones.
	ListPositive(ctx context.Context, locationID *int64) ([]entity.Balance, error)
	ListAll(ctx context.Context) ([]entity.Balance, error)
	ListDetailed(ctx context.Context, f BalanceFilter) ([]BalanceRow, error)
}
