package entity

import "time"

// OpnameStatus estado de la sesión de conteo físico.
type OpnameStatus string

const (
	OpnameDraft     OpnameStatus = "DRAFT"
	OpnameActive    OpnameStatus = "ACTIVE"
	OpnameCompleted OpnameStatus = "COMPLETED"
	OpnameCancelled OpnameStatus = "CANCELLED"
)

// OpnameSession sesión de stock opname. LocationID nil significa todas las ubicaciones.
type OpnameSession struct {
	ID          int64
	Code        string
	LocationID  *int64
	Status      OpnameStatus
	Note        string
	SnapshotAt  time.Time
	CompletedAt *time.Time
	CreatedBy   string
	CreatedAt   time.Time
}

// OpnameItem línea de conteo. SystemQty se fija al iniciar la sesión; CountedQty nil = sin contar.
type OpnameItem struct {
	ID         int64
	SessionID  int64
	VariantID  int64
	LocationID int64
	SystemQty  int64
	CountedQty *int64
	Note       string
	CountedBy  string
	CountedAt  *time.Time
}

// Counted indica si la línea ya tiene conteo.
func (i OpnameItem) Counted() bool { return i.CountedQty != nil }

// Variance devuelve counted - system. Es cero mientras la línea no se haya contado.
func (i OpnameItem) Variance() int64 {
	if i.CountedQty == nil {
		return 0
	}
	return *i.CountedQty - i.SystemQty
}
