package dto

import "time"

// StartOpnameRequest body para POST /api/opname. location_id vacío = todas las ubicaciones.
type StartOpnameRequest struct {
	LocationID *int64 `json:"location_id,omitempty" validate:"omitempty,gt=0"`
	Note       string `json:"note,omitempty" validate:"omitempty,max=500"`
}

// UpdateCountRequest body para PUT /api/opname/{id}/counts.
type UpdateCountRequest struct {
	VariantID  int64  `json:"variant_id" validate:"required,gt=0"`
	LocationID int64  `json:"location_id" validate:"required,gt=0"`
	CountedQty *int64 `json:"counted_qty" validate:"required,gte=0"`
	Note       string `json:"note,omitempty" validate:"omitempty,max=500"`
}

// AddOpnameItemRequest body para POST /api/opname/{id}/items.
type AddOpnameItemRequest struct {
	VariantID  int64 `json:"variant_id" validate:"required,gt=0"`
	LocationID int64 `json:"location_id" validate:"required,gt=0"`
}

// OpnameSummaryDTO resumen de conteo.
type OpnameSummaryDTO struct {
	TotalItems  int   `json:"total_items"`
	Counted     int   `json:"counted"`
	Positive    int   `json:"positive"`
	Negative    int   `json:"negative"`
	NetVariance int64 `json:"net_variance"`
}

// OpnameItemResponse línea de conteo; variance se deriva de counted_qty - system_qty.
type OpnameItemResponse struct {
	ID          int64      `json:"id"`
	VariantID   int64      `json:"variant_id"`
	LocationID  int64      `json:"location_id"`
	SystemQty   int64      `json:"system_qty"`
	CountedQty  *int64     `json:"counted_qty"`
	VarianceQty *int64     `json:"variance_qty"`
	Note        string     `json:"note,omitempty"`
	CountedBy   string     `json:"counted_by,omitempty"`
	CountedAt   *time.Time `json:"counted_at,omitempty"`
}

// OpnameSessionResponse sesión de opname con sus líneas (si se pidieron).
type OpnameSessionResponse struct {
	ID          int64                `json:"id"`
	Code        string               `json:"code"`
	LocationID  *int64               `json:"location_id"`
	Status      string               `json:"status"`
	Note        string               `json:"note,omitempty"`
	SnapshotAt  time.Time            `json:"snapshot_at"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
	CreatedBy   string               `json:"created_by,omitempty"`
	Summary     *OpnameSummaryDTO    `json:"summary,omitempty"`
	Items       []OpnameItemResponse `json:"items,omitempty"`
}

// OpnameCommitResponse ajustes registrados al confirmar la sesión.
type OpnameCommitResponse struct {
	Session     OpnameSessionResponse `json:"session"`
	Adjustments []MovementResponse    `json:"adjustments"`
	Summary     OpnameSummaryDTO      `json:"summary"`
}

// OpnameListResponse lista paginada de sesiones.
type OpnameListResponse struct {
	Items []OpnameSessionResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
