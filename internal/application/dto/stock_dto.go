package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VariantIdentity trío producto/color/talla por ID.
type VariantIdentity struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	ColorID   int64 `json:"color_id" validate:"required,gt=0"`
	SizeID    int64 `json:"size_id" validate:"required,gt=0"`
}

// ReferenceDTO documento de origen del movimiento.
type ReferenceDTO struct {
	Table string `json:"table,omitempty" validate:"omitempty,max=64"`
	ID    int64  `json:"id,omitempty"`
	Code  string `json:"code,omitempty" validate:"omitempty,max=64"`
}

// CreateMovementRequest body para POST /api/stock/movements.
// Se identifica la variante por variant_id o por el trío identity.
type CreateMovementRequest struct {
	VariantID  int64            `json:"variant_id,omitempty"`
	Identity   *VariantIdentity `json:"identity,omitempty"`
	LocationID int64            `json:"location_id,omitempty"` // vacío en IN = ubicación por defecto
	Direction  string           `json:"direction" validate:"required,direction"`
	ReasonCode string           `json:"reason_code" validate:"required"`
	Quantity   int64            `json:"quantity" validate:"required,gt=0"`
	Unit       string           `json:"unit,omitempty" validate:"omitempty,max=16"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
	Currency   string           `json:"currency,omitempty" validate:"omitempty,len=3"`
	Reference  *ReferenceDTO    `json:"reference,omitempty"`
	Note       string           `json:"note,omitempty" validate:"omitempty,max=500"`
	PIC        string           `json:"pic,omitempty" validate:"omitempty,max=100"`
}

// TransferRequest body para POST /api/stock/transfers.
type TransferRequest struct {
	VariantID      int64            `json:"variant_id,omitempty"`
	Identity       *VariantIdentity `json:"identity,omitempty"`
	FromLocationID int64            `json:"from_location_id" validate:"required,gt=0"`
	ToLocationID   int64            `json:"to_location_id" validate:"required,gt=0"`
	Quantity       int64            `json:"quantity" validate:"required,gt=0"`
	Reference      *ReferenceDTO    `json:"reference,omitempty"`
	Note           string           `json:"note,omitempty" validate:"omitempty,max=500"`
	PIC            string           `json:"pic,omitempty" validate:"omitempty,max=100"`
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID         int64            `json:"id"`
	VariantID  int64            `json:"variant_id"`
	LocationID int64            `json:"location_id"`
	Direction  string           `json:"direction"`
	ReasonCode string           `json:"reason_code"`
	Quantity   int64            `json:"quantity"`
	Unit       string           `json:"unit"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
	Currency   string           `json:"currency"`
	Reference  ReferenceDTO     `json:"reference"`
	Note       string           `json:"note,omitempty"`
	PIC        string           `json:"pic,omitempty"`
	CreatedBy  string           `json:"created_by,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// TransferResponse par de movimientos de un traslado.
type TransferResponse struct {
	ReferenceCode string           `json:"reference_code"`
	Out           MovementResponse `json:"out"`
	In            MovementResponse `json:"in"`
}

// MovementListResponse lista paginada del ledger.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ResolveVariantRequest body para POST /api/stock/variants/resolve.
// Si vienen IDs se resuelve por IDs; si no, por nombres (creando lo que falte).
type ResolveVariantRequest struct {
	ProductID   int64  `json:"product_id,omitempty"`
	ColorID     int64  `json:"color_id,omitempty"`
	SizeID      int64  `json:"size_id,omitempty"`
	ProductName string `json:"product_name,omitempty" validate:"omitempty,max=200"`
	ColorName   string `json:"color_name,omitempty" validate:"omitempty,max=100"`
	SizeName    string `json:"size_name,omitempty" validate:"omitempty,max=50"`
}

// ResolveVariantResponse resultado de la resolución de variante.
type ResolveVariantResponse struct {
	VariantID      int64 `json:"variant_id"`
	Created        bool  `json:"created"`
	ProductCreated bool  `json:"product_created"`
	ColorCreated   bool  `json:"color_created"`
	SizeCreated    bool  `json:"size_created"`
}

// SizeBalanceDTO saldo de una talla dentro de una ubicación.
type SizeBalanceDTO struct {
	SizeID    int64           `json:"size_id"`
	SizeName  string          `json:"size_name"`
	SortOrder int             `json:"sort_order"`
	VariantID int64           `json:"variant_id"`
	Quantity  int64           `json:"quantity"`
	AvgCost   decimal.Decimal `json:"avg_cost"`
}

// LocationBalanceDTO tallas de un producto+color en una ubicación.
type LocationBalanceDTO struct {
	LocationID   int64            `json:"location_id"`
	LocationName string           `json:"location_name"`
	Total        int64            `json:"total"`
	Sizes        []SizeBalanceDTO `json:"sizes"`
}

// ProductColorBalanceDTO nodo raíz del árbol de saldos: producto+color → ubicación → talla.
type ProductColorBalanceDTO struct {
	ProductID   int64                `json:"product_id"`
	ProductName string               `json:"product_name"`
	ColorID     int64                `json:"color_id"`
	ColorName   string               `json:"color_name"`
	ColorHex    string               `json:"color_hex"`
	Total       int64                `json:"total"`
	Locations   []LocationBalanceDTO `json:"locations"`
}

// StockCardLineDTO línea de la tarjeta de stock.
type StockCardLineDTO struct {
	MovementID int64     `json:"movement_id"`
	CreatedAt  time.Time `json:"created_at"`
	ReasonCode string    `json:"reason_code"`
	RefCode    string    `json:"ref_code,omitempty"`
	Note       string    `json:"note,omitempty"`
	QtyIn      int64     `json:"qty_in"`
	QtyOut     int64     `json:"qty_out"`
	Balance    int64     `json:"balance"`
}

// StockCardResponse tarjeta de stock de una variante en una ubicación.
type StockCardResponse struct {
	VariantID    int64              `json:"variant_id"`
	LocationID   int64              `json:"location_id"`
	VariantLabel string             `json:"variant_label"`
	LocationName string             `json:"location_name"`
	From         *time.Time         `json:"from,omitempty"`
	To           *time.Time         `json:"to,omitempty"`
	OpeningQty   int64              `json:"opening_qty"`
	Lines        []StockCardLineDTO `json:"lines"`
	ClosingQty   int64              `json:"closing_qty"`
	CurrentQty   int64              `json:"current_qty"`
	AvgCost      decimal.Decimal    `json:"avg_cost"`
	Truncated    bool               `json:"truncated"`
}

// BalanceDriftDTO par cuyo saldo en caché no coincide con el ledger.
type BalanceDriftDTO struct {
	VariantID  int64 `json:"variant_id"`
	LocationID int64 `json:"location_id"`
	LedgerQty  int64 `json:"ledger_qty"`
	CachedQty  int64 `json:"cached_qty"`
}

// IntegrityReport resultado de reproducir el ledger contra los saldos.
type IntegrityReport struct {
	CheckedPairs int               `json:"checked_pairs"`
	Drifts       []BalanceDriftDTO `json:"drifts"`
}

// ImportRowError error de una fila del import masivo.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportReport resultado del import masivo de movimientos.
type ImportReport struct {
	BatchCode       string           `json:"batch_code"`
	Imported        int              `json:"imported"`
	Failed          int              `json:"failed"`
	ProductsCreated int              `json:"products_created"`
	ColorsCreated   int              `json:"colors_created"`
	SizesCreated    int              `json:"sizes_created"`
	VariantsCreated int              `json:"variants_created"`
	Errors          []ImportRowError `json:"errors"`
}
