package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stok-api/internal/application/dto"
	"github.com/jhoicas/stok-api/internal/domain"
	"github.com/jhoicas/stok-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stok-api/internal/domain/inventory"
	"github.com/jhoicas/stok-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerConfig opciones del ledger. AllowNegativeStock se inyecta desde config, nunca desde estado global.
type LedgerConfig struct {
	AllowNegativeStock bool
	DefaultUnit        string
	DefaultCurrency    string
}

// VariantRef identifica una variante por el trío de IDs de catálogo.
type VariantRef struct {
	ProductID int64
	ColorID   int64
	SizeID    int64
}

// MovementInput entrada para registrar un movimiento.
// La variante se da por VariantID o por Identity; LocationID vacío en IN usa la ubicación por defecto.
type MovementInput struct {
	VariantID  int64
	Identity   *VariantRef
	LocationID int64
	Direction  entity.Direction
	ReasonCode entity.ReasonCode
	Quantity   int64
	Unit       string
	UnitCost   *decimal.Decimal
	Currency   string
	Ref        entity.Reference
	Note       string
	PIC        string
	CreatedBy  string
}

// LedgerUseCase registra movimientos en el ledger append-only y mantiene el saldo en caché
// en la misma transacción, con bloqueo de fila (SELECT FOR UPDATE) por (variante, ubicación).
type LedgerUseCase struct {
	txRunner TxRunner
	resolver *VariantResolver
	cfg      LedgerConfig
	log      zerolog.Logger
	now      func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, resolver *VariantResolver, cfg LedgerConfig, log zerolog.Logger) *LedgerUseCase {
	if cfg.DefaultUnit == "" {
		cfg.DefaultUnit = "pcs"
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "IDR"
	}
	return &LedgerUseCase{
		txRunner: txRunner,
		resolver: resolver,
		cfg:      cfg,
		log:      log.With().Str("component", "ledger").Logger(),
		now:      time.Now,
	}
}

// CreateMovement valida y registra un movimiento en su propia transacción.
func (uc *LedgerUseCase) CreateMovement(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	if err := validateMovement(in); err != nil {
		return nil, err
	}
	var out *entity.Movement
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		m, err := uc.createInTx(ctx, repos, in)
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Int64("movement_id", out.ID).
		Int64("variant_id", out.VariantID).
		Int64("location_id", out.LocationID).
		Str("direction", string(out.Direction)).
		Str("reason", string(out.ReasonCode)).
		Int64("qty", out.Quantity).
		Msg("movimiento registrado")
	return out, nil
}

// CreateMovementInTx registra un movimiento usando los repositorios de una transacción del caller
// (traslado, confirmación de opname, import por fila).
func (uc *LedgerUseCase) CreateMovementInTx(ctx context.Context, repos TxRepos, in MovementInput) (*entity.Movement, error) {
	if err := validateMovement(in); err != nil {
		return nil, err
	}
	return uc.createInTx(ctx, repos, in)
}

// CreateMovementFromRequest adapta el request HTTP al caso de uso.
func (uc *LedgerUseCase) CreateMovementFromRequest(ctx context.Context, userID string, in dto.CreateMovementRequest) (*entity.Movement, error) {
	input := MovementInput{
		VariantID:  in.VariantID,
		LocationID: in.LocationID,
		Direction:  entity.Direction(strings.ToUpper(strings.TrimSpace(in.Direction))),
		ReasonCode: entity.ReasonCode(strings.ToUpper(in.ReasonCode)),
		Quantity:   in.Quantity,
		Unit:       in.Unit,
		UnitCost:   in.UnitCost,
		Currency:   in.Currency,
		Note:       in.Note,
		PIC:        in.PIC,
		CreatedBy:  userID,
	}
	if in.Identity != nil {
		input.Identity = &VariantRef{ProductID: in.Identity.ProductID, ColorID: in.Identity.ColorID, SizeID: in.Identity.SizeID}
	}
	if in.Reference != nil {
		input.Ref = entity.Reference{Table: in.Reference.Table, ID: in.Reference.ID, Code: in.Reference.Code}
	}
	return uc.CreateMovement(ctx, input)
}

// ListMovements lee el ledger con un filtro estructurado.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, f repository.MovementFilter) ([]entity.Movement, error) {
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, domain.Invalid("rango de fechas invertido")
	}
	var out []entity.Movement
	err := uc.txRunner.RunReadOnly(ctx, func(ctx context.Context, repos TxRepos) error {
		list, err := repos.Movements.List(ctx, f)
		if err != nil {
			return err
		}
		out = list
		return nil
	})
	return out, err
}

// validateMovement: 1) campos requeridos y cantidad > 0, 2) motivo dentro del conjunto de la dirección.
// La regla de stock insuficiente se evalúa después, bajo el bloqueo de la fila.
func validateMovement(in MovementInput) error {
	if in.VariantID <= 0 && in.Identity == nil {
		return domain.Invalid("variant_id o identity requerido")
	}
	if !in.Direction.Valid() {
		return domain.Invalid("direction debe ser IN u OUT")
	}
	if in.ReasonCode == "" {
		return domain.Invalid("reason_code requerido")
	}
	if in.Quantity <= 0 {
		return domain.Invalid("quantity debe ser mayor que cero")
	}
	if in.Direction == entity.DirectionOUT && in.LocationID <= 0 {
		return domain.Invalid("location_id requerido para salidas")
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return domain.Invalid("unit_cost no puede ser negativo")
	}
	if !in.ReasonCode.AllowedFor(in.Direction) {
		return fmt.Errorf("%w: %s no es válido para %s", domain.ErrInvalidReasonCode, in.ReasonCode, in.Direction)
	}
	return nil
}

func (uc *LedgerUseCase) createInTx(ctx context.Context, repos TxRepos, in MovementInput) (*entity.Movement, error) {
	variantID, err := uc.variantFor(ctx, repos, in)
	if err != nil {
		return nil, err
	}
	locationID, err := uc.locationFor(ctx, repos, in)
	if err != nil {
		return nil, err
	}
	// Bloquea la fila del saldo: el chequeo de stock y la escritura quedan bajo el mismo lock.
	bal, err := repos.Balances.GetForUpdate(ctx, variantID, locationID)
	if err != nil {
		return nil, err
	}
	m := uc.newMovement(in, variantID, locationID)
	if err := uc.apply(ctx, repos, m, bal); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *LedgerUseCase) newMovement(in MovementInput, variantID, locationID int64) *entity.Movement {
	unit := in.Unit
	if unit == "" {
		unit = uc.cfg.DefaultUnit
	}
	currency := strings.ToUpper(in.Currency)
	if currency == "" {
		currency = uc.cfg.DefaultCurrency
	}
	return &entity.Movement{
		VariantID:  variantID,
		LocationID: locationID,
		Direction:  in.Direction,
		ReasonCode: in.ReasonCode,
		Quantity:   in.Quantity,
		Unit:       unit,
		UnitCost:   in.UnitCost,
		Currency:   currency,
		Ref:        in.Ref,
		Note:       in.Note,
		PIC:        in.PIC,
		CreatedBy:  in.CreatedBy,
	}
}

// apply inserta el movimiento y actualiza el saldo ya bloqueado por el caller.
// IN: suma cantidad y recalcula el promedio si trae costo. OUT: verifica stock y resta; el promedio no cambia.
func (uc *LedgerUseCase) apply(ctx context.Context, repos TxRepos, m *entity.Movement, bal *entity.Balance) error {
	now := uc.now()
	switch m.Direction {
	case entity.DirectionIN:
		bal.AvgCost = invdomain.CostCalculator(bal.Quantity, bal.AvgCost, m.Quantity, m.UnitCost)
		bal.Quantity += m.Quantity
	case entity.DirectionOUT:
		if !uc.cfg.AllowNegativeStock && bal.Quantity < m.Quantity {
			return &domain.InsufficientStockError{
				VariantID:  m.VariantID,
				LocationID: m.LocationID,
				Available:  bal.Quantity,
				Required:   m.Quantity,
			}
		}
		bal.Quantity -= m.Quantity
	default:
		return domain.Invalid("direction desconocida %q", m.Direction)
	}
	m.CreatedAt = now
	if err := repos.Movements.Create(ctx, m); err != nil {
		return err
	}
	bal.UpdatedAt = now
	return repos.Balances.Update(ctx, bal)
}

func (uc *LedgerUseCase) variantFor(ctx context.Context, repos TxRepos, in MovementInput) (int64, error) {
	if in.VariantID > 0 {
		v, err := repos.Catalog.GetVariantByID(ctx, in.VariantID)
		if err != nil {
			return 0, err
		}
		if v == nil {
			return 0, fmt.Errorf("%w: variante %d", domain.ErrNotFound, in.VariantID)
		}
		return v.ID, nil
	}
	return uc.resolver.ResolveByIDsInTx(ctx, repos, in.Identity.ProductID, in.Identity.ColorID, in.Identity.SizeID)
}

func (uc *LedgerUseCase) locationFor(ctx context.Context, repos TxRepos, in MovementInput) (int64, error) {
	if in.LocationID <= 0 {
		// Entradas sin ubicación van a la ubicación por defecto.
		loc, err := repos.Locations.GetDefault(ctx)
		if err != nil {
			return 0, err
		}
		if loc == nil {
			return 0, fmt.Errorf("%w: no hay ubicación por defecto", domain.ErrNotFound)
		}
		return loc.ID, nil
	}
	loc, err := repos.Locations.GetByID(ctx, in.LocationID)
	if err != nil {
		return 0, err
	}
	if loc == nil {
		return 0, fmt.Errorf("%w: ubicación %d", domain.ErrNotFound, in.LocationID)
	}
	return loc.ID, nil
}
