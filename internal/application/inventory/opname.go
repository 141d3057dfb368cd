package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stok-api/internal/application/dto"
	"github.com/jhoicas/stok-api/internal/domain"
	"github.com/jhoicas/stok-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stok-api/internal/domain/inventory"
	"github.com/rs/zerolog"
)

// OpnameRefTable tabla de referencia de los ajustes de opname.
const OpnameRefTable = "opname_sessions"

// StartOpnameInput entrada para iniciar una sesión. LocationID nil = todas las ubicaciones.
type StartOpnameInput struct {
	LocationID *int64
	Note       string
	CreatedBy  string
}

// CountInput conteo físico de una línea de la sesión.
type CountInput struct {
	SessionID  int64
	VariantID  int64
	LocationID int64
	CountedQty int64
	CountedBy  string
	Note       string
}

// OpnameUseCase flujo de stock opname: snapshot → conteo → confirmación con ajustes en el ledger.
type OpnameUseCase struct {
	txRunner TxRunner
	ledger   *LedgerUseCase
	log      zerolog.Logger
	now      func() time.Time
}

// NewOpnameUseCase construye el caso de uso.
func NewOpnameUseCase(txRunner TxRunner, ledger *LedgerUseCase, log zerolog.Logger) *OpnameUseCase {
	return &OpnameUseCase{
		txRunner: txRunner,
		ledger:   ledger,
		log:      log.With().Str("component", "opname").Logger(),
		now:      time.Now,
	}
}

// Start crea la sesión ACTIVE y copia a líneas los saldos positivos del alcance, en una sola transacción.
func (uc *OpnameUseCase) Start(ctx context.Context, in StartOpnameInput) (*dto.OpnameSessionResponse, error) {
	if in.LocationID != nil && *in.LocationID <= 0 {
		return nil, domain.Invalid("location_id inválido")
	}
	var (
		session *entity.OpnameSession
		items   []entity.OpnameItem
	)
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		if in.LocationID != nil {
			loc, err := repos.Locations.GetByID(ctx, *in.LocationID)
			if err != nil {
				return err
			}
			if loc == nil {
				return fmt.Errorf("%w: ubicación %d", domain.ErrNotFound, *in.LocationID)
			}
		}
		now := uc.now()
		session = &entity.OpnameSession{
			Code:       opnameCode(now),
			LocationID: in.LocationID,
			Status:     entity.OpnameActive,
			Note:       in.Note,
			SnapshotAt: now,
			CreatedBy:  in.CreatedBy,
			CreatedAt:  now,
		}
		if err := repos.Opname.CreateSession(ctx, session); err != nil {
			return err
		}
		bals, err := repos.Balances.ListPositive(ctx, in.LocationID)
		if err != nil {
			return err
		}
		items = make([]entity.OpnameItem, 0, len(bals))
		for _, b := range bals {
			items = append(items, entity.OpnameItem{
				SessionID:  session.ID,
				VariantID:  b.VariantID,
				LocationID: b.LocationID,
				SystemQty:  b.Quantity,
			})
		}
		if len(items) == 0 {
			return nil
		}
		return repos.Opname.InsertItems(ctx, items)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("session_id", session.ID).Str("code", session.Code).Int("items", len(items)).Msg("opname iniciado")
	out := toOpnameSessionResponse(session, items, true)
	return &out, nil
}

// UpdateCount registra el conteo de una línea existente. La sesión debe estar ACTIVE.
func (uc *OpnameUseCase) UpdateCount(ctx context.Context, in CountInput) (*dto.OpnameItemResponse, error) {
	if in.SessionID <= 0 || in.VariantID <= 0 || in.LocationID <= 0 {
		return nil, domain.Invalid("session_id, variant_id y location_id requeridos")
	}
	if in.CountedQty < 0 {
		return nil, domain.Invalid("counted_qty no puede ser negativo")
	}
	var item *entity.OpnameItem
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		if _, err := uc.activeSessionForUpdate(ctx, repos, in.SessionID); err != nil {
			return err
		}
		it, err := repos.Opname.GetItem(ctx, in.SessionID, in.VariantID, in.LocationID)
		if err != nil {
			return err
		}
		if it == nil {
			return fmt.Errorf("%w: línea (%d, %d) no existe en la sesión", domain.ErrNotFound, in.VariantID, in.LocationID)
		}
		now := uc.now()
		qty := in.CountedQty
		it.CountedQty = &qty
		it.CountedBy = in.CountedBy
		it.CountedAt = &now
		if in.Note != "" {
			it.Note = in.Note
		}
		item = it
		return repos.Opname.UpdateCount(ctx, it)
	})
	if err != nil {
		return nil, err
	}
	out := toOpnameItemResponse(*item)
	return &out, nil
}

// AddItem agrega una variante hallada durante el conteo que no estaba en el snapshot.
// system_qty es el saldo al momento de agregarla.
func (uc *OpnameUseCase) AddItem(ctx context.Context, sessionID, variantID, locationID int64) (*dto.OpnameItemResponse, error) {
	if sessionID <= 0 || variantID <= 0 || locationID <= 0 {
		return nil, domain.Invalid("session_id, variant_id y location_id requeridos")
	}
	var item *entity.OpnameItem
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		s, err := uc.activeSessionForUpdate(ctx, repos, sessionID)
		if err != nil {
			return err
		}
		if s.LocationID != nil && *s.LocationID != locationID {
			return domain.Invalid("la sesión %s solo cubre la ubicación %d", s.Code, *s.LocationID)
		}
		v, err := repos.Catalog.GetVariantByID(ctx, variantID)
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("%w: variante %d", domain.ErrNotFound, variantID)
		}
		loc, err := repos.Locations.GetByID(ctx, locationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return fmt.Errorf("%w: ubicación %d", domain.ErrNotFound, locationID)
		}
		bal, err := repos.Balances.Get(ctx, variantID, locationID)
		if err != nil {
			return err
		}
		item = &entity.OpnameItem{SessionID: sessionID, VariantID: variantID, LocationID: locationID, SystemQty: bal.Quantity}
		return repos.Opname.InsertItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	out := toOpnameItemResponse(*item)
	return &out, nil
}

// Commit registra un ajuste por cada línea contada con varianza y marca la sesión COMPLETED,
// todo en la misma transacción. Si un ajuste falla (p. ej. stock insuficiente) no se confirma nada.
func (uc *OpnameUseCase) Commit(ctx context.Context, sessionID int64, actor string) (*dto.OpnameCommitResponse, error) {
	if sessionID <= 0 {
		return nil, domain.Invalid("session_id requerido")
	}
	var (
		session *entity.OpnameSession
		items   []entity.OpnameItem
		movs    []*entity.Movement
	)
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		s, err := uc.activeSessionForUpdate(ctx, repos, sessionID)
		if err != nil {
			return err
		}
		session, movs = s, nil
		if items, err = repos.Opname.ListItems(ctx, sessionID); err != nil {
			return err
		}
		plans := invdomain.PlanAdjustments(items)
		// Orden fijo de bloqueo de saldos.
		sort.Slice(plans, func(i, j int) bool {
			if plans[i].Item.VariantID != plans[j].Item.VariantID {
				return plans[i].Item.VariantID < plans[j].Item.VariantID
			}
			return plans[i].Item.LocationID < plans[j].Item.LocationID
		})
		for _, p := range plans {
			m, err := uc.ledger.CreateMovementInTx(ctx, repos, MovementInput{
				VariantID:  p.Item.VariantID,
				LocationID: p.Item.LocationID,
				Direction:  p.Direction,
				ReasonCode: p.ReasonCode,
				Quantity:   p.Quantity,
				Ref:        entity.Reference{Table: OpnameRefTable, ID: s.ID, Code: s.Code},
				Note:       "stock opname " + s.Code,
				CreatedBy:  actor,
			})
			if err != nil {
				return fmt.Errorf("ajuste de variante %d en ubicación %d: %w", p.Item.VariantID, p.Item.LocationID, err)
			}
			movs = append(movs, m)
		}
		now := uc.now()
		s.Status = entity.OpnameCompleted
		s.CompletedAt = &now
		return repos.Opname.UpdateStatus(ctx, s.ID, s.Status, s.CompletedAt)
	})
	if err != nil {
		return nil, err
	}
	summary := invdomain.SummarizeOpname(items)
	uc.log.Info().
		Int64("session_id", session.ID).
		Str("code", session.Code).
		Int("adjustments", len(movs)).
		Int64("net_variance", summary.NetVariance).
		Msg("opname confirmado")

	out := &dto.OpnameCommitResponse{
		Session:     toOpnameSessionResponse(session, items, false),
		Adjustments: make([]dto.MovementResponse, 0, len(movs)),
		Summary:     toOpnameSummaryDTO(summary),
	}
	for _, m := range movs {
		out.Adjustments = append(out.Adjustments, ToMovementResponse(m))
	}
	return out, nil
}

// Cancel pasa la sesión ACTIVE a CANCELLED sin efecto en el ledger.
func (uc *OpnameUseCase) Cancel(ctx context.Context, sessionID int64) (*dto.OpnameSessionResponse, error) {
	if sessionID <= 0 {
		return nil, domain.Invalid("session_id requerido")
	}
	var session *entity.OpnameSession
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		s, err := uc.activeSessionForUpdate(ctx, repos, sessionID)
		if err != nil {
			return err
		}
		s.Status = entity.OpnameCancelled
		session = s
		return repos.Opname.UpdateStatus(ctx, s.ID, s.Status, nil)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("session_id", session.ID).Str("code", session.Code).Msg("opname cancelado")
	out := toOpnameSessionResponse(session, nil, false)
	return &out, nil
}

// Get devuelve la sesión con sus líneas y resumen.
func (uc *OpnameUseCase) Get(ctx context.Context, sessionID int64) (*dto.OpnameSessionResponse, error) {
	var out dto.OpnameSessionResponse
	err := uc.txRunner.RunReadOnly(ctx, func(ctx context.Context, repos TxRepos) error {
		s, err := repos.Opname.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("%w: sesión %d", domain.ErrNotFound, sessionID)
		}
		items, err := repos.Opname.ListItems(ctx, sessionID)
		if err != nil {
			return err
		}
		if items == nil {
			items = []entity.OpnameItem{}
		}
		out = toOpnameSessionResponse(s, items, true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List lista sesiones, opcionalmente por estado.
func (uc *OpnameUseCase) List(ctx context.Context, status string, limit, offset int) (*dto.OpnameListResponse, error) {
	st := entity.OpnameStatus(strings.ToUpper(status))
	switch st {
	case "", entity.OpnameDraft, entity.OpnameActive, entity.OpnameCompleted, entity.OpnameCancelled:
	default:
		return nil, domain.Invalid("status desconocido %q", status)
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var sessions []*entity.OpnameSession
	err := uc.txRunner.RunReadOnly(ctx, func(ctx context.Context, repos TxRepos) error {
		list, err := repos.Opname.ListSessions(ctx, st, limit, offset)
		sessions = list
		return err
	})
	if err != nil {
		return nil, err
	}
	out := &dto.OpnameListResponse{
		Items: make([]dto.OpnameSessionResponse, 0, len(sessions)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, s := range sessions {
		out.Items = append(out.Items, toOpnameSessionResponse(s, nil, false))
	}
	return out, nil
}

// activeSessionForUpdate bloquea la sesión y exige estado ACTIVE.
func (uc *OpnameUseCase) activeSessionForUpdate(ctx context.Context, repos TxRepos, id int64) (*entity.OpnameSession, error) {
	s, err := repos.Opname.GetSessionForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: sesión %d", domain.ErrNotFound, id)
	}
	if s.Status != entity.OpnameActive {
		return nil, fmt.Errorf("%w: sesión %s está %s", domain.ErrInvalidState, s.Code, s.Status)
	}
	return s, nil
}

func opnameCode(now time.Time) string {
	return fmt.Sprintf("OPN-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.New().String()[:6]))
}
