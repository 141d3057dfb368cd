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
)

// DefaultStockCardLimit líneas por defecto de la tarjeta de stock.
const DefaultStockCardLimit = 500

// StockCardQuery consulta de tarjeta de stock. From/To nil = sin límite; To nil = hasta ahora.
type StockCardQuery struct {
	VariantID  int64
	LocationID int64
	From       *time.Time
	To         *time.Time
	Limit      int
}

// StockCardUseCase construye tarjetas de stock (saldo inicial + saldo corrido por movimiento).
type StockCardUseCase struct {
	txRunner TxRunner
	maxLimit int
	log      zerolog.Logger
	now      func() time.Time
}

// NewStockCardUseCase construye el caso de uso. maxLimit <= 0 usa DefaultStockCardLimit.
func NewStockCardUseCase(txRunner TxRunner, maxLimit int, log zerolog.Logger) *StockCardUseCase {
	if maxLimit <= 0 {
		maxLimit = DefaultStockCardLimit
	}
	return &StockCardUseCase{
		txRunner: txRunner,
		maxLimit: maxLimit,
		log:      log.With().Str("component", "stock_card").Logger(),
		now:      time.Now,
	}
}

// StockCard lee la tarjeta sobre un snapshot consistente. Si la ventana llega hasta ahora y no se truncó,
// el saldo final debe coincidir con el saldo en caché; si no, devuelve ErrIntegrityFault sin corregir nada.
func (uc *StockCardUseCase) StockCard(ctx context.Context, q StockCardQuery) (*dto.StockCardResponse, error) {
	if q.VariantID <= 0 || q.LocationID <= 0 {
		return nil, domain.Invalid("variant_id y location_id requeridos")
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return nil, domain.Invalid("rango de fechas invertido")
	}
	limit := q.Limit
	if limit <= 0 || limit > uc.maxLimit {
		limit = uc.maxLimit
	}

	var out *dto.StockCardResponse
	err := uc.txRunner.RunReadOnly(ctx, func(ctx context.Context, repos TxRepos) error {
		v, err := repos.Catalog.GetVariantByID(ctx, q.VariantID)
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("%w: variante %d", domain.ErrNotFound, q.VariantID)
		}
		loc, err := repos.Locations.GetByID(ctx, q.LocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return fmt.Errorf("%w: ubicación %d", domain.ErrNotFound, q.LocationID)
		}
		label, err := variantLabel(ctx, repos, v)
		if err != nil {
			return err
		}

		opening := int64(0)
		if q.From != nil {
			if opening, err = repos.Movements.SumBefore(ctx, q.VariantID, q.LocationID, q.From); err != nil {
				return err
			}
		}
		// Se pide una fila extra para saber si la ventana quedó truncada.
		movs, err := repos.Movements.List(ctx, repository.MovementFilter{
			VariantID:  q.VariantID,
			LocationID: q.LocationID,
			From:       q.From,
			To:         q.To,
			Limit:      limit + 1,
			Ascending:  true,
		})
		if err != nil {
			return err
		}
		truncated := len(movs) > limit
		if truncated {
			movs = movs[:limit]
		}
		lines, closing := invdomain.ReplayStockCard(opening, movs)

		bal, err := repos.Balances.Get(ctx, q.VariantID, q.LocationID)
		if err != nil {
			return err
		}
		reachesNow := q.To == nil || !q.To.Before(uc.now())
		if reachesNow && !truncated && closing != bal.Quantity {
			uc.log.Error().
				Int64("variant_id", q.VariantID).
				Int64("location_id", q.LocationID).
				Int64("ledger_qty", closing).
				Int64("cached_qty", bal.Quantity).
				Msg("tarjeta de stock no cuadra con el saldo")
			return &domain.IntegrityFaultError{
				VariantID:  q.VariantID,
				LocationID: q.LocationID,
				LedgerQty:  closing,
				CachedQty:  bal.Quantity,
			}
		}

		card := &dto.StockCardResponse{
			VariantID:    q.VariantID,
			LocationID:   q.LocationID,
			VariantLabel: label,
			LocationName: loc.Name,
			From:         q.From,
			To:           q.To,
			OpeningQty:   opening,
			Lines:        make([]dto.StockCardLineDTO, 0, len(lines)),
			ClosingQty:   closing,
			CurrentQty:   bal.Quantity,
			AvgCost:      bal.AvgCost,
			Truncated:    truncated,
		}
		for _, l := range lines {
			card.Lines = append(card.Lines, dto.StockCardLineDTO{
				MovementID: l.Movement.ID,
				CreatedAt:  l.Movement.CreatedAt,
				ReasonCode: string(l.Movement.ReasonCode),
				RefCode:    l.Movement.Ref.Code,
				Note:       l.Movement.Note,
				QtyIn:      l.QtyIn,
				QtyOut:     l.QtyOut,
				Balance:    l.Balance,
			})
		}
		out = card
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// variantLabel arma "Producto / Color / Talla" para encabezados.
func variantLabel(ctx context.Context, repos TxRepos, v *entity.Variant) (string, error) {
	var parts []string
	p, err := repos.Catalog.GetProductByID(ctx, v.ProductID)
	if err != nil {
		return "", err
	}
	if p != nil {
		parts = append(parts, p.Name)
	}
	c, err := repos.Catalog.GetColorByID(ctx, v.ColorID)
	if err != nil {
		return "", err
	}
	if c != nil {
		parts = append(parts, c.Name)
	}
	s, err := repos.Catalog.GetSizeByID(ctx, v.SizeID)
	if err != nil {
		return "", err
	}
	if s != nil {
		parts = append(parts, s.Name)
	}
	return strings.Join(parts, " / "), nil
}
