package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/stok-api/internal/application/dto"
	"github.com/jhoicas/stok-api/internal/domain"
	"github.com/jhoicas/stok-api/internal/domain/entity"
)

// TransferRefTable tabla de referencia de los movimientos de traslado.
const TransferRefTable = "stock_transfers"

// TransferInput entrada para trasladar stock entre ubicaciones.
type TransferInput struct {
	VariantID      int64
	Identity       *VariantRef
	FromLocationID int64
	ToLocationID   int64
	Quantity       int64
	Ref            entity.Reference
	Note           string
	PIC            string
	CreatedBy      string
}

// Transfer registra TRANSFER_OUT en origen y TRANSFER_IN en destino con el mismo código de referencia,
// en una sola transacción: o se confirman ambos movimientos y saldos, o ninguno.
func (uc *LedgerUseCase) Transfer(ctx context.Context, in TransferInput) (*entity.Movement, *entity.Movement, error) {
	if in.VariantID <= 0 && in.Identity == nil {
		return nil, nil, domain.Invalid("variant_id o identity requerido")
	}
	if in.FromLocationID <= 0 || in.ToLocationID <= 0 {
		return nil, nil, domain.Invalid("from_location_id y to_location_id requeridos")
	}
	if in.FromLocationID == in.ToLocationID {
		return nil, nil, domain.Invalid("origen y destino deben ser distintos")
	}
	if in.Quantity <= 0 {
		return nil, nil, domain.Invalid("quantity debe ser mayor que cero")
	}
	ref := in.Ref
	if ref.Code == "" {
		ref.Code = "TRF-" + strings.ToUpper(uuid.New().String()[:8])
	}
	if ref.Table == "" {
		ref.Table = TransferRefTable
	}

	var outMov, inMov *entity.Movement
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		variantID, err := uc.variantFor(ctx, repos, MovementInput{VariantID: in.VariantID, Identity: in.Identity})
		if err != nil {
			return err
		}
		for _, id := range []int64{in.FromLocationID, in.ToLocationID} {
			loc, err := repos.Locations.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if loc == nil {
				return fmt.Errorf("%w: ubicación %d", domain.ErrNotFound, id)
			}
		}

		// Bloqueo en orden ascendente de ubicación.
		first, second := in.FromLocationID, in.ToLocationID
		if second < first {
			first, second = second, first
		}
		balFirst, err := repos.Balances.GetForUpdate(ctx, variantID, first)
		if err != nil {
			return err
		}
		balSecond, err := repos.Balances.GetForUpdate(ctx, variantID, second)
		if err != nil {
			return err
		}
		src, dst := balFirst, balSecond
		if first != in.FromLocationID {
			src, dst = balSecond, balFirst
		}

		srcCost := src.AvgCost
		outMov = uc.newMovement(MovementInput{
			Direction:  entity.DirectionOUT,
			ReasonCode: entity.ReasonTransferOut,
			Quantity:   in.Quantity,
			Ref:        ref,
			Note:       in.Note,
			PIC:        in.PIC,
			CreatedBy:  in.CreatedBy,
		}, variantID, in.FromLocationID)
		if err := uc.apply(ctx, repos, outMov, src); err != nil {
			return err
		}

		// La entrada lleva el costo promedio del origen.
		unitCost := &srcCost
		if !srcCost.IsPositive() {
			unitCost = nil
		}
		inMov = uc.newMovement(MovementInput{
			Direction:  entity.DirectionIN,
			ReasonCode: entity.ReasonTransferIn,
			Quantity:   in.Quantity,
			UnitCost:   unitCost,
			Ref:        ref,
			Note:       in.Note,
			PIC:        in.PIC,
			CreatedBy:  in.CreatedBy,
		}, variantID, in.ToLocationID)
		return uc.apply(ctx, repos, inMov, dst)
	})
	if err != nil {
		return nil, nil, err
	}
	uc.log.Info().
		Str("ref_code", ref.Code).
		Int64("variant_id", outMov.VariantID).
		Int64("from", in.FromLocationID).
		Int64("to", in.ToLocationID).
		Int64("qty", in.Quantity).
		Msg("traslado registrado")
	return outMov, inMov, nil
}

// TransferFromRequest adapta el request HTTP al traslado.
func (uc *LedgerUseCase) TransferFromRequest(ctx context.Context, userID string, in dto.TransferRequest) (*entity.Movement, *entity.Movement, error) {
	input := TransferInput{
		VariantID:      in.VariantID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Note:           in.Note,
		PIC:            in.PIC,
		CreatedBy:      userID,
	}
	if in.Identity != nil {
		input.Identity = &VariantRef{ProductID: in.Identity.ProductID, ColorID: in.Identity.ColorID, SizeID: in.Identity.SizeID}
	}
	if in.Reference != nil {
		input.Ref = entity.Reference{Table: in.Reference.Table, ID: in.Reference.ID, Code: in.Reference.Code}
	}
	return uc.Transfer(ctx, input)
}
