package inventory

import (
	"github.com/jhoicas/stok-api/internal/application/dto"
	"github.com/jhoicas/stok-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stok-api/internal/domain/inventory"
)

// ToMovementResponse convierte un movimiento del ledger a su DTO de salida.
func ToMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:         m.ID,
		VariantID:  m.VariantID,
		LocationID: m.LocationID,
		Direction:  string(m.Direction),
		ReasonCode: string(m.ReasonCode),
		Quantity:   m.Quantity,
		Unit:       m.Unit,
		UnitCost:   m.UnitCost,
		Currency:   m.Currency,
		Reference:  dto.ReferenceDTO{Table: m.Ref.Table, ID: m.Ref.ID, Code: m.Ref.Code},
		Note:       m.Note,
		PIC:        m.PIC,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
	}
}

func toOpnameItemResponse(it entity.OpnameItem) dto.OpnameItemResponse {
	out := dto.OpnameItemResponse{
		ID:         it.ID,
		VariantID:  it.VariantID,
		LocationID: it.LocationID,
		SystemQty:  it.SystemQty,
		CountedQty: it.CountedQty,
		Note:       it.Note,
		CountedBy:  it.CountedBy,
		CountedAt:  it.CountedAt,
	}
	if it.Counted() {
		v := it.Variance()
		out.VarianceQty = &v
	}
	return out
}

func toOpnameSummaryDTO(s invdomain.OpnameSummary) dto.OpnameSummaryDTO {
	return dto.OpnameSummaryDTO{
		TotalItems:  s.TotalItems,
		Counted:     s.Counted,
		Positive:    s.Positive,
		Negative:    s.Negative,
		NetVariance: s.NetVariance,
	}
}

func toOpnameSessionResponse(s *entity.OpnameSession, items []entity.OpnameItem, withItems bool) dto.OpnameSessionResponse {
	out := dto.OpnameSessionResponse{
		ID:          s.ID,
		Code:        s.Code,
		LocationID:  s.LocationID,
		Status:      string(s.Status),
		Note:        s.Note,
		SnapshotAt:  s.SnapshotAt,
		CompletedAt: s.CompletedAt,
		CreatedBy:   s.CreatedBy,
	}
	if items != nil {
		summary := toOpnameSummaryDTO(invdomain.SummarizeOpname(items))
		out.Summary = &summary
	}
	if withItems {
		out.Items = make([]dto.OpnameItemResponse, 0, len(items))
		for _, it := range items {
			out.Items = append(out.Items, toOpnameItemResponse(it))
		}
	}
	return out
}
