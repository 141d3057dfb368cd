package inventory

import "github.com/jhoicas/stok-api/internal/domain/entity"

// OpnameSummary resumen de una sesión de conteo.
type OpnameSummary struct {
	TotalItems  int   `json:"total_items"`
	Counted     int   `json:"counted"`
	Positive    int   `json:"positive"`     // sobrantes (contado > sistema)
	Negative    int   `json:"negative"`     // faltantes (contado < sistema)
	NetVariance int64 `json:"net_variance"` // suma de varianzas contadas
}

// AdjustmentPlan ajuste que debe registrarse al confirmar el opname.
type AdjustmentPlan struct {
	Item       entity.OpnameItem
	Direction  entity.Direction
	ReasonCode entity.ReasonCode
	Quantity   int64
}

// SummarizeOpname calcula el resumen a partir de las líneas; la varianza nunca se almacena.
func SummarizeOpname(items []entity.OpnameItem) OpnameSummary {
	s := OpnameSummary{TotalItems: len(items)}
	for _, it := range items {
		if !it.Counted() {
			continue
		}
		s.Counted++
		v := it.Variance()
		switch {
		case v > 0:
			s.Positive++
		case v < 0:
			s.Negative++
		}
		s.NetVariance += v
	}
	return s
}

// PlanAdjustments devuelve un ajuste por cada línea contada con varianza distinta de cero:
// ADJUSTMENT_IN si sobra, ADJUSTMENT_OUT si falta, por |varianza|.
func PlanAdjustments(items []entity.OpnameItem) []AdjustmentPlan {
	var plans []AdjustmentPlan
	for _, it := range items {
		v := it.Variance()
		if !it.Counted() || v == 0 {
			continue
		}
		p := AdjustmentPlan{Item: it, Direction: entity.DirectionIN, ReasonCode: entity.ReasonAdjustmentIn, Quantity: v}
		if v < 0 {
			p.Direction = entity.DirectionOUT
			p.ReasonCode = entity.ReasonAdjustmentOut
			p.Quantity = -v
		}
		plans = append(plans, p)
	}
	return plans
}
