package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/stok-api/internal/application/dto"
	"github.com/jhoicas/stok-api/internal/domain"
	"github.com/jhoicas/stok-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// BalanceUseCase lecturas del saldo en caché: árbol de inventario y verificación contra el ledger.
type BalanceUseCase struct {
	txRunner TxRunner
	log      zerolog.Logger
}

// NewBalanceUseCase construye el caso de uso.
func NewBalanceUseCase(txRunner TxRunner, log zerolog.Logger) *BalanceUseCase {
	return &BalanceUseCase{txRunner: txRunner, log: log.With().Str("component", "balances").Logger()}
}

// Tree agrupa los saldos por producto+color → ubicación → talla, con totales por nivel.
func (uc *BalanceUseCase) Tree(ctx context.Context, f repository.BalanceFilter) ([]dto.ProductColorBalanceDTO, error) {
	var rows []repository.BalanceRow
	err := uc.txRunner.RunReadOnly(ctx, func(ctx context.Context, repos TxRepos) error {
		list, err := repos.Balances.ListDetailed(ctx, f)
		rows = list
		return err
	})
	if err != nil {
		return nil, err
	}
	return BuildBalanceTree(rows), nil
}

// BuildBalanceTree arma el árbol a partir de filas planas, en orden estable:
// producto, color, ubicación por nombre y tallas por sort_order.
func BuildBalanceTree(rows []repository.BalanceRow) []dto.ProductColorBalanceDTO {
	sorted := make([]repository.BalanceRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.ProductName != b.ProductName {
			return a.ProductName < b.ProductName
		}
		if a.ColorName != b.ColorName {
			return a.ColorName < b.ColorName
		}
		if a.LocationName != b.LocationName {
			return a.LocationName < b.LocationName
		}
		if a.SizeSortOrder != b.SizeSortOrder {
			return a.SizeSortOrder < b.SizeSortOrder
		}
		return a.SizeName < b.SizeName
	})

	tree := []dto.ProductColorBalanceDTO{}
	for _, r := range sorted {
		n := len(tree)
		if n == 0 || tree[n-1].ProductID != r.ProductID || tree[n-1].ColorID != r.ColorID {
			tree = append(tree, dto.ProductColorBalanceDTO{
				ProductID:   r.ProductID,
				ProductName: r.ProductName,
				ColorID:     r.ColorID,
				ColorName:   r.ColorName,
				ColorHex:    r.ColorHex,
			})
			n++
		}
		group := &tree[n-1]
		m := len(group.Locations)
		if m == 0 || group.Locations[m-1].LocationID != r.LocationID {
			group.Locations = append(group.Locations, dto.LocationBalanceDTO{
				LocationID:   r.LocationID,
				LocationName: r.LocationName,
			})
			m++
		}
		loc := &group.Locations[m-1]
		loc.Sizes = append(loc.Sizes, dto.SizeBalanceDTO{
			SizeID:    r.SizeID,
			SizeName:  r.SizeName,
			SortOrder: r.SizeSortOrder,
			VariantID: r.VariantID,
			Quantity:  r.Quantity,
			AvgCost:   r.AvgCost,
		})
		loc.Total += r.Quantity
		group.Total += r.Quantity
	}
	return tree
}

// VerifyLedger reproduce el ledger completo y lo compara con cada saldo en caché.
// Si hay diferencias devuelve el reporte junto con ErrIntegrityFault; nunca corrige los saldos.
func (uc *BalanceUseCase) VerifyLedger(ctx context.Context) (*dto.IntegrityReport, error) {
	type pair struct{ variant, location int64 }
	ledger := map[pair]int64{}
	cached := map[pair]int64{}
	err := uc.txRunner.RunReadOnly(ctx, func(ctx context.Context, repos TxRepos) error {
		sums, err := repos.Movements.SumsByPair(ctx)
		if err != nil {
			return err
		}
		for _, s := range sums {
			ledger[pair{s.VariantID, s.LocationID}] = s.Quantity
		}
		bals, err := repos.Balances.ListAll(ctx)
		if err != nil {
			return err
		}
		for _, b := range bals {
			cached[pair{b.VariantID, b.LocationID}] = b.Quantity
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	keys := make([]pair, 0, len(cached)+len(ledger))
	for k := range cached {
		keys = append(keys, k)
	}
	for k := range ledger {
		if _, ok := cached[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].variant != keys[j].variant {
			return keys[i].variant < keys[j].variant
		}
		return keys[i].location < keys[j].location
	})

	report := &dto.IntegrityReport{CheckedPairs: len(keys), Drifts: []dto.BalanceDriftDTO{}}
	for _, k := range keys {
		if ledger[k] != cached[k] {
			report.Drifts = append(report.Drifts, dto.BalanceDriftDTO{
				VariantID:  k.variant,
				LocationID: k.location,
				LedgerQty:  ledger[k],
				CachedQty:  cached[k],
			})
		}
	}
	if len(report.Drifts) > 0 {
		uc.log.Error().Int("drifts", len(report.Drifts)).Int("checked", report.CheckedPairs).Msg("ledger y saldos no cuadran")
		return report, fmt.Errorf("%w: %d pares con diferencias", domain.ErrIntegrityFault, len(report.Drifts))
	}
	uc.log.Info().Int("checked", report.CheckedPairs).Msg("ledger verificado")
	return report, nil
}
