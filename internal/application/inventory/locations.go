package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stok-api/internal/application/dto"
	"github.com/jhoicas/stok-api/internal/domain"
	"github.com/jhoicas/stok-api/internal/domain/entity"
)

// LocationUseCase lectura de ubicaciones para los clientes del motor de stock.
type LocationUseCase struct {
	txRunner TxRunner
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(txRunner TxRunner) *LocationUseCase {
	return &LocationUseCase{txRunner: txRunner}
}

// List devuelve todas las ubicaciones por id.
func (uc *LocationUseCase) List(ctx context.Context) (*dto.LocationListResponse, error) {
	out := &dto.LocationListResponse{Items: []dto.LocationResponse{}}
	err := uc.txRunner.RunReadOnly(ctx, func(ctx context.Context, repos TxRepos) error {
		list, err := repos.Locations.List(ctx)
		if err != nil {
			return err
		}
		out.Items = out.Items[:0]
		for _, l := range list {
			out.Items = append(out.Items, toLocationResponse(l))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID devuelve una ubicación o ErrNotFound.
func (uc *LocationUseCase) GetByID(ctx context.Context, id int64) (*dto.LocationResponse, error) {
	var out *dto.LocationResponse
	err := uc.txRunner.RunReadOnly(ctx, func(ctx context.Context, repos TxRepos) error {
		l, err := repos.Locations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if l == nil {
			return fmt.Errorf("%w: ubicación %d", domain.ErrNotFound, id)
		}
		r := toLocationResponse(l)
		out = &r
		return nil
	})
	return out, err
}

func toLocationResponse(l *entity.Location) dto.LocationResponse {
	return dto.LocationResponse{ID: l.ID, Name: l.Name, IsDefault: l.IsDefault, CreatedAt: l.CreatedAt}
}
