package repository

import (
	"context"

	"github.com/jhoicas/stok-api/internal/domain/entity"
)

// LocationRepository puerto de lectura de ubicaciones (el CRUD vive fuera del motor de stock).
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
	// FindByName busca sin distinguir mayúsculas.
	FindByName(ctx context.Context, name string) (*entity.Location, error)
	GetDefault(ctx context.Context) (*entity.Location, error)
	List(ctx context.Context) ([]*entity.Location, error)
}
