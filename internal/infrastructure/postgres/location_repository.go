package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stok-api/internal/domain/entity"
	"github.com/jhoicas/stok-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo lectura de ubicaciones sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const selectLocation = `SELECT id, name, is_default, created_at FROM locations`

func (r *LocationRepo) scan(ctx context.Context, query string, args ...any) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(ctx, query, args...).Scan(&l.ID, &l.Name, &l.IsDefault, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	return r.scan(ctx, selectLocation+` WHERE id = $1`, id)
}

// FindByName busca por nombre sin distinguir mayúsculas.
func (r *LocationRepo) FindByName(ctx context.Context, name string) (*entity.Location, error) {
	return r.scan(ctx, selectLocation+` WHERE lower(name) = lower($1)`, name)
}

// GetDefault devuelve la ubicación marcada por defecto (la de menor ID si hubiera varias).
func (r *LocationRepo) GetDefault(ctx context.Context) (*entity.Location, error) {
	return r.scan(ctx, selectLocation+` WHERE is_default ORDER BY id LIMIT 1`)
}

// List lista todas las ubicaciones por ID.
func (r *LocationRepo) List(ctx context.Context) ([]*entity.Location, error) {
	rows, err := r.q.Query(ctx, selectLocation+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.IsDefault, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
