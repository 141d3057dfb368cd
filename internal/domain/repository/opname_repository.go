package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stok-api/internal/domain/entity"
)

// OpnameRepository puerto de persistencia de sesiones de stock opname y sus líneas.
type OpnameRepository interface {
	CreateSession(ctx context.Context, s *entity.OpnameSession) error
	GetSession(ctx context.Context, id int64) (*entity.OpnameSession, error)
	// GetSessionForUpdate bloquea la sesión; serializa Commit/Cancel concurrentes.
	GetSessionForUpdate(ctx context.Context, id int64) (*entity.OpnameSession, error)
	UpdateStatus(ctx context.Context, id int64, status entity.OpnameStatus, completedAt *time.Time) error
	ListSessions(ctx context.Context, status entity.OpnameStatus, limit, offset int) ([]*entity.OpnameSession, error)

	InsertItems(ctx context.Context, items []entity.OpnameItem) error
	// InsertItem devuelve domain.ErrDuplicate si el trío ya existe en la sesión.
	InsertItem(ctx context.Context, item *entity.OpnameItem) error
	GetItem(ctx context.Context, sessionID, variantID, locationID int64) (*entity.OpnameItem, error)
	UpdateCount(ctx context.Context, item *entity.OpnameItem) error
	ListItems(ctx context.Context, sessionID int64) ([]entity.OpnameItem, error)
}
