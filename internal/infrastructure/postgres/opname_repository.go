package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stok-api/internal/domain"
	"github.com/jhoicas/stok-api/internal/domain/entity"
	"github.com/jhoicas/stok-api/internal/domain/repository"
)

var _ repository.OpnameRepository = (*OpnameRepo)(nil)

// OpnameRepo sesiones y líneas de stock opname sobre PostgreSQL (usable con pool o tx).
type OpnameRepo struct {
	q Querier
}

// NewOpnameRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOpnameRepository(q Querier) *OpnameRepo {
	return &OpnameRepo{q: q}
}

// CreateSession persiste la sesión y completa su ID.
func (r *OpnameRepo) CreateSession(ctx context.Context, s *entity.OpnameSession) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO opname_sessions (code, location_id, status, note, snapshot_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		s.Code, s.LocationID, string(s.Status), nullString(s.Note), s.SnapshotAt, nullString(s.CreatedBy), s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sesión %s", domain.ErrDuplicate, s.Code)
		}
		return fmt.Errorf("create opname session: %w", err)
	}
	return nil
}

const selectSession = `
	SELECT id, code, location_id, status, note, snapshot_at, completed_at, created_by, created_at
	FROM opname_sessions`

func scanSession(row pgx.Row) (*entity.OpnameSession, error) {
	var (
		s             entity.OpnameSession
		status        string
		note, creator *string
	)
	if err := row.Scan(&s.ID, &s.Code, &s.LocationID, &status, &note, &s.SnapshotAt, &s.CompletedAt, &creator, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.Status = entity.OpnameStatus(status)
	s.Note = derefString(note)
	s.CreatedBy = derefString(creator)
	return &s, nil
}

// GetSession obtiene una sesión por ID (nil si no existe).
func (r *OpnameRepo) GetSession(ctx context.Context, id int64) (*entity.OpnameSession, error) {
	s, err := scanSession(r.q.QueryRow(ctx, selectSession+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get opname session: %w", err)
	}
	return s, nil
}

// GetSessionForUpdate obtiene la sesión y bloquea su fila.
func (r *OpnameRepo) GetSessionForUpdate(ctx context.Context, id int64) (*entity.OpnameSession, error) {
	s, err := scanSession(r.q.QueryRow(ctx, selectSession+` WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get opname session for update: %w", err)
	}
	return s, nil
}

// UpdateStatus cambia el estado de la sesión.
func (r *OpnameRepo) UpdateStatus(ctx context.Context, id int64, status entity.OpnameStatus, completedAt *time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE opname_sessions SET status = $2, completed_at = $3 WHERE id = $1`,
		id, string(status), completedAt)
	if err != nil {
		return fmt.Errorf("update opname status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: sesión %d", domain.ErrNotFound, id)
	}
	return nil
}

// ListSessions lista sesiones, la más reciente primero.
func (r *OpnameRepo) ListSessions(ctx context.Context, status entity.OpnameStatus, limit, offset int) ([]*entity.OpnameSession, error) {
	var p predicates
	p.add("status = ?", string(status))
	query := selectSession + p.where() + ` ORDER BY created_at DESC, id DESC`
	query += p.page(limit, offset)
	rows, err := r.q.Query(ctx, query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("list opname sessions: %w", err)
	}
	defer rows.Close()
	var list []*entity.OpnameSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan opname session: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// InsertItems inserta el snapshot en un solo batch y completa los IDs.
func (r *OpnameRepo) InsertItems(ctx context.Context, items []entity.OpnameItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(`
			INSERT INTO opname_items (session_id, variant_id, location_id, system_qty)
			VALUES ($1, $2, $3, $4)
			RETURNING id`, it.SessionID, it.VariantID, it.LocationID, it.SystemQty)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for i := range items {
		if err := br.QueryRow().Scan(&items[i].ID); err != nil {
			return fmt.Errorf("insert opname items: %w", err)
		}
	}
	return br.Close()
}

// InsertItem agrega una línea; ErrDuplicate si el trío ya está en la sesión.
func (r *OpnameRepo) InsertItem(ctx context.Context, it *entity.OpnameItem) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO opname_items (session_id, variant_id, location_id, system_qty)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, it.SessionID, it.VariantID, it.LocationID, it.SystemQty).Scan(&it.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: variante %d en ubicación %d ya está en la sesión", domain.ErrDuplicate, it.VariantID, it.LocationID)
		}
		return fmt.Errorf("insert opname item: %w", err)
	}
	return nil
}

const selectItem = `
	SELECT id, session_id, variant_id, location_id, system_qty, counted_qty, note, counted_by, counted_at
	FROM opname_items`

func scanItem(row pgx.Row) (entity.OpnameItem, error) {
	var (
		it              entity.OpnameItem
		note, countedBy *string
	)
	err := row.Scan(&it.ID, &it.SessionID, &it.VariantID, &it.LocationID, &it.SystemQty,
		&it.CountedQty, &note, &countedBy, &it.CountedAt)
	it.Note = derefString(note)
	it.CountedBy = derefString(countedBy)
	return it, err
}

// GetItem obtiene la línea del trío (nil si no existe).
func (r *OpnameRepo) GetItem(ctx context.Context, sessionID, variantID, locationID int64) (*entity.OpnameItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, selectItem+`
		WHERE session_id = $1 AND variant_id = $2 AND location_id = $3`, sessionID, variantID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get opname item: %w", err)
	}
	return &it, nil
}

// UpdateCount guarda el conteo de la línea.
func (r *OpnameRepo) UpdateCount(ctx context.Context, it *entity.OpnameItem) error {
	_, err := r.q.Exec(ctx, `
		UPDATE opname_items SET counted_qty = $2, note = $3, counted_by = $4, counted_at = $5
		WHERE id = $1`, it.ID, it.CountedQty, nullString(it.Note), nullString(it.CountedBy), it.CountedAt)
	if err != nil {
		return fmt.Errorf("update opname count: %w", err)
	}
	return nil
}

// ListItems líneas de la sesión en orden (variante, ubicación).
func (r *OpnameRepo) ListItems(ctx context.Context, sessionID int64) ([]entity.OpnameItem, error) {
	rows, err := r.q.Query(ctx, selectItem+` WHERE session_id = $1 ORDER BY variant_id, location_id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list opname items: %w", err)
	}
	defer rows.Close()
	var list []entity.OpnameItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan opname item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
