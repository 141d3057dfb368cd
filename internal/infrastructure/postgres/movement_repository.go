package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stok-api/internal/domain/entity"
	"github.com/jhoicas/stok-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo ledger de movimientos sobre PostgreSQL (usable con pool o tx). Solo INSERT y SELECT.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento y completa su ID.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (variant_id, location_id, direction, reason_code, quantity, unit, unit_cost,
			currency, ref_table, ref_id, ref_code, note, pic, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`
	var unitCost *decimal.Decimal
	if m.UnitCost != nil {
		c := m.UnitCost.Round(4)
		unitCost = &c
	}
	err := r.q.QueryRow(ctx, query,
		m.VariantID, m.LocationID, string(m.Direction), string(m.ReasonCode), m.Quantity, m.Unit, unitCost,
		m.Currency, nullString(m.Ref.Table), nullInt64(m.Ref.ID), nullString(m.Ref.Code),
		nullString(m.Note), nullString(m.PIC), nullString(m.CreatedBy), m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List lista movimientos según el filtro; orden (created_at, id) ascendente o descendente.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]entity.Movement, error) {
	var p predicates
	p.add("variant_id = ?", f.VariantID)
	p.add("location_id = ?", f.LocationID)
	p.add("direction = ?", string(f.Direction))
	p.add("reason_code = ?", string(f.ReasonCode))
	p.add("ref_table = ?", f.RefTable)
	p.add("ref_code = ?", f.RefCode)
	if f.From != nil {
		p.addAlways("created_at >= ?", *f.From)
	}
	if f.To != nil {
		p.addAlways("created_at <= ?", *f.To)
	}
	order := " ORDER BY created_at DESC, id DESC"
	if f.Ascending {
		order = " ORDER BY created_at, id"
	}
	query := `
		SELECT id, variant_id, location_id, direction, reason_code, quantity, unit, unit_cost, currency,
			ref_table, ref_id, ref_code, note, pic, created_by, created_at
		FROM stock_movements` + p.where() + order
	query += p.page(f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(rows pgx.Rows) (entity.Movement, error) {
	var (
		m                                     entity.Movement
		direction, reason                     string
		refTable, refCode, note, pic, creator *string
		refID                                 *int64
	)
	if err := rows.Scan(&m.ID, &m.VariantID, &m.LocationID, &direction, &reason, &m.Quantity, &m.Unit,
		&m.UnitCost, &m.Currency, &refTable, &refID, &refCode, &note, &pic, &creator, &m.CreatedAt); err != nil {
		return m, fmt.Errorf("scan stock movement: %w", err)
	}
	m.Direction = entity.Direction(direction)
	m.ReasonCode = entity.ReasonCode(reason)
	m.Ref = entity.Reference{Table: derefString(refTable), ID: derefInt64(refID), Code: derefString(refCode)}
	m.Note = derefString(note)
	m.PIC = derefString(pic)
	m.CreatedBy = derefString(creator)
	return m, nil
}

// SumBefore suma con signo los movimientos del par con created_at < before.
func (r *MovementRepo) SumBefore(ctx context.Context, variantID, locationID int64, before *time.Time) (int64, error) {
	var p predicates
	p.addAlways("variant_id = ?", variantID)
	p.addAlways("location_id = ?", locationID)
	if before != nil {
		p.addAlways("created_at < ?", *before)
	}
	query := `SELECT COALESCE(SUM(CASE WHEN direction = 'IN' THEN quantity ELSE -quantity END), 0)::bigint
		FROM stock_movements` + p.where()
	var sum int64
	if err := r.q.QueryRow(ctx, query, p.args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum stock movements: %w", err)
	}
	return sum, nil
}

// SumsByPair reproduce el ledger completo agrupado por (variante, ubicación).
func (r *MovementRepo) SumsByPair(ctx context.Context) ([]repository.PairSum, error) {
	rows, err := r.q.Query(ctx, `
		SELECT variant_id, location_id,
			COALESCE(SUM(CASE WHEN direction = 'IN' THEN quantity ELSE -quantity END), 0)::bigint
		FROM stock_movements
		GROUP BY variant_id, location_id
		ORDER BY variant_id, location_id`)
	if err != nil {
		return nil, fmt.Errorf("sums by pair: %w", err)
	}
	defer rows.Close()
	var list []repository.PairSum
	for rows.Next() {
		var s repository.PairSum
		if err := rows.Scan(&s.VariantID, &s.LocationID, &s.Quantity); err != nil {
			return nil, fmt.Errorf("scan pair sum: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
