package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stok-api/internal/domain/entity"
	"github.com/jhoicas/stok-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo saldo en caché por (variante, ubicación) sobre PostgreSQL (usable con pool o tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// EnsureZero crea filas en cero para las ubicaciones dadas; las existentes no se tocan.
func (r *BalanceRepo) EnsureZero(ctx context.Context, variantID int64, locationIDs []int64) error {
	if len(locationIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_balances (variant_id, location_id, quantity, avg_cost, updated_at)
		SELECT $1, loc, 0, 0, now() FROM unnest($2::bigint[]) AS loc
		ON CONFLICT (variant_id, location_id) DO NOTHING`, variantID, locationIDs)
	if err != nil {
		return fmt.Errorf("ensure zero balances: %w", err)
	}
	return nil
}

// Get obtiene el saldo sin bloquear; saldo cero si no hay fila.
func (r *BalanceRepo) Get(ctx context.Context, variantID, locationID int64) (*entity.Balance, error) {
	query := `
		SELECT variant_id, location_id, quantity, avg_cost, updated_at
		FROM stock_balances WHERE variant_id = $1 AND location_id = $2`
	var b entity.Balance
	err := r.q.QueryRow(ctx, query, variantID, locationID).Scan(
		&b.VariantID, &b.LocationID, &b.Quantity, &b.AvgCost, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Balance{VariantID: variantID, LocationID: locationID, AvgCost: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate garantiza la fila y la bloquea (SELECT FOR UPDATE) hasta el fin de la transacción.
func (r *BalanceRepo) GetForUpdate(ctx context.Context, variantID, locationID int64) (*entity.Balance, error) {
	if err := r.EnsureZero(ctx, variantID, []int64{locationID}); err != nil {
		return nil, err
	}
	query := `
		SELECT variant_id, location_id, quantity, avg_cost, updated_at
		FROM stock_balances WHERE variant_id = $1 AND location_id = $2
		FOR UPDATE`
	var b entity.Balance
	err := r.q.QueryRow(ctx, query, variantID, locationID).Scan(
		&b.VariantID, &b.LocationID, &b.Quantity, &b.AvgCost, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return &b, nil
}

// Update escribe cantidad y costo promedio de una fila ya existente.
func (r *BalanceRepo) Update(ctx context.Context, b *entity.Balance) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stock_balances SET quantity = $3, avg_cost = $4, updated_at = $5
		WHERE variant_id = $1 AND location_id = $2`,
		b.VariantID, b.LocationID, b.Quantity, b.AvgCost.Round(4), b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update balance: fila (%d, %d) inexistente", b.VariantID, b.LocationID)
	}
	return nil
}

// ListPositive saldos con cantidad > 0, en orden (variante, ubicación).
func (r *BalanceRepo) ListPositive(ctx context.Context, locationID *int64) ([]entity.Balance, error) {
	var p predicates
	p.raw("quantity > 0")
	if locationID != nil {
		p.addAlways("location_id = ?", *locationID)
	}
	return r.list(ctx, p)
}

// ListAll todos los saldos, en orden (variante, ubicación).
func (r *BalanceRepo) ListAll(ctx context.Context) ([]entity.Balance, error) {
	return r.list(ctx, predicates{})
}

func (r *BalanceRepo) list(ctx context.Context, p predicates) ([]entity.Balance, error) {
	query := `SELECT variant_id, location_id, quantity, avg_cost, updated_at FROM stock_balances` +
		p.where() + ` ORDER BY variant_id, location_id`
	rows, err := r.q.Query(ctx, query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()
	var list []entity.Balance
	for rows.Next() {
		var b entity.Balance
		if err := rows.Scan(&b.VariantID, &b.LocationID, &b.Quantity, &b.AvgCost, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// ListDetailed saldos con nombres de catálogo para el árbol de inventario.
func (r *BalanceRepo) ListDetailed(ctx context.Context, f repository.BalanceFilter) ([]repository.BalanceRow, error) {
	var p predicates
	p.add("p.id = ?", f.ProductID)
	p.add("c.id = ?", f.ColorID)
	p.add("b.location_id = ?", f.LocationID)
	if f.OnlyPositive {
		p.raw("b.quantity > 0")
	}
	if f.Search != "" {
		p.addAlways("p.name ILIKE ?", "%"+f.Search+"%")
	}
	query := `
		SELECT b.variant_id, p.id, p.name, c.id, c.name, c.hex, s.id, s.name, s.sort_order,
			l.id, l.name, b.quantity, b.avg_cost, b.updated_at
		FROM stock_balances b
		JOIN variants v ON v.id = b.variant_id
		JOIN product_colors pc ON pc.id = v.product_color_id
		JOIN products p ON p.id = pc.product_id
		JOIN colors c ON c.id = pc.color_id
		JOIN sizes s ON s.id = v.size_id
		JOIN locations l ON l.id = b.location_id` + p.where() + `
		ORDER BY p.name, c.name, l.name, s.sort_order, s.name`
	rows, err := r.q.Query(ctx, query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("list detailed balances: %w", err)
	}
	defer rows.Close()
	var list []repository.BalanceRow
	for rows.Next() {
		var b repository.BalanceRow
		if err := rows.Scan(&b.VariantID, &b.ProductID, &b.ProductName, &b.ColorID, &b.ColorName, &b.ColorHex,
			&b.SizeID, &b.SizeName, &b.SizeSortOrder, &b.LocationID, &b.LocationName,
			&b.Quantity, &b.AvgCost, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan balance row: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
