package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stok-api/internal/domain/entity"
	"github.com/jhoicas/stok-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo cadena de identidad de variantes sobre PostgreSQL (usable con pool o tx).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// GetProductByID obtiene un producto por ID.
func (r *CatalogRepo) GetProductByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.scanProduct(ctx, `SELECT id, name, created_at FROM products WHERE id = $1`, id)
}

// FindProductByName busca por nombre sin distinguir mayúsculas.
func (r *CatalogRepo) FindProductByName(ctx context.Context, name string) (*entity.Product, error) {
	return r.scanProduct(ctx, `SELECT id, name, created_at FROM products WHERE lower(name) = lower($1)`, name)
}

func (r *CatalogRepo) scanProduct(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, arg).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// InsertProduct inserta el producto; si el nombre ya existe devuelve la fila existente con created=false.
func (r *CatalogRepo) InsertProduct(ctx context.Context, p *entity.Product) (bool, error) {
	err := r.q.QueryRow(ctx, `
		INSERT INTO products (name) VALUES ($1)
		ON CONFLICT DO NOTHING
		RETURNING id, created_at`, p.Name).Scan(&p.ID, &p.CreatedAt)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("insert product: %w", err)
	}
	existing, err := r.FindProductByName(ctx, p.Name)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, fmt.Errorf("insert product: conflicto sin fila para %q", p.Name)
	}
	*p = *existing
	return false, nil
}

// GetColorByID obtiene un color por ID.
func (r *CatalogRepo) GetColorByID(ctx context.Context, id int64) (*entity.Color, error) {
	return r.scanColor(ctx, `SELECT id, name, hex, created_at FROM colors WHERE id = $1`, id)
}

// FindColorByName busca por nombre sin distinguir mayúsculas.
func (r *CatalogRepo) FindColorByName(ctx context.Context, name string) (*entity.Color, error) {
	return r.scanColor(ctx, `SELECT id, name, hex, created_at FROM colors WHERE lower(name) = lower($1)`, name)
}

func (r *CatalogRepo) scanColor(ctx context.Context, query string, arg any) (*entity.Color, error) {
	var c entity.Color
	err := r.q.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Hex, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get color: %w", err)
	}
	return &c, nil
}

// InsertColor inserta el color; idempotente por nombre.
func (r *CatalogRepo) InsertColor(ctx context.Context, c *entity.Color) (bool, error) {
	err := r.q.QueryRow(ctx, `
		INSERT INTO colors (name, hex) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
		RETURNING id, created_at`, c.Name, c.Hex).Scan(&c.ID, &c.CreatedAt)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("insert color: %w", err)
	}
	existing, err := r.FindColorByName(ctx, c.Name)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, fmt.Errorf("insert color: conflicto sin fila para %q", c.Name)
	}
	*c = *existing
	return false, nil
}

// GetSizeByID obtiene una talla por ID.
func (r *CatalogRepo) GetSizeByID(ctx context.Context, id int64) (*entity.Size, error) {
	return r.scanSize(ctx, `SELECT id, name, sort_order, created_at FROM sizes WHERE id = $1`, id)
}

// FindSizeByName busca por nombre sin distinguir mayúsculas.
func (r *CatalogRepo) FindSizeByName(ctx context.Context, name string) (*entity.Size, error) {
	return r.scanSize(ctx, `SELECT id, name, sort_order, created_at FROM sizes WHERE upper(name) = upper($1)`, name)
}

func (r *CatalogRepo) scanSize(ctx context.Context, query string, arg any) (*entity.Size, error) {
	var s entity.Size
	err := r.q.QueryRow(ctx, query, arg).Scan(&s.ID, &s.Name, &s.SortOrder, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get size: %w", err)
	}
	return &s, nil
}

// InsertSize inserta la talla; idempotente por nombre.
func (r *CatalogRepo) InsertSize(ctx context.Context, s *entity.Size) (bool, error) {
	err := r.q.QueryRow(ctx, `
		INSERT INTO sizes (name, sort_order) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
		RETURNING id, created_at`, s.Name, s.SortOrder).Scan(&s.ID, &s.CreatedAt)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("insert size: %w", err)
	}
	existing, err := r.FindSizeByName(ctx, s.Name)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, fmt.Errorf("insert size: conflicto sin fila para %q", s.Name)
	}
	*s = *existing
	return false, nil
}

// MaxSizeSortOrder devuelve el mayor sort_order registrado (0 si no hay tallas).
func (r *CatalogRepo) MaxSizeSortOrder(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(sort_order), 0) FROM sizes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("max size sort order: %w", err)
	}
	return n, nil
}

// GetProductColor obtiene el vínculo producto-color.
func (r *CatalogRepo) GetProductColor(ctx context.Context, productID, colorID int64) (*entity.ProductColor, error) {
	var pc entity.ProductColor
	err := r.q.QueryRow(ctx, `
		SELECT id, product_id, color_id FROM product_colors
		WHERE product_id = $1 AND color_id = $2`, productID, colorID).Scan(&pc.ID, &pc.ProductID, &pc.ColorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product color: %w", err)
	}
	return &pc, nil
}

// InsertProductColor inserta el vínculo; idempotente por (product_id, color_id).
func (r *CatalogRepo) InsertProductColor(ctx context.Context, pc *entity.ProductColor) (bool, error) {
	err := r.q.QueryRow(ctx, `
		INSERT INTO product_colors (product_id, color_id) VALUES ($1, $2)
		ON CONFLICT (product_id, color_id) DO NOTHING
		RETURNING id`, pc.ProductID, pc.ColorID).Scan(&pc.ID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("insert product color: %w", err)
	}
	existing, err := r.GetProductColor(ctx, pc.ProductID, pc.ColorID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, fmt.Errorf("insert product color: conflicto sin fila")
	}
	*pc = *existing
	return false, nil
}

const selectVariant = `
	SELECT v.id, v.product_color_id, pc.product_id, pc.color_id, v.size_id, v.created_at
	FROM variants v JOIN product_colors pc ON pc.id = v.product_color_id`

func (r *CatalogRepo) scanVariant(ctx context.Context, query string, args ...any) (*entity.Variant, error) {
	var v entity.Variant
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&v.ID, &v.ProductColorID, &v.ProductID, &v.ColorID, &v.SizeID, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

// GetVariantByID obtiene una variante por ID.
func (r *CatalogRepo) GetVariantByID(ctx context.Context, id int64) (*entity.Variant, error) {
	return r.scanVariant(ctx, selectVariant+` WHERE v.id = $1`, id)
}

// GetVariant obtiene la variante de un producto-color en una talla.
func (r *CatalogRepo) GetVariant(ctx context.Context, productColorID, sizeID int64) (*entity.Variant, error) {
	return r.scanVariant(ctx, selectVariant+` WHERE v.product_color_id = $1 AND v.size_id = $2`, productColorID, sizeID)
}

// InsertVariant inserta la variante; idempotente por (product_color_id, size_id).
func (r *CatalogRepo) InsertVariant(ctx context.Context, v *entity.Variant) (bool, error) {
	err := r.q.QueryRow(ctx, `
		INSERT INTO variants (product_color_id, size_id) VALUES ($1, $2)
		ON CONFLICT (product_color_id, size_id) DO NOTHING
		RETURNING id, created_at`, v.ProductColorID, v.SizeID).Scan(&v.ID, &v.CreatedAt)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("insert variant: %w", err)
	}
	existing, err := r.GetVariant(ctx, v.ProductColorID, v.SizeID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, fmt.Errorf("insert variant: conflicto sin fila")
	}
	*v = *existing
	return false, nil
}

// DeleteVariantCascade borra líneas de opname, saldos, movimientos y la variante, en ese orden.
func (r *CatalogRepo) DeleteVariantCascade(ctx context.Context, id int64) error {
	for _, stmt := range []string{
		`DELETE FROM opname_items WHERE variant_id = $1`,
		`DELETE FROM stock_balances WHERE variant_id = $1`,
		`DELETE FROM stock_movements WHERE variant_id = $1`,
		`DELETE FROM variants WHERE id = $1`,
	} {
		if _, err := r.q.Exec(ctx, stmt, id); err != nil {
			return fmt.Errorf("delete variant %d: %w", id, err)
		}
	}
	return nil
}
