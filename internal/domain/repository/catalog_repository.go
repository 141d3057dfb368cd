package repository

import (
	"context"

	"github.com/jhoicas/stok-api/internal/domain/entity"
)

// CatalogRepository define el puerto de persistencia de la cadena de identidad de variantes
// (producto, color, talla, producto-color, variante).
//
// Los métodos Get/Find devuelven (nil, nil) si no existe. Los métodos Insert son idempotentes:
// si la fila ya existe (clave natural única) completan la entidad con la existente y devuelven created=false.
type CatalogRepository interface {
	GetProductByID(ctx context.Context, id int64) (*entity.Product, error)
	FindProductByName(ctx context.Context, name string) (*entity.Product, error)
	InsertProduct(ctx context.Context, p *entity.Product) (created bool, err error)

	GetColorByID(ctx context.Context, id int64) (*entity.Color, error)
	FindColorByName(ctx context.Context, name string) (*entity.Color, error)
	InsertColor(ctx context.Context, c *entity.Color) (created bool, err error)

	GetSizeByID(ctx context.Context, id int64) (*entity.Size, error)
	FindSizeByName(ctx context.Context, name string) (*entity.Size, error)
	InsertSize(ctx context.Context, s *entity.Size) (created bool, err error)
	MaxSizeSortOrder(ctx context.Context) (int, error)

	GetProductColor(ctx context.Context, productID, colorID int64) (*entity.ProductColor, error)
	InsertProductColor(ctx context.Context, pc *entity.ProductColor) (created bool, err error)

	GetVariantByID(ctx context.Context, id int64) (*entity.Variant, error)
	GetVariant(ctx context.Context, productColorID, sizeID int64) (*entity.Variant, error)
	InsertVariant(ctx context.Context, v *entity.Variant) (created bool, err error)

	// DeleteVariantCascade borra la variante con sus saldos, movimientos y líneas de opname.
	// Destructivo: solo para limpieza de datos.
	DeleteVariantCascade(ctx context.Context, id int64) error
}
