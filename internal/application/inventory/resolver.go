package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stok-api/internal/domain"
	"github.com/jhoicas/stok-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stok-api/internal/domain/inventory"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultColorHex color neutro para colores creados desde import.
const DefaultColorHex = "#9E9E9E"

// productAliases colapsa variantes conocidas de nombre de producto antes de buscar o crear.
// Clave en minúsculas con espacios normalizados.
var productAliases = map[string]string{
	"tshirt":     "T-Shirt",
	"t shirt":    "T-Shirt",
	"t-shirt":    "T-Shirt",
	"tee":        "T-Shirt",
	"kaos":       "T-Shirt",
	"hoodie":     "Hoodie",
	"hoody":      "Hoodie",
	"hodie":      "Hoodie",
	"jaket":      "Jaket",
	"jacket":     "Jaket",
	"kemeja":     "Kemeja",
	"shirt":      "Kemeja",
	"polo":       "Polo Shirt",
	"poloshirt":  "Polo Shirt",
	"polo shirt": "Polo Shirt",
	"crewneck":   "Crewneck",
	"crew neck":  "Crewneck",
	"sweater":    "Sweater",
	"swetter":    "Sweater",
}

var titleCaser = cases.Title(language.Indonesian)

// ResolveResult resultado de ResolveByNames. Created indica si la variante es nueva.
type ResolveResult struct {
	VariantID      int64
	Created        bool
	ProductCreated bool
	ColorCreated   bool
	SizeCreated    bool
}

// VariantResolver traduce (producto, color, talla) a un ID de variante durable,
// creando relaciones de catálogo y saldos en cero cuando faltan.
type VariantResolver struct {
	txRunner TxRunner
	log      zerolog.Logger
}

// NewVariantResolver construye el resolvedor.
func NewVariantResolver(txRunner TxRunner, log zerolog.Logger) *VariantResolver {
	return &VariantResolver{txRunner: txRunner, log: log.With().Str("component", "variant_resolver").Logger()}
}

// ResolveByIDs resuelve por IDs de catálogo en su propia transacción.
func (r *VariantResolver) ResolveByIDs(ctx context.Context, productID, colorID, sizeID int64) (int64, error) {
	var id int64
	err := r.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		v, err := r.ResolveByIDsInTx(ctx, repos, productID, colorID, sizeID)
		id = v
		return err
	})
	return id, err
}

// ResolveByIDsInTx resuelve por IDs dentro de la transacción del caller.
// Falla con ErrNotFound si algún ID no existe en el catálogo.
func (r *VariantResolver) ResolveByIDsInTx(ctx context.Context, repos TxRepos, productID, colorID, sizeID int64) (int64, error) {
	if productID <= 0 || colorID <= 0 || sizeID <= 0 {
		return 0, domain.Invalid("product_id, color_id y size_id requeridos")
	}
	p, err := repos.Catalog.GetProductByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, fmt.Errorf("%w: producto %d", domain.ErrNotFound, productID)
	}
	c, err := repos.Catalog.GetColorByID(ctx, colorID)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, fmt.Errorf("%w: color %d", domain.ErrNotFound, colorID)
	}
	s, err := repos.Catalog.GetSizeByID(ctx, sizeID)
	if err != nil {
		return 0, err
	}
	if s == nil {
		return 0, fmt.Errorf("%w: talla %d", domain.ErrNotFound, sizeID)
	}
	v, _, err := r.ensureVariant(ctx, repos, p.ID, c.ID, s.ID)
	if err != nil {
		return 0, err
	}
	return v.ID, nil
}

// ResolveByNames resuelve por nombres en su propia transacción, creando producto/color/talla si faltan.
func (r *VariantResolver) ResolveByNames(ctx context.Context, product, color, size string) (*ResolveResult, error) {
	var out *ResolveResult
	err := r.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		res, err := r.ResolveByNamesInTx(ctx, repos, product, color, size)
		out = res
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveByNamesInTx resuelve por nombres dentro de la transacción del caller.
func (r *VariantResolver) ResolveByNamesInTx(ctx context.Context, repos TxRepos, product, color, size string) (*ResolveResult, error) {
	productName := CanonicalProductName(product)
	colorName := normalizeSpaces(color)
	sizeName := strings.ToUpper(normalizeSpaces(size))
	if productName == "" || colorName == "" || sizeName == "" {
		return nil, domain.Invalid("product_name, color_name y size_name requeridos")
	}
	res := &ResolveResult{}

	p, err := repos.Catalog.FindProductByName(ctx, productName)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &entity.Product{Name: productName}
		if res.ProductCreated, err = repos.Catalog.InsertProduct(ctx, p); err != nil {
			return nil, err
		}
	}

	c, err := repos.Catalog.FindColorByName(ctx, colorName)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = &entity.Color{Name: titleCaser.String(colorName), Hex: DefaultColorHex}
		if res.ColorCreated, err = repos.Catalog.InsertColor(ctx, c); err != nil {
			return nil, err
		}
	}

	s, err := repos.Catalog.FindSizeByName(ctx, sizeName)
	if err != nil {
		return nil, err
	}
	if s == nil {
		order, ok := invdomain.SizeSortOrder(sizeName)
		if !ok {
			maxOrder, err := repos.Catalog.MaxSizeSortOrder(ctx)
			if err != nil {
				return nil, err
			}
			order = maxOrder + 1
		}
		s = &entity.Size{Name: sizeName, SortOrder: order}
		if res.SizeCreated, err = repos.Catalog.InsertSize(ctx, s); err != nil {
			return nil, err
		}
	}

	v, created, err := r.ensureVariant(ctx, repos, p.ID, c.ID, s.ID)
	if err != nil {
		return nil, err
	}
	res.VariantID = v.ID
	res.Created = created
	if created {
		r.log.Debug().
			Int64("variant_id", v.ID).
			Str("product", p.Name).
			Str("color", c.Name).
			Str("size", s.Name).
			Msg("variante creada")
	}
	return res, nil
}

// DeleteVariant borra la variante en cascada (saldos, movimientos, líneas de opname). Solo limpieza de datos.
func (r *VariantResolver) DeleteVariant(ctx context.Context, variantID int64) error {
	if variantID <= 0 {
		return domain.Invalid("variant_id requerido")
	}
	err := r.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		v, err := repos.Catalog.GetVariantByID(ctx, variantID)
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("%w: variante %d", domain.ErrNotFound, variantID)
		}
		return repos.Catalog.DeleteVariantCascade(ctx, variantID)
	})
	if err != nil {
		return err
	}
	r.log.Warn().Int64("variant_id", variantID).Msg("variante eliminada en cascada")
	return nil
}

// ensureVariant crea producto-color y variante si faltan; una variante nueva recibe saldo cero
// en todas las ubicaciones conocidas.
func (r *VariantResolver) ensureVariant(ctx context.Context, repos TxRepos, productID, colorID, sizeID int64) (*entity.Variant, bool, error) {
	pc, err := repos.Catalog.GetProductColor(ctx, productID, colorID)
	if err != nil {
		return nil, false, err
	}
	if pc == nil {
		pc = &entity.ProductColor{ProductID: productID, ColorID: colorID}
		if _, err := repos.Catalog.InsertProductColor(ctx, pc); err != nil {
			return nil, false, err
		}
	}
	v, err := repos.Catalog.GetVariant(ctx, pc.ID, sizeID)
	if err != nil {
		return nil, false, err
	}
	if v != nil {
		return v, false, nil
	}
	v = &entity.Variant{ProductColorID: pc.ID, ProductID: productID, ColorID: colorID, SizeID: sizeID}
	created, err := repos.Catalog.InsertVariant(ctx, v)
	if err != nil {
		return nil, false, err
	}
	if created {
		locs, err := repos.Locations.List(ctx)
		if err != nil {
			return nil, false, err
		}
		ids := make([]int64, 0, len(locs))
		for _, l := range locs {
			ids = append(ids, l.ID)
		}
		if err := repos.Balances.EnsureZero(ctx, v.ID, ids); err != nil {
			return nil, false, err
		}
	}
	return v, created, nil
}

// CanonicalProductName normaliza espacios y aplica la tabla de alias de producto.
func CanonicalProductName(name string) string {
	n := normalizeSpaces(name)
	if alias, ok := productAliases[strings.ToLower(n)]; ok {
		return alias
	}
	return n
}

func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

