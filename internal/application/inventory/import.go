package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/stok-api/internal/application/dto"
	"github.com/jhoicas/stok-api/internal/domain"
	"github.com/jhoicas/stok-api/internal/domain/entity"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ImportRefTable tabla de referencia de los movimientos importados.
const ImportRefTable = "stock_imports"

// locationAliases nombres de ubicación usados en planillas → nombre en el catálogo.
// Clave en minúsculas.
var locationAliases = map[string]string{
	"gudang":       "Gudang",
	"gudang utama": "Gudang",
	"warehouse":    "Gudang",
	"wh":           "Gudang",
	"toko":         "Toko",
	"store":        "Toko",
	"display":      "Toko",
	"online":       "Online",
	"olshop":       "Online",
	"shopee":       "Online",
	"tokopedia":    "Online",
}

// reasonAliases códigos abreviados de planilla → código de motivo.
// FREE_ITEM se registra como SALES_OUT igual que las ventas.
var reasonAliases = map[string]entity.ReasonCode{
	"SALE":      entity.ReasonSalesOut,
	"SALES":     entity.ReasonSalesOut,
	"FREE_ITEM": entity.ReasonSalesOut,
	"GIFT":      entity.ReasonGiftOut,
	"RETURN":    entity.ReasonReturnIn,
	"OVERPROD":  entity.ReasonOverprodIn,
	"ADJ_IN":    entity.ReasonAdjustmentIn,
	"ADJ_OUT":   entity.ReasonAdjustmentOut,
}

// ImportRow fila de import masivo, identificada por nombres de catálogo.
type ImportRow struct {
	Line         int // número de fila en el archivo de origen
	ProductName  string
	ColorName    string
	SizeName     string
	LocationName string
	Direction    string // opcional: se infiere del motivo
	ReasonCode   string
	Quantity     int64
	UnitCost     *decimal.Decimal
	Note         string
	PIC          string
}

// ImportUseCase import masivo de movimientos: una transacción por fila, los errores se acumulan.
type ImportUseCase struct {
	txRunner TxRunner
	resolver *VariantResolver
	ledger   *LedgerUseCase
	log      zerolog.Logger
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(txRunner TxRunner, resolver *VariantResolver, ledger *LedgerUseCase, log zerolog.Logger) *ImportUseCase {
	return &ImportUseCase{
		txRunner: txRunner,
		resolver: resolver,
		ledger:   ledger,
		log:      log.With().Str("component", "import").Logger(),
	}
}

// Import procesa todas las filas. Una fila que falla no afecta a las demás.
func (uc *ImportUseCase) Import(ctx context.Context, rows []ImportRow, actor string) (*dto.ImportReport, error) {
	report := &dto.ImportReport{
		BatchCode: "IMP-" + strings.ToUpper(uuid.New().String()[:8]),
		Errors:    []dto.ImportRowError{},
	}
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		line := row.Line
		if line == 0 {
			line = i + 1
		}
		res, err := uc.importRow(ctx, report.BatchCode, row, actor)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, dto.ImportRowError{Row: line, Message: err.Error()})
			uc.log.Warn().Err(err).Int("row", line).Str("batch", report.BatchCode).Msg("fila de import rechazada")
			continue
		}
		report.Imported++
		if res.ProductCreated {
			report.ProductsCreated++
		}
		if res.ColorCreated {
			report.ColorsCreated++
		}
		if res.SizeCreated {
			report.SizesCreated++
		}
		if res.Created {
			report.VariantsCreated++
		}
	}
	uc.log.Info().
		Str("batch", report.BatchCode).
		Int("imported", report.Imported).
		Int("failed", report.Failed).
		Int("variants_created", report.VariantsCreated).
		Msg("import de movimientos terminado")
	return report, nil
}

func (uc *ImportUseCase) importRow(ctx context.Context, batch string, row ImportRow, actor string) (*ResolveResult, error) {
	reason, dir, err := NormalizeImportReason(row.ReasonCode, row.Direction)
	if err != nil {
		return nil, err
	}
	if row.Quantity <= 0 {
		return nil, domain.Invalid("quantity debe ser mayor que cero")
	}
	var res *ResolveResult
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		locID, err := uc.locationByName(ctx, repos, row.LocationName, dir)
		if err != nil {
			return err
		}
		r, err := uc.resolver.ResolveByNamesInTx(ctx, repos, row.ProductName, row.ColorName, row.SizeName)
		if err != nil {
			return err
		}
		_, err = uc.ledger.CreateMovementInTx(ctx, repos, MovementInput{
			VariantID:  r.VariantID,
			LocationID: locID,
			Direction:  dir,
			ReasonCode: reason,
			Quantity:   row.Quantity,
			UnitCost:   row.UnitCost,
			Ref:        entity.Reference{Table: ImportRefTable, Code: batch},
			Note:       row.Note,
			PIC:        row.PIC,
			CreatedBy:  actor,
		})
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// locationByName busca la ubicación aplicando la tabla de alias. Vacío en IN = ubicación por defecto (0).
func (uc *ImportUseCase) locationByName(ctx context.Context, repos TxRepos, name string, dir entity.Direction) (int64, error) {
	name = normalizeSpaces(name)
	if name == "" {
		if dir == entity.DirectionIN {
			return 0, nil
		}
		return 0, domain.Invalid("location requerido para salidas")
	}
	loc, err := repos.Locations.FindByName(ctx, CanonicalLocationName(name))
	if err != nil {
		return 0, err
	}
	if loc == nil {
		return 0, fmt.Errorf("%w: ubicación %q", domain.ErrNotFound, name)
	}
	return loc.ID, nil
}

// CanonicalLocationName aplica la tabla de alias de ubicación; sin alias devuelve el nombre tal cual.
func CanonicalLocationName(name string) string {
	n := normalizeSpaces(name)
	if alias, ok := locationAliases[strings.ToLower(n)]; ok {
		return alias
	}
	return n
}

// NormalizeImportReason traduce alias de motivo y deduce la dirección cuando no viene.
func NormalizeImportReason(reason, direction string) (entity.ReasonCode, entity.Direction, error) {
	r := strings.ToUpper(strings.ReplaceAll(normalizeSpaces(reason), " ", "_"))
	if r == "" {
		return "", "", domain.Invalid("reason_code requerido")
	}
	code := entity.ReasonCode(r)
	if alias, ok := reasonAliases[r]; ok {
		code = alias
	}
	dir := entity.Direction(strings.ToUpper(strings.TrimSpace(direction)))
	if dir == "" {
		switch {
		case code.AllowedFor(entity.DirectionIN):
			dir = entity.DirectionIN
		case code.AllowedFor(entity.DirectionOUT):
			dir = entity.DirectionOUT
		default:
			return "", "", fmt.Errorf("%w: %s", domain.ErrInvalidReasonCode, r)
		}
	}
	if !dir.Valid() {
		return "", "", domain.Invalid("direction debe ser IN u OUT")
	}
	if !code.AllowedFor(dir) {
		return "", "", fmt.Errorf("%w: %s no es válido para %s", domain.ErrInvalidReasonCode, code, dir)
	}
	return code, dir, nil
}
