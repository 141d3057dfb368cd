package http

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stok-api/internal/application/dto"
	"github.com/jhoicas/stok-api/internal/application/inventory"
	"github.com/jhoicas/stok-api/internal/domain"
	"github.com/jhoicas/stok-api/internal/domain/entity"
	"github.com/jhoicas/stok-api/internal/domain/repository"
	"github.com/jhoicas/stok-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stok-api/internal/infrastructure/spreadsheet"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	movementsLimit  = 50
	movementsMax    = 500
)

// StockCardRenderer genera la tarjeta de stock como documento.
type StockCardRenderer interface {
	Generate(ctx context.Context, card *dto.StockCardResponse, h pdf.StockCardHeader) ([]byte, error)
}

// StockHandlerDeps dependencias del handler de stock.
type StockHandlerDeps struct {
	Ledger   *inventory.LedgerUseCase
	Balances *inventory.BalanceUseCase
	Cards    *inventory.StockCardUseCase
	Resolver *inventory.VariantResolver
	Imports  *inventory.ImportUseCase
	CardPDF  StockCardRenderer
	Currency string
	Log      zerolog.Logger
}

// StockHandler maneja movimientos, traslados, saldos, tarjetas e import (protegido).
type StockHandler struct {
	d StockHandlerDeps
}

// NewStockHandler construye el handler.
func NewStockHandler(d StockHandlerDeps) *StockHandler {
	d.Log = d.Log.With().Str("component", "http_stock").Logger()
	return &StockHandler{d: d}
}

// CreateMovement godoc
// @Summary      Registrar movimiento
// @Description  Agrega un movimiento al ledger y actualiza el saldo en la misma transacción.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "variant_id o identity, location_id (vacío en IN = por defecto), direction, reason_code, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.d.Log, err)
	}
	m, err := h.d.Ledger.CreateMovementFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.d.Log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToMovementResponse(m))
}

// ListMovements godoc
// @Summary      Listar movimientos del ledger
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        variant_id   query  int     false  "Variante"
// @Param        location_id  query  int     false  "Ubicación"
// @Param        direction    query  string  false  "IN | OUT"
// @Param        reason_code  query  string  false  "Código de motivo"
// @Param        ref_table    query  string  false  "Tabla de referencia"
// @Param        ref_code     query  string  false  "Código de referencia"
// @Param        from         query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta, inclusivo"
// @Param        limit        query  int     false  "Límite"  default(50)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	f, err := movementFilterFromQuery(c)
	if err != nil {
		return writeError(c, h.d.Log, err)
	}
	list, err := h.d.Ledger.ListMovements(c.UserContext(), f)
	if err != nil {
		return writeError(c, h.d.Log, err)
	}
	out := dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}
	for i := range list {
		out.Items = append(out.Items, inventory.ToMovementResponse(&list[i]))
	}
	return c.JSON(out)
}

func movementFilterFromQuery(c *fiber.Ctx) (repository.MovementFilter, error) {
	var f repository.MovementFilter
	var err error
	if f.VariantID, err = queryInt64(c, "variant_id"); err != nil {
		return f, err
	}
	if f.LocationID, err = queryInt64(c, "location_id"); err != nil {
		return f, err
	}
	if d := strings.ToUpper(strings.TrimSpace(c.Query("direction"))); d != "" {
		f.Direction = entity.Direction(d)
		if !f.Direction.Valid() {
			return f, domain.Invalid("direction debe ser IN u OUT")
		}
	}
	f.ReasonCode = entity.ReasonCode(strings.ToUpper(strings.TrimSpace(c.Query("reason_code"))))
	f.RefTable = strings.TrimSpace(c.Query("ref_table"))
	f.RefCode = strings.TrimSpace(c.Query("ref_code"))
	if f.From, err = queryTime(c, "from", false); err != nil {
		return f, err
	}
	if f.To, err = queryTime(c, "to", true); err != nil {
		return f, err
	}
	f.Limit, f.Offset = page(c, movementsLimit, movementsMax)
	return f, nil
}

// Transfer godoc
// @Summary      Trasladar stock entre ubicaciones
// @Description  TRANSFER_OUT en origen y TRANSFER_IN en destino con el mismo código, en una transacción.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "variant_id o identity, from_location_id, to_location_id, quantity"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/transfers [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.d.Log, err)
	}
	out, inMov, err := h.d.Ledger.TransferFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.d.Log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransferResponse{
		ReferenceCode: out.Ref.Code,
		Out:           inventory.ToMovementResponse(out),
		In:            inventory.ToMovementResponse(inMov),
	})
}

// Balances godoc
// @Summary      Árbol de saldos
// @Description  producto+color → ubicación → talla, con totales.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id     query  int     false  "Producto"
// @Param        color_id       query  int     false  "Color"
// @Param        location_id    query  int     false  "Ubicación"
// @Param        only_positive  query  bool    false  "Solo cantidades > 0"
// @Param        q              query  string  false  "Búsqueda por nombre de producto"
// @Success      200  {array}   dto.ProductColorBalanceDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/balances [get]
func (h *StockHandler) Balances(c *fiber.Ctx) error {
	tree, err := h.balanceTree(c)
	if err != nil {
		return writeError(c, h.d.Log, err)
	}
	return c.JSON(tree)
}

// ExportBalances godoc
// @Summary      Exportar saldos a XLSX
// @Tags         stock
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        product_id     query  int     false  "Producto"
// @Param        location_id    query  int     false  "Ubicación"
// @Param        only_positive  query  bool    false  "Solo cantidades > 0"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/balances/export.xlsx [get]
func (h *StockHandler) ExportBalances(c *fiber.Ctx) error {
	tree, err := h.balanceTree(c)
	if err != nil {
		return writeError(c, h.d.Log, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="saldos.xlsx"`)
	if err := spreadsheet.WriteBalanceTree(c.Response().BodyWriter(), tree); err != nil {
		return writeError(c, h.d.Log, err)
	}
	return nil
}

func (h *StockHandler) balanceTree(c *fiber.Ctx) ([]dto.ProductColorBalanceDTO, error) {
	var f repository.BalanceFilter
	var err error
	if f.ProductID, err = queryInt64(c, "product_id"); err != nil {
		return nil, err
	}
	if f.ColorID, err = queryInt64(c, "color_id"); err != nil {
		return nil, err
	}
	if f.LocationID, err = queryInt64(c, "location_id"); err != nil {
		return nil, err
	}
	f.OnlyPositive = c.QueryBool("only_positive", false)
	f.Search = strings.TrimSpace(c.Query("q"))
	return h.d.Balances.Tree(c.UserContext(), f)
}

// StockCard godoc
// @Summary      Tarjeta de stock
// @Description  Saldo inicial, movimientos con saldo corrido y saldo final. 500 INTEGRITY_FAULT si no cuadra con la caché.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        variant_id   path   int     true   "Variante"
// @Param        location_id  path   int     true   "Ubicación"
// @Param        from         query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta, inclusivo"
// @Param        limit        query  int     false  "Líneas máximas"
// @Success      200  {object}  dto.StockCardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/cards/{variant_id}/{location_id} [get]
func (h *StockHandler) StockCard(c *fiber.Ctx) error {
	card, err := h.stockCard(c)
	if err != nil {
		return writeError(c, h.d.Log, err)
	}
	return c.JSON(card)
}

// StockCardPDF godoc
// @Summary      Tarjeta de stock en PDF
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Param        variant_id   path   int     true   "Variante"
// @Param        location_id  path   int     true   "Ubicación"
// @Param        from         query  string  false  "Desde"
// @Param        to           query  string  false  "Hasta"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/cards/{variant_id}/{location_id}/pdf [get]
func (h *StockHandler) StockCardPDF(c *fiber.Ctx) error {
	card, err := h.stockCard(c)
	if err != nil {
		return writeError(c, h.d.Log, err)
	}
	doc, err := h.d.CardPDF.Generate(c.UserContext(), card, pdf.StockCardHeader{Currency: h.d.Currency})
	if err != nil {
		return writeError(c, h.d.Log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="kartu-stok.pdf"`)
	return c.Send(doc)
}

func (h *StockHandler) stockCard(c *fiber.Ctx) (*dto.StockCardResponse, error) {
	var q inventory.StockCardQuery
	var err error
	if q.VariantID, err = paramInt64(c, "variant_id"); err != nil {
		return nil, err
	}
	if q.LocationID, err = paramInt64(c, "location_id"); err != nil {
		return nil, err
	}
	if q.From, err = queryTime(c, "from", false); err != nil {
		return nil, err
	}
	if q.To, err = queryTime(c, "to", true); err != nil {
		return nil, err
	}
	q.Limit = c.QueryInt("limit", 0)
	return h.d.Cards.StockCard(c.UserContext(), q)
}

// ResolveVariant godoc
// @Summary      Resolver variante
// @Description  Por IDs (producto, color, talla) o por nombres, creando lo que falte.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResolveVariantRequest  true  "IDs o nombres"
// @Success      200   {object}  dto.ResolveVariantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/variants/resolve [post]
func (h *StockHandler) ResolveVariant(c *fiber.Ctx) error {
	var in dto.ResolveVariantRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.d.Log, err)
	}
	ctx := c.UserContext()
	if in.ProductID > 0 || in.ColorID > 0 || in.SizeID > 0 {
		id, err := h.d.Resolver.ResolveByIDs(ctx, in.ProductID, in.ColorID, in.SizeID)
		if err != nil {
			return writeError(c, h.d.Log, err)
		}
		return c.JSON(dto.ResolveVariantResponse{VariantID: id})
	}
	res, err := h.d.Resolver.ResolveByNames(ctx, in.ProductName, in.ColorName, in.SizeName)
	if err != nil {
		return writeError(c, h.d.Log, err)
	}
	status := fiber.StatusOK
	if res.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.ResolveVariantResponse{
		VariantID:      res.VariantID,
		Created:        res.Created,
		ProductCreated: res.ProductCreated,
		ColorCreated:   res.ColorCreated,
		SizeCreated:    res.SizeCreated,
	})
}

// DeleteVariant godoc
// @Summary      Eliminar variante con su historial (admin)
// @Tags         stock
// @Security     Bearer
// @Param        id   path  int  true  "Variante"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/variants/{id} [delete]
func (h *StockHandler) DeleteVariant(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, h.d.Log, err)
	}
	if err := h.d.Resolver.DeleteVariant(c.UserContext(), id); err != nil {
		return writeError(c, h.d.Log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      Import masivo de movimientos
// @Description  Archivo CSV o XLSX en el campo "file". Cada fila en su propia transacción; los errores se reportan por fila.
// @Tags         stock
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Planilla (.csv o .xlsx)"
// @Success      200   {object}  dto.ImportReport
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/imports [post]
func (h *StockHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, h.d.Log, domain.Invalid("campo file requerido"))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, h.d.Log, errInvalidBody)
	}
	defer f.Close()

	parse := spreadsheet.ParseCSV
	if strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		parse = spreadsheet.ParseXLSX
	}
	rows, bad, err := parse(f)
	if err != nil {
		return writeError(c, h.d.Log, domain.Invalid("%v", err))
	}

	report, err := h.d.Imports.Import(c.UserContext(), rows, GetUserID(c))
	if err != nil {
		return writeError(c, h.d.Log, err)
	}
	for _, b := range bad {
		report.Failed++
		report.Errors = append(report.Errors, dto.ImportRowError{Row: b.Line, Message: b.Message})
	}
	sort.SliceStable(report.Errors, func(i, j int) bool { return report.Errors[i].Row < report.Errors[j].Row })
	return c.JSON(report)
}

// Integrity godoc
// @Summary      Verificar ledger contra saldos
// @Description  Reproduce el ledger completo; 500 INTEGRITY_FAULT con el detalle si algún par no cuadra. No corrige.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.IntegrityReport
// @Failure      500  {object}  dto.IntegrityReport
// @Router       /api/stock/integrity [get]
func (h *StockHandler) Integrity(c *fiber.Ctx) error {
	report, err := h.d.Balances.VerifyLedger(c.UserContext())
	if err != nil {
		if report != nil {
			h.d.Log.Error().Err(err).Int("drifts", len(report.Drifts)).Msg("verificación de ledger con diferencias")
			return c.Status(fiber.StatusInternalServerError).JSON(report)
		}
		return writeError(c, h.d.Log, err)
	}
	return c.JSON(report)
}
