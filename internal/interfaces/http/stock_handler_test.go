package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stok-api/internal/application/dto"
	"github.com/jhoicas/stok-api/internal/application/inventory"
	"github.com/jhoicas/stok-api/internal/application/inventory/inventorytest"
	"github.com/jhoicas/stok-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/stok-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stok-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// fakeRenderer registra la tarjeta recibida y devuelve un PDF de mentira.
type fakeRenderer struct {
	card   *dto.StockCardResponse
	header pdf.StockCardHeader
}

func (r *fakeRenderer) Generate(_ context.Context, card *dto.StockCardResponse, h pdf.StockCardHeader) ([]byte, error) {
	r.card, r.header = card, h
	return []byte("%PDF-1.4 fake"), nil
}

type stockEnv struct {
	app      *fiber.App
	store    *inventorytest.Store
	resolver *inventory.VariantResolver
	renderer *fakeRenderer
	gudang   int64
	toko     int64
}

func newStockEnv(t *testing.T) *stockEnv {
	t.Helper()
	log := zerolog.Nop()
	store := inventorytest.NewStore()
	env := &stockEnv{store: store, renderer: &fakeRenderer{}}
	env.gudang = store.AddLocation("Gudang", true)
	env.toko = store.AddLocation("Toko", false)

	env.resolver = inventory.NewVariantResolver(store, log)
	ledger := inventory.NewLedgerUseCase(store, env.resolver, inventory.LedgerConfig{}, log)
	env.app = fiber.New()
	apphttp.Router(env.app, apphttp.RouterDeps{
		Ledger:    ledger,
		Balances:  inventory.NewBalanceUseCase(store, log),
		Cards:     inventory.NewStockCardUseCase(store, 0, log),
		Resolver:  env.resolver,
		Imports:   inventory.NewImportUseCase(store, env.resolver, ledger, log),
		Opname:    inventory.NewOpnameUseCase(store, ledger, log),
		Locations: inventory.NewLocationUseCase(store),
		CardPDF:   env.renderer,
		Currency:  "IDR",
		JWTSecret: testJWTSecret,
		JWTIssuer: testIssuer,
		Log:       log,
	})
	return env
}

func (e *stockEnv) variant(t *testing.T, product, color, size string) int64 {
	t.Helper()
	res, err := e.resolver.ResolveByNames(context.Background(), product, color, size)
	require.NoError(t, err)
	return res.VariantID
}

// do ejecuta la request con el rol indicado; body nil = sin cuerpo.
func (e *stockEnv) do(t *testing.T, role, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}

func movementBody(variantID, locationID int64, dir, reason string, qty int64) fiber.Map {
	return fiber.Map{
		"variant_id":  variantID,
		"location_id": locationID,
		"direction":   dir,
		"reason_code": reason,
		"quantity":    qty,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMovement_EntradaDevuelve201(t *testing.T) {
	env := newStockEnv(t)
	v := env.variant(t, "Hoodie", "Navy", "M")
	body := movementBody(v, env.gudang, "IN", "OVERPROD_IN", 5)
	body["unit_cost"] = "85000"

	resp := env.do(t, pkgjwt.RoleStaff, http.MethodPost, "/api/stock/movements", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var m dto.MovementResponse
	decode(t, resp, &m)
	assert.Equal(t, v, m.VariantID)
	assert.EqualValues(t, 5, m.Quantity)
	assert.EqualValues(t, 5, env.store.Balance(v, env.gudang).Quantity)
}

func TestCreateMovement_ErroresMapeados(t *testing.T) {
	env := newStockEnv(t)
	v := env.variant(t, "Hoodie", "Navy", "M")

	cases := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"stock insuficiente", movementBody(v, env.gudang, "OUT", "SALES_OUT", 1), http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"motivo no válido para la dirección", movementBody(v, env.gudang, "IN", "SALES_OUT", 1), http.StatusUnprocessableEntity, "INVALID_REASON_CODE"},
		{"cantidad cero", movementBody(v, env.gudang, "IN", "OVERPROD_IN", 0), http.StatusBadRequest, "VALIDATION"},
		{"dirección desconocida", movementBody(v, env.gudang, "UP", "OVERPROD_IN", 1), http.StatusBadRequest, "VALIDATION"},
		{"variante inexistente", movementBody(9999, env.gudang, "IN", "OVERPROD_IN", 1), http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, pkgjwt.RoleStaff, http.MethodPost, "/api/stock/movements", tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, errorCode(t, resp))
		})
	}
	assert.Empty(t, env.store.Movements())
}

func TestCreateMovement_CuerpoInvalido(t *testing.T) {
	env := newStockEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/stock/movements", strings.NewReader("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleStaff))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, resp))
}

func TestDeleteVariant_AdminDevuelve204(t *testing.T) {
	env := newStockEnv(t)
	v := env.variant(t, "Hoodie", "Navy", "M")

	resp := env.do(t, pkgjwt.RoleAdmin, http.MethodDelete, fmt.Sprintf("/api/stock/variants/%d", v), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, pkgjwt.RoleAdmin, http.MethodDelete, fmt.Sprintf("/api/stock/variants/%d", v), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateMovement_DireccionEnMinusculas(t *testing.T) {
	env := newStockEnv(t)
	v := env.variant(t, "Hoodie", "Navy", "M")

	resp := env.do(t, pkgjwt.RoleStaff, http.MethodPost, "/api/stock/movements", movementBody(v, env.gudang, "in", "overprod_in", 2))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var m dto.MovementResponse
	decode(t, resp, &m)
	assert.Equal(t, "IN", m.Direction)
	assert.Equal(t, "OVERPROD_IN", m.ReasonCode)
}

func TestTransfer_Devuelve201ConCodigoCompartido(t *testing.T) {
	env := newStockEnv(t)
	v := env.variant(t, "Hoodie", "Navy", "M")
	resp := env.do(t, pkgjwt.RoleStaff, http.MethodPost, "/api/stock/movements", movementBody(v, env.gudang, "IN", "OVERPROD_IN", 4))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, pkgjwt.RoleStaff, http.MethodPost, "/api/stock/transfers", fiber.Map{
		"variant_id":       v,
		"from_location_id": env.gudang,
		"to_location_id":   env.toko,
		"quantity":         3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.TransferResponse
	decode(t, resp, &out)
	assert.True(t, strings.HasPrefix(out.ReferenceCode, "TRF-"))
	assert.Equal(t, "TRANSFER_OUT", out.Out.ReasonCode)
	assert.Equal(t, "TRANSFER_IN", out.In.ReasonCode)
	assert.EqualValues(t, 1, env.store.Balance(v, env.gudang).Quantity)
	assert.EqualValues(t, 3, env.store.Balance(v, env.toko).Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Saldos, tarjetas, integridad
// ──────────────────────────────────────────────────────────────────────────────

func TestBalances_JSONYExportXLSX(t *testing.T) {
	env := newStockEnv(t)
	v := env.variant(t, "Hoodie", "Navy", "M")
	env.do(t, pkgjwt.RoleStaff, http.MethodPost, "/api/stock/movements", movementBody(v, env.gudang, "IN", "OVERPROD_IN", 2))

	resp := env.do(t, pkgjwt.RoleViewer, http.MethodGet, "/api/stock/balances?only_positive=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tree []dto.ProductColorBalanceDTO
	decode(t, resp, &tree)
	require.Len(t, tree, 1)
	assert.EqualValues(t, 2, tree[0].Total)

	resp = env.do(t, pkgjwt.RoleViewer, http.MethodGet, "/api/stock/balances/export.xlsx", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "saldos.xlsx")
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("PK")), "xlsx es un zip")

	resp = env.do(t, pkgjwt.RoleViewer, http.MethodGet, "/api/stock/balances?product_id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStockCard_JSONYPDF(t *testing.T) {
	env := newStockEnv(t)
	v := env.variant(t, "Hoodie", "Navy", "M")
	env.do(t, pkgjwt.RoleStaff, http.MethodPost, "/api/stock/movements", movementBody(v, env.gudang, "IN", "OVERPROD_IN", 2))

	path := fmt.Sprintf("/api/stock/cards/%d/%d", v, env.gudang)
	resp := env.do(t, pkgjwt.RoleViewer, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var card dto.StockCardResponse
	decode(t, resp, &card)
	assert.EqualValues(t, 2, card.ClosingQty)
	assert.Len(t, card.Lines, 1)

	resp = env.do(t, pkgjwt.RoleViewer, http.MethodGet, path+"/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	require.NotNil(t, env.renderer.card)
	assert.Equal(t, "Hoodie / Navy / M", env.renderer.card.VariantLabel)
	assert.Equal(t, "IDR", env.renderer.header.Currency)

	resp = env.do(t, pkgjwt.RoleViewer, http.MethodGet, path+"?from=ayer", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStockCard_DriftDevuelve500IntegrityFault(t *testing.T) {
	env := newStockEnv(t)
	v := env.variant(t, "Hoodie", "Navy", "M")
	env.store.SetCachedQuantity(v, env.gudang, 3)

	resp := env.do(t, pkgjwt.RoleViewer, http.MethodGet, fmt.Sprintf("/api/stock/cards/%d/%d", v, env.gudang), nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTEGRITY_FAULT", errorCode(t, resp))
}

func TestIntegrity_ReporteConDiferencias(t *testing.T) {
	env := newStockEnv(t)
	v := env.variant(t, "Hoodie", "Navy", "M")

	resp := env.do(t, pkgjwt.RoleAdmin, http.MethodGet, "/api/stock/integrity", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env.store.SetCachedQuantity(v, env.toko, 7)
	resp = env.do(t, pkgjwt.RoleAdmin, http.MethodGet, "/api/stock/integrity", nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var report dto.IntegrityReport
	decode(t, resp, &report)
	require.Len(t, report.Drifts, 1)
	assert.EqualValues(t, 7, report.Drifts[0].CachedQty)

	resp = env.do(t, pkgjwt.RoleStaff, http.MethodGet, "/api/stock/integrity", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestResolveVariant_PorNombresCrea201(t *testing.T) {
	env := newStockEnv(t)
	body := fiber.Map{"product_name": "kaos", "color_name": "hitam", "size_name": "xl"}

	resp := env.do(t, pkgjwt.RoleStaff, http.MethodPost, "/api/stock/variants/resolve", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var first dto.ResolveVariantResponse
	decode(t, resp, &first)
	assert.True(t, first.ProductCreated)

	resp = env.do(t, pkgjwt.RoleStaff, http.MethodPost, "/api/stock/variants/resolve", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var second dto.ResolveVariantResponse
	decode(t, resp, &second)
	assert.Equal(t, first.VariantID, second.VariantID)
	assert.False(t, second.Created)
}

// ──────────────────────────────────────────────────────────────────────────────
// Import
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_CSVMultipart(t *testing.T) {
	env := newStockEnv(t)
	csv := "Produk;Warna;Ukuran;Lokasi;Alasan;Qty\n" +
		"Hoodie;Navy;M;Gudang;OVERPROD;6\n" +
		"Hoodie;Navy;M;Toko;SALE;1\n" +
		"Hoodie;Navy;M;Gudang;SALE;abc\n"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "stok.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/stock/imports", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleStaff))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report dto.ImportReport
	decode(t, resp, &report)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 2, report.Failed)
	require.Len(t, report.Errors, 2)
	assert.Equal(t, 3, report.Errors[0].Row)
	assert.Equal(t, 4, report.Errors[1].Row)
}

func TestImport_SinArchivo(t *testing.T) {
	env := newStockEnv(t)
	resp := env.do(t, pkgjwt.RoleStaff, http.MethodPost, "/api/stock/imports", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Opname y ubicaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestOpname_FlujoHTTP(t *testing.T) {
	env := newStockEnv(t)
	v := env.variant(t, "Hoodie", "Navy", "M")
	env.do(t, pkgjwt.RoleStaff, http.MethodPost, "/api/stock/movements", movementBody(v, env.gudang, "IN", "OVERPROD_IN", 10))

	resp := env.do(t, pkgjwt.RoleStaff, http.MethodPost, "/api/opname", fiber.Map{"location_id": env.gudang})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var session dto.OpnameSessionResponse
	decode(t, resp, &session)
	require.Len(t, session.Items, 1)
	assert.EqualValues(t, 10, session.Items[0].SystemQty)

	base := fmt.Sprintf("/api/opname/%d", session.ID)
	resp = env.do(t, pkgjwt.RoleStaff, http.MethodPut, base+"/counts", fiber.Map{
		"variant_id": v, "location_id": env.gudang, "counted_qty": 8,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, pkgjwt.RoleStaff, http.MethodPut, base+"/counts", fiber.Map{
		"variant_id": v, "location_id": env.gudang,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "counted_qty requerido")

	resp = env.do(t, pkgjwt.RoleStaff, http.MethodPost, base+"/commit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var commit dto.OpnameCommitResponse
	decode(t, resp, &commit)
	require.Len(t, commit.Adjustments, 1)
	assert.Equal(t, "ADJUSTMENT_OUT", commit.Adjustments[0].ReasonCode)
	assert.EqualValues(t, 8, env.store.Balance(v, env.gudang).Quantity)

	resp = env.do(t, pkgjwt.RoleStaff, http.MethodPost, base+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", errorCode(t, resp))
}

func TestLocations_ListaYNoEncontrada(t *testing.T) {
	env := newStockEnv(t)
	resp := env.do(t, pkgjwt.RoleViewer, http.MethodGet, "/api/locations", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.LocationListResponse
	decode(t, resp, &list)
	require.Len(t, list.Items, 2)
	assert.True(t, list.Items[0].IsDefault)

	resp = env.do(t, pkgjwt.RoleViewer, http.MethodGet, "/api/locations/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
