package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stok-api/internal/application/inventory"
)

// ErrMissingColumn la planilla no trae una columna obligatoria.
var ErrMissingColumn = errors.New("columna obligatoria ausente")

// columnAliases nombres de cabecera aceptados (en minúsculas) → campo de ImportRow.
var columnAliases = map[string]string{
	"product": "product", "produk": "product", "producto": "product", "product_name": "product",
	"color": "color", "colour": "color", "warna": "color", "color_name": "color",
	"size": "size", "ukuran": "size", "talla": "size", "size_name": "size",
	"location": "location", "lokasi": "location", "ubicacion": "location", "ubicación": "location",
	"direction": "direction", "arah": "direction", "tipe": "direction",
	"reason": "reason", "reason_code": "reason", "alasan": "reason", "motivo": "reason", "keterangan": "reason",
	"qty": "qty", "quantity": "qty", "jumlah": "qty", "cantidad": "qty",
	"unit_cost": "unit_cost", "cost": "unit_cost", "harga": "unit_cost", "hpp": "unit_cost", "costo": "unit_cost",
	"note": "note", "catatan": "note", "nota": "note",
	"pic": "pic",
}

var requiredColumns = []string{"product", "color", "size", "reason", "qty"}

// ParseError fila que no se pudo convertir; el import la reporta sin abortar el lote.
type ParseError struct {
	Line    int
	Message string
}

// ParseCSV lee una planilla CSV (coma o punto y coma). Si no es UTF-8 válido se decodifica como Windows-1252.
func ParseCSV(r io.Reader) ([]inventory.ImportRow, []ParseError, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: leer: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(raw) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
		if err != nil {
			return nil, nil, fmt.Errorf("csv: decodificar windows-1252: %w", err)
		}
		raw = decoded
	}
	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = detectComma(raw)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("csv: %w", err)
	}
	return rowsFromRecords(records)
}

// ParseXLSX lee la primera hoja de un libro XLSX.
func ParseXLSX(r io.Reader) ([]inventory.ImportRow, []ParseError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("xlsx: abrir: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("xlsx: libro sin hojas")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("xlsx: leer filas: %w", err)
	}
	return rowsFromRecords(records)
}

func detectComma(raw []byte) rune {
	first := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		first = raw[:i]
	}
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

func rowsFromRecords(records [][]string) ([]inventory.ImportRow, []ParseError, error) {
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: planilla vacía", ErrMissingColumn)
	}
	idx := map[string]int{}
	for i, h := range records[0] {
		key := strings.ToLower(strings.TrimSpace(h))
		if field, ok := columnAliases[key]; ok {
			if _, dup := idx[field]; !dup {
				idx[field] = i
			}
		}
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}
	get := func(rec []string, field string) string {
		i, ok := idx[field]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var (
		rows []inventory.ImportRow
		bad  []ParseError
	)
	for n, rec := range records[1:] {
		line := n + 2 // la cabecera es la fila 1
		if blank(rec) {
			continue
		}
		qty, err := parseQty(get(rec, "qty"))
		if err != nil {
			bad = append(bad, ParseError{Line: line, Message: err.Error()})
			continue
		}
		row := inventory.ImportRow{
			Line:         line,
			ProductName:  get(rec, "product"),
			ColorName:    get(rec, "color"),
			SizeName:     get(rec, "size"),
			LocationName: get(rec, "location"),
			Direction:    get(rec, "direction"),
			ReasonCode:   get(rec, "reason"),
			Quantity:     qty,
			Note:         get(rec, "note"),
			PIC:          get(rec, "pic"),
		}
		if s := get(rec, "unit_cost"); s != "" {
			c, err := parseCost(s)
			if err != nil {
				bad = append(bad, ParseError{Line: line, Message: err.Error()})
				continue
			}
			row.UnitCost = &c
		}
		rows = append(rows, row)
	}
	return rows, bad, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// thousandsRe entero con separador de miles con punto ("1.200", "12.500.000").
var thousandsRe = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// parseQty acepta enteros, miles con punto ("1.200") y decimales con fracción cero ("2.0", "3,00").
// Cualquier otra fracción es error de fila.
func parseQty(s string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if thousandsRe.MatchString(clean) {
		clean = strings.ReplaceAll(clean, ".", "")
	}
	if n, err := strconv.ParseInt(clean, 10, 64); err == nil {
		return n, nil
	}
	if !strings.Contains(clean, ".") {
		clean = strings.Replace(clean, ",", ".", 1)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("cantidad inválida %q", s)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("cantidad inválida %q: debe ser entera", s)
	}
	return d.IntPart(), nil
}

// parseCost acepta "45000", "45.000" (miles con punto), "45000,50" y "Rp 45.000".
func parseCost(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "Rp"))
	clean = strings.ReplaceAll(clean, " ", "")
	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else if strings.Count(clean, ".") > 1 || (strings.Count(clean, ".") == 1 && len(clean)-strings.Index(clean, ".") == 4) {
		clean = strings.ReplaceAll(clean, ".", "")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("costo inválido %q", s)
	}
	return d, nil
}
