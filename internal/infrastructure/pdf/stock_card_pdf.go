// Package pdf genera la tarjeta de stock (kartu stok) en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + variante/ubicación │ Rango + generado      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALDO INICIAL                                               │
//	│  TABLA: Fecha | Motivo | Ref | Nota | Ent | Sal | Saldo      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: saldo final / saldo actual / costo promedio        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stok-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 176, Green: 0, Blue: 32}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockCardHeader datos legibles para el encabezado de la tarjeta.
type StockCardHeader struct {
	Variant  string // p. ej. "T-Shirt / Hitam / XL"
	Location string
	Currency string
}

// StockCardPDF genera tarjetas de stock en PDF.
type StockCardPDF struct {
	now func() time.Time
}

// NewStockCardPDF construye el generador.
func NewStockCardPDF() *StockCardPDF { return &StockCardPDF{now: time.Now} }

// Generate genera el PDF de la tarjeta y devuelve sus bytes.
func (g *StockCardPDF) Generate(_ context.Context, card *dto.StockCardResponse, h StockCardHeader) ([]byte, error) {
	if card == nil {
		return nil, fmt.Errorf("pdf: tarjeta vacía")
	}
	h.Variant = nonEmpty(h.Variant, card.VariantLabel, fmt.Sprintf("Variante #%d", card.VariantID))
	h.Location = nonEmpty(h.Location, card.LocationName, fmt.Sprintf("Ubicación #%d", card.LocationID))
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kartu Stok", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(card, h, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(openingRow(card))
	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(card.Lines) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(card, h.Currency))
	if card.Truncated {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Tarjeta truncada: hay más movimientos después de la última línea mostrada.", props.Text{
				Size: 8, Color: colorRed, Top: 2,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(card *dto.StockCardResponse, h StockCardHeader, generated time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("KARTU STOK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(h.Variant+"  |  "+h.Location, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Periodo: "+periodLabel(card.From, card.To), props.Text{
				Size: 8, Align: align.Right, Top: 2,
			}),
			text.New("Generado: "+generated.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func openingRow(card *dto.StockCardResponse) core.Row {
	return row.New(8).Add(
		col.New(9).Add(text.New("Saldo inicial", props.Text{Style: fontstyle.Bold, Size: 8, Top: 2})),
		col.New(3).Add(text.New(formatQty(card.OpeningQty), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2, Right: 1})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Motivo", 2, align.Left),
		h("Referencia", 2, align.Left),
		h("Nota", 3, align.Left),
		h("Entrada", 1, align.Right),
		h("Salida", 1, align.Right),
		h("Saldo", 1, align.Right),
	)
}

// tableDetailRows: una fila por movimiento.
func tableDetailRows(lines []dto.StockCardLineDTO) []core.Row {
	result := make([]core.Row, 0, len(lines))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, l := range lines {
		result = append(result, row.New(6).Add(
			cell(l.CreatedAt.Format("02/01/2006 15:04"), 2, align.Left),
			cell(l.ReasonCode, 2, align.Left),
			cell(nonEmpty(l.RefCode, "—"), 2, align.Left),
			cell(truncate(l.Note, 40), 3, align.Left),
			cell(qtyOrDash(l.QtyIn), 1, align.Right),
			cell(qtyOrDash(l.QtyOut), 1, align.Right),
			cell(formatQty(l.Balance), 1, align.Right),
		))
	}
	return result
}

func totalsRow(card *dto.StockCardResponse, currency string) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Saldo final:"),
			label("Saldo actual:"),
			label("Costo promedio:"),
		),
		col.New(3).Add(
			value(formatQty(card.ClosingQty)),
			value(formatQty(card.CurrentQty)),
			value(nonEmpty(currency, "IDR")+" "+formatMoney(card.AvgCost.StringFixed(0))),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func periodLabel(from, to *time.Time) string {
	f, t := "inicio", "hoy"
	if from != nil {
		f = from.Format("02/01/2006")
	}
	if to != nil {
		t = to.Format("02/01/2006")
	}
	return f + " – " + t
}

// nonEmpty devuelve el primer valor no vacío.
func nonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func qtyOrDash(n int64) string {
	if n == 0 {
		return "—"
	}
	return formatQty(n)
}

// formatQty inserta puntos de miles conservando el signo.
func formatQty(n int64) string {
	if n < 0 {
		return "-" + formatMoney(strconv.FormatInt(-n, 10))
	}
	return formatMoney(strconv.FormatInt(n, 10))
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := len(s) > 0 && s[0] == '-'
	if neg {
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, n+n/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
