// Package spreadsheet exporta saldos a XLSX y lee planillas CSV/XLSX de import masivo.
package spreadsheet

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stok-api/internal/application/dto"
)

const balanceSheet = "Saldos"

var balanceHeadings = []string{
	"Producto", "Color", "Ubicación", "Talla", "Variante", "Cantidad", "Costo promedio", "Valor",
}

// WriteBalanceTree escribe el árbol de saldos como una fila por talla, con subtotal por ubicación.
func WriteBalanceTree(w io.Writer, tree []dto.ProductColorBalanceDTO) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", balanceSheet); err != nil {
		return fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: estilo: %w", err)
	}
	for i, h := range balanceHeadings {
		if err := setCell(f, i+1, 1, h); err != nil {
			return err
		}
	}
	if err := f.SetRowStyle(balanceSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	rowNo := 2
	var grand int64
	for _, pc := range tree {
		for _, loc := range pc.Locations {
			for _, s := range loc.Sizes {
				value := s.AvgCost.Mul(decimal.NewFromInt(s.Quantity)).Round(0)
				cells := []any{
					pc.ProductName, pc.ColorName, loc.LocationName, s.SizeName, s.VariantID,
					s.Quantity, s.AvgCost.InexactFloat64(), value.InexactFloat64(),
				}
				for i, v := range cells {
					if err := setCell(f, i+1, rowNo, v); err != nil {
						return err
					}
				}
				rowNo++
			}
			for i, v := range []any{pc.ProductName, pc.ColorName, loc.LocationName, "Subtotal", nil, loc.Total} {
				if v == nil {
					continue
				}
				if err := setCell(f, i+1, rowNo, v); err != nil {
					return err
				}
			}
			if err := f.SetRowStyle(balanceSheet, rowNo, rowNo, bold); err != nil {
				return fmt.Errorf("xlsx: estilo subtotal: %w", err)
			}
			rowNo++
		}
		grand += pc.Total
	}
	if err := setCell(f, 1, rowNo, "TOTAL"); err != nil {
		return err
	}
	if err := setCell(f, 6, rowNo, grand); err != nil {
		return err
	}
	if err := f.SetRowStyle(balanceSheet, rowNo, rowNo, bold); err != nil {
		return fmt.Errorf("xlsx: estilo total: %w", err)
	}
	if err := f.SetColWidth(balanceSheet, "A", "C", 22); err != nil {
		return fmt.Errorf("xlsx: ancho de columnas: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: escribir: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("xlsx: celda (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(balanceSheet, cell, v); err != nil {
		return fmt.Errorf("xlsx: celda %s: %w", cell, err)
	}
	return nil
}
