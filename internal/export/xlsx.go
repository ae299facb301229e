package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// SheetName is the worksheet the XLSX writer fills.
const SheetName = "top3"

// WriteXLSX writes recs as a single-sheet workbook. Line and confidence
// columns are stored as numbers.
func WriteXLSX(w io.Writer, recs []Record) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	header := Header()
	addRow(sheet, header, nil)

	numeric := make(map[int]bool)
	for i, h := range header {
		if h == "linha" || strings.HasSuffix(h, "_confianca") {
			numeric[i] = true
		}
	}
	for _, r := range recs {
		addRow(sheet, r.Cells(), numeric)
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "xlsx: write workbook")
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, cells []string, numeric map[int]bool) {
	row := sheet.AddRow()
	for i, v := range cells {
		cell := row.AddCell()
		if numeric[i] && v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				cell.SetInt(n)
				continue
			}
		}
		cell.SetString(v)
	}
}
