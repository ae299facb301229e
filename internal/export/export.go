// Package export writes batch scoring results as JSON lines, CSV or XLSX.
package export

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/stack-radar/internal/painpoint"
	"github.com/sells-group/stack-radar/internal/scorer"
)

// Format is an output encoding for batch results.
type Format string

const (
	FormatJSONL Format = "jsonl"
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSONL, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", eris.Errorf("export: unknown format %q (want jsonl, csv or xlsx)", s)
	}
}

// Record is the outcome for one input line of a batch.
type Record struct {
	Line    int                   `json:"line"`
	Empresa string                `json:"empresa,omitempty"`
	Result  *scorer.Result        `json:"result,omitempty"`
	Pain    *painpoint.Resolution `json:"pain,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// Write encodes recs to w in format f.
func Write(w io.Writer, f Format, recs []Record) error {
	switch f {
	case FormatJSONL:
		return WriteJSONL(w, recs)
	case FormatCSV:
		return WriteCSV(w, recs)
	case FormatXLSX:
		return WriteXLSX(w, recs)
	default:
		return eris.Errorf("export: unknown format %q", f)
	}
}

// WriteJSONL writes one JSON object per record.
func WriteJSONL(w io.Writer, recs []Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i := range recs {
		if err := enc.Encode(&recs[i]); err != nil {
			return eris.Wrapf(err, "export: encode line %d", recs[i].Line)
		}
	}
	return nil
}

var slotColumns = []string{"nome", "confianca", "motivo"}

// Header returns the column names of the tabular formats.
func Header() []string {
	h := []string{"linha", "empresa"}
	for _, list := range []string{"erp", "fiscal"} {
		for i := 1; i <= 3; i++ {
			for _, c := range slotColumns {
				h = append(h, list+"_"+strconv.Itoa(i)+"_"+c)
			}
		}
	}
	return append(h, "segmento_resolvido", "dor", "erro")
}

// Cells flattens r into the column order of Header.
func (r Record) Cells() []string {
	cells := make([]string, 0, len(Header()))
	cells = append(cells, strconv.Itoa(r.Line), r.Empresa)

	var erp, fiscal []scorer.CandidateView
	if r.Result != nil {
		erp, fiscal = r.Result.ERPTop3, r.Result.FiscalTop3
	}
	cells = appendSlots(cells, erp)
	cells = appendSlots(cells, fiscal)

	if r.Pain != nil {
		cells = append(cells, r.Pain.SegmentoResolvido, r.Pain.Dor)
	} else {
		cells = append(cells, "", "")
	}
	return append(cells, r.Error)
}

func appendSlots(cells []string, list []scorer.CandidateView) []string {
	for i := 0; i < 3; i++ {
		if i >= len(list) {
			cells = append(cells, "", "", "")
			continue
		}
		c := list[i]
		cells = append(cells, c.Name, strconv.Itoa(c.ConfidencePct), c.WhyShort)
	}
	return cells
}
