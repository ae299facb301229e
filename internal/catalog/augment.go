package catalog

import (
	"strings"

	"github.com/sells-group/stack-radar/internal/textnorm"
)

// IDs of the request-scoped fiscal entries.
const (
	TOTVSFiscalID = "totvs_fiscal_interno"
	B1AddonID     = "b1_fiscal_addon"
)

func totvsFiscal() Vendor {
	v := Vendor{
		ID:        TOTVSFiscalID,
		Name:      "TOTVS – Fiscal interno",
		Tier:      TierMid,
		Tags:      []string{"totvs_internal"},
		Keywords:  []string{"totvs fiscal", "fiscal totvs", "tss totvs"},
		Synthetic: true,
	}
	v.prepare()
	return v
}

func b1Addon() Vendor {
	v := Vendor{
		ID:        B1AddonID,
		Name:      "Add-on fiscal (SAP Business One)",
		Tier:      TierSMB,
		SizeHint:  &Range{Min: 10, Max: 300},
		Tags:      []string{"b1_addon"},
		Keywords:  []string{"add-on fiscal", "addon fiscal", "localizacao b1"},
		Synthetic: true,
	}
	v.prepare()
	return v
}

// IsTOTVS reports whether a vendor name belongs to the TOTVS family.
func IsTOTVS(name string) bool {
	n := textnorm.Fold(name)
	return strings.Contains(n, "totvs") || strings.Contains(n, "protheus")
}

// IsBusinessOne reports whether a vendor name is SAP Business One.
func IsBusinessOne(name string) bool {
	return strings.Contains(textnorm.Fold(name), "business one")
}

// Augment returns the fiscal candidate list for a request whose ERP winner
// is erpWinner. A TOTVS winner gets the internal TOTVS fiscal entry and a
// Business One winner gets the B1 fiscal add-on, prepended to a fresh slice.
// base is never modified.
func Augment(base []Vendor, erpWinner string) []Vendor {
	var extra Vendor
	switch {
	case IsTOTVS(erpWinner):
		extra = totvsFiscal()
	case IsBusinessOne(erpWinner):
		extra = b1Addon()
	default:
		return base
	}

	out := make([]Vendor, 0, len(base)+1)
	out = append(out, extra)
	return append(out, base...)
}
