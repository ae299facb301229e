package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/stack-radar/internal/catalog"
)

func TestCatalogCommand_Tables(t *testing.T) {
	tests := []struct {
		arg  string
		want []string
	}{
		{"erp", []string{"ID", "sap_s4hana", "totvs_protheus", "sap_core/"}},
		{"fiscal", []string{"mastersaf", "avalara"}},
		{"segments", []string{"SEGMENTO", "Serviços Financeiros (Bancos)"}},
		{"rules", []string{"SIGNAL", "has_sap", "segment"}},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			out, err := execute(t, "", "catalog", tt.arg)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestCatalogCommand_JSON(t *testing.T) {
	out, err := execute(t, "", "catalog", "erp", "--format", "json")
	require.NoError(t, err)

	var vendors []catalog.Vendor
	require.NoError(t, json.Unmarshal([]byte(out), &vendors))
	assert.Len(t, vendors, len(catalog.Default().ERP))
}

func TestCatalogCommand_Args(t *testing.T) {
	_, err := execute(t, "", "catalog")
	assert.Error(t, err)

	_, err = execute(t, "", "catalog", "crm")
	assert.Error(t, err)

	_, err = execute(t, "", "catalog", "erp", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--format must be table or json")
}
