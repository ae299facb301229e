package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/stack-radar/internal/painpoint"
)

func TestPainCommand_JSON(t *testing.T) {
	out, err := execute(t, "", "pain", "--segmento", "Banco Digital XYZ")
	require.NoError(t, err)

	var res painpoint.Resolution
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "Serviços Financeiros (Bancos)", res.SegmentoResolvido)
	assert.Equal(t, painpoint.ViaAlias, res.Via)
	assert.Nil(t, res.Debug)
}

func TestPainCommand_FallbackText(t *testing.T) {
	out, err := execute(t, "", "pain", "--segmento", "empresa sem pista", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "(genérico) [fallback, 20%]")
}

func TestPainCommand_Debug(t *testing.T) {
	out, err := execute(t, "", "pain", "--segmento", "Tecnologia", "--subsegmento", "SaaS B2B", "--debug")
	require.NoError(t, err)
	assert.Contains(t, out, `"alias_match": "saas"`)
}

func TestPainCommand_CustomCatalog(t *testing.T) {
	path := writeFile(t, "segments.yaml", "generic_dor: g\nsegments:\n  - {segmento: Vinho, aliases: [vinicola], dor: d}\n")
	t.Setenv("RADAR_CATALOG_SEGMENTS_PATH", path)

	out, err := execute(t, "", "pain", "--segmento", "Vinícola do Sul", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Vinho [alias, 95%]")
}

func TestPainCommand_Errors(t *testing.T) {
	_, err := execute(t, "", "pain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--segmento or --subsegmento is required")

	_, err = execute(t, "", "pain", "--segmento", "Varejo", "--format", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--format must be json or text")
}
