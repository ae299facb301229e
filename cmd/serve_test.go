//go:build !integration

package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/stack-radar/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Log: config.LogConfig{Level: "info", Format: "json"},
		Server: config.ServerConfig{
			Port:            8080,
			RatePerMinute:   30,
			Burst:           10,
			CacheTTLSecs:    60,
			CacheMaxEntries: 100,
			CORSOrigins:     []string{"*"},
		},
		Batch:   config.BatchConfig{Concurrency: 2},
		Scoring: config.DefaultScoringConfig(),
	}
}

func TestBuildServer_Routes(t *testing.T) {
	srv, err := buildServer(testConfig())
	require.NoError(t, err)
	defer srv.Close()
	h := srv.Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/top3", strings.NewReader(totvsProfileJSON))
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "TOTVS Protheus")

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/v1/pain", strings.NewReader(`{"segmento":"Hospital"}`))
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Hospitais e Clínicas")
}

func TestBuildServer_InvalidScoring(t *testing.T) {
	c := testConfig()
	c.Scoring.Ranking.MaxReasons = 0

	_, err := buildServer(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_reasons")
}

func TestBuildServer_BadCatalogPath(t *testing.T) {
	c := testConfig()
	c.Catalog.VendorsPath = "/nonexistent/vendors.yaml"
	_, err := buildServer(c)
	assert.Error(t, err)

	c = testConfig()
	c.Catalog.SegmentsPath = "/nonexistent/segments.yaml"
	_, err = buildServer(c)
	assert.Error(t, err)
}

func TestServeCommand_InvalidPort(t *testing.T) {
	_, err := execute(t, "", "serve", "--port", "70000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}
