package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.RatePerMinute)
	assert.Equal(t, 10, cfg.Server.Burst)
	assert.Equal(t, 600, cfg.Server.CacheTTLSecs)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
	assert.Empty(t, cfg.Catalog.VendorsPath)
	assert.Equal(t, DefaultScoringConfig(), cfg.Scoring)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
log:
  level: debug
  format: console
server:
  port: 9090
batch:
  concurrency: 2
scoring:
  erp:
    evidence_strong: 30
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Batch.Concurrency)
	assert.InDelta(t, 30.0, cfg.Scoring.ERP.EvidenceStrong, 0.001)
	// Defaults still apply for unset values
	assert.Equal(t, 30, cfg.Server.RatePerMinute)
	assert.InDelta(t, 18.0, cfg.Scoring.ERP.SizeFitInBand, 0.001)
	assert.Equal(t, []float64{4, 6, 8}, cfg.Scoring.ERP.EvidenceMentions)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
log:
  level: debug
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("RADAR_LOG_LEVEL", "warn")
	t.Setenv("RADAR_SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("RADAR_BATCH_CONCURRENCY", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Batch.Concurrency)
}

func TestLoadEnvOverridesScoring(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("RADAR_SCORING_ERP_EVIDENCE_STRONG", "30")
	t.Setenv("RADAR_SCORING_RANKING_SIGNIFICANCE_THRESHOLD", "7")
	t.Setenv("RADAR_SCORING_RANKING_MAX_REASONS", "3")
	t.Setenv("RADAR_SCORING_THRESHOLDS_MISMATCH_REVENUE", "500000000")
	t.Setenv("RADAR_SCORING_FISCAL_EVIDENCE_MENTIONS", "2,4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.InDelta(t, 30.0, cfg.Scoring.ERP.EvidenceStrong, 0.001)
	assert.InDelta(t, 7.0, cfg.Scoring.Ranking.SignificanceThreshold, 0.001)
	assert.Equal(t, 3, cfg.Scoring.Ranking.MaxReasons)
	assert.Equal(t, int64(500_000_000), cfg.Scoring.Thresholds.MismatchRevenue)
	assert.Equal(t, []float64{2, 4}, cfg.Scoring.Fiscal.EvidenceMentions)

	// Untouched constants keep their defaults.
	def := DefaultScoringConfig()
	assert.InDelta(t, def.ERP.SizeFitInBand, cfg.Scoring.ERP.SizeFitInBand, 0.001)
	assert.Equal(t, def.ERP.EvidenceMentions, cfg.Scoring.ERP.EvidenceMentions)
}

func TestLoadFromYAML_ShorterMentionsReplaceDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := "scoring:\n  erp:\n    evidence_mentions: [5]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, cfg.Scoring.ERP.EvidenceMentions)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [\n"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{Scoring: DefaultScoringConfig()}
	cfg.Server.Port = 8080
	cfg.Server.RatePerMinute = 30
	cfg.Server.Burst = 10
	cfg.Batch.Concurrency = 8
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		mutate  func(*Config)
		wantErr string
	}{
		{"serve defaults", "serve", func(*Config) {}, ""},
		{"batch defaults", "batch", func(*Config) {}, ""},
		{"score defaults", "score", func(*Config) {}, ""},
		{"bad port", "serve", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"negative rate", "serve", func(c *Config) { c.Server.RatePerMinute = -1 }, "rate_per_minute"},
		{"no burst", "serve", func(c *Config) { c.Server.Burst = 0 }, "server.burst"},
		{"rate off no burst", "serve", func(c *Config) { c.Server.RatePerMinute = 0; c.Server.Burst = 0 }, ""},
		{"zero concurrency", "batch", func(c *Config) { c.Batch.Concurrency = 0 }, "batch.concurrency"},
		{"port ignored for batch", "batch", func(c *Config) { c.Server.Port = 0 }, ""},
		{"empty mentions", "score", func(c *Config) { c.Scoring.ERP.EvidenceMentions = nil }, "evidence_mentions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDefaults()
			tt.mutate(cfg)
			err := cfg.Validate(tt.mode)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultScoringConfig_Independent(t *testing.T) {
	a := DefaultScoringConfig()
	a.ERP.EvidenceMentions[0] = 99
	b := DefaultScoringConfig()
	assert.InDelta(t, 4.0, b.ERP.EvidenceMentions[0], 0.001)
}
