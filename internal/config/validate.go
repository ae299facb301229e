package config

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Validate checks the settings a command mode depends on. Modes: "score",
// "batch", "serve".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be between 1 and 65535")
		}
		if c.Server.RatePerMinute < 0 {
			errs = append(errs, "server.rate_per_minute must be >= 0")
		}
		if c.Server.RatePerMinute > 0 && c.Server.Burst <= 0 {
			errs = append(errs, "server.burst must be > 0 when rate limiting is on")
		}
		if c.Server.CacheTTLSecs < 0 {
			errs = append(errs, "server.cache_ttl_secs must be >= 0")
		}
	case "batch":
		if c.Batch.Concurrency <= 0 {
			errs = append(errs, "batch.concurrency must be > 0")
		}
	}

	if len(c.Scoring.ERP.EvidenceMentions) == 0 || len(c.Scoring.Fiscal.EvidenceMentions) == 0 {
		errs = append(errs, "scoring evidence_mentions must be non-empty")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}
