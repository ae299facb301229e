package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Batch   BatchConfig   `yaml:"batch" mapstructure:"batch"`
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Scoring ScoringConfig `yaml:"scoring" mapstructure:"scoring"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Port            int      `yaml:"port" mapstructure:"port"`
	RatePerMinute   int      `yaml:"rate_per_minute" mapstructure:"rate_per_minute"`
	Burst           int      `yaml:"burst" mapstructure:"burst"`
	CacheTTLSecs    int      `yaml:"cache_ttl_secs" mapstructure:"cache_ttl_secs"`
	CacheMaxEntries int      `yaml:"cache_max_entries" mapstructure:"cache_max_entries"`
	CORSOrigins     []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// BatchConfig configures batch scoring.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// CatalogConfig points at optional catalog override files. Empty paths use
// the embedded catalogs.
type CatalogConfig struct {
	VendorsPath  string `yaml:"vendors_path" mapstructure:"vendors_path"`
	SegmentsPath string `yaml:"segments_path" mapstructure:"segments_path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_minute", 30)
	v.SetDefault("server.burst", 10)
	v.SetDefault("server.cache_ttl_secs", 600)
	v.SetDefault("server.cache_max_entries", 1000)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("batch.concurrency", 8)
	v.SetDefault("catalog.vendors_path", "")
	v.SetDefault("catalog.segments_path", "")
	if err := setScoringDefaults(v); err != nil {
		return nil, err
	}

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
