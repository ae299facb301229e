package main

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/stack-radar/internal/catalog"
	"github.com/sells-group/stack-radar/internal/config"
	"github.com/sells-group/stack-radar/internal/painpoint"
	"github.com/sells-group/stack-radar/internal/scorer"
)

// buildEngine validates the scoring constants and loads the vendor catalog,
// preferring catalog.vendors_path over the embedded one.
func buildEngine(c *config.Config) (*scorer.Engine, error) {
	if err := scorer.ValidateConfig(c.Scoring); err != nil {
		return nil, err
	}

	cat := catalog.Default()
	if path := c.Catalog.VendorsPath; path != "" {
		loaded, err := catalog.LoadFile(path)
		if err != nil {
			return nil, eris.Wrap(err, "engine: vendor catalog")
		}
		cat = loaded
		zap.L().Info("loaded vendor catalog",
			zap.String("path", path),
			zap.Int("erp", len(cat.ERP)),
			zap.Int("fiscal", len(cat.Fiscal)),
		)
	}
	return scorer.New(cat, c.Scoring), nil
}

// buildResolver loads catalog.segments_path when set, else the embedded
// segment catalog.
func buildResolver(c *config.Config) (*painpoint.Resolver, error) {
	path := c.Catalog.SegmentsPath
	if path == "" {
		return painpoint.Default(), nil
	}
	cat, err := painpoint.LoadCatalog(path)
	if err != nil {
		return nil, eris.Wrap(err, "engine: segment catalog")
	}
	zap.L().Info("loaded segment catalog", zap.String("path", path), zap.Int("segments", len(cat.Segments)))
	return painpoint.NewResolver(cat), nil
}
