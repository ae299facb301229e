// Package api exposes the scoring engine and the pain resolver over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"

	"github.com/sells-group/stack-radar/internal/config"
	"github.com/sells-group/stack-radar/internal/painpoint"
	"github.com/sells-group/stack-radar/internal/scorer"
)

// maxBodyBytes caps request bodies; a profile with five news items is a few KB.
const maxBodyBytes = 1 << 20

// Server holds the read-only engines shared by every request.
type Server struct {
	engine   *scorer.Engine
	resolver *painpoint.Resolver
	cfg      config.ServerConfig
	quota    *quota
	cache    *responseCache
}

// New builds a Server. The engine and resolver are safe for concurrent use
// and are never mutated by handlers.
func New(engine *scorer.Engine, resolver *painpoint.Resolver, cfg config.ServerConfig) (*Server, error) {
	if engine == nil || resolver == nil {
		return nil, eris.New("api: engine and resolver are required")
	}
	cache, err := newResponseCache(cfg.CacheMaxEntries, time.Duration(cfg.CacheTTLSecs)*time.Second)
	if err != nil {
		return nil, err
	}
	return &Server{
		engine:   engine,
		resolver: resolver,
		cfg:      cfg,
		quota:    newQuota(cfg.RatePerMinute, cfg.Burst),
		cache:    cache,
	}, nil
}

// Close releases the response cache.
func (s *Server) Close() {
	s.cache.close()
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader, cacheHeader},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.quota.middleware)
		r.Post("/top3", s.handleTop3)
		r.Post("/pain", s.handlePain)
	})

	return r
}
