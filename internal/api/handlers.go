package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/stack-radar/internal/model"
	"github.com/sells-group/stack-radar/internal/painpoint"
	"github.com/sells-group/stack-radar/internal/scorer"
)

// PainRequest is the body of POST /v1/pain.
type PainRequest struct {
	Segmento    string `json:"segmento"`
	Subsegmento string `json:"subsegmento"`
	Debug       bool   `json:"debug"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"erp_vendors":     len(s.engine.Catalog().ERP),
		"fiscal_vendors":  len(s.engine.Catalog().Fiscal),
		"pain_segments":   len(s.resolver.Catalog().Segments),
		"response_cached": s.cache.enabled(),
	})
}

func (s *Server) handleTop3(w http.ResponseWriter, r *http.Request) {
	opts := scorer.ViewOptions{IncludeBreakdown: queryBool(r, "breakdown")}
	s.serveCached(w, r, strconv.FormatBool(opts.IncludeBreakdown), func(body []byte) (int, any) {
		var p model.CompanyProfile
		if err := json.Unmarshal(body, &p); err != nil {
			return http.StatusBadRequest, errorBody("invalid profile: " + err.Error())
		}
		return http.StatusOK, s.engine.BuildTop3(p, opts)
	})
}

func (s *Server) handlePain(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, "", func(body []byte) (int, any) {
		var req PainRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return http.StatusBadRequest, errorBody("invalid request body: " + err.Error())
		}
		if strings.TrimSpace(req.Segmento) == "" && strings.TrimSpace(req.Subsegmento) == "" {
			return http.StatusBadRequest, errorBody("segmento or subsegmento is required")
		}
		return http.StatusOK, s.resolver.Resolve(req.Segmento, req.Subsegmento, painpoint.Options{Debug: req.Debug})
	})
}

// serveCached reads the body, answers from the response cache when it can,
// and otherwise renders and caches successful responses.
func (s *Server) serveCached(w http.ResponseWriter, r *http.Request, variant string, render func([]byte) (int, any)) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	key := cacheKey(r.URL.Path, variant, body)
	if hit, ok := s.cache.get(key); ok {
		w.Header().Set(cacheHeader, "hit")
		writeRaw(w, hit.status, hit.body)
		return
	}

	status, v := render(body)
	out, err := json.Marshal(v)
	if err != nil {
		zap.L().Error("api: encode response", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not encode response")
		return
	}
	if status == http.StatusOK {
		s.cache.put(key, cachedResponse{status: status, body: out})
	}
	w.Header().Set(cacheHeader, "miss")
	writeRaw(w, status, out)
}

func queryBool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody(msg))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	out, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"could not encode response"}`, http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, out)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		zap.L().Debug("api: write response", zap.Error(err))
		return
	}
	_, _ = w.Write([]byte{'\n'})
}
