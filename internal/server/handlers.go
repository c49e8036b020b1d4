package server

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"storelens/apimodels"
	"storelens/internal/metrics"
)

// requireAPIKey rejects requests whose X-API-Key header does not match the
// configured secret. Authorization failures short-circuit before the
// pipeline runs, unlike pipeline-internal faults which still answer 200.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.apiKey)) != 1 {
			slog.Warn("rejected request with invalid API key", "remote_addr", r.RemoteAddr)
			metrics.RequestsTotal.WithLabelValues("unauthorized").Inc()
			writeJSON(w, http.StatusUnauthorized, apimodels.ErrorResponse{Error: "invalid API key"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req apimodels.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RequestsTotal.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, apimodels.ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}
	defer r.Body.Close()

	if req.Question == "" {
		metrics.RequestsTotal.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, apimodels.ErrorResponse{Error: "question is required"})
		return
	}

	slog.Debug("received analyze request", "store_id", req.StoreID)

	start := time.Now()
	result := s.pipeline.Answer(r.Context(), req.Question, req.StoreID)
	metrics.RequestDuration.Observe(time.Since(start).Seconds())
	metrics.RequestsTotal.WithLabelValues("ok").Inc()

	slog.Debug("analyze request completed", "duration", time.Since(start))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apimodels.HealthResponse{
		Status:  "ok",
		Service: "storelens",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
