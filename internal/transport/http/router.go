// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services; transport concerns stay here.
package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"guardian/internal/platform/middleware"
	"guardian/pkg/domainerrors"
)

// NewRouter wires all public endpoints. The action-execution and audit
// surfaces sit behind token auth; event ingestion and read-only views do not.
func NewRouter(h *Handler, validator middleware.JWTValidator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/events", h.handleIngestEvent)
	r.Get("/insights", h.handleInsights)
	r.Get("/household", h.handleHousehold)
	r.Get("/actions", h.handleListActions)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, logger))
		r.Post("/actions/{actionID}/execute", h.handleExecuteAction)
		r.Get("/audit/entries", h.handleAuditEntries)
		r.Get("/audit/report", h.handleAuditReport)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError centralizes domain error translation so every handler emits
// consistent JSON error envelopes.
func writeError(w http.ResponseWriter, err error) {
	code := domainerrors.CodeOf(err)
	writeJSON(w, domainerrors.ToHTTPStatus(code), map[string]string{
		"error": string(code),
	})
}
