package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes mounts every endpoint on a fresh sub-router. The caller owns the
// top-level router and its middleware (CORS, recovery, request logging).
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/leagues", h.GetCatalog)
		r.Get("/leagues/{league}/seasons/{season}/table", h.GetLeagueTable)
		r.Get("/leagues/{league}/seasons/{season}/progression", h.GetProgression)
		r.Get("/comparison", h.GetComparison)
		r.Get("/dataset", h.GetDatasetInfo)
		r.Post("/ingest/matches", h.IngestMatches)
	})

	return r
}
