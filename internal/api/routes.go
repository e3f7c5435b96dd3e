package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zapponejosh/hijri-calendar-api/internal/config"
	"github.com/zapponejosh/hijri-calendar-api/internal/metrics"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET /health
//	GET /metrics
//	GET /api/v1/today
//	GET /api/v1/convert/{calendar}/{date}
//	GET /api/v1/months/{calendar}
//	GET /api/v1/years/{calendar}
//	GET /api/v1/events
//	GET /api/v1/events.ics
//	GET /api/v1/history            (X-API-Key)
//	GET /api/v1/history/{id}       (X-API-Key)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RecoveryMiddleware(logger))
	r.Use(RequestContextMiddleware())
	r.Use(LoggingMiddleware(logger, m))
	r.Use(CORSMiddleware())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	// ==========================================================================
	// Operational routes
	// ==========================================================================
	r.Get("/health", handlers.HealthCheck)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		// ======================================================================
		// Public routes
		// ======================================================================
		r.Get("/today", handlers.GetToday)
		r.Get("/convert/{calendar}/{date}", handlers.Convert)
		r.Get("/months/{calendar}", handlers.GetMonths)
		r.Get("/years/{calendar}", handlers.GetYears)
		r.Get("/events", handlers.GetEvents)
		r.Get("/events.ics", handlers.GetEventsICS)

		// ======================================================================
		// History routes (API key)
		// ======================================================================
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg, logger))
			r.Get("/history", handlers.GetHistory)
			r.Get("/history/{id}", handlers.GetHistoryEntry)
		})
	})

	return r
}
