package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kailas-cloud/nodeglobe/internal/metrics"
)

// RouterConfig holds the cross-cutting HTTP settings.
type RouterConfig struct {
	APIKeys []string
	// QueryRatePerSec limits query endpoints per client; 0 disables limiting.
	QueryRatePerSec float64
	QueryBurst      int
}

// NewRouter mounts the API on a chi router with the standard middleware chain.
func NewRouter(s *Server, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(s.logger))
	r.Use(BearerAuthMiddleware(cfg.APIKeys))
	r.Use(metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if cfg.QueryRatePerSec > 0 {
				r.Use(NewRateLimiter(cfg.QueryRatePerSec, cfg.QueryBurst).Middleware)
			}
			r.Post("/query", s.Query)
			r.Get("/query/parse", s.ParseQuery)
			r.Get("/query/export", s.ExportQuery)
		})
		r.Get("/nodes", s.ListNodes)
		r.Post("/nodes/reload", s.ReloadNodes)
		r.Get("/stats", s.Stats)
	})

	return r
}
