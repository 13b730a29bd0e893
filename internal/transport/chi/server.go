package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nodeglobe/internal/domain"
	"github.com/kailas-cloud/nodeglobe/internal/repository/dataset"
	cataloguc "github.com/kailas-cloud/nodeglobe/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/nodeglobe/internal/usecase/health"
	queryuc "github.com/kailas-cloud/nodeglobe/internal/usecase/query"
)

// maxBodyBytes caps POST bodies; a query is at most MaxQueryLength runes of up to 4 bytes.
const maxBodyBytes = 4*queryuc.MaxQueryLength + 1024

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// QueryCounter reads the daily query count.
type QueryCounter interface {
	Get(ctx context.Context, day time.Time) (int64, error)
}

// Server serves the node query API.
type Server struct {
	query         *queryuc.Service
	catalog       *cataloguc.Service
	health        *healthuc.Service
	counter       QueryCounter
	logger        *zap.Logger
	now           func() time.Time
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	query *queryuc.Service,
	catalog *cataloguc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		query:   query,
		catalog: catalog,
		health:  health,
		logger:  logger,
		now:     time.Now,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrQueryTooLong, http.StatusBadRequest, CodeQueryTooLong),
		sentinelHandler(domain.ErrCatalogEmpty, http.StatusServiceUnavailable, CodeCatalogUnavailable),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, CodeRateLimited),
		sentinelHandler(domain.ErrInvalidDataset, http.StatusInternalServerError, CodeInvalidDataset),
	}
	return s
}

// WithCounter exposes the daily query count in stats.
func (s *Server) WithCounter(c QueryCounter) *Server {
	s.counter = c
	return s
}

// Query handles POST /api/v1/query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ev, err := s.query.Query(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, evaluationToResponse(ev))
}

// ParseQuery handles GET /api/v1/query/parse?q=.
func (s *Server) ParseQuery(w http.ResponseWriter, r *http.Request) {
	sp, err := s.query.Parse(r.URL.Query().Get("q"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, specToResponse(sp))
}

// ExportQuery handles GET /api/v1/query/export?q=, streaming the result as CSV.
func (s *Server) ExportQuery(w http.ResponseWriter, r *http.Request) {
	ev, err := s.query.Query(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="nodes.csv"`)
	w.Header().Set("X-Query-Description", ev.Result.Description())
	w.WriteHeader(http.StatusOK)

	if err := dataset.EncodeCSV(w, ev.Result.Nodes()); err != nil {
		logFromRequest(r, s.logger).Warn("CSV export interrupted", zap.Error(err))
	}
}

// ListNodes handles GET /api/v1/nodes.
func (s *Server) ListNodes(w http.ResponseWriter, r *http.Request) {
	nodes, err := s.catalog.Nodes(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NodeListResponse{Items: nodesToResponse(nodes), Total: len(nodes)})
}

// ReloadNodes handles POST /api/v1/nodes/reload.
func (s *Server) ReloadNodes(w http.ResponseWriter, r *http.Request) {
	st, err := s.catalog.Load(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	logFromRequest(r, s.logger).Info("Catalog reloaded via API",
		zap.Int("nodes", st.Nodes),
		zap.String("source", string(st.Source)),
	)
	writeJSON(w, http.StatusOK, statsToResponse(st))
}

// Stats handles GET /api/v1/stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	resp := statsToResponse(s.catalog.Stats())
	if s.counter != nil {
		n, err := s.counter.Get(r.Context(), s.now())
		if err != nil {
			logFromRequest(r, s.logger).Warn("Failed to read query counter", zap.Error(err))
		} else {
			resp.QueriesToday = &n
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrQueryTooLong,
		domain.ErrCatalogEmpty,
		domain.ErrRateLimited,
		domain.ErrInvalidDataset,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
