package query

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nodeglobe/internal/domain"
	"github.com/kailas-cloud/nodeglobe/internal/domain/query/result"
	"github.com/kailas-cloud/nodeglobe/internal/domain/query/spec"
	logpkg "github.com/kailas-cloud/nodeglobe/internal/logger"
	"github.com/kailas-cloud/nodeglobe/internal/metrics"
)

// MaxQueryLength is the maximum accepted query length in characters.
const MaxQueryLength = 4096

// Evaluation is one query run: the parsed spec and what it matched.
type Evaluation struct {
	ID     string
	Spec   spec.Spec
	Result result.Result
	Took   time.Duration
}

// Service evaluates natural-language queries against the node catalog.
type Service struct {
	source  NodeSource
	counter QueryCounter
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

// New creates a query service.
func New(source NodeSource, logger *zap.Logger) *Service {
	return &Service{
		source: source,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// WithCounter enables daily query counting. Counter failures never fail a query.
func (s *Service) WithCounter(c QueryCounter) *Service {
	s.counter = c
	return s
}

// Parse validates the text length and parses it.
func (s *Service) Parse(text string) (spec.Spec, error) {
	if n := utf8.RuneCountInString(text); n > MaxQueryLength {
		return spec.Spec{}, fmt.Errorf("%w: %d chars (max %d)", domain.ErrQueryTooLong, n, MaxQueryLength)
	}
	return Parse(text), nil
}

// Query parses text and applies it to the current node collection.
func (s *Service) Query(ctx context.Context, text string) (Evaluation, error) {
	start := s.now()

	sp, err := s.Parse(text)
	if err != nil {
		metrics.QueryEvaluationsTotal.WithLabelValues("error").Inc()
		return Evaluation{}, err
	}

	nodes, err := s.source.Nodes(ctx)
	if err != nil {
		metrics.QueryEvaluationsTotal.WithLabelValues("error").Inc()
		return Evaluation{}, fmt.Errorf("load nodes: %w", err)
	}

	res := Apply(nodes, sp)
	ev := Evaluation{
		ID:     s.newID(),
		Spec:   sp,
		Result: res,
		Took:   s.now().Sub(start),
	}

	metrics.QueryEvaluationsTotal.WithLabelValues("ok").Inc()
	metrics.QueryResultSize.Observe(float64(res.Count()))
	for _, field := range sp.Populated() {
		metrics.QueryFieldsTotal.WithLabelValues(field).Inc()
	}

	s.count(ctx, start)

	logpkg.FromContextOr(ctx, s.logger).Debug("query evaluated",
		zap.String("query_id", ev.ID),
		zap.String("raw", sp.Raw()),
		zap.Strings("fields", sp.Populated()),
		zap.Int("candidates", len(nodes)),
		zap.Int("results", res.Count()),
		zap.Duration("took", ev.Took),
	)

	return ev, nil
}

func (s *Service) count(ctx context.Context, day time.Time) {
	if s.counter == nil {
		return
	}
	if err := s.counter.Incr(ctx, day); err != nil {
		s.logger.Warn("Failed to count query", zap.Error(err))
	}
}
