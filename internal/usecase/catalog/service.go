package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nodeglobe/internal/domain"
	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
	"github.com/kailas-cloud/nodeglobe/internal/metrics"
)

// Source tells where the current collection came from.
type Source string

// Collection sources.
const (
	SourceDataset  Source = "dataset"
	SourceSnapshot Source = "snapshot"
	SourceStatic   Source = "static"
)

// Stats summarizes the current collection.
type Stats struct {
	Nodes     int
	Active    int
	Offline   int
	Countries int
	LoadedAt  time.Time
	Source    Source
}

// Service holds the current node collection. Readers get copies; a reload swaps
// the whole collection at once.
type Service struct {
	loader    Loader
	snapshots SnapshotStore
	logger    *zap.Logger
	now       func() time.Time

	loadMu sync.Mutex // serializes Load

	mu       sync.RWMutex
	nodes    []node.Node
	loaded   bool
	loadedAt time.Time
	source   Source
}

// New creates a catalog. loader can be nil for a catalog filled only via Replace
// or from snapshots.
func New(loader Loader, logger *zap.Logger) *Service {
	return &Service{loader: loader, logger: logger, now: time.Now}
}

// WithSnapshots enables persisting and falling back to snapshots.
func (s *Service) WithSnapshots(store SnapshotStore) *Service {
	s.snapshots = store
	return s
}

// Load reads the collection from the loader. On success the collection is
// persisted as a snapshot (best effort). On failure the last snapshot is used
// instead; if that fails too the current collection stays and an error is returned.
func (s *Service) Load(ctx context.Context) (Stats, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	var loadErr error
	if s.loader != nil {
		nodes, err := s.loader.Load(ctx)
		if err == nil {
			metrics.CatalogReloadsTotal.WithLabelValues(string(SourceDataset), "ok").Inc()
			s.set(nodes, SourceDataset)
			s.saveSnapshot(ctx, nodes)
			return s.Stats(), nil
		}
		metrics.CatalogReloadsTotal.WithLabelValues(string(SourceDataset), "error").Inc()
		loadErr = fmt.Errorf("load dataset: %w", err)
	}

	if s.snapshots == nil {
		if loadErr == nil {
			loadErr = errors.New("no node source configured")
		}
		return s.Stats(), loadErr
	}

	nodes, savedAt, err := s.snapshots.Load(ctx)
	if err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues(string(SourceSnapshot), "error").Inc()
		return s.Stats(), errors.Join(loadErr, fmt.Errorf("load snapshot: %w", err))
	}
	metrics.CatalogReloadsTotal.WithLabelValues(string(SourceSnapshot), "ok").Inc()
	s.set(nodes, SourceSnapshot)
	if loadErr != nil {
		s.logger.Warn("Dataset unavailable, serving snapshot",
			zap.Error(loadErr),
			zap.Time("snapshot_saved_at", savedAt),
			zap.Int("nodes", len(nodes)),
		)
	}
	return s.Stats(), nil
}

func (s *Service) saveSnapshot(ctx context.Context, nodes []node.Node) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Save(ctx, nodes); err != nil {
		s.logger.Warn("Failed to save node snapshot", zap.Error(err))
	}
}

// Replace installs nodes as the current collection without touching snapshots.
func (s *Service) Replace(nodes []node.Node) {
	s.set(nodes, SourceStatic)
}

func (s *Service) set(nodes []node.Node, src Source) {
	cp := slices.Clone(nodes)
	s.mu.Lock()
	s.nodes = cp
	s.loaded = true
	s.loadedAt = s.now()
	s.source = src
	s.mu.Unlock()
	metrics.CatalogNodes.Set(float64(len(cp)))
}

// Nodes returns a copy of the current collection.
func (s *Service) Nodes(_ context.Context) ([]node.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, domain.ErrCatalogEmpty
	}
	return slices.Clone(s.nodes), nil
}

// Stats summarizes the current collection.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Nodes: len(s.nodes), LoadedAt: s.loadedAt, Source: s.source}
	countries := make(map[string]struct{})
	for _, n := range s.nodes {
		if n.Status() == node.Active {
			st.Active++
		} else {
			st.Offline++
		}
		countries[strings.ToLower(n.Country())] = struct{}{}
	}
	st.Countries = len(countries)
	return st
}

// HealthCheck fails until a collection has been loaded.
func (s *Service) HealthCheck(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return domain.ErrCatalogEmpty
	}
	return nil
}

// Watch reloads the catalog whenever w reports a change. Blocks until ctx is done.
func (s *Service) Watch(ctx context.Context, w Watcher) error {
	return w.Watch(ctx, func() {
		st, err := s.Load(ctx)
		if err != nil {
			s.logger.Error("Catalog reload failed", zap.Error(err))
			return
		}
		s.logger.Info("Catalog reloaded",
			zap.Int("nodes", st.Nodes),
			zap.String("source", string(st.Source)),
		)
	})
}
