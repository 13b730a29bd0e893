package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/kailas-cloud/nodeglobe/internal/domain"
	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
)

func mkNode(id, country string, status node.Status) node.Node {
	return node.Reconstruct(id, "10.0.0.1", "0.8.0", status, 50, 500, node.Location{Country: country})
}

type mockLoader struct {
	mu    sync.Mutex
	nodes []node.Node
	err   error
	calls int
}

func (m *mockLoader) Load(_ context.Context) ([]node.Node, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.nodes, m.err
}

func (m *mockLoader) set(nodes []node.Node, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodes, m.err = nodes, err
}

type mockSnapshots struct {
	nodes   []node.Node
	savedAt time.Time
	loadErr error
	saveErr error
	saved   [][]node.Node
}

func (m *mockSnapshots) Save(_ context.Context, nodes []node.Node) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, nodes)
	return nil
}

func (m *mockSnapshots) Load(_ context.Context) ([]node.Node, time.Time, error) {
	if m.loadErr != nil {
		return nil, time.Time{}, m.loadErr
	}
	if m.nodes == nil {
		return nil, time.Time{}, domain.ErrSnapshotNotFound
	}
	return m.nodes, m.savedAt, nil
}

// mockWatcher fires onChange once per value sent on trigger.
type mockWatcher struct {
	trigger chan struct{}
	fired   chan struct{}
}

func newMockWatcher() *mockWatcher {
	return &mockWatcher{trigger: make(chan struct{}), fired: make(chan struct{})}
}

func (m *mockWatcher) Watch(ctx context.Context, onChange func()) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-m.trigger:
			onChange()
			m.fired <- struct{}{}
		}
	}
}
