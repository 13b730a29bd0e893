package snapshot

import (
	"context"
	"time"

	"github.com/kailas-cloud/nodeglobe/internal/db"
)

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	data    map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	setKeys []string
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mockKVStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKVStore) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.setKeys = append(m.setKeys, key)
	m.data[key] = value
	return nil
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := m.Set(ctx, key, value); err != nil {
		return err
	}
	m.ttls[key] = ttl
	return nil
}
