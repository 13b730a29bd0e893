package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/nodeglobe/internal/db"
	"github.com/kailas-cloud/nodeglobe/internal/domain"
	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
)

// store is the consumer interface for the snapshot repository (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Repo persists the last good node collection in the key-value store.
type Repo struct {
	store store
	key   string
	ttl   time.Duration
	now   func() time.Time
}

// New creates a snapshot repository. A zero ttl stores the snapshot without expiry.
func New(s store, prefix string, ttl time.Duration) *Repo {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	return &Repo{store: s, key: prefix + "nodes:snapshot", ttl: ttl, now: time.Now}
}

// Key returns the key the snapshot is stored under.
func (r *Repo) Key() string { return r.key }

// Save replaces the stored snapshot with nodes.
func (r *Repo) Save(ctx context.Context, nodes []node.Node) error {
	doc := snapshotDoc{SavedAt: r.now().UnixMilli(), Nodes: make([]nodeRow, len(nodes))}
	for i, n := range nodes {
		doc.Nodes[i] = nodeToRow(n)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if r.ttl > 0 {
		err = r.store.SetWithTTL(ctx, r.key, data, r.ttl)
	} else {
		err = r.store.Set(ctx, r.key, data)
	}
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the stored node collection and when it was saved.
func (r *Repo) Load(ctx context.Context) ([]node.Node, time.Time, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, time.Time{}, domain.ErrSnapshotNotFound
		}
		return nil, time.Time{}, fmt.Errorf("load snapshot: %w", err)
	}

	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, time.Time{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	nodes := make([]node.Node, len(doc.Nodes))
	for i, row := range doc.Nodes {
		nodes[i] = nodeFromRow(row)
	}
	return nodes, time.UnixMilli(doc.SavedAt), nil
}
