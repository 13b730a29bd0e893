package catalog

import (
	"context"
	"time"

	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
)

// Loader reads the primary node collection (the dataset file).
type Loader interface {
	Load(ctx context.Context) ([]node.Node, error)
}

// Watcher reports changes of the primary source. Watch blocks until ctx is done.
type Watcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// SnapshotStore persists the last good collection for cold starts without a dataset.
type SnapshotStore interface {
	Save(ctx context.Context, nodes []node.Node) error
	Load(ctx context.Context) ([]node.Node, time.Time, error)
}
