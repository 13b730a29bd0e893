package query

import (
	"context"
	"time"

	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
)

// NodeSource supplies the node collection queries run against.
type NodeSource interface {
	Nodes(ctx context.Context) ([]node.Node, error)
}

// QueryCounter counts evaluated queries per day.
type QueryCounter interface {
	Incr(ctx context.Context, day time.Time) error
}
