package result

import (
	"slices"

	"github.com/kailas-cloud/nodeglobe/internal/domain/geo"
	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
)

// Result is the outcome of evaluating a query against a node collection.
type Result struct {
	nodes       []node.Node
	description string
}

// New creates a query result.
func New(nodes []node.Node, description string) Result {
	return Result{nodes: nodes, description: description}
}

// Nodes returns a copy of the matched nodes in result order.
func (r Result) Nodes() []node.Node { return slices.Clone(r.nodes) }

// Count returns the number of matched nodes.
func (r Result) Count() int { return len(r.nodes) }

// Description returns the human-readable summary.
func (r Result) Description() string { return r.description }

// Focus returns the spherical centroid of the matched nodes, the point the
// globe should turn to. ok is false when there is nothing to focus on.
func (r Result) Focus() (geo.Point, bool) {
	points := make([]geo.Point, len(r.nodes))
	for i, n := range r.nodes {
		loc := n.Location()
		points[i] = geo.Point{Latitude: loc.Latitude, Longitude: loc.Longitude}
	}
	return geo.Centroid(points)
}
