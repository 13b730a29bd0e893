package query

import (
	"context"
	"time"

	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
)

// --- Fixtures ---

var capitals = map[string][2]float64{
	"Germany":        {52.52, 13.40},
	"France":         {48.86, 2.35},
	"United States":  {38.90, -77.04},
	"Japan":          {35.68, 139.69},
	"Singapore":      {1.35, 103.82},
	"India":          {28.61, 77.21},
	"South Korea":    {37.57, 126.98},
	"Brazil":         {-15.79, -47.88},
	"Australia":      {-35.28, 149.13},
	"United Kingdom": {51.51, -0.13},
}

func mkNode(id, country string, status node.Status, latency int, storage float64, version string) node.Node {
	c := capitals[country]
	return node.Reconstruct(id, "10.0.0.1", version, status, latency, storage, node.Location{
		Latitude: c[0], Longitude: c[1], Country: country,
	})
}

func ids(nodes []node.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID()
	}
	return out
}

// --- Mocks ---

type mockSource struct {
	nodes []node.Node
	err   error
	calls int
}

func (m *mockSource) Nodes(_ context.Context) ([]node.Node, error) {
	m.calls++
	return m.nodes, m.err
}

type mockCounter struct {
	days []time.Time
	err  error
}

func (m *mockCounter) Incr(_ context.Context, day time.Time) error {
	m.days = append(m.days, day)
	return m.err
}
