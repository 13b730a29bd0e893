package nodeglobe

import (
	"fmt"

	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
	"github.com/kailas-cloud/nodeglobe/internal/domain/query/spec"
	queryuc "github.com/kailas-cloud/nodeglobe/internal/usecase/query"
)

func nodeToDomain(n Node) (node.Node, error) {
	status, err := node.ParseStatus(n.Status)
	if err != nil {
		return node.Node{}, fmt.Errorf("node %q: %w", n.ID, err)
	}
	return node.New(n.ID, n.IP, n.Version, status, n.LatencyMs, n.StorageGB, node.Location{
		Latitude:  n.Location.Lat,
		Longitude: n.Location.Lon,
		Country:   n.Location.Country,
		City:      n.Location.City,
	})
}

func nodesToDomain(nodes []Node) ([]node.Node, error) {
	out := make([]node.Node, 0, len(nodes))
	seen := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		d, err := nodeToDomain(n)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[d.ID()]; dup {
			return nil, fmt.Errorf("%w: duplicate node id %q", ErrInvalidNode, d.ID())
		}
		seen[d.ID()] = struct{}{}
		out = append(out, d)
	}
	return out, nil
}

func nodeFromDomain(n node.Node) Node {
	loc := n.Location()
	return Node{
		ID:        n.ID(),
		IP:        n.IP(),
		Version:   n.Version(),
		Status:    string(n.Status()),
		LatencyMs: n.LatencyMs(),
		StorageGB: n.StorageGB(),
		Location: Location{
			Lat:     loc.Latitude,
			Lon:     loc.Longitude,
			Country: loc.Country,
			City:    loc.City,
		},
	}
}

func nodesFromDomain(nodes []node.Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = nodeFromDomain(n)
	}
	return out
}

func specFromDomain(s spec.Spec) Spec {
	return Spec{
		Countries: s.Countries(),
		Region:    s.Region(),
		Latency:   string(s.Latency()),
		Status:    string(s.Status()),
		Storage:   string(s.Storage()),
		Version:   s.Version(),
		Limit:     s.Limit(),
		SortBy:    string(s.SortKey()),
		SortOrder: string(s.Direction()),
		Raw:       s.Raw(),
	}
}

func resultFromEvaluation(ev queryuc.Evaluation) Result {
	res := Result{
		ID:          ev.ID,
		Spec:        specFromDomain(ev.Spec),
		Nodes:       nodesFromDomain(ev.Result.Nodes()),
		Count:       ev.Result.Count(),
		Description: ev.Result.Description(),
	}
	if p, ok := ev.Result.Focus(); ok {
		res.Focus = &Point{Lat: p.Latitude, Lon: p.Longitude}
	}
	return res
}
