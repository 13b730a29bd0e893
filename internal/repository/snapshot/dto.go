package snapshot

import (
	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
)

// snapshotDoc is the JSON document stored under the snapshot key.
type snapshotDoc struct {
	SavedAt int64     `json:"saved_at"`
	Nodes   []nodeRow `json:"nodes"`
}

type nodeRow struct {
	ID        string  `json:"id"`
	IP        string  `json:"ip"`
	Version   string  `json:"version"`
	Status    string  `json:"status"`
	LatencyMs int     `json:"latency_ms"`
	StorageGB float64 `json:"storage_gb"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Country   string  `json:"country"`
	City      string  `json:"city,omitempty"`
}

func nodeToRow(n node.Node) nodeRow {
	loc := n.Location()
	return nodeRow{
		ID:        n.ID(),
		IP:        n.IP(),
		Version:   n.Version(),
		Status:    string(n.Status()),
		LatencyMs: n.LatencyMs(),
		StorageGB: n.StorageGB(),
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Country:   loc.Country,
		City:      loc.City,
	}
}

// nodeFromRow hydrates a node without validation; rows were validated before they were saved.
func nodeFromRow(r nodeRow) node.Node {
	return node.Reconstruct(r.ID, r.IP, r.Version, node.Status(r.Status), r.LatencyMs, r.StorageGB, node.Location{
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Country:   r.Country,
		City:      r.City,
	})
}
