package dataset

import (
	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
)

// document is the top-level YAML/JSON dataset layout.
type document struct {
	Nodes []record `yaml:"nodes" json:"nodes"`
}

type record struct {
	ID        string         `yaml:"id" json:"id"`
	IP        string         `yaml:"ip" json:"ip"`
	Version   string         `yaml:"version" json:"version"`
	Status    string         `yaml:"status" json:"status"`
	LatencyMs int            `yaml:"latency_ms" json:"latency_ms"`
	StorageGB float64        `yaml:"storage_gb" json:"storage_gb"`
	Location  locationRecord `yaml:"location" json:"location"`
}

type locationRecord struct {
	Latitude  float64 `yaml:"lat" json:"lat"`
	Longitude float64 `yaml:"lon" json:"lon"`
	Country   string  `yaml:"country" json:"country"`
	City      string  `yaml:"city,omitempty" json:"city,omitempty"`
}

// parquetRow is the flat columnar layout of a parquet dataset.
type parquetRow struct {
	ID        string  `parquet:"id"`
	IP        string  `parquet:"ip"`
	Version   string  `parquet:"version"`
	Status    string  `parquet:"status"`
	LatencyMs int64   `parquet:"latency_ms"`
	StorageGB float64 `parquet:"storage_gb"`
	Latitude  float64 `parquet:"latitude"`
	Longitude float64 `parquet:"longitude"`
	Country   string  `parquet:"country"`
	City      string  `parquet:"city,optional"`
}

func (r parquetRow) record() record {
	return record{
		ID:        r.ID,
		IP:        r.IP,
		Version:   r.Version,
		Status:    r.Status,
		LatencyMs: int(r.LatencyMs),
		StorageGB: r.StorageGB,
		Location: locationRecord{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Country:   r.Country,
			City:      r.City,
		},
	}
}

func recordFromNode(n node.Node) record {
	loc := n.Location()
	return record{
		ID:        n.ID(),
		IP:        n.IP(),
		Version:   n.Version(),
		Status:    string(n.Status()),
		LatencyMs: n.LatencyMs(),
		StorageGB: n.StorageGB(),
		Location: locationRecord{
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Country:   loc.Country,
			City:      loc.City,
		},
	}
}

func parquetRowFromNode(n node.Node) parquetRow {
	r := recordFromNode(n)
	return parquetRow{
		ID:        r.ID,
		IP:        r.IP,
		Version:   r.Version,
		Status:    r.Status,
		LatencyMs: int64(r.LatencyMs),
		StorageGB: r.StorageGB,
		Latitude:  r.Location.Latitude,
		Longitude: r.Location.Longitude,
		Country:   r.Location.Country,
		City:      r.Location.City,
	}
}
