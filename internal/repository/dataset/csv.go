package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
)

// CSVHeader is the column order of EncodeCSV output.
var CSVHeader = []string{
	"id", "ip", "version", "status", "latency_ms", "storage_gb", "country", "city", "lat", "lon",
}

// EncodeCSV writes nodes as CSV rows preceded by CSVHeader.
// CSV is an export format only; it is not accepted by Read.
func EncodeCSV(w io.Writer, nodes []node.Node) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, n := range nodes {
		if err := cw.Write(csvRow(n)); err != nil {
			return fmt.Errorf("write csv row %s: %w", n.ID(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(n node.Node) []string {
	loc := n.Location()
	return []string{
		n.ID(),
		n.IP(),
		n.Version(),
		string(n.Status()),
		strconv.Itoa(n.LatencyMs()),
		strconv.FormatFloat(n.StorageGB(), 'f', -1, 64),
		loc.Country,
		loc.City,
		strconv.FormatFloat(loc.Latitude, 'f', -1, 64),
		strconv.FormatFloat(loc.Longitude, 'f', -1, 64),
	}
}
