package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/nodeglobe/internal/domain"
	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
)

// DefaultDebounce is how long Watch waits for writes to settle before reloading.
const DefaultDebounce = 250 * time.Millisecond

// Loader reads the node collection from a dataset file.
type Loader struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
}

// New creates a loader for the dataset at path.
func New(path string, logger *zap.Logger) *Loader {
	return &Loader{path: path, debounce: DefaultDebounce, logger: logger}
}

// WithDebounce overrides the watch debounce interval.
func (l *Loader) WithDebounce(d time.Duration) *Loader {
	if d > 0 {
		l.debounce = d
	}
	return l
}

// Path returns the dataset file path.
func (l *Loader) Path() string { return l.path }

// Load reads and validates the dataset file.
func (l *Loader) Load(_ context.Context) ([]node.Node, error) {
	return Read(l.path)
}

// Read decodes and validates the dataset at path. Any invalid record fails the
// whole read with domain.ErrInvalidDataset.
func Read(path string) ([]node.Node, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	var records []record
	if format == FormatParquet {
		rows, err := parquet.ReadFile[parquetRow](path)
		if err != nil {
			return nil, readError(path, err)
		}
		records = make([]record, len(rows))
		for i, r := range rows {
			records[i] = r.record()
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read dataset %s: %w", path, err)
		}
		records, err = decodeDocument(bytes.NewReader(data), format)
		if err != nil {
			return nil, err
		}
	}

	return toNodes(records)
}

// Decode reads a YAML or JSON dataset from r.
func Decode(r io.Reader, format Format) ([]node.Node, error) {
	if format == FormatParquet {
		return nil, fmt.Errorf("%w: parquet needs random access, use Read", domain.ErrInvalidDataset)
	}
	records, err := decodeDocument(r, format)
	if err != nil {
		return nil, err
	}
	return toNodes(records)
}

func decodeDocument(r io.Reader, format Format) ([]record, error) {
	var doc document
	var err error
	if format == FormatJSON {
		err = json.NewDecoder(r).Decode(&doc)
	} else {
		err = yaml.NewDecoder(r).Decode(&doc)
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDataset, err)
	}
	return doc.Nodes, nil
}

func readError(path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read dataset %s: %w", path, err)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrInvalidDataset, path, err)
}

func toNodes(records []record) ([]node.Node, error) {
	nodes := make([]node.Node, 0, len(records))
	seen := make(map[string]int, len(records))
	for i, r := range records {
		status, err := node.ParseStatus(r.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", domain.ErrInvalidDataset, i, err)
		}
		n, err := node.New(r.ID, r.IP, r.Version, status, r.LatencyMs, r.StorageGB, node.Location{
			Latitude:  r.Location.Latitude,
			Longitude: r.Location.Longitude,
			Country:   r.Location.Country,
			City:      r.Location.City,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", domain.ErrInvalidDataset, i, err)
		}
		if first, dup := seen[n.ID()]; dup {
			return nil, fmt.Errorf("%w: record %d: duplicate id %q (first at record %d)",
				domain.ErrInvalidDataset, i, n.ID(), first)
		}
		seen[n.ID()] = i
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// Write stores nodes at path in the format selected by its extension. The file
// is written to a temporary sibling and renamed into place.
func Write(path string, nodes []node.Node) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if err := encode(tmp, format, nodes); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename dataset: %w", err)
	}
	return nil
}

func encode(w io.Writer, format Format, nodes []node.Node) error {
	switch format {
	case FormatParquet:
		rows := make([]parquetRow, len(nodes))
		for i, n := range nodes {
			rows[i] = parquetRowFromNode(n)
		}
		if err := parquet.Write(w, rows); err != nil {
			return fmt.Errorf("encode parquet: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(toDocument(nodes)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toDocument(nodes)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	}
}

func toDocument(nodes []node.Node) document {
	doc := document{Nodes: make([]record, len(nodes))}
	for i, n := range nodes {
		doc.Nodes[i] = recordFromNode(n)
	}
	return doc
}
