package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/nodeglobe/internal/domain"
)

// Format is a dataset file encoding, selected by file extension.
type Format string

// Supported dataset formats.
const (
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
)

// FormatOf returns the dataset format for path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: unsupported extension %q", domain.ErrInvalidDataset, filepath.Ext(path))
	}
}
