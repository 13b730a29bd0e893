package nodeglobe

import "github.com/kailas-cloud/nodeglobe/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidNode    = domain.ErrInvalidNode
	ErrInvalidDataset = domain.ErrInvalidDataset
	ErrCatalogEmpty   = domain.ErrCatalogEmpty
	ErrQueryTooLong   = domain.ErrQueryTooLong
)
