package domain

import "errors"

var (
	// ErrInvalidNode signals a node record that fails validation.
	ErrInvalidNode = errors.New("invalid node")
	// ErrInvalidDataset signals a dataset file that cannot be decoded or validated.
	ErrInvalidDataset = errors.New("invalid dataset")
	// ErrCatalogEmpty signals that no node collection has been loaded yet.
	ErrCatalogEmpty = errors.New("node catalog not loaded")
	// ErrSnapshotNotFound signals a missing persisted node snapshot.
	ErrSnapshotNotFound = errors.New("node snapshot not found")
	// ErrQueryTooLong signals a query text over the accepted length.
	ErrQueryTooLong = errors.New("query too long")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)
