package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogChecker reports whether a node collection is being served.
type CatalogChecker interface {
	HealthCheck(ctx context.Context) error
}
