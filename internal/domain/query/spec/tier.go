package spec

// LatencyTier is a coarse latency bucket.
type LatencyTier string

// Latency tiers. Boundaries 100 and 200 belong to Medium.
const (
	LatencyHigh   LatencyTier = "high"
	LatencyLow    LatencyTier = "low"
	LatencyMedium LatencyTier = "medium"
)

// Latency tier thresholds in milliseconds.
const (
	LowLatencyBelowMs  = 100
	HighLatencyAboveMs = 200
)

// IsValid checks if the tier is one of the supported values.
func (t LatencyTier) IsValid() bool {
	return t == LatencyHigh || t == LatencyLow || t == LatencyMedium
}

// Contains reports whether a latency falls in the tier.
func (t LatencyTier) Contains(ms int) bool {
	switch t {
	case LatencyHigh:
		return ms > HighLatencyAboveMs
	case LatencyLow:
		return ms < LowLatencyBelowMs
	case LatencyMedium:
		return ms >= LowLatencyBelowMs && ms <= HighLatencyAboveMs
	default:
		return true
	}
}

// StorageTier is a coarse storage-capacity bucket.
type StorageTier string

// Storage tiers.
const (
	StorageHigh StorageTier = "high"
	StorageLow  StorageTier = "low"
)

// Storage tier thresholds in gigabytes. 1000 is high; 500 is not low.
const (
	HighStorageFromGB = 1000
	LowStorageBelowGB = 500
)

// IsValid checks if the tier is one of the supported values.
func (t StorageTier) IsValid() bool {
	return t == StorageHigh || t == StorageLow
}

// Contains reports whether a capacity falls in the tier.
func (t StorageTier) Contains(gb float64) bool {
	switch t {
	case StorageHigh:
		return gb >= HighStorageFromGB
	case StorageLow:
		return gb < LowStorageBelowGB
	default:
		return true
	}
}

// SortKey selects the node attribute to order by.
type SortKey string

// Sort keys.
const (
	SortLatency SortKey = "latency"
	SortStorage SortKey = "storage"
	SortStatus  SortKey = "status"
)

// IsValid checks if the key is one of the supported values.
func (k SortKey) IsValid() bool {
	return k == SortLatency || k == SortStorage || k == SortStatus
}

// Direction is the sort order.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)
