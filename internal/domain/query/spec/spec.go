// Package spec holds the structured form of a natural-language node query.
package spec

import (
	"slices"

	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
)

// Fields is the mutable input to New. Zero values mean "absent".
type Fields struct {
	Countries []string
	Region    string
	Latency   LatencyTier
	Status    node.Status
	Storage   StorageTier
	Version   string
	Limit     int
	SortKey   SortKey
	Direction Direction
	Raw       string
}

// Spec is an immutable query specification. Every field is optional and
// independent; an empty Spec matches every node.
type Spec struct {
	countries []string
	region    string
	latency   LatencyTier
	status    node.Status
	storage   StorageTier
	version   string
	limit     int
	sortKey   SortKey
	direction Direction
	raw       string
}

// New freezes f into a Spec. Countries are copied and deduplicated in order,
// a non-positive limit is dropped and the direction defaults to Ascending.
func New(f Fields) Spec {
	var countries []string
	for _, c := range f.Countries {
		if c != "" && !slices.Contains(countries, c) {
			countries = append(countries, c)
		}
	}
	limit := f.Limit
	if limit < 0 {
		limit = 0
	}
	dir := f.Direction
	if dir != Descending {
		dir = Ascending
	}
	return Spec{
		countries: countries,
		region:    f.Region,
		latency:   f.Latency,
		status:    f.Status,
		storage:   f.Storage,
		version:   f.Version,
		limit:     limit,
		sortKey:   f.SortKey,
		direction: dir,
		raw:       f.Raw,
	}
}

// Countries returns a copy of the canonical country names, in match order.
func (s Spec) Countries() []string { return slices.Clone(s.countries) }

// HasCountries reports whether a country filter is set.
func (s Spec) HasCountries() bool { return len(s.countries) > 0 }

// Region returns the canonical region name, or "".
func (s Spec) Region() string { return s.region }

// Latency returns the latency tier, or "".
func (s Spec) Latency() LatencyTier { return s.latency }

// Status returns the status filter, or "".
func (s Spec) Status() node.Status { return s.status }

// Storage returns the storage tier, or "".
func (s Spec) Storage() StorageTier { return s.storage }

// Version returns the version substring, or "".
func (s Spec) Version() string { return s.version }

// Limit returns the result cap; 0 means no cap.
func (s Spec) Limit() int { return s.limit }

// SortKey returns the sort key, or "".
func (s Spec) SortKey() SortKey { return s.sortKey }

// Direction returns the sort direction.
func (s Spec) Direction() Direction { return s.direction }

// Raw returns the original query text.
func (s Spec) Raw() string { return s.raw }

// Fields returns a mutable copy of the spec.
func (s Spec) Fields() Fields {
	return Fields{
		Countries: s.Countries(),
		Region:    s.region,
		Latency:   s.latency,
		Status:    s.status,
		Storage:   s.storage,
		Version:   s.version,
		Limit:     s.limit,
		SortKey:   s.sortKey,
		Direction: s.direction,
		Raw:       s.raw,
	}
}

// IsEmpty reports whether no filter, sort or limit is set.
func (s Spec) IsEmpty() bool {
	return len(s.countries) == 0 && s.region == "" && s.latency == "" &&
		s.status == "" && s.storage == "" && s.version == "" &&
		s.limit == 0 && s.sortKey == ""
}

// Populated returns the names of the set fields, in declaration order.
func (s Spec) Populated() []string {
	var out []string
	if len(s.countries) > 0 {
		out = append(out, "countries")
	}
	if s.region != "" {
		out = append(out, "region")
	}
	if s.latency != "" {
		out = append(out, "latency")
	}
	if s.status != "" {
		out = append(out, "status")
	}
	if s.storage != "" {
		out = append(out, "storage")
	}
	if s.version != "" {
		out = append(out, "version")
	}
	if s.limit > 0 {
		out = append(out, "limit")
	}
	if s.sortKey != "" {
		out = append(out, "sort")
	}
	return out
}
