package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
	"github.com/kailas-cloud/nodeglobe/internal/domain/query/result"
	"github.com/kailas-cloud/nodeglobe/internal/domain/query/spec"
)

// Apply filters, sorts and truncates nodes according to s. The input slice is
// never modified; the result holds its own slice.
func Apply(nodes []node.Node, s spec.Spec) result.Result {
	matched := Filter(nodes, s)
	Sort(matched, s)
	if limit := s.Limit(); limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return result.New(matched, Describe(s, len(matched)))
}

// Filter returns the nodes that satisfy every populated filter of s, in input order.
// Passes run country, latency, status, storage, version.
func Filter(nodes []node.Node, s spec.Spec) []node.Node {
	out := slices.Clone(nodes)

	if s.HasCountries() {
		countries := make(map[string]struct{})
		for _, c := range s.Countries() {
			countries[strings.ToLower(c)] = struct{}{}
		}
		out = slices.DeleteFunc(out, func(n node.Node) bool {
			_, ok := countries[strings.ToLower(n.Country())]
			return !ok
		})
	}
	if tier := s.Latency(); tier != "" {
		out = slices.DeleteFunc(out, func(n node.Node) bool { return !tier.Contains(n.LatencyMs()) })
	}
	if status := s.Status(); status != "" {
		out = slices.DeleteFunc(out, func(n node.Node) bool { return n.Status() != status })
	}
	if tier := s.Storage(); tier != "" {
		out = slices.DeleteFunc(out, func(n node.Node) bool { return !tier.Contains(n.StorageGB()) })
	}
	if v := s.Version(); v != "" {
		out = slices.DeleteFunc(out, func(n node.Node) bool { return !strings.Contains(n.Version(), v) })
	}
	return out
}

// Sort stable-sorts nodes in place by the spec's sort key. Without a key it is a no-op.
func Sort(nodes []node.Node, s spec.Spec) {
	compare := comparator(s.SortKey())
	if compare == nil {
		return
	}
	if s.Direction() == spec.Descending {
		asc := compare
		compare = func(a, b node.Node) int { return -asc(a, b) }
	}
	slices.SortStableFunc(nodes, compare)
}

func comparator(key spec.SortKey) func(a, b node.Node) int {
	switch key {
	case spec.SortLatency:
		return func(a, b node.Node) int { return cmp.Compare(a.LatencyMs(), b.LatencyMs()) }
	case spec.SortStorage:
		return func(a, b node.Node) int { return cmp.Compare(a.StorageGB(), b.StorageGB()) }
	case spec.SortStatus:
		return func(a, b node.Node) int { return strings.Compare(string(a.Status()), string(b.Status())) }
	}
	return nil
}
