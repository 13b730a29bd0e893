package query

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
	"github.com/kailas-cloud/nodeglobe/internal/domain/query/spec"
)

func TestApply_ActiveInGermany(t *testing.T) {
	nodes := []node.Node{
		mkNode("de-1", "Germany", node.Active, 40, 800, "0.8.0"),
		mkNode("fr-1", "France", node.Active, 50, 800, "0.8.0"),
		mkNode("de-2", "Germany", node.Offline, 60, 800, "0.8.0"),
		mkNode("us-1", "United States", node.Active, 120, 800, "0.8.0"),
		mkNode("de-3", "Germany", node.Active, 70, 800, "0.7.1"),
		mkNode("jp-1", "Japan", node.Active, 90, 800, "0.8.0"),
		mkNode("uk-1", "United Kingdom", node.Offline, 30, 800, "0.8.0"),
		mkNode("br-1", "Brazil", node.Active, 220, 800, "0.8.0"),
	}

	res := Apply(nodes, Parse("active nodes in Germany"))

	if got, want := ids(res.Nodes()), []string{"de-1", "de-3"}; !slices.Equal(got, want) {
		t.Fatalf("results: got %v, want %v", got, want)
	}
	desc := res.Description()
	if !strings.Contains(desc, "active") || !strings.Contains(desc, "Germany") {
		t.Errorf("description %q should mention active and Germany", desc)
	}
	if desc != "2 active in Germany nodes" {
		t.Errorf("description: got %q", desc)
	}
}

func TestApply_TopFastestInAsia(t *testing.T) {
	asian := []string{"Japan", "Singapore", "India", "South Korea"}
	var nodes []node.Node
	// Distinct latencies, deliberately not in order.
	latencies := []int{180, 35, 240, 90, 12, 150, 60, 300, 75, 110}
	for i, l := range latencies {
		nodes = append(nodes, mkNode(fmt.Sprintf("as-%d", i), asian[i%len(asian)], node.Active, l, 500, "0.8.0"))
	}
	nodes = append(nodes,
		mkNode("eu-1", "Germany", node.Active, 1, 500, "0.8.0"),
		mkNode("eu-2", "France", node.Active, 2, 500, "0.8.0"),
	)

	res := Apply(nodes, Parse("top 3 fastest nodes in Asia"))

	got := res.Nodes()
	if want := []string{"as-4", "as-1", "as-6"}; !slices.Equal(ids(got), want) {
		t.Fatalf("results: got %v, want %v", ids(got), want)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].LatencyMs() > got[i].LatencyMs() {
			t.Errorf("results not ascending by latency: %v", ids(got))
		}
	}
	if !strings.HasPrefix(res.Description(), "Top 3 ") || !strings.HasSuffix(res.Description(), "nodes") {
		t.Errorf("description: got %q", res.Description())
	}
}

func TestApply_NoRecognizedVocabulary(t *testing.T) {
	nodes := []node.Node{
		mkNode("a", "Germany", node.Active, 10, 100, "1"),
		mkNode("b", "Japan", node.Offline, 500, 2000, "2"),
		mkNode("c", "Brazil", node.Active, 150, 700, "3"),
	}

	s := Parse("show me nodes on Mars")
	if !s.IsEmpty() {
		t.Fatalf("expected empty spec, populated: %v", s.Populated())
	}

	res := Apply(nodes, s)
	if got := ids(res.Nodes()); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("results: got %v", got)
	}
	if res.Description() != "Found 3 nodes" {
		t.Errorf("description: got %q", res.Description())
	}
}

func TestApply_OfflineWinsOverActive(t *testing.T) {
	nodes := []node.Node{
		mkNode("up", "Germany", node.Active, 10, 100, "1"),
		mkNode("down", "Germany", node.Offline, 10, 100, "1"),
	}
	res := Apply(nodes, Parse("active but currently not working"))
	if got := ids(res.Nodes()); !slices.Equal(got, []string{"down"}) {
		t.Errorf("results: got %v", got)
	}
}

func TestFilter_Boundaries(t *testing.T) {
	nodes := []node.Node{
		mkNode("l99", "Germany", node.Active, 99, 0, ""),
		mkNode("l100", "Germany", node.Active, 100, 0, ""),
		mkNode("l200", "Germany", node.Active, 200, 0, ""),
		mkNode("l201", "Germany", node.Active, 201, 0, ""),
	}
	tests := []struct {
		tier spec.LatencyTier
		want []string
	}{
		{spec.LatencyLow, []string{"l99"}},
		{spec.LatencyMedium, []string{"l100", "l200"}},
		{spec.LatencyHigh, []string{"l201"}},
	}
	for _, tc := range tests {
		got := ids(Filter(nodes, spec.New(spec.Fields{Latency: tc.tier})))
		if !slices.Equal(got, tc.want) {
			t.Errorf("latency %s: got %v, want %v", tc.tier, got, tc.want)
		}
	}

	storage := []node.Node{
		mkNode("s499", "Germany", node.Active, 0, 499, ""),
		mkNode("s500", "Germany", node.Active, 0, 500, ""),
		mkNode("s999", "Germany", node.Active, 0, 999, ""),
		mkNode("s1000", "Germany", node.Active, 0, 1000, ""),
	}
	if got := ids(Filter(storage, spec.New(spec.Fields{Storage: spec.StorageLow}))); !slices.Equal(got, []string{"s499"}) {
		t.Errorf("storage low: got %v", got)
	}
	if got := ids(Filter(storage, spec.New(spec.Fields{Storage: spec.StorageHigh}))); !slices.Equal(got, []string{"s1000"}) {
		t.Errorf("storage high: got %v", got)
	}
}

func TestFilter_CountryIsCaseInsensitive(t *testing.T) {
	nodes := []node.Node{
		mkNode("a", "Germany", node.Active, 1, 1, ""),
		node.Reconstruct("b", "", "", node.Active, 1, 1, node.Location{Country: "GERMANY"}),
		node.Reconstruct("c", "", "", node.Active, 1, 1, node.Location{Country: "Germany East"}),
	}
	got := ids(Filter(nodes, spec.New(spec.Fields{Countries: []string{"germany"}})))
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("got %v", got)
	}
}

func TestFilter_VersionIsCaseSensitiveSubstring(t *testing.T) {
	nodes := []node.Node{
		mkNode("a", "Germany", node.Active, 1, 1, "0.8.0"),
		mkNode("b", "Germany", node.Active, 1, 1, "0.8.0-RC1"),
		mkNode("c", "Germany", node.Active, 1, 1, "0.7.0"),
	}
	if got := ids(Filter(nodes, spec.New(spec.Fields{Version: "0.8"}))); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("substring: got %v", got)
	}
	if got := ids(Filter(nodes, spec.New(spec.Fields{Version: "rc1"}))); len(got) != 0 {
		t.Errorf("case-sensitive: got %v", got)
	}
}

// Every result must satisfy each populated filter on its own.
func TestApply_ConjunctionProperty(t *testing.T) {
	countries := []string{"Germany", "France", "Japan", "Singapore", "United States", "Brazil"}
	versions := []string{"0.7.1", "0.8.0", "1.0.2"}
	var nodes []node.Node
	for i := 0; i < 180; i++ {
		status := node.Active
		if i%3 == 0 {
			status = node.Offline
		}
		nodes = append(nodes, mkNode(
			fmt.Sprintf("n%03d", i),
			countries[i%len(countries)],
			status,
			(i*37)%320,
			float64((i*211)%2400),
			versions[i%len(versions)],
		))
	}

	queries := []string{
		"active nodes in Germany",
		"offline high latency nodes",
		"low latency nodes in asia with lots of storage",
		"medium latency running v0.8",
		"nodes in europe with small storage",
		"healthy nodes in japan, france or brazil under 100ms",
		"dead nodes version 1.0",
	}
	for _, q := range queries {
		s := Parse(q)
		res := Apply(nodes, s)
		countrySet := map[string]bool{}
		for _, c := range s.Countries() {
			countrySet[strings.ToLower(c)] = true
		}
		for _, n := range res.Nodes() {
			if s.HasCountries() && !countrySet[strings.ToLower(n.Country())] {
				t.Errorf("%q: %s fails country filter", q, n.ID())
			}
			if !s.Latency().Contains(n.LatencyMs()) {
				t.Errorf("%q: %s fails latency filter", q, n.ID())
			}
			if s.Status() != "" && n.Status() != s.Status() {
				t.Errorf("%q: %s fails status filter", q, n.ID())
			}
			if !s.Storage().Contains(n.StorageGB()) {
				t.Errorf("%q: %s fails storage filter", q, n.ID())
			}
			if !strings.Contains(n.Version(), s.Version()) {
				t.Errorf("%q: %s fails version filter", q, n.ID())
			}
		}
	}
}

func TestSort_IsStable(t *testing.T) {
	nodes := []node.Node{
		mkNode("a", "Germany", node.Active, 50, 10, ""),
		mkNode("b", "Germany", node.Offline, 20, 10, ""),
		mkNode("c", "Germany", node.Active, 50, 10, ""),
		mkNode("d", "Germany", node.Offline, 20, 10, ""),
		mkNode("e", "Germany", node.Active, 50, 10, ""),
	}

	asc := slices.Clone(nodes)
	Sort(asc, spec.New(spec.Fields{SortKey: spec.SortLatency}))
	if got := ids(asc); !slices.Equal(got, []string{"b", "d", "a", "c", "e"}) {
		t.Errorf("asc: got %v", got)
	}

	desc := slices.Clone(nodes)
	Sort(desc, spec.New(spec.Fields{SortKey: spec.SortLatency, Direction: spec.Descending}))
	if got := ids(desc); !slices.Equal(got, []string{"a", "c", "e", "b", "d"}) {
		t.Errorf("desc: got %v", got)
	}

	byStorage := slices.Clone(nodes)
	Sort(byStorage, spec.New(spec.Fields{SortKey: spec.SortStorage, Direction: spec.Descending}))
	if got := ids(byStorage); !slices.Equal(got, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("all-equal storage should keep input order, got %v", got)
	}
}

func TestSort_ByStatus(t *testing.T) {
	nodes := []node.Node{
		mkNode("o1", "Germany", node.Offline, 1, 1, ""),
		mkNode("a1", "Germany", node.Active, 1, 1, ""),
		mkNode("o2", "Germany", node.Offline, 1, 1, ""),
		mkNode("a2", "Germany", node.Active, 1, 1, ""),
	}
	asc := slices.Clone(nodes)
	Sort(asc, spec.New(spec.Fields{SortKey: spec.SortStatus}))
	if got := ids(asc); !slices.Equal(got, []string{"a1", "a2", "o1", "o2"}) {
		t.Errorf("asc: got %v", got)
	}
	desc := slices.Clone(nodes)
	Sort(desc, spec.New(spec.Fields{SortKey: spec.SortStatus, Direction: spec.Descending}))
	if got := ids(desc); !slices.Equal(got, []string{"o1", "o2", "a1", "a2"}) {
		t.Errorf("desc: got %v", got)
	}
}

func TestSort_ByStorageDescending(t *testing.T) {
	nodes := []node.Node{
		mkNode("small", "Germany", node.Active, 1, 120.5, ""),
		mkNode("big", "Germany", node.Active, 1, 4096, ""),
		mkNode("mid", "Germany", node.Active, 1, 750, ""),
	}
	res := Apply(nodes, Parse("sort by storage largest first"))
	if got := ids(res.Nodes()); !slices.Equal(got, []string{"big", "mid", "small"}) {
		t.Errorf("got %v", got)
	}
}

func TestApply_LimitTruncation(t *testing.T) {
	var nodes []node.Node
	for i := 0; i < 7; i++ {
		nodes = append(nodes, mkNode(fmt.Sprintf("n%d", i), "Germany", node.Active, i, 1, ""))
	}
	tests := []struct {
		limit int
		want  int
	}{
		{0, 7},
		{1, 1},
		{5, 5},
		{7, 7},
		{50, 7},
	}
	for _, tc := range tests {
		res := Apply(nodes, spec.New(spec.Fields{Limit: tc.limit}))
		if res.Count() != tc.want {
			t.Errorf("limit %d: got %d results, want %d", tc.limit, res.Count(), tc.want)
		}
	}
}

func TestApply_RegionExpansion(t *testing.T) {
	var nodes []node.Node
	for i, c := range []string{"Germany", "Japan", "France", "United Kingdom", "Brazil", "Singapore"} {
		nodes = append(nodes, mkNode(fmt.Sprintf("n%d", i), c, node.Active, 10, 10, ""))
	}

	s := Parse("europe")
	if s.Region() != "europe" {
		t.Fatalf("region: got %q", s.Region())
	}
	if !slices.Equal(s.Countries(), RegionMembers("europe")) {
		t.Fatalf("countries: got %v", s.Countries())
	}

	union := Filter(nodes, spec.New(spec.Fields{Countries: RegionMembers("europe")}))
	res := Apply(nodes, s)
	if !slices.Equal(ids(res.Nodes()), ids(union)) {
		t.Errorf("region result %v differs from country union %v", ids(res.Nodes()), ids(union))
	}
	if want := []string{"n0", "n2", "n3"}; !slices.Equal(ids(union), want) {
		t.Errorf("union: got %v, want %v", ids(union), want)
	}
	if res.Description() != "3 in Europe nodes" {
		t.Errorf("description: got %q", res.Description())
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	nodes := []node.Node{
		mkNode("c", "Germany", node.Active, 30, 1, ""),
		mkNode("a", "Germany", node.Active, 10, 1, ""),
		mkNode("b", "Germany", node.Active, 20, 1, ""),
	}
	before := ids(nodes)
	_ = Apply(nodes, Parse("top 2 fastest"))
	if after := ids(nodes); !slices.Equal(before, after) {
		t.Errorf("input reordered: before %v, after %v", before, after)
	}
}

func TestApply_EmptyCollection(t *testing.T) {
	res := Apply(nil, Parse("top 5 active nodes in germany"))
	if res.Count() != 0 {
		t.Errorf("count: got %d", res.Count())
	}
	if res.Description() != "Top 5 active in Germany nodes" {
		t.Errorf("description: got %q", res.Description())
	}
	if _, ok := res.Focus(); ok {
		t.Error("empty result should have no focus")
	}
}
