package query

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/kailas-cloud/nodeglobe/internal/domain/node"
	"github.com/kailas-cloud/nodeglobe/internal/domain/query/spec"
)

// Tier and directive patterns run against lower-cased text. Where two patterns
// compete, the one listed first is tested first and wins.
var (
	latencyHighRe = regexp.MustCompile(
		`\b(?:high|bad|poor|terrible)\s+(?:latency|ping)\b|\b(?:slow|laggy|lagging|sluggish)\b` +
			`|>\s*200(?:\s*ms)?\b|\b(?:over|above|more than)\s+200(?:\s*ms)?\b`)
	latencyLowRe = regexp.MustCompile(
		`\b(?:low|good|best|great)\s+(?:latency|ping)\b|\b(?:fast|quick|snappy|responsive)\b` +
			`|<\s*100(?:\s*ms)?\b|\b(?:under|below|less than)\s+100(?:\s*ms)?\b`)
	latencyMediumRe = regexp.MustCompile(
		`\b(?:moderate|average|normal|medium)\s+(?:latency|ping|speed)\b|\bbetween\s+100\s+and\s+200\b`)

	statusOfflineRe = regexp.MustCompile(
		`\b(?:offline|down|inactive|dead|unhealthy|failed|failing|unreachable|broken)\b` +
			`|\bnot\s+(?:working|running|active|online|responding|healthy)\b`)
	statusActiveRe = regexp.MustCompile(`\b(?:active|online|up|running|live|healthy|working|alive)\b`)

	storageHighRe = regexp.MustCompile(
		`\b(?:high|large|big|most|huge|lots of|plenty of)\s+(?:storage|capacity|space|disk)\b` +
			`|(?:^|[^\d.])[1-9]\d*(?:\.\d+)?\s*(?:tb|terabytes?)\b|\bterabytes?\b` +
			`|\b(?:over|above|more than)\s+1000\s*gb\b`)
	storageLowRe = regexp.MustCompile(
		`\b(?:low|small|little|least|limited|tiny)\s+(?:storage|capacity|space|disk)\b` +
			`|\b(?:under|below|less than)\s+500\s*gb\b`)

	versionRe = regexp.MustCompile(`(?:^|[^a-z0-9])(?:version\s*|v)(\d+(?:\.\d+)*)\b`)

	limitRe     = regexp.MustCompile(`\b(?:top|first|show|limit|only)\s+(\d+)\b`)
	limitWordRe = regexp.MustCompile(`\b(?:top|first|show|only)\s+(one|two|three|four|five|six|seven|eight|nine|ten)\b`)

	latencySortRe = regexp.MustCompile(
		`\b(?:sort|sorted|order|ordered|rank|ranked)\s+by\s+(?:latency|ping|speed|response time)\b` +
			`|\b(?:fastest|quickest|slowest)\s+first\b`)
	latencyDescRe = regexp.MustCompile(`\b(?:slowest|highest|worst)\b`)
	storageSortRe = regexp.MustCompile(
		`\b(?:sort|sorted|order|ordered|rank|ranked)\s+by\s+(?:storage|capacity|space|size)\b` +
			`|\b(?:most|largest|biggest)\s+(?:storage\s+)?first\b`)
	storageDescRe = regexp.MustCompile(`\b(?:largest|most|biggest|highest)\b`)
	statusSortRe  = regexp.MustCompile(`\b(?:sort|sorted|order|ordered|rank|ranked)\s+by\s+status\b`)
	statusDescRe  = regexp.MustCompile(`\b(?:desc|descending|reverse|reversed)\b`)
	inferAscRe    = regexp.MustCompile(`\b(?:fastest|quickest|best)\b`)
	inferDescRe   = regexp.MustCompile(`\b(?:slowest|worst)\b`)
)

// phraseMatcher matches one alias as a whole phrase.
type phraseMatcher struct {
	re       *regexp.Regexp
	notAfter map[string]struct{}
}

type countryMatcher struct {
	name    string
	aliases []phraseMatcher
}

type regionMatcher struct {
	name    string
	aliases []phraseMatcher
	members []string
}

var (
	countryMatchers = compileCountries(countryTable)
	regionMatchers  = compileRegions(regionTable)
)

func compileAlias(a alias) phraseMatcher {
	words := strings.Fields(a.phrase)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	// \b is ASCII-only in RE2, so boundaries are spelled out to cover accented aliases
	// and aliases ending in punctuation ("u.s.").
	pattern := `(?:^|[^\p{L}\p{N}])(` + strings.Join(words, `\s+`) + `)(?:[^\p{L}\p{N}]|$)`
	m := phraseMatcher{re: regexp.MustCompile(pattern)}
	if len(a.notAfter) > 0 {
		m.notAfter = make(map[string]struct{}, len(a.notAfter))
		for _, w := range a.notAfter {
			m.notAfter[w] = struct{}{}
		}
	}
	return m
}

func compileCountries(table []countryEntry) []countryMatcher {
	out := make([]countryMatcher, len(table))
	for i, c := range table {
		out[i] = countryMatcher{name: c.name, aliases: make([]phraseMatcher, len(c.aliases))}
		for j, a := range c.aliases {
			out[i].aliases[j] = compileAlias(a)
		}
	}
	return out
}

func compileRegions(table []regionEntry) []regionMatcher {
	out := make([]regionMatcher, len(table))
	for i, r := range table {
		out[i] = regionMatcher{name: r.name, members: r.members, aliases: make([]phraseMatcher, len(r.aliases))}
		for j, a := range r.aliases {
			out[i].aliases[j] = compileAlias(a)
		}
	}
	return out
}

// match reports whether any unguarded occurrence of the phrase is in text.
func (m phraseMatcher) match(text string) bool {
	for _, loc := range m.re.FindAllStringSubmatchIndex(text, -1) {
		if !m.guarded(text[:loc[2]]) {
			return true
		}
	}
	return false
}

func (m phraseMatcher) guarded(before string) bool {
	if len(m.notAfter) == 0 {
		return false
	}
	words := strings.FieldsFunc(before, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return false
	}
	_, ok := m.notAfter[words[len(words)-1]]
	return ok
}

func anyAlias(aliases []phraseMatcher, text string) bool {
	for _, a := range aliases {
		if a.match(text) {
			return true
		}
	}
	return false
}

// Parse turns free text into a query specification. It never fails: text
// without any known vocabulary yields an empty spec that matches every node.
func Parse(raw string) spec.Spec {
	text := strings.ToLower(strings.TrimSpace(raw))

	f := spec.Fields{Raw: raw}
	f.Countries = matchCountries(text)
	if region, ok := matchRegion(text); ok {
		f.Region = region.name
		f.Countries = append(f.Countries, region.members...)
	}
	f.Latency = matchLatency(text)
	f.Status = matchStatus(text)
	f.Storage = matchStorage(text)
	f.Version = matchVersion(text)
	f.Limit = matchLimit(text)
	f.SortKey, f.Direction = matchSort(text)

	return spec.New(f)
}

func matchCountries(text string) []string {
	var out []string
	for _, c := range countryMatchers {
		if anyAlias(c.aliases, text) {
			out = append(out, c.name)
		}
	}
	return out
}

func matchRegion(text string) (regionMatcher, bool) {
	for _, r := range regionMatchers {
		if anyAlias(r.aliases, text) {
			return r, true
		}
	}
	return regionMatcher{}, false
}

func matchLatency(text string) spec.LatencyTier {
	switch {
	case latencyHighRe.MatchString(text):
		return spec.LatencyHigh
	case latencyLowRe.MatchString(text):
		return spec.LatencyLow
	case latencyMediumRe.MatchString(text):
		return spec.LatencyMedium
	}
	return ""
}

func matchStatus(text string) node.Status {
	switch {
	case statusOfflineRe.MatchString(text):
		return node.Offline
	case statusActiveRe.MatchString(text):
		return node.Active
	}
	return ""
}

func matchStorage(text string) spec.StorageTier {
	switch {
	case storageHighRe.MatchString(text):
		return spec.StorageHigh
	case storageLowRe.MatchString(text):
		return spec.StorageLow
	}
	return ""
}

func matchVersion(text string) string {
	if m := versionRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func matchLimit(text string) int {
	if m := limitRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
		return 0
	}
	if m := limitWordRe.FindStringSubmatch(text); m != nil {
		return numberWords[m[1]]
	}
	return 0
}

func matchSort(text string) (spec.SortKey, spec.Direction) {
	switch {
	case latencySortRe.MatchString(text):
		return spec.SortLatency, directionIf(latencyDescRe.MatchString(text))
	case storageSortRe.MatchString(text):
		return spec.SortStorage, directionIf(storageDescRe.MatchString(text))
	case statusSortRe.MatchString(text):
		return spec.SortStatus, directionIf(statusDescRe.MatchString(text))
	case inferAscRe.MatchString(text):
		return spec.SortLatency, spec.Ascending
	case inferDescRe.MatchString(text):
		return spec.SortLatency, spec.Descending
	}
	return "", spec.Ascending
}

func directionIf(desc bool) spec.Direction {
	if desc {
		return spec.Descending
	}
	return spec.Ascending
}
