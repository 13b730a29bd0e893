package query

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/nodeglobe/internal/domain/query/spec"
)

// maxNamedCountries is how many countries the description lists by name.
const maxNamedCountries = 3

// Describe builds the human-readable summary of a query with count results.
func Describe(s spec.Spec, count int) string {
	var parts []string

	if s.Status() != "" {
		parts = append(parts, string(s.Status()))
	}
	if s.Latency() != "" {
		parts = append(parts, string(s.Latency())+" latency")
	}
	if s.Storage() != "" {
		parts = append(parts, string(s.Storage())+" storage")
	}
	if loc := locationPhrase(s); loc != "" {
		parts = append(parts, loc)
	}
	if s.Version() != "" {
		parts = append(parts, "on version "+s.Version())
	}

	if len(parts) == 0 {
		return fmt.Sprintf("Found %d nodes", count)
	}

	prefix := strconv.Itoa(count)
	if s.Limit() > 0 {
		prefix = fmt.Sprintf("Top %d", s.Limit())
	}
	noun := "nodes"
	if count == 1 {
		noun = "node"
	}
	return prefix + " " + strings.Join(parts, " ") + " " + noun
}

func locationPhrase(s spec.Spec) string {
	if s.Region() != "" {
		// A Caser is stateful, so one is built per call.
		return "in " + cases.Title(language.English).String(s.Region())
	}
	countries := s.Countries()
	switch {
	case len(countries) == 0:
		return ""
	case len(countries) <= maxNamedCountries:
		return "in " + strings.Join(countries, ", ")
	default:
		return fmt.Sprintf("in %d countries", len(countries))
	}
}
