package search

import (
	"regexp"
	"strings"
)

// SearchStrategy builds and runs the role-specific query. Both
// implementations escape caller text so it can never be interpreted as
// a pattern language.
type SearchStrategy interface {
	Kind() string
	Run(req Request) (*Result, error)
}

// escapeLiteral turns free text into a regex that matches it as a
// case-insensitive literal substring.
func escapeLiteral(s string) string {
	return regexp.QuoteMeta(strings.TrimSpace(s))
}

// escapeAll escapes every entry, dropping blanks.
func escapeAll(values []string) []string {
	var out []string
	for _, v := range values {
		if e := escapeLiteral(v); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// radiusExplicit reports whether the caller asked for a non-default
// radius. The default is a browse hint, not a constraint: a generic
// browse returns the nearest candidates regardless of distance, so
// sparse areas never come back empty.
func radiusExplicit(radiusKm float64) bool {
	return radiusKm > 0 && radiusKm != DefaultRadiusKm
}
