package resolve

import (
	"strings"
	"unicode"

	"github.com/poiesic/ingres/core"
	"github.com/poiesic/ingres/fuzzy"
)

// Threshold is the score a vocabulary entry must exceed to be accepted.
const Threshold = 70.0

// NameMatch is the best vocabulary entry for a query.
type NameMatch struct {
	Name  string  // canonical (title-cased) name
	Score float64 // 0-100
}

// Accepted reports whether the match clears Threshold.
func (m NameMatch) Accepted() bool {
	return m.Score > Threshold
}

// MatchState scores the query against every distinct state name and
// returns the best entry, accepted or not. It reports false only when the
// corpus has no states.
func MatchState(corpus *core.Corpus, query string) (NameMatch, bool) {
	return bestName(corpus.States(), query)
}

// MatchDistrict is MatchState for district names.
func MatchDistrict(corpus *core.Corpus, query string) (NameMatch, bool) {
	return bestName(corpus.Districts(), query)
}

// ResolveState returns the canonical state name the query refers to.
func ResolveState(corpus *core.Corpus, query string) (string, bool) {
	m, ok := MatchState(corpus, query)
	if !ok || !m.Accepted() {
		return "", false
	}
	return m.Name, true
}

// ResolveDistrict returns the canonical district name the query refers to.
func ResolveDistrict(corpus *core.Corpus, query string) (string, bool) {
	m, ok := MatchDistrict(corpus, query)
	if !ok || !m.Accepted() {
		return "", false
	}
	return m.Name, true
}

func bestName(names []string, query string) (NameMatch, bool) {
	vocabulary := make([]string, len(names))
	for i, name := range names {
		vocabulary[i] = strings.ToLower(name)
	}

	best, ok := fuzzy.ExtractOne(foldQuery(query), vocabulary)
	if !ok {
		return NameMatch{}, false
	}
	return NameMatch{Name: titleCase(best.Choice), Score: best.Score}, true
}

// foldQuery is the case-folded, trimmed form every stage matches against.
func foldQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// titleCase upper-cases each letter that follows a non-letter and
// lower-cases the rest, so "semi-critical" becomes "Semi-Critical".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if prevLetter {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToTitle(r))
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}

func stateIs(name string) func(core.Record) bool {
	return func(r core.Record) bool {
		return strings.EqualFold(r.State, name)
	}
}

func districtIs(name string) func(core.Record) bool {
	return func(r core.Record) bool {
		return strings.EqualFold(r.District, name)
	}
}
