package resolve

import (
	"strings"

	"github.com/poiesic/ingres/core"
)

// compareKeyword must appear in the query for comparison detection to run.
const compareKeyword = "compare"

// minCompared is the number of districts a comparison needs.
const minCompared = 2

// DetectComparison returns the districts a comparison query names, spelled
// as in the corpus and in corpus order.
//
// Detection is literal: the folded query must contain "compare" and the
// folded form of at least two distinct district names. Misspelled names
// are not recognized.
func DetectComparison(corpus *core.Corpus, query string) ([]string, bool) {
	q := foldQuery(query)
	if !strings.Contains(q, compareKeyword) {
		return nil, false
	}

	var matched []string
	for _, district := range corpus.Districts() {
		if strings.Contains(q, strings.ToLower(district)) {
			matched = append(matched, district)
		}
	}
	if len(matched) < minCompared {
		return nil, false
	}
	return matched, true
}

func districtIn(names []string) func(core.Record) bool {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(r core.Record) bool {
		_, ok := set[r.District]
		return ok
	}
}
