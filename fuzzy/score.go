package fuzzy

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

const (
	// partialScale weights window matches when one string is at least 1.5x longer.
	partialScale = 0.9
	// longPartialScale replaces partialScale when one string is more than 8x longer.
	longPartialScale = 0.6
	// tokenScale weights token-based matches.
	tokenScale = 0.95
)

// Ratio is the Indel similarity of a and b: twice their longest common
// subsequence over their combined length, scaled to 0-100.
func Ratio(a, b string) float64 {
	return runeRatio([]rune(a), []rune(b))
}

func runeRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	return 100 * float64(2*edlib.LCS(string(a), string(b))) / float64(total)
}

// PartialRatio is the best Ratio between the shorter string and every
// alignment against the longer one: windows of the shorter string's length,
// plus the prefixes and suffixes that slide in and out at either edge.
// Strings of equal length are tried in both directions.
func PartialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		if len(long) == 0 {
			return 100
		}
		return 0
	}

	best := bestWindow(short, long)
	if best < 100 && len(short) == len(long) {
		best = max(best, bestWindow(long, short))
	}
	return best
}

func bestWindow(needle, haystack []rune) float64 {
	n, h := len(needle), len(haystack)
	best := 0.0
	try := func(window []rune) bool {
		if r := runeRatio(needle, window); r > best {
			best = r
		}
		return best == 100
	}
	for i := 1; i < n; i++ {
		if try(haystack[:i]) {
			return best
		}
	}
	for i := 0; i+n <= h; i++ {
		if try(haystack[i : i+n]) {
			return best
		}
	}
	for i := h - n + 1; i < h; i++ {
		if try(haystack[i:]) {
			return best
		}
	}
	return best
}

// TokenSortRatio compares the strings after sorting their words.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortedJoin(tokenize(a)), sortedJoin(tokenize(b)))
}

// TokenSetRatio compares the shared words of a and b against each side's remainder.
// A full containment of one word set in the other scores 100.
func TokenSetRatio(a, b string) float64 {
	inter, onlyA, onlyB, ok := splitTokens(a, b)
	if !ok {
		return 0
	}
	if len(inter) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	sect := sortedJoin(inter)
	left := joinNonEmpty(sect, sortedJoin(onlyA))
	right := joinNonEmpty(sect, sortedJoin(onlyB))

	best := Ratio(left, right)
	if sect != "" {
		best = max(best, Ratio(sect, left), Ratio(sect, right))
	}
	return best
}

// partialTokenRatio is 100 when the strings share a word, otherwise the
// best PartialRatio of their sorted words, with and without repeats.
func partialTokenRatio(a, b string) float64 {
	inter, onlyA, onlyB, ok := splitTokens(a, b)
	if !ok {
		return 0
	}
	if len(inter) > 0 {
		return 100
	}
	wordsA, wordsB := tokenize(a), tokenize(b)
	best := PartialRatio(sortedJoin(wordsA), sortedJoin(wordsB))
	if len(wordsA) == len(onlyA) && len(wordsB) == len(onlyB) {
		return best
	}
	return max(best, PartialRatio(sortedJoin(onlyA), sortedJoin(onlyB)))
}

// WRatio is the weighted best of Ratio, PartialRatio and the token ratios,
// choosing the measures by the length ratio of the inputs.
func WRatio(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		return 0
	}

	best := Ratio(a, b)
	lengthRatio := float64(max(la, lb)) / float64(min(la, lb))

	if lengthRatio < 1.5 {
		tokens := max(TokenSortRatio(a, b), TokenSetRatio(a, b)) * tokenScale
		return max(best, tokens)
	}

	scale := partialScale
	if lengthRatio > 8 {
		scale = longPartialScale
	}
	best = max(best, PartialRatio(a, b)*scale)
	return max(best, partialTokenRatio(a, b)*tokenScale*scale)
}

// Match is the best-scoring vocabulary entry for a query.
type Match struct {
	Choice string
	Index  int
	Score  float64
}

// ExtractOne returns the choice with the highest WRatio against query.
// Ties keep the earliest choice. It reports false when choices is empty.
func ExtractOne(query string, choices []string) (Match, bool) {
	if len(choices) == 0 {
		return Match{}, false
	}
	best := Match{Index: -1, Score: -1}
	for i, choice := range choices {
		if score := WRatio(query, choice); score > best.Score {
			best = Match{Choice: choice, Index: i, Score: score}
		}
	}
	return best, true
}

// tokenize splits on whitespace only; punctuation stays part of the word.
func tokenize(s string) []string {
	return strings.Fields(s)
}

// splitTokens returns the sorted intersection and differences of the word sets of a and b.
func splitTokens(a, b string) (inter, onlyA, onlyB []string, ok bool) {
	setA := toSet(tokenize(a))
	setB := toSet(tokenize(b))
	if len(setA) == 0 || len(setB) == 0 {
		return nil, nil, nil, false
	}
	for t := range setA {
		if setB[t] {
			inter = append(inter, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range setB {
		if !setA[t] {
			onlyB = append(onlyB, t)
		}
	}
	return inter, onlyA, onlyB, true
}

func toSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

func sortedJoin(tokens []string) string {
	sorted := slices.Clone(tokens)
	slices.Sort(sorted)
	return strings.Join(sorted, " ")
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}
