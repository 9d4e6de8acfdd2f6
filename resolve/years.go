package resolve

import (
	"regexp"
	"slices"
	"strconv"
)

var (
	yearRangePattern  = regexp.MustCompile(`\b(\d{4})\s*-\s*(\d{4})\b`)
	yearSinglePattern = regexp.MustCompile(`\b\d{4}\b`)
)

type yearRange struct {
	start, end int
}

func (r yearRange) covers(year int) bool {
	return year >= r.start && year <= r.end
}

// ExtractYears returns the calendar years mentioned in query, ascending and
// without duplicates.
//
// "2015-2018" expands to every year in the range inclusive. A standalone
// four-digit token is included only when no range in the query covers it.
// A reversed range such as "2020-2015" expands to nothing and covers
// nothing, so its endpoints still count as standalone years.
func ExtractYears(query string) []int {
	var (
		ranges []yearRange
		years  []int
	)

	for _, m := range yearRangePattern.FindAllStringSubmatch(query, -1) {
		start, err1 := strconv.Atoi(m[1])
		end, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			continue
		}
		r := yearRange{start: start, end: end}
		ranges = append(ranges, r)
		for y := r.start; y <= r.end; y++ {
			years = append(years, y)
		}
	}

	for _, token := range yearSinglePattern.FindAllString(query, -1) {
		year, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		if slices.ContainsFunc(ranges, func(r yearRange) bool { return r.covers(year) }) {
			continue
		}
		years = append(years, year)
	}

	slices.Sort(years)
	return slices.Compact(years)
}

// yearSet is the membership form of a requested year list.
type yearSet map[int]struct{}

func newYearSet(years []int) yearSet {
	if len(years) == 0 {
		return nil
	}
	set := make(yearSet, len(years))
	for _, y := range years {
		set[y] = struct{}{}
	}
	return set
}

func (s yearSet) contains(year int) bool {
	_, ok := s[year]
	return ok
}
