package report

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/poiesic/ingres/core"
)

// Point is one bar of a chart.
type Point struct {
	Label string
	Value float64 // NaN when no record of the group has a value
}

// Chart is a titled series of bars.
type Chart struct {
	Title  string
	Points []Point
}

// Report is everything the presentation layer shows for one result.
type Report struct {
	Kind       core.Kind
	Heading    string
	Summary    Summary
	Stage      Chart
	Categories []CategoryCount
	// CategoryTitle names the category distribution chart.
	CategoryTitle string
}

// Build assembles the report for a resolved query.
func Build(result *core.QueryResult) Report {
	if result == nil {
		result = &core.QueryResult{Kind: core.KindNone}
	}

	r := Report{
		Kind:          result.Kind,
		Heading:       "Groundwater Summary: " + result.Region,
		Summary:       Summarize(result.Region, result.Records),
		Categories:    CountCategories(result.Records),
		CategoryTitle: "Categorization Distribution",
	}

	if result.Kind == core.KindCompare {
		r.Stage = Chart{Title: "Stage of Extraction Comparison", Points: StageByDistrict(result.Records)}
		r.CategoryTitle = "Category Distribution Across Compared Districts"
	} else {
		r.Stage = Chart{Title: "Stage of Extraction Over Years", Points: StageByYear(result.Records)}
	}
	return r
}

// NoDataMessage is shown when a result has no records.
func NoDataMessage(region string, years []int) string {
	if region == "" {
		region = "this query"
	}
	period := "selected years"
	if len(years) > 0 {
		labels := make([]string, len(years))
		for i, y := range years {
			labels[i] = strconv.Itoa(y)
		}
		period = strings.Join(labels, ", ")
	}
	return fmt.Sprintf("No groundwater data available for %s in %s.", region, period)
}

// StageByYear is the mean stage of extraction per assessment year label, sorted by label.
func StageByYear(records []core.Record) []Point {
	return meanStage(records, func(r core.Record) string { return r.AssessmentYear })
}

// StageByDistrict is the mean stage of extraction per district, sorted by name.
func StageByDistrict(records []core.Record) []Point {
	return meanStage(records, func(r core.Record) string { return r.District })
}

func meanStage(records []core.Record, key func(core.Record) string) []Point {
	type acc struct {
		sum   float64
		count int
	}
	groups := make(map[string]*acc)
	for _, r := range records {
		k := key(r)
		g, ok := groups[k]
		if !ok {
			g = &acc{}
			groups[k] = g
		}
		if !math.IsNaN(r.StageOfExtraction) {
			g.sum += r.StageOfExtraction
			g.count++
		}
	}

	points := make([]Point, 0, len(groups))
	for label, g := range groups {
		value := math.NaN()
		if g.count > 0 {
			value = g.sum / float64(g.count)
		}
		points = append(points, Point{Label: label, Value: value})
	}
	slices.SortFunc(points, func(a, b Point) int { return strings.Compare(a.Label, b.Label) })
	return points
}
