package report

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/poiesic/ingres/core"
)

// CategoryCount is how many records of a subset carry one category.
type CategoryCount struct {
	Category core.Category
	Count    int
}

// Summary holds the headline figures of a record subset.
// Averages and totals skip unavailable (NaN) values; an average over no
// available values is NaN.
type Summary struct {
	Region          string
	Records         int
	HasYears        bool // false when no record has a parseable year
	FirstYear       int
	LastYear        int
	AverageStage    float64
	TotalAvailable  float64
	TotalExtraction float64
	TotalRemaining  float64
	Categories      []CategoryCount
}

// Summarize computes the summary of records for region.
func Summarize(region string, records []core.Record) Summary {
	s := Summary{Region: region, Records: len(records)}
	if len(records) == 0 {
		s.AverageStage = math.NaN()
		return s
	}

	var (
		stageSum   float64
		stageCount int
	)
	for _, r := range records {
		if y, ok := r.Year(); ok {
			if !s.HasYears || y < s.FirstYear {
				s.FirstYear = y
			}
			if !s.HasYears || y > s.LastYear {
				s.LastYear = y
			}
			s.HasYears = true
		}
		if !math.IsNaN(r.StageOfExtraction) {
			stageSum += r.StageOfExtraction
			stageCount++
		}
		s.TotalAvailable += available(r.ExtractableResource)
		s.TotalExtraction += available(r.Extraction)
		s.TotalRemaining += available(r.Remaining)
	}

	s.AverageStage = math.NaN()
	if stageCount > 0 {
		s.AverageStage = stageSum / float64(stageCount)
	}
	s.Categories = CountCategories(records)
	return s
}

// Empty reports whether the summary covers no records.
func (s Summary) Empty() bool {
	return s.Records == 0
}

// YearSpan renders the assessment years covered, "2019-2023" or "2023",
// or "N/A" when no year is known.
func (s Summary) YearSpan() string {
	if !s.HasYears {
		return "N/A"
	}
	if s.FirstYear == s.LastYear {
		return strconv.Itoa(s.FirstYear)
	}
	return fmt.Sprintf("%d-%d", s.FirstYear, s.LastYear)
}

// Text renders the summary as a short report.
func (s Summary) Text() string {
	if s.Empty() {
		return fmt.Sprintf("No data available for %s.", s.Region)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Groundwater Report (%s):\n", s.Region, s.YearSpan())
	fmt.Fprintf(&b, "- Avg Stage of Extraction: %s\n", percent(s.AverageStage))
	fmt.Fprintf(&b, "- Total Available: %s HAM\n", volume(s.TotalAvailable))
	fmt.Fprintf(&b, "- Total Extraction: %s HAM\n", volume(s.TotalExtraction))
	fmt.Fprintf(&b, "- Remaining: %s HAM\n", volume(s.TotalRemaining))
	fmt.Fprintf(&b, "- Categorization: %s", categoryList(s.Categories))
	return b.String()
}

// CountCategories counts records per category, most frequent first.
// Ties keep the order in which categories first appear. Blank categories
// are not counted.
func CountCategories(records []core.Record) []CategoryCount {
	var counts []CategoryCount
	position := make(map[core.Category]int)
	for _, r := range records {
		if strings.TrimSpace(string(r.Category)) == "" {
			continue
		}
		i, ok := position[r.Category]
		if !ok {
			i = len(counts)
			position[r.Category] = i
			counts = append(counts, CategoryCount{Category: r.Category})
		}
		counts[i].Count++
	}
	slices.SortStableFunc(counts, func(a, b CategoryCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return counts
}

func categoryList(counts []CategoryCount) string {
	if len(counts) == 0 {
		return "No categories"
	}
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%d %s", c.Count, c.Category)
	}
	return strings.Join(parts, ", ")
}

func available(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func percent(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", v)
}

func volume(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}
