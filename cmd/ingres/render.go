package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/poiesic/ingres"
	"github.com/poiesic/ingres/core"
	"github.com/poiesic/ingres/report"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// Bar colors follow the assessment categories' stage bands.
	safeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	semiStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	overStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// renderResult prints a query result as a record table.
func renderResult(result *core.QueryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", headingStyle.Render(string(result.Kind)), result.Region)
	if result.Empty() {
		b.WriteString("No matching records.\n")
		return b.String()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("State", "District", "Year", "Stage %", "Category", "Remaining (HAM)")
	for _, r := range result.Records {
		t.Row(r.State, r.District, r.AssessmentYear, number(r.StageOfExtraction, 2), string(r.Category), number(r.Remaining, 2))
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// renderAnswer prints the summary text and both charts of an answer.
func renderAnswer(answer *ingres.Answer, width int) string {
	var b strings.Builder
	b.WriteString(answer.Display())
	b.WriteString("\n")
	if answer.Result.Empty() {
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(renderCharts(answer.Report, width))
	return b.String()
}

func renderCharts(rep report.Report, width int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(rep.Stage.Title))
	b.WriteString("\n")
	b.WriteString(renderBars(rep.Stage.Points, width))
	b.WriteString("\n")
	b.WriteString(headingStyle.Render(rep.CategoryTitle))
	b.WriteString("\n")
	b.WriteString(renderCategories(rep.Categories, width))
	return b.String()
}

// renderBars draws one horizontal bar per point, scaled to the largest value.
func renderBars(points []report.Point, width int) string {
	if len(points) == 0 {
		return mutedStyle.Render("no data") + "\n"
	}

	labelWidth, peak := 0, 0.0
	for _, p := range points {
		labelWidth = max(labelWidth, lipgloss.Width(p.Label))
		if !math.IsNaN(p.Value) {
			peak = max(peak, p.Value)
		}
	}
	barWidth := max(width-labelWidth-12, 10)

	var b strings.Builder
	for _, p := range points {
		label := p.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(p.Label))
		if math.IsNaN(p.Value) {
			fmt.Fprintf(&b, "%s  %s\n", label, mutedStyle.Render("N/A"))
			continue
		}
		n := 0
		if peak > 0 {
			n = int(math.Round(p.Value / peak * float64(barWidth)))
		}
		bar := stageStyle(p.Value).Render(strings.Repeat("█", n))
		fmt.Fprintf(&b, "%s  %s %.1f%%\n", label, bar, p.Value)
	}
	return b.String()
}

// renderCategories draws the category distribution as proportional bars.
func renderCategories(counts []report.CategoryCount, width int) string {
	if len(counts) == 0 {
		return mutedStyle.Render("No categories") + "\n"
	}

	labelWidth, total := 0, 0
	for _, c := range counts {
		labelWidth = max(labelWidth, lipgloss.Width(string(c.Category)))
		total += c.Count
	}
	barWidth := max(width-labelWidth-12, 10)

	var b strings.Builder
	for _, c := range counts {
		name := string(c.Category)
		label := name + strings.Repeat(" ", labelWidth-lipgloss.Width(name))
		n := max(c.Count*barWidth/total, 1)
		bar := categoryStyle(c.Category).Render(strings.Repeat("■", n))
		fmt.Fprintf(&b, "%s  %s %d\n", label, bar, c.Count)
	}
	return b.String()
}

func stageStyle(stage float64) lipgloss.Style {
	switch {
	case stage > 100:
		return overStyle
	case stage > 90:
		return criticalStyle
	case stage > 70:
		return semiStyle
	}
	return safeStyle
}

func categoryStyle(c core.Category) lipgloss.Style {
	switch c {
	case core.CategoryOverExploited:
		return overStyle
	case core.CategoryCritical:
		return criticalStyle
	case core.CategorySemiCritical:
		return semiStyle
	case core.CategorySafe:
		return safeStyle
	}
	return mutedStyle
}

func number(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return humanize.FormatFloat("#,###."+strings.Repeat("#", decimals), v)
}
