package main

import (
	"fmt"
	"io"

	"github.com/poiesic/ingres/core"
	"github.com/poiesic/ingres/resolve"
)

// explainMonitor prints each resolution stage as it happens.
type explainMonitor struct {
	w io.Writer
}

var _ resolve.Monitor = (*explainMonitor)(nil)

func newExplainMonitor(w io.Writer) *explainMonitor {
	return &explainMonitor{w: w}
}

func (m *explainMonitor) Start(query string, years []int) {
	fmt.Fprintf(m.w, "query: %q\n", query)
	if len(years) > 0 {
		fmt.Fprintf(m.w, "years: %v\n", years)
	}
}

func (m *explainMonitor) StateCandidate(match resolve.NameMatch) {
	m.candidate("state", match)
}

func (m *explainMonitor) DistrictCandidate(match resolve.NameMatch) {
	m.candidate("district", match)
}

func (m *explainMonitor) candidate(stage string, match resolve.NameMatch) {
	verdict := "rejected"
	if match.Accepted() {
		verdict = "accepted"
	}
	fmt.Fprintf(m.w, "%s: best %q score %.1f (%s, threshold %.0f)\n", stage, match.Name, match.Score, verdict, resolve.Threshold)
}

func (m *explainMonitor) ComparedDistricts(districts []string) {
	fmt.Fprintf(m.w, "compare: %d districts %q\n", len(districts), districts)
}

func (m *explainMonitor) SemanticHits(hits []core.ScoredHit) {
	fmt.Fprintf(m.w, "semantic: %d neighbors\n", len(hits))
	for i, h := range hits {
		fmt.Fprintf(m.w, "  %d. %s, %s %s  stage %s  distance %.4f\n", i+1, h.District, h.State, h.Year, h.StageLabel(), h.Distance)
	}
}

func (m *explainMonitor) Finish(result *core.QueryResult) {
	fmt.Fprintf(m.w, "result: %s %q, %d records\n", result.Kind, result.Region, len(result.Records))
}
