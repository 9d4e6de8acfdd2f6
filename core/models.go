package core

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// ID is a unique identifier for stored entities.
// It is generated from database sequences.
type ID uint64

// Category is the groundwater stress class assigned upstream to a record.
type Category string

const (
	CategorySafe          Category = "Safe"
	CategorySemiCritical  Category = "Semi-Critical"
	CategoryCritical      Category = "Critical"
	CategoryOverExploited Category = "Over-Exploited"
)

// Known reports whether c is one of the four published categories.
// Unknown values are still carried through untouched.
func (c Category) Known() bool {
	switch c {
	case CategorySafe, CategorySemiCritical, CategoryCritical, CategoryOverExploited:
		return true
	}
	return false
}

// Record is one row of the assessment corpus: a single (state, district, assessment year) observation.
// Numeric fields are NaN when the source value is unavailable.
type Record struct {
	State               string
	District            string
	AssessmentYear      string  // e.g. "2022-2023"; only the first four characters are interpreted
	StageOfExtraction   float64 // percent of extractable resource that is extracted
	ExtractableResource float64 // annual extractable resource (ham)
	Extraction          float64 // annual extraction (ham)
	Category            Category
	Remaining           float64 // ExtractableResource - Extraction, fixed at load time
	Recharge            float64 // annual recharge (ham), optional column
	NetAvailability     float64 // net availability for future use (ham), optional column
}

// Year returns the leading four-digit year of AssessmentYear.
func (r Record) Year() (int, bool) {
	if len(r.AssessmentYear) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(r.AssessmentYear[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

// Describe returns the sentence embedded for this record in the semantic index.
func (r Record) Describe() string {
	return r.District + ", " + r.State + ", " + r.AssessmentYear
}

// Snapshot returns the denormalized metadata persisted next to the index vector for this record.
func (r Record) Snapshot() Snapshot {
	return Snapshot{
		District:                  r.District,
		State:                     r.State,
		AssessmentYear:            r.AssessmentYear,
		StageOfExtraction:         Nullable(r.StageOfExtraction),
		Categorization:            string(r.Category),
		AnnualRecharge:            Nullable(r.Recharge),
		AnnualExtractableResource: Nullable(r.ExtractableResource),
		AnnualExtraction:          Nullable(r.Extraction),
		NetAvailabilityFutureUse:  Nullable(r.NetAvailability),
	}
}

// Snapshot is the metadata stored per index row. Nil numerics mean unavailable.
type Snapshot struct {
	District                  string   `json:"district"`
	State                     string   `json:"state"`
	AssessmentYear            string   `json:"assessment_year"`
	StageOfExtraction         *float64 `json:"stage_of_extraction"`
	Categorization            string   `json:"categorization"`
	AnnualRecharge            *float64 `json:"annual_recharge"`
	AnnualExtractableResource *float64 `json:"annual_extractable_resource"`
	AnnualExtraction          *float64 `json:"annual_extraction"`
	NetAvailabilityFutureUse  *float64 `json:"net_availability_future_use"`
}

// Hit converts a snapshot into a scored semantic hit at the given distance.
func (s Snapshot) Hit(distance float32) ScoredHit {
	remaining := ValueOf(s.AnnualExtractableResource) - ValueOf(s.AnnualExtraction)
	return ScoredHit{
		District:             s.District,
		State:                s.State,
		Year:                 s.AssessmentYear,
		Stage:                Round2(ValueOf(s.StageOfExtraction)),
		Category:             s.Categorization,
		RemainingGroundwater: Round2(remaining),
		Distance:             distance,
	}
}

// ScoredHit is one semantic-fallback candidate. Stage and RemainingGroundwater are
// rounded to two decimals and NaN when unavailable; Distance is the raw squared L2 distance.
type ScoredHit struct {
	District             string
	State                string
	Year                 string
	Stage                float64
	Category             string
	RemainingGroundwater float64
	Distance             float32
}

// StageLabel renders Stage for display, "N/A" when unavailable.
func (h ScoredHit) StageLabel() string {
	if math.IsNaN(h.Stage) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", h.Stage)
}

// Kind classifies how a query was resolved.
type Kind string

const (
	KindState    Kind = "state"
	KindDistrict Kind = "district"
	KindCompare  Kind = "compare"
	KindSemantic Kind = "semantic"
	KindNone     Kind = "none"
)

// ComparedRegion is the region label of every comparison result.
const ComparedRegion = "Compared Districts"

// QueryResult is the outcome of resolving one query. It is built fresh per query and owned by the caller.
type QueryResult struct {
	Kind    Kind
	Region  string
	Records []Record
}

// Empty reports whether the result carries no records.
func (q *QueryResult) Empty() bool {
	return q == nil || len(q.Records) == 0
}

// Feedback is a free-text comment submitted by a user.
type Feedback struct {
	Id          ID
	Text        string
	SubmittedAt time.Time
}

// Nullable maps NaN to nil.
func Nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// ValueOf maps nil to NaN.
func ValueOf(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

// Round2 rounds to two decimal places. NaN stays NaN.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*100) / 100
}
