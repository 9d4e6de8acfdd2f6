// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/poiesic/ingres/core"
)

// Column names of the assessment table.
const (
	ColumnState               = "state"
	ColumnDistrict            = "district"
	ColumnAssessmentYear      = "assessment_year"
	ColumnStageOfExtraction   = "stage_of_extraction_pct_total"
	ColumnExtractableResource = "annual_extractable_resource_ham_total"
	ColumnExtraction          = "annual_extraction_ham_total"
	ColumnCategory            = "category_derived"
	ColumnRecharge            = "annual_recharge_ham_total"
	ColumnNetAvailability     = "net_availability_future_use_ham_total"
)

// RequiredColumns must all be present in the header.
var RequiredColumns = []string{
	ColumnState,
	ColumnDistrict,
	ColumnAssessmentYear,
	ColumnStageOfExtraction,
	ColumnExtractableResource,
	ColumnExtraction,
	ColumnCategory,
}

// Option configures loading.
type Option func(*loader) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

type loader struct {
	logger *slog.Logger
}

// Load reads the corpus CSV at path.
func Load(path string, opts ...Option) (*core.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	c, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("load corpus %s: %w", path, err)
	}
	return c, nil
}

// Read parses a corpus from r.
func Read(r io.Reader, opts ...Option) (*core.Corpus, error) {
	l := &loader{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	l.logger = l.logger.With("component", "corpus-loader")

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCorpus
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	for _, name := range RequiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []core.Record
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		record := core.Record{
			State:               cell(row, ColumnState),
			District:            cell(row, ColumnDistrict),
			AssessmentYear:      cell(row, ColumnAssessmentYear),
			StageOfExtraction:   parseNumber(cell(row, ColumnStageOfExtraction)),
			ExtractableResource: parseNumber(cell(row, ColumnExtractableResource)),
			Extraction:          parseNumber(cell(row, ColumnExtraction)),
			Category:            core.Category(cell(row, ColumnCategory)),
			Recharge:            parseNumber(cell(row, ColumnRecharge)),
			NetAvailability:     parseNumber(cell(row, ColumnNetAvailability)),
		}
		if err := core.ValidateRecord(&record); err != nil {
			l.logger.Warn("skipping corpus row", "line", line, "err", err)
			continue
		}
		record.Remaining = record.ExtractableResource - record.Extraction
		records = append(records, record)
	}

	l.logger.Debug("corpus loaded", "rows", len(records))
	return core.NewCorpus(records), nil
}

// parseNumber returns NaN for blank or malformed cells.
func parseNumber(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
