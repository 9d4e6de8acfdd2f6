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

package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// Corpus is the ordered, read-only table of assessment records.
// Row indices are stable for the lifetime of the value and are the keys
// used by the semantic index metadata.
type Corpus struct {
	records   []Record
	states    []string
	districts []string
}

// NewCorpus builds a Corpus from records, keeping their order.
// The slice is copied so later mutation by the caller has no effect.
func NewCorpus(records []Record) *Corpus {
	c := &Corpus{
		records: make([]Record, len(records)),
	}
	copy(c.records, records)

	seenStates := make(map[string]bool)
	seenDistricts := make(map[string]bool)
	for _, r := range c.records {
		if !seenStates[r.State] {
			seenStates[r.State] = true
			c.states = append(c.states, r.State)
		}
		if !seenDistricts[r.District] {
			seenDistricts[r.District] = true
			c.districts = append(c.districts, r.District)
		}
	}
	return c
}

// Len returns the number of rows.
func (c *Corpus) Len() int {
	return len(c.records)
}

// Record returns the row at index i.
func (c *Corpus) Record(i int) (Record, bool) {
	if i < 0 || i >= len(c.records) {
		return Record{}, false
	}
	return c.records[i], true
}

// Records returns a copy of all rows in corpus order.
func (c *Corpus) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// States returns the distinct state names as spelled in the corpus, in order of first appearance.
func (c *Corpus) States() []string {
	return append([]string(nil), c.states...)
}

// Districts returns the distinct district names as spelled in the corpus, in order of first appearance.
func (c *Corpus) Districts() []string {
	return append([]string(nil), c.districts...)
}

// Filter returns the rows accepted by keep, in corpus order.
func (c *Corpus) Filter(keep func(Record) bool) []Record {
	var out []Record
	for _, r := range c.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Fingerprint identifies the corpus contents that the semantic index depends on.
// Two corpora with the same descriptive sentences in the same order share a fingerprint.
func (c *Corpus) Fingerprint() string {
	h, _ := blake2b.New(32, nil)
	for _, r := range c.records {
		h.Write([]byte(r.Describe()))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
