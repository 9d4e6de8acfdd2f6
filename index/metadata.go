package index

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/poiesic/ingres/core"
)

// Metadata maps index labels to the row snapshot taken at build time.
type Metadata struct {
	entries map[int64]core.Snapshot
}

// BuildMetadata snapshots every corpus row under its row index.
func BuildMetadata(corpus *core.Corpus) *Metadata {
	m := &Metadata{entries: make(map[int64]core.Snapshot, corpus.Len())}
	for i, r := range corpus.Records() {
		m.entries[int64(i)] = r.Snapshot()
	}
	return m
}

// NewMetadata wraps an explicit label to snapshot mapping.
func NewMetadata(entries map[int64]core.Snapshot) *Metadata {
	m := &Metadata{entries: make(map[int64]core.Snapshot, len(entries))}
	for k, v := range entries {
		m.entries[k] = v
	}
	return m
}

// Lookup returns the snapshot for label. Missing labels report false.
func (m *Metadata) Lookup(label int64) (core.Snapshot, bool) {
	s, ok := m.entries[label]
	return s, ok
}

// Len returns the number of entries.
func (m *Metadata) Len() int {
	return len(m.entries)
}

// EncodeMetadata renders metadata as indented JSON keyed by decimal label.
func EncodeMetadata(m *Metadata) ([]byte, error) {
	out := make(map[string]core.Snapshot, len(m.entries))
	for k, v := range m.entries {
		out[strconv.FormatInt(k, 10)] = v
	}
	return json.MarshalIndent(out, "", "  ")
}

// DecodeMetadata parses data written by EncodeMetadata.
func DecodeMetadata(data []byte) (*Metadata, error) {
	var raw map[string]core.Snapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptMetadata, err)
	}
	m := &Metadata{entries: make(map[int64]core.Snapshot, len(raw))}
	for k, v := range raw {
		label, err := strconv.ParseInt(k, 10, 64)
		if err != nil || label < 0 {
			return nil, fmt.Errorf("%w: invalid key %q", ErrCorruptMetadata, k)
		}
		m.entries[label] = v
	}
	return m, nil
}
