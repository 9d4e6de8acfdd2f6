package storage

import (
	"testing"
	"time"

	"github.com/poiesic/ingres/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalFeedback(t *testing.T) {
	submitted := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)

	tests := []struct {
		name     string
		feedback *core.Feedback
	}{
		{
			name:     "ascii text",
			feedback: &core.Feedback{Id: 1, Text: "The charts are helpful", SubmittedAt: submitted},
		},
		{
			name:     "devanagari text",
			feedback: &core.Feedback{Id: 7, Text: "बहुत उपयोगी", SubmittedAt: submitted},
		},
		{
			name:     "multi-line text",
			feedback: &core.Feedback{Id: 1 << 40, Text: "line one\nline two", SubmittedAt: submitted.Add(-48 * time.Hour)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := UnmarshalFeedback(MarshalFeedback(tt.feedback))
			require.NoError(t, err)
			assert.Equal(t, tt.feedback.Id, decoded.Id)
			assert.Equal(t, tt.feedback.Text, decoded.Text)
			assert.True(t, tt.feedback.SubmittedAt.Equal(decoded.SubmittedAt))
			assert.Equal(t, time.UTC, decoded.SubmittedAt.Location())
		})
	}
}

func TestUnmarshalFeedback_Invalid(t *testing.T) {
	data := MarshalFeedback(&core.Feedback{Id: 3, Text: "truncate me", SubmittedAt: time.Now()})

	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"cut inside text", data[:4]},
		{"missing timestamp", data[:2+len("truncate me")]},
		{"trailing bytes", append(append([]byte{}, data...), 0x01)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalFeedback(tt.data)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}
