package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, 100.0, Ratio("pune", "pune"))
	assert.Equal(t, 100.0, Ratio("", ""))
	assert.Equal(t, 0.0, Ratio("pune", ""))
	assert.InDelta(t, 61.54, Ratio("kitten", "sitting"), 0.01)
	assert.InDelta(t, 82.35, Ratio("shimoga", "shivamogga"), 0.01)
	assert.InDelta(t, 40.0, Ratio("pune", "nagpur"), 1e-9)
}

func TestPartialRatio(t *testing.T) {
	assert.Equal(t, 100.0, PartialRatio("pune", "pune groundwater"))
	assert.Equal(t, 100.0, PartialRatio("pune groundwater", "pune"), "argument order does not matter")
	assert.Equal(t, 75.0, PartialRatio("puna", "visit pune"))
	assert.Equal(t, 0.0, PartialRatio("", "pune"))
	assert.Equal(t, 100.0, PartialRatio("", ""))

	t.Run("windows slide in at the edges", func(t *testing.T) {
		// Full-length windows score at most 50 here.
		assert.InDelta(t, 66.67, PartialRatio("abcd", "cdxxxxxxxx"), 0.01)
		assert.InDelta(t, 66.67, PartialRatio("abcd", "xxxxxxxxab"), 0.01)
	})
}

func TestTokenRatios(t *testing.T) {
	assert.Equal(t, 100.0, TokenSortRatio("urban bengaluru", "bengaluru urban"))
	assert.Equal(t, 100.0, TokenSetRatio("pune district data", "pune"))
	assert.Equal(t, 0.0, TokenSetRatio("", "pune"))
	assert.Less(t, TokenSetRatio("mysuru", "nagpur"), 50.0)

	t.Run("words split on whitespace only", func(t *testing.T) {
		assert.Less(t, TokenSetRatio("bengaluru-urban", "urban bengaluru"), 100.0)
		assert.Less(t, TokenSortRatio("urban-bengaluru", "bengaluru urban"), 100.0)
	})
}

func TestWRatio(t *testing.T) {
	tests := []struct {
		name  string
		query string
		entry string
		want  float64
	}{
		{"identical", "karnataka", "karnataka", 100},
		{"embedded in short query", "karnataka groundwater", "karnataka", 90},
		{"embedded in long query", "please compare the groundwater situation in pune and nagpur", "pune", 60},
		{"reordered words", "urban bengaluru", "bengaluru urban", 95},
		{"spelling variant", "shimoga", "shivamogga", 82.35294117647058},
		{"inserted letters", "mysore", "mysuru", 66.66666666666667},
		{"empty", "", "pune", 0},
		{"more than 8x longer", "please compare the groundwater situation in pune and nagpur", "pune", 60},
		{"exactly 8x longer", "pune groundwater levels for 2020", "pune", 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WRatio(tt.query, tt.entry), 1e-9)
		})
	}

	t.Run("unrelated names stay below acceptance", func(t *testing.T) {
		assert.LessOrEqual(t, WRatio("bangalore 2023", "bengaluru urban"), 70.0)
		assert.LessOrEqual(t, WRatio("bangalore 2023", "karnataka"), 70.0)
		assert.LessOrEqual(t, WRatio("pune groundwater", "maharashtra"), 70.0)
	})
}

func TestExtractOne(t *testing.T) {
	t.Run("best choice", func(t *testing.T) {
		m, ok := ExtractOne("pune groundwater", []string{"mysuru", "pune", "nagpur"})
		require.True(t, ok)
		assert.Equal(t, "pune", m.Choice)
		assert.Equal(t, 1, m.Index)
		assert.InDelta(t, 90, m.Score, 1e-9)
	})

	t.Run("ties keep first", func(t *testing.T) {
		m, ok := ExtractOne("xyz", []string{"abc", "def"})
		require.True(t, ok)
		assert.Equal(t, 0, m.Index)
	})

	t.Run("no choices", func(t *testing.T) {
		_, ok := ExtractOne("pune", nil)
		assert.False(t, ok)
	})
}
