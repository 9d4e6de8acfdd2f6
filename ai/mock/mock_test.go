package mock

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/poiesic/ingres/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	m := NewMockEmbedder()
	ctx := context.Background()

	a, err := m.EmbedText(ctx, "Pune, Maharashtra, 2023-2024")
	require.NoError(t, err)
	b, err := m.EmbedText(ctx, "Pune, Maharashtra, 2023-2024")
	require.NoError(t, err)
	c, err := m.EmbedText(ctx, "Nagpur, Maharashtra, 2023-2024")
	require.NoError(t, err)

	assert.Len(t, a, DefaultDimension)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	var norm float64
	for _, v := range a {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)

	batch, err := m.EmbedTexts(ctx, []string{"Pune, Maharashtra, 2023-2024", "x"})
	require.NoError(t, err)
	assert.Equal(t, a, batch[0])
	assert.Equal(t, 4, m.CallCount())

	m.Reset()
	assert.Zero(t, m.CallCount())
}

func TestMockEmbedder_Injection(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockEmbedder().WithEmbedFunc(func(_ context.Context, text string) ([]float32, error) {
		if text == "bad" {
			return nil, boom
		}
		return []float32{float32(len(text))}, nil
	})

	out, err := m.EmbedTexts(context.Background(), []string{"ab", "abc"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{2}, {3}}, out)

	_, err = m.EmbedTexts(context.Background(), []string{"ok", "bad"})
	assert.ErrorIs(t, err, boom)
}

func TestMockTranslator(t *testing.T) {
	m := NewMockTranslator()
	ctx := context.Background()

	tr := m.Translate(ctx, "report", ai.Kannada)
	assert.Equal(t, ai.TranslationTranslated, tr.Status)
	assert.Equal(t, "[kn] report", tr.Text)

	tr = m.Translate(ctx, "report", ai.English)
	assert.Equal(t, ai.TranslationSkipped, tr.Status)
	assert.Equal(t, 2, m.CallCount())
}

func TestMockProvider(t *testing.T) {
	p := NewMockProviderWithServices(NewMockEmbedder(), NewMockTranslator())
	assert.Same(t, p.GetMockEmbedder(), p.Embedder())
	assert.Same(t, p.GetMockTranslator(), p.Translator())

	assert.False(t, p.Closed())
	require.NoError(t, p.Close())
	assert.True(t, p.Closed())

	assert.NotNil(t, NewMockProvider().Embedder())
}
