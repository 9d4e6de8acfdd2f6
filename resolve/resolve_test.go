package resolve

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/poiesic/ingres/ai/mock"
	"github.com/poiesic/ingres/core"
	"github.com/poiesic/ingres/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(state, district, year string, stage float64, category core.Category) core.Record {
	return core.Record{
		State:               state,
		District:            district,
		AssessmentYear:      year,
		StageOfExtraction:   stage,
		ExtractableResource: 1000,
		Extraction:          stage * 10,
		Category:            category,
		Remaining:           1000 - stage*10,
		Recharge:            math.NaN(),
		NetAvailability:     math.NaN(),
	}
}

func testCorpus() *core.Corpus {
	return core.NewCorpus([]core.Record{
		record("Karnataka", "Bengaluru Urban", "2022-2023", 95.5, core.CategoryCritical),
		record("Karnataka", "Bengaluru Urban", "2023-2024", 101.2, core.CategoryOverExploited),
		record("Karnataka", "Mysuru", "2022-2023", 60.1, core.CategorySafe),
		record("Maharashtra", "Pune", "2022-2023", 75.4, core.CategorySemiCritical),
		record("Maharashtra", "Pune", "2023-2024", 78.9, core.CategorySemiCritical),
		record("Maharashtra", "Nagpur", "2023-2024", 55.0, core.CategorySafe),
	})
}

var keywords = [][]string{{"bengaluru", "bangalore"}, {"mysuru"}, {"pune"}, {"nagpur"}}

// keywordVector places text on one axis per district it mentions.
func keywordVector(_ context.Context, text string) ([]float32, error) {
	lower := strings.ToLower(text)
	v := make([]float32, len(keywords))
	for i, words := range keywords {
		for _, w := range words {
			if strings.Contains(lower, w) {
				v[i] = 1
			}
		}
	}
	return v, nil
}

func testArtifact(t *testing.T, corpus *core.Corpus) *index.Artifact {
	t.Helper()
	flat, err := index.NewFlat(len(keywords))
	require.NoError(t, err)
	for _, r := range corpus.Records() {
		v, err := keywordVector(context.Background(), r.Describe())
		require.NoError(t, err)
		require.NoError(t, flat.Add(v))
	}
	return &index.Artifact{
		Header:   index.Header{Model: "keywords", Fingerprint: corpus.Fingerprint(), Dimension: flat.Dim(), Count: flat.Len()},
		Index:    flat,
		Metadata: index.BuildMetadata(corpus),
	}
}

func newTestResolver(t *testing.T, corpus *core.Corpus) (*Resolver, *mock.MockEmbedder) {
	t.Helper()
	embedder := mock.NewMockEmbedder().WithEmbedFunc(keywordVector)
	semantic, err := NewSemantic(embedder, testArtifact(t, corpus))
	require.NoError(t, err)
	resolver, err := NewResolver(corpus, semantic)
	require.NoError(t, err)
	return resolver, embedder
}

func districtsOf(records []core.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.District + " " + r.AssessmentYear
	}
	return out
}

func TestExtractYears(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"range", "2015-2018", []int{2015, 2016, 2017, 2018}},
		{"singles", "in 2015 and 2020", []int{2015, 2020}},
		{"none", "no year here", nil},
		{"spaced range", "between 2019 - 2021", []int{2019, 2020, 2021}},
		{"single covered by range", "2016 within 2015-2017", []int{2015, 2016, 2017}},
		{"single outside range", "2015-2016 and 2020", []int{2015, 2016, 2020}},
		{"duplicates", "2020 vs 2020", []int{2020}},
		{"malformed tokens ignored", "123 and 20231 and 99999", nil},
		{"reversed range keeps endpoints", "2020-2015", []int{2015, 2020}},
		{"assessment label", "Bangalore 2023-2024", []int{2023, 2024}},
		{"attached to letters", "fy2023 or 2023rd", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractYears(tt.query)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("idempotent", func(t *testing.T) {
		q := "compare 2018-2019 with 2021"
		assert.Equal(t, ExtractYears(q), ExtractYears(q))
	})
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Bengaluru Urban", titleCase("bengaluru urban"))
	assert.Equal(t, "Semi-Critical", titleCase("semi-critical"))
	assert.Equal(t, "North 24 Parganas", titleCase("north 24 parganas"))
	assert.Equal(t, "Karnataka", titleCase("KARNATAKA"))
}

func TestResolveState(t *testing.T) {
	corpus := testCorpus()

	name, ok := ResolveState(corpus, "karnataka groundwater")
	require.True(t, ok)
	assert.Equal(t, "Karnataka", name)
	assert.Len(t, corpus.Filter(stateIs(name)), 3)

	name, ok = ResolveState(corpus, "  MAHARASHTRA  ")
	require.True(t, ok)
	assert.Equal(t, "Maharashtra", name)

	_, ok = ResolveState(corpus, "pune groundwater")
	assert.False(t, ok)

	m, ok := MatchState(corpus, "pune groundwater")
	require.True(t, ok, "best candidate is reported even when rejected")
	assert.False(t, m.Accepted())

	_, ok = MatchState(core.NewCorpus(nil), "karnataka")
	assert.False(t, ok)
}

func TestResolveDistrict(t *testing.T) {
	corpus := testCorpus()

	name, ok := ResolveDistrict(corpus, "pune groundwater")
	require.True(t, ok)
	assert.Equal(t, "Pune", name)

	name, ok = ResolveDistrict(corpus, "urban bengaluru")
	require.True(t, ok)
	assert.Equal(t, "Bengaluru Urban", name)

	_, ok = ResolveDistrict(corpus, "Bangalore 2023")
	assert.False(t, ok)
}

func TestResolveDistrictSpellingVariant(t *testing.T) {
	corpus := core.NewCorpus([]core.Record{
		record("Karnataka", "Shivamogga", "2022-2023", 48.2, core.CategorySafe),
		record("Karnataka", "Mysuru", "2022-2023", 60.1, core.CategorySafe),
	})

	m, ok := MatchDistrict(corpus, "shimoga")
	require.True(t, ok)
	assert.Equal(t, "Shivamogga", m.Name)
	assert.InDelta(t, 82.35, m.Score, 0.01)
	assert.True(t, m.Accepted())

	resolver, embedder := newTestResolver(t, corpus)
	result, err := resolver.Search(context.Background(), "shimoga", nil)
	require.NoError(t, err)
	assert.Equal(t, core.KindDistrict, result.Kind)
	assert.Equal(t, "Shivamogga", result.Region)
	assert.Len(t, result.Records, 1)
	assert.Zero(t, embedder.CallCount())
}

func TestNameMatchThreshold(t *testing.T) {
	assert.False(t, NameMatch{Score: 70}.Accepted(), "threshold is exclusive")
	assert.True(t, NameMatch{Score: 70.01}.Accepted())
}

func TestDetectComparison(t *testing.T) {
	corpus := testCorpus()

	districts, ok := DetectComparison(corpus, "compare Pune and Nagpur")
	require.True(t, ok)
	assert.Equal(t, []string{"Pune", "Nagpur"}, districts)

	districts, ok = DetectComparison(corpus, "COMPARE nagpur, mysuru and bengaluru urban")
	require.True(t, ok)
	assert.Equal(t, []string{"Bengaluru Urban", "Mysuru", "Nagpur"}, districts)

	_, ok = DetectComparison(corpus, "compare Pune")
	assert.False(t, ok, "one district is not a comparison")

	_, ok = DetectComparison(corpus, "Pune and Nagpur")
	assert.False(t, ok, "keyword is required")

	_, ok = DetectComparison(corpus, "compare Puune and Nagpor")
	assert.False(t, ok, "misspellings are not recognized")
}

func TestSemanticSearch(t *testing.T) {
	corpus := testCorpus()
	embedder := mock.NewMockEmbedder().WithEmbedFunc(keywordVector)

	t.Run("nearest first", func(t *testing.T) {
		semantic, err := NewSemantic(embedder, testArtifact(t, corpus))
		require.NoError(t, err)

		hits, err := semantic.Search(context.Background(), "nagpur water", 3)
		require.NoError(t, err)
		require.Len(t, hits, 3)
		assert.Equal(t, "Nagpur", hits[0].District)
		assert.Equal(t, "Maharashtra", hits[0].State)
		assert.Equal(t, "2023-2024", hits[0].Year)
		assert.Equal(t, float32(0), hits[0].Distance)
		assert.Equal(t, 55.0, hits[0].Stage)
		assert.Equal(t, 450.0, hits[0].RemainingGroundwater)
		for i := 1; i < len(hits); i++ {
			assert.LessOrEqual(t, hits[i-1].Distance, hits[i].Distance)
		}
	})

	t.Run("any query has a hit on a non-empty corpus", func(t *testing.T) {
		semantic, err := NewSemantic(embedder, testArtifact(t, corpus))
		require.NoError(t, err)

		hits, err := semantic.Search(context.Background(), "xyz", DefaultTopK)
		require.NoError(t, err)
		assert.Len(t, hits, DefaultTopK)
	})

	t.Run("exhausted index slots are skipped", func(t *testing.T) {
		semantic, err := NewSemantic(embedder, testArtifact(t, corpus))
		require.NoError(t, err)

		hits, err := semantic.Search(context.Background(), "pune", 20)
		require.NoError(t, err)
		assert.Len(t, hits, corpus.Len())
	})

	t.Run("labels without metadata are skipped", func(t *testing.T) {
		artifact := testArtifact(t, corpus)
		artifact.Metadata = index.NewMetadata(map[int64]core.Snapshot{
			5: corpus.Records()[5].Snapshot(),
		})
		semantic, err := NewSemantic(embedder, artifact)
		require.NoError(t, err)

		hits, err := semantic.Search(context.Background(), "nagpur", 3)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "Nagpur", hits[0].District)
	})

	t.Run("embedding failure", func(t *testing.T) {
		failing := mock.NewMockEmbedder().WithEmbedFunc(func(context.Context, string) ([]float32, error) {
			return nil, errors.New("model offline")
		})
		semantic, err := NewSemantic(failing, testArtifact(t, corpus))
		require.NoError(t, err)

		_, err = semantic.Search(context.Background(), "pune", 5)
		assert.ErrorContains(t, err, "model offline")
	})

	t.Run("invalid top-k", func(t *testing.T) {
		semantic, err := NewSemantic(embedder, testArtifact(t, corpus))
		require.NoError(t, err)

		_, err = semantic.Search(context.Background(), "pune", 0)
		assert.ErrorIs(t, err, ErrInvalidTopK)
	})
}

func TestConstructors(t *testing.T) {
	corpus := testCorpus()
	embedder := mock.NewMockEmbedder()

	_, err := NewSemantic(nil, testArtifact(t, corpus))
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewSemantic(embedder, nil)
	assert.ErrorIs(t, err, ErrArtifactRequired)

	_, err = NewSemantic(embedder, testArtifact(t, corpus), WithTopK(-1))
	assert.ErrorIs(t, err, ErrInvalidTopK)

	semantic, err := NewSemantic(embedder, testArtifact(t, corpus), WithTopK(3), WithLogger(nil))
	require.NoError(t, err)
	assert.Equal(t, 3, semantic.TopK())

	_, err = NewResolver(nil, semantic)
	assert.ErrorIs(t, err, ErrCorpusRequired)

	_, err = NewResolver(corpus, nil)
	assert.ErrorIs(t, err, ErrSemanticRequired)

	resolver, err := NewResolver(corpus, semantic)
	require.NoError(t, err)
	assert.Equal(t, 3, resolver.topK)

	resolver, err = NewResolver(corpus, semantic, WithTopK(7))
	require.NoError(t, err)
	assert.Equal(t, 7, resolver.topK)
}

func TestResolverSearch(t *testing.T) {
	ctx := context.Background()
	corpus := testCorpus()

	t.Run("state", func(t *testing.T) {
		resolver, embedder := newTestResolver(t, corpus)

		result, err := resolver.Search(ctx, "karnataka groundwater", nil)
		require.NoError(t, err)
		assert.Equal(t, core.KindState, result.Kind)
		assert.Equal(t, "Karnataka", result.Region)
		assert.Len(t, result.Records, 3)
		assert.Zero(t, embedder.CallCount())
	})

	t.Run("district with year", func(t *testing.T) {
		resolver, _ := newTestResolver(t, corpus)

		q := "pune groundwater 2023"
		result, err := resolver.Search(ctx, q, ExtractYears(q))
		require.NoError(t, err)
		assert.Equal(t, core.KindDistrict, result.Kind)
		assert.Equal(t, "Pune", result.Region)
		assert.Equal(t, []string{"Pune 2023-2024"}, districtsOf(result.Records))
	})

	t.Run("compare", func(t *testing.T) {
		resolver, embedder := newTestResolver(t, corpus)

		result, err := resolver.Search(ctx, "please compare the groundwater situation in pune and nagpur", nil)
		require.NoError(t, err)
		assert.Equal(t, core.KindCompare, result.Kind)
		assert.Equal(t, core.ComparedRegion, result.Region)
		assert.Equal(t, []string{"Pune 2022-2023", "Pune 2023-2024", "Nagpur 2023-2024"}, districtsOf(result.Records))
		assert.Zero(t, embedder.CallCount())
	})

	t.Run("short compare query resolves to a district first", func(t *testing.T) {
		// Stages run state, district, compare. "pune" scores 90 against this
		// query, so the district stage wins before the comparison is seen.
		// A short "compare A and B" is therefore a district query, not a
		// comparison. Only longer phrasings, where names score at most 60,
		// reach comparison detection.
		resolver, _ := newTestResolver(t, corpus)

		result, err := resolver.Search(ctx, "compare Pune and Nagpur", nil)
		require.NoError(t, err)
		assert.Equal(t, core.KindDistrict, result.Kind)
		assert.Equal(t, "Pune", result.Region)
	})

	t.Run("semantic widens to all years then filters", func(t *testing.T) {
		resolver, embedder := newTestResolver(t, corpus)

		q := "Bangalore 2023"
		result, err := resolver.Search(ctx, q, ExtractYears(q))
		require.NoError(t, err)
		assert.Equal(t, core.KindSemantic, result.Kind)
		assert.Equal(t, "Bengaluru Urban", result.Region)
		assert.Equal(t, []string{"Bengaluru Urban 2023-2024"}, districtsOf(result.Records))
		assert.Equal(t, 1, embedder.CallCount())

		result, err = resolver.Search(ctx, q, nil)
		require.NoError(t, err)
		assert.Len(t, result.Records, 2)
	})

	t.Run("unresolvable query still falls back", func(t *testing.T) {
		resolver, _ := newTestResolver(t, corpus)

		result, err := resolver.Search(ctx, "xyz", nil)
		require.NoError(t, err)
		assert.Equal(t, core.KindSemantic, result.Kind)
		assert.Equal(t, "Bengaluru Urban", result.Region)
	})

	t.Run("year absent keeps kind and region", func(t *testing.T) {
		resolver, _ := newTestResolver(t, corpus)

		result, err := resolver.Search(ctx, "karnataka groundwater", []int{1999})
		require.NoError(t, err)
		assert.Equal(t, core.KindState, result.Kind)
		assert.Equal(t, "Karnataka", result.Region)
		assert.True(t, result.Empty())
	})

	t.Run("blank query", func(t *testing.T) {
		resolver, embedder := newTestResolver(t, corpus)

		result, err := resolver.Search(ctx, "   ", nil)
		require.NoError(t, err)
		assert.Equal(t, core.KindNone, result.Kind)
		assert.Empty(t, result.Region)
		assert.True(t, result.Empty())
		assert.Zero(t, embedder.CallCount())
	})

	t.Run("empty corpus", func(t *testing.T) {
		resolver, _ := newTestResolver(t, core.NewCorpus(nil))

		result, err := resolver.Search(ctx, "xyz", nil)
		require.NoError(t, err)
		assert.Equal(t, core.KindNone, result.Kind)
	})

	t.Run("embedding failure", func(t *testing.T) {
		resolver, embedder := newTestResolver(t, corpus)
		embedder.EmbedTextFunc = func(context.Context, string) ([]float32, error) {
			return nil, errors.New("model offline")
		}

		_, err := resolver.Search(ctx, "xyz", nil)
		assert.Error(t, err)
	})
}

type recordingMonitor struct {
	events []string
	result *core.QueryResult
}

func (m *recordingMonitor) Start(query string, _ []int) { m.events = append(m.events, "start") }
func (m *recordingMonitor) StateCandidate(NameMatch)    { m.events = append(m.events, "state") }
func (m *recordingMonitor) DistrictCandidate(NameMatch) { m.events = append(m.events, "district") }
func (m *recordingMonitor) ComparedDistricts([]string)  { m.events = append(m.events, "compare") }
func (m *recordingMonitor) SemanticHits([]core.ScoredHit) {
	m.events = append(m.events, "semantic")
}
func (m *recordingMonitor) Finish(result *core.QueryResult) {
	m.events = append(m.events, "finish")
	m.result = result
}

func TestSearchWithMonitor(t *testing.T) {
	ctx := context.Background()
	resolver, _ := newTestResolver(t, testCorpus())

	monitor := &recordingMonitor{}
	result, err := resolver.SearchWithMonitor(ctx, "Bangalore 2023", nil, monitor)
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "state", "district", "semantic", "finish"}, monitor.events)
	assert.Same(t, result, monitor.result)

	monitor = &recordingMonitor{}
	_, err = resolver.SearchWithMonitor(ctx, "karnataka groundwater", nil, monitor)
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "state", "finish"}, monitor.events)
}
