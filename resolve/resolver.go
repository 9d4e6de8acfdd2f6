package resolve

import (
	"context"
	"log/slog"

	"github.com/poiesic/ingres/core"
)

// Resolver runs the resolution pipeline over one corpus.
// It holds no per-query state and is safe for concurrent use.
type Resolver struct {
	corpus   *core.Corpus
	semantic *Semantic
	topK     int
	logger   *slog.Logger
}

// NewResolver creates a resolver. The semantic searcher must be built over
// the same corpus.
func NewResolver(corpus *core.Corpus, semantic *Semantic, opts ...Option) (*Resolver, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}
	if semantic == nil {
		return nil, ErrSemanticRequired
	}

	// Start from the searcher's neighbor count so WithTopK on either wins.
	o, err := newOptions(append([]Option{WithTopK(semantic.TopK())}, opts...))
	if err != nil {
		return nil, err
	}

	return &Resolver{
		corpus:   corpus,
		semantic: semantic,
		topK:     o.topK,
		logger:   o.logger.With("component", "resolver"),
	}, nil
}

// Search resolves query and filters the accepted subset to years.
// Empty years means no year filter.
func (r *Resolver) Search(ctx context.Context, query string, years []int) (*core.QueryResult, error) {
	return r.SearchWithMonitor(ctx, query, years, nil)
}

// SearchWithMonitor is Search with callbacks at each stage.
// The only error source is the semantic stage (embedding or index failure).
func (r *Resolver) SearchWithMonitor(ctx context.Context, query string, years []int, monitor Monitor) (*core.QueryResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query, years)

	result, err := r.resolve(ctx, query, monitor)
	if err != nil {
		return nil, err
	}

	if set := newYearSet(years); set != nil {
		result.Records = filterYears(result.Records, set)
	}

	r.logger.Debug("query resolved", "kind", result.Kind, "region", result.Region, "records", len(result.Records))
	monitor.Finish(result)
	return result, nil
}

func (r *Resolver) resolve(ctx context.Context, query string, monitor Monitor) (*core.QueryResult, error) {
	if foldQuery(query) == "" {
		return none(), nil
	}

	if m, ok := MatchState(r.corpus, query); ok {
		monitor.StateCandidate(m)
		if m.Accepted() {
			return &core.QueryResult{
				Kind:    core.KindState,
				Region:  m.Name,
				Records: r.corpus.Filter(stateIs(m.Name)),
			}, nil
		}
	}

	if m, ok := MatchDistrict(r.corpus, query); ok {
		monitor.DistrictCandidate(m)
		if m.Accepted() {
			return &core.QueryResult{
				Kind:    core.KindDistrict,
				Region:  m.Name,
				Records: r.corpus.Filter(districtIs(m.Name)),
			}, nil
		}
	}

	if districts, ok := DetectComparison(r.corpus, query); ok {
		monitor.ComparedDistricts(districts)
		return &core.QueryResult{
			Kind:    core.KindCompare,
			Region:  core.ComparedRegion,
			Records: r.corpus.Filter(districtIn(districts)),
		}, nil
	}

	hits, err := r.semantic.Search(ctx, query, r.topK)
	if err != nil {
		r.logger.Error("semantic fallback failed", "err", err)
		return nil, err
	}
	monitor.SemanticHits(hits)
	if len(hits) == 0 {
		return none(), nil
	}

	// Widen the nearest row to every year of its (district, state) pair.
	best := hits[0]
	return &core.QueryResult{
		Kind:   core.KindSemantic,
		Region: best.District,
		Records: r.corpus.Filter(func(rec core.Record) bool {
			return rec.District == best.District && rec.State == best.State
		}),
	}, nil
}

func none() *core.QueryResult {
	return &core.QueryResult{Kind: core.KindNone}
}

// filterYears keeps the records whose leading assessment year is requested.
// Records without a parseable year never match.
func filterYears(records []core.Record, years yearSet) []core.Record {
	kept := make([]core.Record, 0, len(records))
	for _, rec := range records {
		if y, ok := rec.Year(); ok && years.contains(y) {
			kept = append(kept, rec)
		}
	}
	return kept
}
