package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/ingres/ai"
	"github.com/poiesic/ingres/core"
	"github.com/poiesic/ingres/index"
)

// Semantic finds the corpus rows nearest to a query in embedding space.
// It is safe for concurrent use when its embedder is.
type Semantic struct {
	embedder ai.Embedder
	artifact *index.Artifact
	topK     int
	logger   *slog.Logger
}

// NewSemantic creates a semantic searcher over a built or loaded artifact.
// The embedder must use the model the artifact was built with.
func NewSemantic(embedder ai.Embedder, artifact *index.Artifact, opts ...Option) (*Semantic, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if artifact == nil || artifact.Index == nil || artifact.Metadata == nil {
		return nil, ErrArtifactRequired
	}
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Semantic{
		embedder: embedder,
		artifact: artifact,
		topK:     o.topK,
		logger:   o.logger.With("component", "semantic"),
	}, nil
}

// TopK returns the configured neighbor count.
func (s *Semantic) TopK() int {
	return s.topK
}

// Search embeds the raw query and returns up to topK hits, nearest first.
// Empty index slots and labels without metadata are skipped, so fewer
// than topK hits may come back.
func (s *Semantic) Search(ctx context.Context, query string, topK int) ([]core.ScoredHit, error) {
	if topK <= 0 {
		return nil, ErrInvalidTopK
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	neighbors, err := s.artifact.Index.Search(vector, topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	hits := make([]core.ScoredHit, 0, len(neighbors))
	for _, n := range neighbors {
		if n.Label == index.NoNeighbor {
			continue
		}
		snapshot, ok := s.artifact.Metadata.Lookup(n.Label)
		if !ok {
			s.logger.Warn("index label has no metadata; index may be stale", "label", n.Label)
			continue
		}
		hits = append(hits, snapshot.Hit(n.Distance))
	}

	s.logger.Debug("semantic search", "neighbors", len(neighbors), "hits", len(hits))
	return hits, nil
}
