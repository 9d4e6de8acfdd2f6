package ingres

import (
	"io"
	"log/slog"

	"github.com/poiesic/ingres/ai"
	"github.com/poiesic/ingres/index"
	"github.com/poiesic/ingres/indexer"
)

// EngineOption configures Open and BuildIndex.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig       *ai.Config
	provider       ai.AIProvider
	indexerConfig  *indexer.Config
	poolSize       int
	paths          index.Paths
	force          bool
	feedbackPath   string
	memoryFeedback bool
	topK           int
	progress       io.Writer
	logger         *slog.Logger
}

func newEngineOptions(opts []EngineOption) *engineOptions {
	o := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithAIConfig sets the embedding and translation service configuration.
// The embedding model named here is recorded in built artifacts.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider uses an existing provider instead of creating one from the
// AI config. The engine takes ownership and closes it.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithIndexPaths sets where the index artifact is cached. Without paths
// the index is built in memory on every Open.
func WithIndexPaths(paths index.Paths) EngineOption {
	return func(o *engineOptions) {
		o.paths = paths
	}
}

// WithIndexerConfig tunes the index build.
func WithIndexerConfig(config *indexer.Config) EngineOption {
	return func(o *engineOptions) {
		o.indexerConfig = config
	}
}

// WithPoolSize sets how many embedding batches run concurrently during a build.
func WithPoolSize(size int) EngineOption {
	return func(o *engineOptions) {
		o.poolSize = size
	}
}

// WithForceRebuild rebuilds the index even when cached artifacts exist.
func WithForceRebuild(force bool) EngineOption {
	return func(o *engineOptions) {
		o.force = force
	}
}

// WithFeedbackPath enables the feedback store at the given directory.
func WithFeedbackPath(path string) EngineOption {
	return func(o *engineOptions) {
		o.feedbackPath = path
	}
}

// WithMemoryFeedback enables an in-memory feedback store.
func WithMemoryFeedback() EngineOption {
	return func(o *engineOptions) {
		o.memoryFeedback = true
	}
}

// WithTopK sets how many neighbors the semantic fallback retrieves.
func WithTopK(k int) EngineOption {
	return func(o *engineOptions) {
		o.topK = k
	}
}

// WithProgress sets where index build progress is written.
func WithProgress(w io.Writer) EngineOption {
	return func(o *engineOptions) {
		o.progress = w
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
