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

package indexer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/ingres/ai"
	"github.com/poiesic/ingres/core"
	"github.com/poiesic/ingres/index"
)

// Config holds configuration for an index build.
type Config struct {
	// BatchSize is the number of records embedded per request
	BatchSize int

	// ReportInterval is how often to report progress (number of records)
	ReportInterval int

	// MaxRetries is the maximum number of attempts per batch
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      64,
		ReportInterval: 256,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Builder embeds a corpus and assembles the semantic index.
type Builder struct {
	embedder ai.Embedder
	config   *Config
	pool     *ants.Pool
	progress io.Writer
	logger   *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithPoolSize sets how many batches are embedded concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if b.pool != nil {
			b.pool.Release()
		}
		b.pool = pool
		return nil
	}
}

// WithProgress sets where progress lines are written.
// Default is io.Discard.
func WithProgress(w io.Writer) Option {
	return func(b *Builder) error {
		if w == nil {
			w = io.Discard
		}
		b.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a builder. A nil config uses DefaultConfig.
// Call Release when done to stop the worker pool.
func NewBuilder(embedder ai.Embedder, config *Config, opts ...Option) (*Builder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.BatchSize <= 0 {
		return nil, ErrInvalidBatchSize
	}
	if config.MaxRetries <= 0 {
		return nil, ErrInvalidMaxAttempts
	}

	poolSize := max(runtime.NumCPU()/2, 1)
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		embedder: embedder,
		config:   config,
		pool:     pool,
		progress: io.Discard,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			b.Release()
			return nil, err
		}
	}
	b.logger = b.logger.With("component", "indexer")

	return b, nil
}

// Release stops the worker pool.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}

// Build embeds every record of corpus with the builder's embedder and
// returns the in-memory artifact. model is recorded in the artifact header
// and must name the model the embedder uses.
func (b *Builder) Build(ctx context.Context, corpus *core.Corpus, model string) (*index.Artifact, error) {
	records := corpus.Records()
	if len(records) == 0 {
		return nil, ErrEmptyCorpus
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Describe()
	}

	b.logger.Info("building index", "records", len(texts), "batchSize", b.config.BatchSize, "model", model)
	tracker := NewProgressTracker(b.progress, len(texts), b.config.ReportInterval)
	tracker.Start()

	batches, err := b.embedBatches(ctx, texts, tracker)
	if err != nil {
		return nil, err
	}
	tracker.Finish()

	dim := len(batches[0][0])
	if dim == 0 {
		return nil, ErrEmptyEmbedding
	}
	flat, err := index.NewFlat(dim)
	if err != nil {
		return nil, err
	}
	for _, vectors := range batches {
		if err := flat.Add(vectors...); err != nil {
			return nil, fmt.Errorf("assemble index: %w", err)
		}
	}

	b.logger.Info("index built", "vectors", flat.Len(), "dimension", dim, "elapsed", tracker.Elapsed().Round(time.Millisecond))
	return &index.Artifact{
		Header: index.Header{
			Model:       model,
			Fingerprint: corpus.Fingerprint(),
			Dimension:   dim,
			Count:       flat.Len(),
		},
		Index:    flat,
		Metadata: index.BuildMetadata(corpus),
	}, nil
}

// embedBatches embeds texts in BatchSize chunks on the pool and returns the
// chunks' vectors in input order. The first failure cancels the rest.
func (b *Builder) embedBatches(ctx context.Context, texts []string, tracker *ProgressTracker) ([][][]float32, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	size := b.config.BatchSize
	results := make([][][]float32, (len(texts)+size-1)/size)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	for i := range results {
		start := i * size
		batch := texts[start:min(start+size, len(texts))]

		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			vectors, err := b.embedBatch(ctx, batch)
			if err != nil {
				fail(fmt.Errorf("batch starting at row %d: %w", start, err))
				return
			}
			results[i] = vectors
			tracker.Increment(len(batch))
		})
		if err != nil {
			wg.Done()
			fail(fmt.Errorf("submit batch: %w", err))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		b.logger.Error("index build failed", "err", firstErr)
		return nil, firstErr
	}
	return results, nil
}

func (b *Builder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var vectors [][]float32
	err := RetryWithBackoff(ctx, b.logger, func() error {
		var err error
		vectors, err = b.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return err
		}
		if len(vectors) != len(texts) {
			return fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCount, len(texts), len(vectors))
		}
		return nil
	}, b.config.MaxRetries, b.config.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings after %d attempts: %w", b.config.MaxRetries, err)
	}
	return vectors, nil
}

// LoadOrBuild returns the persisted artifact at paths when both files
// exist, and otherwise builds and saves a new one. With force set it
// always rebuilds, replacing the files atomically. The boolean reports
// whether a build happened.
//
// Existing artifacts are never rebuilt implicitly: a mismatch with the
// corpus or model is logged as a warning and the artifact is used as is.
func (b *Builder) LoadOrBuild(ctx context.Context, corpus *core.Corpus, model string, paths index.Paths, force bool) (*index.Artifact, bool, error) {
	if !force && paths.Exist() {
		artifact, err := index.Load(paths, index.WithLogger(b.logger))
		if err != nil {
			return nil, false, err
		}
		if err := artifact.Check(corpus, model); err != nil {
			b.logger.Warn("using stale index; rebuild with build-index --force", "err", err)
		}
		return artifact, false, nil
	}

	artifact, err := b.Build(ctx, corpus, model)
	if err != nil {
		return nil, false, err
	}
	if err := index.Save(paths, artifact); err != nil {
		return nil, false, fmt.Errorf("save index: %w", err)
	}
	b.logger.Info("index saved", "index", paths.Index, "metadata", paths.Metadata)
	return artifact, true, nil
}
