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

package ingres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/poiesic/ingres/ai"
	"github.com/poiesic/ingres/ai/openai"
	"github.com/poiesic/ingres/core"
	"github.com/poiesic/ingres/corpus"
	"github.com/poiesic/ingres/index"
	"github.com/poiesic/ingres/indexer"
	"github.com/poiesic/ingres/locale"
	"github.com/poiesic/ingres/report"
	"github.com/poiesic/ingres/resolve"
	"github.com/poiesic/ingres/storage"
	"github.com/poiesic/ingres/storage/badger"
)

// Engine is the query context: corpus, index, resolver and services,
// constructed once and read-only afterwards.
type Engine struct {
	corpus   *core.Corpus
	artifact *index.Artifact
	resolver *resolve.Resolver
	provider ai.AIProvider
	backend  *badger.Backend
	feedback storage.FeedbackRepository
	closed   atomic.Bool
	logger   *slog.Logger
}

// Open loads the corpus at corpusPath and opens an engine over it.
func Open(ctx context.Context, corpusPath string, opts ...EngineOption) (*Engine, error) {
	o := newEngineOptions(opts)
	c, err := corpus.Load(corpusPath, corpus.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}
	return openWith(ctx, c, o)
}

// New opens an engine over an already loaded corpus.
func New(ctx context.Context, c *core.Corpus, opts ...EngineOption) (*Engine, error) {
	if c == nil {
		return nil, resolve.ErrCorpusRequired
	}
	return openWith(ctx, c, newEngineOptions(opts))
}

func openWith(ctx context.Context, c *core.Corpus, o *engineOptions) (*Engine, error) {
	logger := o.logger.With("component", "engine")

	provider, err := o.openProvider()
	if err != nil {
		return nil, err
	}

	artifact, _, err := o.loadIndex(ctx, c, provider)
	if err != nil {
		provider.Close()
		return nil, err
	}

	resolveOpts := []resolve.Option{resolve.WithLogger(o.logger)}
	if o.topK != 0 {
		resolveOpts = append(resolveOpts, resolve.WithTopK(o.topK))
	}
	semantic, err := resolve.NewSemantic(provider.Embedder(), artifact, resolveOpts...)
	if err != nil {
		provider.Close()
		return nil, err
	}
	resolver, err := resolve.NewResolver(c, semantic, resolve.WithLogger(o.logger))
	if err != nil {
		provider.Close()
		return nil, err
	}

	e := &Engine{
		corpus:   c,
		artifact: artifact,
		resolver: resolver,
		provider: provider,
		logger:   logger,
	}

	if o.feedbackPath != "" || o.memoryFeedback {
		if err := e.openFeedback(o); err != nil {
			provider.Close()
			return nil, err
		}
	}

	logger.Info("engine ready", "records", c.Len(), "states", len(c.States()), "districts", len(c.Districts()), "vectors", artifact.Index.Len())
	return e, nil
}

func (e *Engine) openFeedback(o *engineOptions) error {
	backend, err := badger.OpenBackend(o.feedbackPath, o.memoryFeedback)
	if err != nil {
		return fmt.Errorf("open feedback store: %w", err)
	}
	repo, err := badger.NewFeedbackRepository(backend)
	if err != nil {
		backend.Close()
		return fmt.Errorf("open feedback store: %w", err)
	}
	e.backend = backend
	e.feedback = repo
	return nil
}

func (o *engineOptions) openProvider() (ai.AIProvider, error) {
	if o.provider != nil {
		return o.provider, nil
	}
	provider, err := openai.NewProvider(o.aiConfig)
	if err != nil {
		return nil, fmt.Errorf("create AI provider: %w", err)
	}
	return provider, nil
}

// loadIndex builds in memory when no paths are set, otherwise loads or
// builds the cached artifact.
func (o *engineOptions) loadIndex(ctx context.Context, c *core.Corpus, provider ai.AIProvider) (*index.Artifact, bool, error) {
	builderOpts := []indexer.Option{indexer.WithLogger(o.logger), indexer.WithProgress(o.progress)}
	if o.poolSize > 0 {
		builderOpts = append(builderOpts, indexer.WithPoolSize(o.poolSize))
	}
	builder, err := indexer.NewBuilder(provider.Embedder(), o.indexerConfig, builderOpts...)
	if err != nil {
		return nil, false, err
	}
	defer builder.Release()

	model := o.aiConfig.EmbeddingModel
	if o.paths.Index == "" || o.paths.Metadata == "" {
		artifact, err := builder.Build(ctx, c, model)
		return artifact, err == nil, err
	}
	return builder.LoadOrBuild(ctx, c, model, o.paths, o.force)
}

// BuildIndex loads the corpus and writes the index artifact to the
// configured paths. Existing artifacts are kept unless WithForceRebuild is
// set. The boolean reports whether a build happened.
func BuildIndex(ctx context.Context, corpusPath string, opts ...EngineOption) (*index.Artifact, bool, error) {
	o := newEngineOptions(opts)
	if o.paths.Index == "" || o.paths.Metadata == "" {
		return nil, false, ErrIndexPathsRequired
	}
	c, err := corpus.Load(corpusPath, corpus.WithLogger(o.logger))
	if err != nil {
		return nil, false, err
	}
	provider, err := o.openProvider()
	if err != nil {
		return nil, false, err
	}
	defer provider.Close()
	return o.loadIndex(ctx, c, provider)
}

// Close releases the provider and the feedback store.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
		errs = append(errs, err)
	}
	if e.feedback != nil {
		if err := e.feedback.Close(); err != nil {
			e.logger.Error("error closing feedback repository", "err", err)
			errs = append(errs, err)
		}
		if err := e.backend.Close(); err != nil {
			e.logger.Error("error closing feedback storage", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Corpus returns the loaded corpus.
func (e *Engine) Corpus() *core.Corpus {
	return e.corpus
}

// Artifact returns the semantic index in use.
func (e *Engine) Artifact() *index.Artifact {
	return e.artifact
}

// Search resolves query and keeps the records whose assessment year is in
// years. Empty years means every year.
func (e *Engine) Search(ctx context.Context, query string, years []int) (*core.QueryResult, error) {
	return e.SearchWithMonitor(ctx, query, years, nil)
}

// SearchWithMonitor is Search with stage callbacks.
func (e *Engine) SearchWithMonitor(ctx context.Context, query string, years []int, monitor resolve.Monitor) (*core.QueryResult, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	return e.resolver.SearchWithMonitor(ctx, query, years, monitor)
}

// Ask answers a free-text question: years come from the question itself
// and the summary is translated into the question's language when that is
// Hindi or Kannada.
func (e *Engine) Ask(ctx context.Context, question string) (*Answer, error) {
	years := resolve.ExtractYears(question)
	result, err := e.Search(ctx, question, years)
	if err != nil {
		return nil, err
	}

	rep := report.Build(result)
	text := rep.Summary.Text()
	if result.Empty() {
		text = report.NoDataMessage(result.Region, years)
	}

	lang := locale.Detect(question)
	translation := ai.Translation{Target: lang, Status: ai.TranslationSkipped}
	if lang.Translatable() {
		translation = e.provider.Translator().Translate(ctx, text, lang)
		if translation.Status == ai.TranslationFailed {
			e.logger.Warn("translation failed, showing English", "lang", lang, "err", translation.Err)
		}
	}

	return &Answer{
		Question:    question,
		Language:    lang,
		Years:       years,
		Result:      result,
		Report:      rep,
		Text:        text,
		Translation: translation,
	}, nil
}

// SubmitFeedback stores a feedback comment.
func (e *Engine) SubmitFeedback(ctx context.Context, text string) (*core.Feedback, error) {
	if e.feedback == nil {
		return nil, ErrFeedbackDisabled
	}
	added, err := e.feedback.AddFeedback(ctx, &core.Feedback{Text: text})
	if err != nil {
		return nil, err
	}
	return added[0], nil
}

// RecentFeedback lists up to limit comments, newest first.
func (e *Engine) RecentFeedback(ctx context.Context, limit int) ([]*core.Feedback, error) {
	if e.feedback == nil {
		return nil, ErrFeedbackDisabled
	}
	return e.feedback.GetRecentFeedback(ctx, limit)
}
