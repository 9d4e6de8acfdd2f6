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

// Package ai provides abstractions for the model services ingres depends on.
//
// The package is designed around three interfaces:
//
//   - Embedder: encodes text into vectors for the semantic index
//   - Translator: renders summaries in Hindi or Kannada
//   - AIProvider: aggregates both for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, ...) return
// interface types. Test constructors (mock.NewMockEmbedder,
// mock.NewMockTranslator) return concrete types so tests can inject behavior
// and inspect call counts.
//
// # Translation Results
//
// A Translator never hides a failure by echoing its input. Every call yields
// a Translation whose Status is one of Translated, Skipped, Unavailable or
// Failed; callers pick the fallback:
//
//	tr := provider.Translator().Translate(ctx, summary, ai.Kannada)
//	text := tr.TextOr(summary)
//	if tr.Status == ai.TranslationFailed {
//	    logger.Warn("translation failed", "err", tr.Err)
//	}
package ai
