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

// Package indexer builds the semantic index over a corpus.
//
// Every record is described as "<district>, <state>, <assessment year>"
// and the descriptions are embedded in fixed-size batches. Batches run
// concurrently on a worker pool, each retried with exponential backoff,
// and are reassembled in row order, so label i of the resulting index is
// always corpus row i.
//
// LoadOrBuild implements the cache policy: when both artifact files exist
// they are loaded and never rebuilt implicitly, even if they no longer
// match the corpus. Stale artifacts are reported as a warning; rebuilding
// is an explicit, forced operation.
//
//	builder, err := indexer.NewBuilder(provider.Embedder(), indexer.DefaultConfig(),
//	    indexer.WithProgress(os.Stderr))
//	defer builder.Release()
//	artifact, built, err := builder.LoadOrBuild(ctx, corpus, model, paths, false)
package indexer
