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

package resolve

import "errors"

var (
	// ErrCorpusRequired is returned when a corpus is not provided.
	ErrCorpusRequired = errors.New("corpus required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrArtifactRequired is returned when an index artifact is not provided.
	ErrArtifactRequired = errors.New("index artifact required")

	// ErrSemanticRequired is returned when a semantic searcher is not provided.
	ErrSemanticRequired = errors.New("semantic searcher required")

	// ErrInvalidTopK is returned when the neighbor count is not positive.
	ErrInvalidTopK = errors.New("top-k must be positive")
)
