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

// Package index holds the semantic index over corpus rows and its on-disk form.
//
// An Artifact pairs two pieces:
//
//   - Flat: an exhaustive, unquantized index answering k-nearest-neighbor
//     queries by squared Euclidean distance. Labels are corpus row indices.
//   - Metadata: a snapshot of each row's identity and measurements, keyed by
//     the same row index, so hits can be reported without the corpus.
//
// On disk the index is a compact binary file (mus-go encoding) carrying a
// header with the embedding model and a corpus fingerprint, and the metadata
// is a JSON object keyed by the decimal row index. Save writes both files to
// temporary names and renames them into place, so readers never observe a
// partially written artifact.
//
// Nothing in this package rebuilds an artifact. Stale artifacts are detected
// by Artifact.Check and reported; rebuilding is an explicit operation of the
// indexer package.
package index
