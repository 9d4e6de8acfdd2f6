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

package index

import "errors"

var (
	// ErrInvalidDimension is returned when an index is created with a non-positive dimension.
	ErrInvalidDimension = errors.New("index dimension must be greater than 0")

	// ErrDimensionMismatch is returned when a vector does not match the index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrCorruptIndex is returned when an index file cannot be decoded.
	ErrCorruptIndex = errors.New("corrupt index file")

	// ErrUnsupportedVersion is returned when an index file was written by an unknown format version.
	ErrUnsupportedVersion = errors.New("unsupported index format version")

	// ErrCorruptMetadata is returned when a metadata file cannot be decoded.
	ErrCorruptMetadata = errors.New("corrupt metadata file")

	// ErrArtifactMissing is returned when the index or metadata file does not exist.
	ErrArtifactMissing = errors.New("index artifacts not found")

	// ErrStale is returned by Artifact.Check when the artifact was built from
	// a different corpus or embedding model.
	ErrStale = errors.New("index artifacts are stale")
)
