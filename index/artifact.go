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

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/ingres/core"
)

// Paths locates the two files of a persisted artifact.
type Paths struct {
	Index    string
	Metadata string
}

// Exist reports whether both files are present.
func (p Paths) Exist() bool {
	return fileExists(p.Index) && fileExists(p.Metadata)
}

// Artifact is a loaded or freshly built semantic index with its metadata.
// It is read-only once constructed and safe for concurrent searches.
type Artifact struct {
	Header   Header
	Index    *Flat
	Metadata *Metadata
}

// Check reports ErrStale when the artifact does not correspond to corpus or model.
// An empty model skips the model comparison.
func (a *Artifact) Check(corpus *core.Corpus, model string) error {
	if fp := corpus.Fingerprint(); a.Header.Fingerprint != fp {
		return fmt.Errorf("%w: built from corpus %.12s, current corpus is %.12s", ErrStale, a.Header.Fingerprint, fp)
	}
	if model != "" && a.Header.Model != model {
		return fmt.Errorf("%w: built with model %q, configured model is %q", ErrStale, a.Header.Model, model)
	}
	return nil
}

// Option configures Load.
type Option func(*loadOptions) error

type loadOptions struct {
	logger *slog.Logger
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *loadOptions) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// Load reads a persisted artifact. A cardinality mismatch between index and
// metadata is logged, not rejected; lookups of unmatched labels simply miss.
func Load(paths Paths, opts ...Option) (*Artifact, error) {
	o := &loadOptions{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	logger := o.logger.With("component", "index")

	if !paths.Exist() {
		return nil, fmt.Errorf("%w: %s, %s", ErrArtifactMissing, paths.Index, paths.Metadata)
	}

	indexData, err := os.ReadFile(paths.Index)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	flat, header, err := DecodeIndex(indexData)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", paths.Index, err)
	}

	metaData, err := os.ReadFile(paths.Metadata)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	meta, err := DecodeMetadata(metaData)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", paths.Metadata, err)
	}

	if flat.Len() != meta.Len() {
		logger.Warn("index and metadata cardinality differ", "vectors", flat.Len(), "metadata", meta.Len())
	}
	logger.Debug("index loaded", "vectors", flat.Len(), "dimension", flat.Dim(), "model", header.Model)

	return &Artifact{Header: header, Index: flat, Metadata: meta}, nil
}

// rename installs a finished temporary file.
var rename = os.Rename

// Save persists the artifact. Both files are fully written under temporary
// names before either is renamed into place, and the index is installed
// first. The two renames are not one atomic step: a Load that runs between
// them pairs the new index with the previous metadata and logs the
// cardinality mismatch.
func Save(paths Paths, a *Artifact) error {
	metaData, err := EncodeMetadata(a.Metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	indexData := EncodeIndex(a.Index, a.Header)

	indexTmp, err := writeTemp(paths.Index, indexData)
	if err != nil {
		return err
	}
	metaTmp, err := writeTemp(paths.Metadata, metaData)
	if err != nil {
		os.Remove(indexTmp)
		return err
	}

	if err := rename(indexTmp, paths.Index); err != nil {
		os.Remove(indexTmp)
		os.Remove(metaTmp)
		return fmt.Errorf("install index: %w", err)
	}
	if err := rename(metaTmp, paths.Metadata); err != nil {
		os.Remove(metaTmp)
		return fmt.Errorf("install metadata: %w", err)
	}
	return nil
}

// writeTemp writes data next to target and returns the temporary file name.
func writeTemp(target string, data []byte) (string, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(dir, filepath.Base(target)+".tmp-*")
	if err != nil {
		return "", err
	}
	name := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("sync %s: %w", target, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
