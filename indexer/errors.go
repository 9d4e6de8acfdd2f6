package indexer

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrEmptyCorpus is returned when there is nothing to index.
	ErrEmptyCorpus = errors.New("cannot index an empty corpus")

	// ErrEmbeddingCount is returned when the model returns a different
	// number of vectors than texts it was given.
	ErrEmbeddingCount = errors.New("embedding count mismatch")

	// ErrEmptyEmbedding is returned when the model returns zero-length vectors.
	ErrEmptyEmbedding = errors.New("model returned empty embeddings")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be greater than 0")
)
