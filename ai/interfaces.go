package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Translator renders English text in another supported language.
// Implementations must be thread-safe for concurrent use.
type Translator interface {
	// Translate never returns the source text disguised as a translation:
	// the Status of the result says whether Text holds a translation,
	// and callers choose their own fallback.
	Translate(ctx context.Context, text string, target Language) Translation
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Translator returns the translation service. It is never nil; when
	// translation is disabled it reports TranslationUnavailable.
	Translator() Translator

	// Close releases resources held by the provider and its services.
	Close() error
}
