// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Translator,
// and ai.AIProvider for use in unit tests. The mocks run without a model
// server and behave deterministically.
//
// # Usage in Tests
//
//	mockProvider := mock.NewMockProviderWithServices(
//	    mock.NewMockEmbedder().WithEmbedFunc(keywordVector),
//	    mock.NewMockTranslator(),
//	)
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "pune")
//
//	// Check call counts
//	count := mockProvider.GetMockEmbedder().CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: returns unit vectors seeded by a hash of the text
//   - MockTranslator: tags the text with the target code, skips English
//   - MockProvider: aggregates the two
package mock
