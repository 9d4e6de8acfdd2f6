package mock

import (
	"context"
	"sync/atomic"

	"github.com/poiesic/ingres/ai"
)

// MockTranslator is a test double for ai.Translator.
type MockTranslator struct {
	// TranslateFunc is called by Translate if set.
	// If nil, the text is returned prefixed with "[<code>] ".
	TranslateFunc func(ctx context.Context, text string, target ai.Language) ai.Translation

	callCount atomic.Int64
}

// NewMockTranslator creates a mock translator with default tagging behavior.
func NewMockTranslator() *MockTranslator {
	return &MockTranslator{}
}

// Translate implements ai.Translator.
func (m *MockTranslator) Translate(ctx context.Context, text string, target ai.Language) ai.Translation {
	m.callCount.Add(1)

	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text, target)
	}
	if !target.Translatable() {
		return ai.Translation{Target: target, Status: ai.TranslationSkipped}
	}
	return ai.Translation{
		Text:   "[" + string(target) + "] " + text,
		Target: target,
		Status: ai.TranslationTranslated,
	}
}

// CallCount returns the number of Translate calls.
func (m *MockTranslator) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and injected behavior.
func (m *MockTranslator) Reset() {
	m.callCount.Store(0)
	m.TranslateFunc = nil
}
