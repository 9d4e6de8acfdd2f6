package ai

import (
	"context"
	"errors"
)

// Language is an ISO 639-1 code for a user-facing language.
type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
	Kannada Language = "kn"
)

// Name returns the English name of the language.
func (l Language) Name() string {
	switch l {
	case English:
		return "English"
	case Hindi:
		return "Hindi"
	case Kannada:
		return "Kannada"
	}
	return string(l)
}

// Translatable reports whether summaries can be translated into l.
func (l Language) Translatable() bool {
	return l == Hindi || l == Kannada
}

// TranslationStatus says what a Translation holds.
type TranslationStatus int

const (
	// TranslationTranslated means Text holds the translated text.
	TranslationTranslated TranslationStatus = iota + 1
	// TranslationSkipped means no translation was needed (English target, blank text, unsupported language).
	TranslationSkipped
	// TranslationUnavailable means no translator is configured.
	TranslationUnavailable
	// TranslationFailed means the translator was called and failed; Err holds the cause.
	TranslationFailed
)

func (s TranslationStatus) String() string {
	switch s {
	case TranslationTranslated:
		return "translated"
	case TranslationSkipped:
		return "skipped"
	case TranslationUnavailable:
		return "unavailable"
	case TranslationFailed:
		return "failed"
	}
	return "unknown"
}

// ErrEmptyTranslation is the failure cause when the model returned no text.
var ErrEmptyTranslation = errors.New("translator returned empty text")

// Translation is the explicit outcome of a translation request.
type Translation struct {
	Text   string
	Target Language
	Status TranslationStatus
	Err    error
}

// OK reports whether Text holds a translation.
func (t Translation) OK() bool {
	return t.Status == TranslationTranslated
}

// TextOr returns the translation, or fallback when there is none.
func (t Translation) TextOr(fallback string) string {
	if t.OK() {
		return t.Text
	}
	return fallback
}

// DisabledTranslator reports every request as unavailable.
type DisabledTranslator struct{}

var _ Translator = DisabledTranslator{}

// Translate implements Translator.
func (DisabledTranslator) Translate(_ context.Context, _ string, target Language) Translation {
	return Translation{Target: target, Status: TranslationUnavailable}
}
