// Package locale guesses the language a question was written in.
package locale

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
	"github.com/poiesic/ingres/ai"
)

// Detect returns the language of text. Anything that is not recognizably
// Hindi or Kannada, including blank or undecidable input, is English.
func Detect(text string) ai.Language {
	text = strings.TrimSpace(text)
	if text == "" {
		return ai.English
	}

	info := whatlanggo.Detect(text)
	switch info.Lang {
	case whatlanggo.Hin:
		return ai.Hindi
	case whatlanggo.Kan:
		return ai.Kannada
	}

	// Short Kannada questions are sometimes scored as another language
	// even though the script is unambiguous.
	if info.Script == unicode.Kannada {
		return ai.Kannada
	}
	return ai.English
}
