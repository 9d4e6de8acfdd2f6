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

package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/ingres/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const translatePrompt = `Translate the following groundwater report from English to %s.
Keep numbers, units, district and state names unchanged. Reply with the translation only.

%s`

// Translator implements ai.Translator using an OpenAI-compatible chat model.
type Translator struct {
	client llms.Model
	logger *slog.Logger
}

// newTranslator is an internal constructor that returns the concrete type.
func newTranslator(config *ai.Config) (*Translator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.TranslatorHost),
		openai.WithToken(config.Token()),
		openai.WithModel(config.TranslatorModel),
	)
	if err != nil {
		return nil, err
	}

	return &Translator{
		client: client,
		logger: slog.Default().With("component", "openai-translator"),
	}, nil
}

// NewTranslator creates a translator using the provided configuration.
//
// Returns ai.Translator interface to enforce abstraction.
func NewTranslator(config *ai.Config) (ai.Translator, error) {
	if !config.TranslationEnabled() {
		return ai.DisabledTranslator{}, nil
	}
	return newTranslator(config)
}

// Translate renders text in target.
func (t *Translator) Translate(ctx context.Context, text string, target ai.Language) ai.Translation {
	result := ai.Translation{Target: target}
	if !target.Translatable() || strings.TrimSpace(text) == "" {
		result.Status = ai.TranslationSkipped
		return result
	}

	prompt := fmt.Sprintf(translatePrompt, target.Name(), text)
	out, err := llms.GenerateFromSinglePrompt(ctx, t.client, prompt, llms.WithTemperature(0))
	if err != nil {
		t.logger.Warn("translation request failed", "target", target, "err", err)
		result.Status = ai.TranslationFailed
		result.Err = err
		return result
	}

	out = strings.TrimSpace(out)
	if out == "" {
		result.Status = ai.TranslationFailed
		result.Err = ai.ErrEmptyTranslation
		return result
	}

	result.Text = out
	result.Status = ai.TranslationTranslated
	return result
}
