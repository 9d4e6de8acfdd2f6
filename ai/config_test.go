package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.TranslatorHost)
	assert.Equal(t, DefaultEmbeddingModel, cfg.EmbeddingModel)
	assert.Equal(t, "qwen2.5:3b", cfg.TranslatorModel)
	assert.Empty(t, cfg.APIKey)
	assert.True(t, cfg.TranslationEnabled())
}

func TestNewConfig(t *testing.T) {
	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://custom:8080/v1", cfg.TranslatorHost)
	})

	t.Run("with separate hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed:8080/v1"),
			WithTranslatorHost("http://chat:9090/v1"),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://chat:9090/v1", cfg.TranslatorHost)
	})

	t.Run("translation disabled", func(t *testing.T) {
		cfg := NewConfig(WithTranslatorModel(""))

		assert.False(t, cfg.TranslationEnabled())
	})

	t.Run("api key", func(t *testing.T) {
		assert.Equal(t, "none", NewConfig().Token())
		assert.Equal(t, "sk-test", NewConfig(WithAPIKey("sk-test")).Token())
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected string
	}{
		{"already has /v1", "http://localhost:11434/v1", "http://localhost:11434/v1"},
		{"missing /v1", "http://localhost:11434", "http://localhost:11434/v1"},
		{"has trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"empty host", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{EmbeddingHost: tt.host, TranslatorHost: tt.host}

			cfg.Normalize()

			assert.Equal(t, tt.expected, cfg.EmbeddingHost)
			assert.Equal(t, tt.expected, cfg.TranslatorHost)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config normalizes", func(t *testing.T) {
		cfg := &Config{
			EmbeddingHost:   "http://localhost:11434",
			TranslatorHost:  "http://localhost:11434",
			EmbeddingModel:  DefaultEmbeddingModel,
			TranslatorModel: "qwen2.5:3b",
		}

		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.TranslatorHost)
	})

	t.Run("missing embedding host", func(t *testing.T) {
		cfg := &Config{EmbeddingModel: DefaultEmbeddingModel}

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingHost")
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := &Config{EmbeddingHost: "http://localhost:11434/v1"}

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingModel")
	})

	t.Run("translator model without host", func(t *testing.T) {
		cfg := &Config{
			EmbeddingHost:   "http://localhost:11434/v1",
			EmbeddingModel:  DefaultEmbeddingModel,
			TranslatorModel: "qwen2.5:3b",
		}

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TranslatorHost")
	})

	t.Run("no translator needs no host", func(t *testing.T) {
		cfg := &Config{
			EmbeddingHost:  "http://localhost:11434/v1",
			EmbeddingModel: DefaultEmbeddingModel,
		}

		assert.NoError(t, cfg.Validate())
	})

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, NewConfig().Validate())
		assert.NoError(t, DefaultConfig().Validate())
	})
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, "Hindi", Hindi.Name())
	assert.Equal(t, "Kannada", Kannada.Name())
	assert.Equal(t, "English", English.Name())
	assert.Equal(t, "fr", Language("fr").Name())

	assert.True(t, Hindi.Translatable())
	assert.True(t, Kannada.Translatable())
	assert.False(t, English.Translatable())
}

func TestTranslation(t *testing.T) {
	ok := Translation{Text: "नमस्ते", Target: Hindi, Status: TranslationTranslated}
	assert.True(t, ok.OK())
	assert.Equal(t, "नमस्ते", ok.TextOr("hello"))

	failed := Translation{Target: Hindi, Status: TranslationFailed, Err: errors.New("boom")}
	assert.False(t, failed.OK())
	assert.Equal(t, "hello", failed.TextOr("hello"))
	assert.Equal(t, "failed", failed.Status.String())

	tr := DisabledTranslator{}.Translate(context.Background(), "hello", Kannada)
	assert.Equal(t, TranslationUnavailable, tr.Status)
	assert.Equal(t, Kannada, tr.Target)
	assert.Equal(t, "unavailable", tr.Status.String())
}
