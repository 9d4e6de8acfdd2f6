package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/ingres/ai"
	"github.com/poiesic/ingres/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, filepath.Join("data", "groundwater.csv"), cfg.Data.Corpus)
	assert.Equal(t, ai.DefaultEmbeddingModel, cfg.AI.EmbeddingModel)
	assert.Equal(t, DefaultAPIKeyEnv, cfg.AI.APIKeyEnv)
	assert.Equal(t, 64, cfg.Indexer.BatchSize)
	assert.Equal(t, time.Second, cfg.Indexer.RetryDelay)
	assert.Equal(t, resolve.DefaultTopK, cfg.Resolver.TopK)
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ingres.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  corpus: /srv/gw.csv
ai:
  embedding_host: http://embed:8080/v1
  disable_translation: true
indexer:
  batch_size: 16
  retry_delay: 250ms
resolver:
  top_k: 3
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/gw.csv", cfg.Data.Corpus)
	assert.Equal(t, filepath.Join("artifacts", "ingres.index"), cfg.Data.Index)
	assert.Equal(t, "http://embed:8080/v1", cfg.AI.EmbeddingHost)
	assert.Equal(t, "http://embed:8080/v1", cfg.AI.TranslatorHost, "translator follows embedding host")
	assert.Equal(t, 16, cfg.Indexer.BatchSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Indexer.RetryDelay)
	assert.Equal(t, 3, cfg.Resolver.TopK)

	aiCfg := cfg.AIConfig()
	assert.False(t, aiCfg.TranslationEnabled())
	assert.NoError(t, aiCfg.Validate())

	ic := cfg.IndexerConfig()
	assert.Equal(t, 16, ic.BatchSize)
	assert.Equal(t, 3, ic.MaxRetries)

	paths := cfg.Paths()
	assert.Equal(t, cfg.Data.Metadata, paths.Metadata)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("data: [unclosed"), 0o644))
	_, err := Load(bad)
	assert.Error(t, err)

	negative := filepath.Join(dir, "negative.yaml")
	require.NoError(t, os.WriteFile(negative, []byte("resolver:\n  top_k: -1\n"), 0o644))
	_, err = Load(negative)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Data.Corpus = "elsewhere.csv"
	cfg.Indexer.PoolSize = 2

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadDefault_PrefersWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", filepath.Join(dir, "home"))

	// No file anywhere: defaults are written to the user path.
	cfg, path, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "home", ".config", "ingres", "config.yaml"), path)
	assert.Equal(t, Default(), cfg)
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile("ingres.yaml", []byte("resolver:\n  top_k: 9\n"), 0o644))
	cfg, path, err = LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, "ingres.yaml", path)
	assert.Equal(t, 9, cfg.Resolver.TopK)
}

func TestAIConfig_ReadsKeyFromEnvironment(t *testing.T) {
	cfg := Default()
	cfg.AI.APIKeyEnv = "INGRES_TEST_KEY"
	t.Setenv("INGRES_TEST_KEY", "sk-test")

	aiCfg := cfg.AIConfig()
	assert.Equal(t, "sk-test", aiCfg.APIKey)
	assert.True(t, aiCfg.TranslationEnabled())
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	// Missing .env is fine.
	require.NoError(t, LoadEnv())

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("INGRES_ENV_PROBE=from-file\n"), 0o644))
	os.Unsetenv("INGRES_ENV_PROBE")
	t.Cleanup(func() { os.Unsetenv("INGRES_ENV_PROBE") })
	require.NoError(t, LoadEnv())
	assert.Equal(t, "from-file", os.Getenv("INGRES_ENV_PROBE"))
}
