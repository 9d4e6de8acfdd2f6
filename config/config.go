package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/ingres/ai"
	"github.com/poiesic/ingres/index"
	"github.com/poiesic/ingres/indexer"
	"github.com/poiesic/ingres/resolve"
	"gopkg.in/yaml.v3"
)

// DefaultAPIKeyEnv names the environment variable holding the API key.
const DefaultAPIKeyEnv = "INGRES_API_KEY"

// ErrInvalidConfig indicates a configuration value out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// DataConfig locates the corpus, the index artifacts and the feedback store.
type DataConfig struct {
	Corpus     string `yaml:"corpus"`
	Index      string `yaml:"index"`
	Metadata   string `yaml:"metadata"`
	FeedbackDB string `yaml:"feedback_db"`
}

// AIConfig configures the embedding and translation services.
type AIConfig struct {
	EmbeddingHost      string `yaml:"embedding_host"`
	EmbeddingModel     string `yaml:"embedding_model"`
	TranslatorHost     string `yaml:"translator_host"`
	TranslatorModel    string `yaml:"translator_model"`
	DisableTranslation bool   `yaml:"disable_translation"`
	APIKeyEnv          string `yaml:"api_key_env"`
}

// IndexerConfig tunes the index build.
type IndexerConfig struct {
	BatchSize      int           `yaml:"batch_size"`
	ReportInterval int           `yaml:"report_interval"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
	PoolSize       int           `yaml:"pool_size"`
}

// ResolverConfig tunes query resolution.
type ResolverConfig struct {
	TopK int `yaml:"top_k"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Data     DataConfig     `yaml:"data"`
	AI       AIConfig       `yaml:"ai"`
	Indexer  IndexerConfig  `yaml:"indexer"`
	Resolver ResolverConfig `yaml:"resolver"`
}

// Load reads a config from path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefault tries ./ingres.yaml first, then ~/.config/ingres/config.yaml.
// If neither exists, it writes defaults to ~/.config/ingres/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "ingres.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadEnv loads variables from the given .env files, or ./.env when none
// are named. Missing files are not an error; variables already set in the
// environment win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ingres", "config.yaml"), nil
}

// Default returns the configuration used when no file is present.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Data.Corpus == "" {
		cfg.Data.Corpus = filepath.Join("data", "groundwater.csv")
	}
	if cfg.Data.Index == "" {
		cfg.Data.Index = filepath.Join("artifacts", "ingres.index")
	}
	if cfg.Data.Metadata == "" {
		cfg.Data.Metadata = filepath.Join("artifacts", "ingres_meta.json")
	}
	if cfg.Data.FeedbackDB == "" {
		cfg.Data.FeedbackDB = filepath.Join("data", "feedback")
	}

	aiDefaults := ai.DefaultConfig()
	if cfg.AI.EmbeddingHost == "" {
		cfg.AI.EmbeddingHost = aiDefaults.EmbeddingHost
	}
	if cfg.AI.EmbeddingModel == "" {
		cfg.AI.EmbeddingModel = aiDefaults.EmbeddingModel
	}
	if cfg.AI.TranslatorHost == "" {
		cfg.AI.TranslatorHost = cfg.AI.EmbeddingHost
	}
	if cfg.AI.TranslatorModel == "" {
		cfg.AI.TranslatorModel = aiDefaults.TranslatorModel
	}
	if cfg.AI.APIKeyEnv == "" {
		cfg.AI.APIKeyEnv = DefaultAPIKeyEnv
	}

	idx := indexer.DefaultConfig()
	if cfg.Indexer.BatchSize == 0 {
		cfg.Indexer.BatchSize = idx.BatchSize
	}
	if cfg.Indexer.ReportInterval == 0 {
		cfg.Indexer.ReportInterval = idx.ReportInterval
	}
	if cfg.Indexer.MaxRetries == 0 {
		cfg.Indexer.MaxRetries = idx.MaxRetries
	}
	if cfg.Indexer.RetryDelay == 0 {
		cfg.Indexer.RetryDelay = idx.RetryDelay
	}

	if cfg.Resolver.TopK == 0 {
		cfg.Resolver.TopK = resolve.DefaultTopK
	}
}

// Validate rejects negative or out-of-range values left after defaults.
func (c *AppConfig) Validate() error {
	switch {
	case c.Indexer.BatchSize < 0:
		return fmt.Errorf("%w: indexer.batch_size %d", ErrInvalidConfig, c.Indexer.BatchSize)
	case c.Indexer.MaxRetries < 0:
		return fmt.Errorf("%w: indexer.max_retries %d", ErrInvalidConfig, c.Indexer.MaxRetries)
	case c.Indexer.RetryDelay < 0:
		return fmt.Errorf("%w: indexer.retry_delay %s", ErrInvalidConfig, c.Indexer.RetryDelay)
	case c.Indexer.PoolSize < 0:
		return fmt.Errorf("%w: indexer.pool_size %d", ErrInvalidConfig, c.Indexer.PoolSize)
	case c.Resolver.TopK < 0:
		return fmt.Errorf("%w: resolver.top_k %d", ErrInvalidConfig, c.Resolver.TopK)
	}
	return nil
}

// AIConfig builds the service configuration, reading the API key from
// the environment variable named by APIKeyEnv.
func (c *AppConfig) AIConfig() *ai.Config {
	opts := []ai.ConfigOption{
		ai.WithEmbeddingHost(c.AI.EmbeddingHost),
		ai.WithEmbeddingModel(c.AI.EmbeddingModel),
		ai.WithTranslatorHost(c.AI.TranslatorHost),
		ai.WithTranslatorModel(c.AI.TranslatorModel),
		ai.WithAPIKey(os.Getenv(c.AI.APIKeyEnv)),
	}
	if c.AI.DisableTranslation {
		opts = append(opts, ai.WithTranslatorModel(""))
	}
	return ai.NewConfig(opts...)
}

// IndexerConfig converts the build settings.
func (c *AppConfig) IndexerConfig() *indexer.Config {
	return &indexer.Config{
		BatchSize:      c.Indexer.BatchSize,
		ReportInterval: c.Indexer.ReportInterval,
		MaxRetries:     c.Indexer.MaxRetries,
		RetryDelay:     c.Indexer.RetryDelay,
	}
}

// Paths returns the index artifact locations.
func (c *AppConfig) Paths() index.Paths {
	return index.Paths{Index: c.Data.Index, Metadata: c.Data.Metadata}
}
