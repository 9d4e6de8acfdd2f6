// Package config loads the ingres application configuration.
//
// Configuration lives in a YAML file. Zero fields are filled with
// defaults after decoding, so a file only needs the keys it changes.
// Secrets are never stored in the file: the API key is read from the
// environment variable named by ai.api_key_env, which may come from a
// .env file loaded with LoadEnv.
//
//	cfg, path, err := config.LoadDefault()
//	aiCfg := cfg.AIConfig()
package config
