// Package config loads the TOML configuration file and applies environment
// overrides.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/reposcout/reposcout/pkg/cache"
	"github.com/reposcout/reposcout/pkg/errors"
)

// Config is the full runtime configuration. Zero values select the
// documented defaults.
type Config struct {
	// RegistryPath locates the template registry JSON file.
	RegistryPath string `toml:"registry_path"`

	// CacheDir is the root for the on-disk artifact cache and HTTP cache.
	CacheDir string `toml:"cache_dir"`

	Search  SearchConfig  `toml:"search"`
	LLM     LLMConfig     `toml:"llm"`
	Cache   CacheConfig   `toml:"cache"`
	History HistoryConfig `toml:"history"`
	Server  ServerConfig  `toml:"server"`
	Git     GitConfig     `toml:"git"`
}

// SearchConfig controls candidate discovery.
type SearchConfig struct {
	// Token authenticates search requests. Overridden by GITHUB_TOKEN.
	Token string `toml:"token"`

	// Language biases search queries. Empty selects the default bias.
	Language string `toml:"language"`
}

// LLMConfig controls the adjudication model endpoint. An empty APIKey
// disables adjudication.
type LLMConfig struct {
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the configured request timeout, or zero to select the
// client default.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheConfig selects the HTTP response cache backend.
type CacheConfig struct {
	// Backend is "file" (default), "redis", or "none".
	Backend string `toml:"backend"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	// TTLHours bounds cached response age. Zero selects the default TTL.
	TTLHours int `toml:"ttl_hours"`
}

// TTL returns the configured cache TTL. A zero or negative ttl_hours
// selects cache.DefaultTTL so search responses always expire.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLHours <= 0 {
		return cache.DefaultTTL
	}
	return time.Duration(c.TTLHours) * time.Hour
}

// HistoryConfig selects the run-history backend. An empty MongoURI keeps
// history in memory.
type HistoryConfig struct {
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig controls the HTTP API surface.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// GitConfig controls git subprocess execution.
type GitConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Timeout returns the configured git timeout, or zero to select the
// runner default.
func (c GitConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default returns the configuration used when no file is present.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".reposcout")
	return Config{
		RegistryPath: filepath.Join(base, "templates.json"),
		CacheDir:     filepath.Join(base, "cache"),
		Server:       ServerConfig{Addr: ":8080"},
	}
}

// Load reads the TOML file at path and applies environment overrides. An
// empty path or a missing file yields the defaults; a present but invalid
// file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if os.IsNotExist(err) {
				applyEnv(&cfg)
				return cfg, nil
			}
			return cfg, errors.Wrap(errors.ErrCodeConfigInvalid, err, "failed to parse config file %s", path)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv layers environment variables over the file values. Environment
// wins so deployments can keep credentials out of the config file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.Search.Token = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("GEMINI_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
}
