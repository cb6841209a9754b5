// Package config loads trieplace's runtime configuration, modeled on
// dphaener-conduit's internal/cli/config/config.go: defaults set in code,
// overridable by a YAML file and TRIEPLACE_-prefixed environment
// variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is trieplace's full runtime configuration.
type Config struct {
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	Store     StoreConfig     `mapstructure:"store"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Server    ServerConfig    `mapstructure:"server"`
}

// TokenizerConfig selects which token.Tokenizer a command or server
// instance uses.
type TokenizerConfig struct {
	// Kind is "identity" or "space".
	Kind string `mapstructure:"kind"`
}

// StoreConfig configures the SQLite-backed dictionary store.
type StoreConfig struct {
	// DSN is empty for an in-memory-only dictionary (no persistence).
	DSN string `mapstructure:"dsn"`
}

// CacheConfig sizes the regex/trie build caches.
type CacheConfig struct {
	Size int `mapstructure:"size"`
}

// ServerConfig configures the HTTP/WebSocket server.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// JWTSigningKey, when non-empty, enables bearer-token auth on every
	// dictionary route, reads included.
	JWTSigningKey string `mapstructure:"jwt_signing_key"`
}

// Load reads trieplace.yaml from the working directory (if present) and
// TRIEPLACE_-prefixed environment variables, layered over defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("tokenizer.kind", "space")
	v.SetDefault("store.dsn", "")
	v.SetDefault("cache.size", 256)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.jwt_signing_key", "")

	v.SetConfigName("trieplace")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TRIEPLACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Tokenizer.Kind {
	case "identity", "space":
	default:
		return fmt.Errorf("tokenizer.kind must be \"identity\" or \"space\", got: %s", cfg.Tokenizer.Kind)
	}
	if cfg.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be positive, got: %d", cfg.Cache.Size)
	}
	return nil
}
