// Package config loads Baxter's configuration and exposes it as the settings
// source read by templates and actions.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/baxter/pkg/adapters/process"
	"github.com/aretw0/baxter/pkg/persistence/middleware"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreFile   = "file"
)

// DefaultClassifierError is the reply when a message cannot be classified and
// classifier_error_str is unset.
const DefaultClassifierError = "Sorry, I did not understand that. Maybe your input was too long."

// Config is the typed view of baxter.yaml.
type Config struct {
	IntentsPath        string                           `mapstructure:"intents_path"`
	PluginsDir         string                           `mapstructure:"plugins_dir"`
	DispatchTimeout    time.Duration                    `mapstructure:"dispatch_timeout"`
	Store              string                           `mapstructure:"store"`
	Redis              RedisConfig                      `mapstructure:"redis"`
	File               FileConfig                       `mapstructure:"file"`
	Encryption         EncryptionConfig                 `mapstructure:"encryption"`
	HTTP               HTTPConfig                       `mapstructure:"http"`
	LogLevel           string                           `mapstructure:"log_level"`
	ClassifierErrorStr string                           `mapstructure:"classifier_error_str"`
	Commands           map[string]process.CommandConfig `mapstructure:"commands"`
}

// RedisConfig configures the Redis state store and session lock.
type RedisConfig struct {
	Addr   string        `mapstructure:"addr"`
	Prefix string        `mapstructure:"prefix"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// FileConfig configures the file state store.
type FileConfig struct {
	Dir string `mapstructure:"dir"`
}

// EncryptionConfig enables encryption of stored session state.
// Keys are base64-encoded 32-byte AES keys.
type EncryptionConfig struct {
	Key          string   `mapstructure:"key"`
	FallbackKeys []string `mapstructure:"fallback_keys"`
}

// HTTPConfig configures the HTTP and websocket server.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

var defaults = map[string]any{
	"intents_path":     "data/intents.yaml",
	"plugins_dir":      ".baxter/plugins",
	"dispatch_timeout": "0s",
	"store":            StoreMemory,
	"redis.addr":       "localhost:6379",
	"redis.prefix":     "baxter:",
	"redis.ttl":        "24h",
	"file.dir":         ".baxter/sessions",
	"encryption.key":   "",
	"http.addr":        ":8080",
	"log_level":        "info",
}

func applyDefaults(cfg *Config) {
	if cfg.ClassifierErrorStr == "" {
		cfg.ClassifierErrorStr = DefaultClassifierError
	}
	if cfg.Commands == nil {
		cfg.Commands = make(map[string]process.CommandConfig)
	}
	for name, c := range process.DefaultCommands("") {
		if _, ok := cfg.Commands[name]; !ok {
			cfg.Commands[name] = c
		}
	}
}

func validateConfig(cfg *Config) error {
	var errs []error
	if cfg.IntentsPath == "" {
		errs = append(errs, errors.New("intents_path is required"))
	}
	switch cfg.Store {
	case StoreMemory:
	case StoreRedis:
		if cfg.Redis.Addr == "" {
			errs = append(errs, errors.New("redis.addr is required for the redis store"))
		}
	case StoreFile:
		if cfg.File.Dir == "" {
			errs = append(errs, errors.New("file.dir is required for the file store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", cfg.Store))
	}
	if cfg.Encryption.Key == "" && len(cfg.Encryption.FallbackKeys) > 0 {
		errs = append(errs, errors.New("encryption.fallback_keys require encryption.key"))
	}
	for _, k := range append([]string{cfg.Encryption.Key}, cfg.Encryption.FallbackKeys...) {
		if k == "" {
			continue
		}
		if _, err := middleware.DecodeKey(k); err != nil {
			errs = append(errs, fmt.Errorf("encryption key: %w", err))
		}
	}
	if cfg.DispatchTimeout < 0 {
		errs = append(errs, errors.New("dispatch_timeout must not be negative"))
	}
	if cfg.Redis.TTL < 0 {
		errs = append(errs, errors.New("redis.ttl must not be negative"))
	}
	return errors.Join(errs...)
}
