package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DefaultFile is written when settings are changed without a config file.
const DefaultFile = "baxter.yaml"

// Options controls where configuration is read from.
type Options struct {
	// File is an explicit config file. Empty searches ./baxter.yaml and
	// $HOME/.baxter/baxter.yaml.
	File string
	// EnvFiles are dotenv files loaded before reading. Missing files are
	// ignored. Nil means ".env".
	EnvFiles []string
}

// Load reads the configuration. Environment variables prefixed with BAXTER_
// override file values (redis.addr -> BAXTER_REDIS_ADDR).
func Load(opts Options) (*Config, *Source, error) {
	loadEnvFiles(opts.EnvFiles)

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	path := opts.File
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("baxter")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.baxter")
	}

	v.SetEnvPrefix("BAXTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("error reading config: %w", err)
		}
	}
	if used := v.ConfigFileUsed(); used != "" {
		path = used
	}
	if path == "" {
		path = DefaultFile
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, nil, err
	}
	return cfg, newSource(v, path), nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFiles(files []string) {
	if files == nil {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		_ = godotenv.Load(f)
	}
}
