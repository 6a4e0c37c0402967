// Package config loads application configuration for the command-line tool
// and the HTTP server.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/tsawler/stylecheck/guide"
)

// Defaults.
const (
	DefaultEnv            = "production"
	DefaultLogLevel       = "info"
	DefaultPort           = 3000
	DefaultMaxUploadBytes = 10 << 20
	DefaultFormat         = "text"

	// DefaultConfigFile is read from the working directory when no file is
	// given explicitly.
	DefaultConfigFile = "stylecheck.yaml"

	envPrefix = "STYLECHECK_"
)

// Config is the application configuration.
type Config struct {
	Env      string `koanf:"env"`
	LogLevel string `koanf:"log_level"`
	Port     int    `koanf:"port"`
	// Guide is the path of a style guide YAML file; empty means the
	// built-in guide.
	Guide          string `koanf:"guide"`
	MaxUploadBytes int64  `koanf:"max_upload_bytes"`
	Format         string `koanf:"format"`
	// FailOn is the lowest severity that makes check exit non-zero; empty
	// or "none" never fails.
	FailOn string `koanf:"fail_on"`
}

// Load reads configuration. Precedence, highest first: flags that were set
// explicitly, STYLECHECK_ environment variables (after loading .env), the
// config file, defaults. A missing default config file is not an error; a
// missing explicit one is.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"env":              DefaultEnv,
		"log_level":        DefaultLogLevel,
		"port":             DefaultPort,
		"guide":            "",
		"max_upload_bytes": DefaultMaxUploadBytes,
		"format":           DefaultFormat,
		"fail_on":          "",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			cfgFile = DefaultConfigFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment: STYLECHECK_LOG_LEVEL -> log_level
	_ = godotenv.Load()
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were set explicitly: --log-level -> log_level
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("max_upload_bytes must be positive, got %d", cfg.MaxUploadBytes)
	}
	return &cfg, nil
}

// StyleGuide returns the configured style guide: the file named by Guide,
// or the built-in guide.
func (c *Config) StyleGuide() (*guide.StyleGuide, error) {
	if c.Guide == "" {
		return guide.Default(), nil
	}
	return guide.Load(c.Guide)
}

// IsDevelopment reports whether the development environment is selected.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
