// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Gatehouse Contributors

// Package config loads the gatehouse configuration: defaults, overridden by
// an optional YAML file, overridden by command-line flags.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Config is the full gatehouse configuration.
type Config struct {
	API      APIConfig      `koanf:"api" json:"api"`
	Metrics  MetricsConfig  `koanf:"metrics" json:"metrics"`
	Database DatabaseConfig `koanf:"database" json:"database"`
	Auth     AuthConfig     `koanf:"auth" json:"auth"`
	Log      LogConfig      `koanf:"log" json:"log"`
}

// APIConfig configures the public HTTP API server.
type APIConfig struct {
	Addr string `koanf:"addr" json:"addr" jsonschema:"description=Public API listen address"`
}

// MetricsConfig configures the observability server.
type MetricsConfig struct {
	Addr string `koanf:"addr" json:"addr" jsonschema:"description=Metrics/health listen address (empty disables)"`
}

// DatabaseConfig configures the account store.
type DatabaseConfig struct {
	URL string `koanf:"url" json:"url" jsonschema:"description=PostgreSQL connection URL"`
}

// AuthConfig configures the authentication core.
type AuthConfig struct {
	SweepInterval time.Duration `koanf:"sweep-interval" json:"sweep-interval" jsonschema:"type=string,description=How often expired sessions are cleared"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Format string `koanf:"format" json:"format" jsonschema:"enum=json,enum=text,description=Log output format"`
	Level  string `koanf:"level" json:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,description=Minimum log level"`
}

// SlogLevel maps the configured level name to a slog.Level. Unknown names
// (rejected by Validate anyway) fall back to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API:      APIConfig{Addr: ":8080"},
		Metrics:  MetricsConfig{Addr: "127.0.0.1:9100"},
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Auth:     AuthConfig{SweepInterval: 10 * time.Minute},
		Log:      LogConfig{Format: "json", Level: "info"},
	}
}

// Load builds the configuration from defaults, then path (when non-empty),
// then flags (when non-nil). Flag names map to config keys with the first
// dash replaced by a dot: --api-addr sets api.addr, --auth-sweep-interval
// sets auth.sweep-interval.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := Default()

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code("CONFIG_FILE_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			// Flags left at their zero default must not mask file values
			// or the built-in defaults.
			if !f.Changed {
				return "", nil
			}
			return strings.Replace(f.Name, "-", ".", 1), posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return Config{}, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	// Unmarshal over the defaults so absent keys keep their values.
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_PARSE_FAILED").Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c Config) Validate() error {
	if c.API.Addr == "" {
		return oops.Code("CONFIG_INVALID").Errorf("api.addr cannot be empty")
	}
	if c.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database.url is required (or set DATABASE_URL)")
	}
	if c.Auth.SweepInterval <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("auth.sweep-interval must be positive")
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return oops.Code("CONFIG_INVALID").
			With("format", c.Log.Format).
			Errorf("log.format must be json or text")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return oops.Code("CONFIG_INVALID").
			With("level", c.Log.Level).
			Errorf("log.level must be debug, info, warn, or error")
	}
	return nil
}
