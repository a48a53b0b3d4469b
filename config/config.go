// Package config loads movies configuration from defaults, an optional YAML
// file and MOVIES_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "MOVIES_"

// PathEnvVar names the config file when no explicit path is given.
const PathEnvVar = EnvPrefix + "CONFIG"

// Config is the complete movies configuration.
type Config struct {
	DB     DBConfig     `koanf:"db"`
	HTTP   HTTPConfig   `koanf:"http"`
	Client ClientConfig `koanf:"client"`
	Log    LogConfig    `koanf:"log"`
}

// DBConfig configures the server-side SQLite catalog.
type DBConfig struct {
	Path string `koanf:"path"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr string `koanf:"addr"`
	// SearchRateLimit is /search requests per client IP per minute.
	SearchRateLimit int `koanf:"search_rate_limit"`
}

// ClientConfig configures client mode.
type ClientConfig struct {
	ServerURL    string        `koanf:"server_url"`
	SnapshotPath string        `koanf:"snapshot_path"`
	Timeout      time.Duration `koanf:"timeout"`
	// RateLimit is outbound requests per second. Zero means unlimited.
	RateLimit float64 `koanf:"rate_limit"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `koanf:"level"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		DB: DBConfig{
			Path: "movies.db",
		},
		HTTP: HTTPConfig{
			Addr:            ":8787",
			SearchRateLimit: 120,
		},
		Client: ClientConfig{
			ServerURL:    "http://localhost:8787",
			SnapshotPath: defaultSnapshotPath(),
			Timeout:      10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultSnapshotPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".movies", "snapshot.db")
	}
	return filepath.Join(dir, "movies", "snapshot.db")
}

// Load builds a Config from defaults, then the YAML file at path (or at
// $MOVIES_CONFIG when path is empty), then MOVIES_* environment variables.
// A named file that does not exist is an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = os.Getenv(PathEnvVar)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// envKey maps an environment variable to a config key by splitting the
// section off at the first underscore:
//
//	MOVIES_DB_PATH           -> db.path
//	MOVIES_CLIENT_SERVER_URL -> client.server_url
//
// Variables without a section, such as MOVIES_CONFIG, are dropped.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok || rest == "" {
		return ""
	}
	return section + "." + rest
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.DB.Path == "" {
		errs = append(errs, errors.New("db.path is required"))
	}
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}
	if c.HTTP.SearchRateLimit < 0 {
		errs = append(errs, fmt.Errorf("http.search_rate_limit must not be negative, got %d", c.HTTP.SearchRateLimit))
	}
	if c.Client.ServerURL == "" {
		errs = append(errs, errors.New("client.server_url is required"))
	}
	if c.Client.Timeout < 0 {
		errs = append(errs, fmt.Errorf("client.timeout must not be negative, got %s", c.Client.Timeout))
	}
	if c.Client.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("client.rate_limit must not be negative, got %g", c.Client.RateLimit))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel parses Level as a log/slog level name such as "debug" or "warn".
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
