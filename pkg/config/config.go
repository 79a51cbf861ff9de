// Package config loads netvalue's TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/netvalue/config.toml (falling back to
// ~/.config/netvalue/config.toml). Every key is optional:
//
//	log_level = "info"          # debug|info|warn|error
//
//	[cache]
//	backend = "file"            # file|redis|none
//	dir = ""                    # default $XDG_CACHE_HOME/netvalue
//	ttl = "24h"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	max_nodes = 100000
//	max_body_bytes = 8388608
//	request_timeout = "30s"
//
//	[analysis]
//	depth_limit = 0             # 0 = node count
//	workers = 4                 # goroutines used by rank
//	exact_max_nodes = 20
//
// Unknown keys and invalid values are reported as INVALID_CONFIG.
package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/netvalue/pkg/analysis"
	"github.com/matzehuels/netvalue/pkg/cache"
	errs "github.com/matzehuels/netvalue/pkg/errors"
	"github.com/matzehuels/netvalue/pkg/server"
)

// AppName names the config and cache directories.
const AppName = "netvalue"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the parsed configuration file.
type Config struct {
	LogLevel string         `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
	Analysis AnalysisConfig `toml:"analysis"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend  string        `toml:"backend" validate:"omitempty,oneof=file redis none"`
	Dir      string        `toml:"dir"`
	TTL      time.Duration `toml:"ttl" validate:"min=0"`
	RedisURL string        `toml:"redis_url" validate:"required_if=Backend redis"`
}

// ServerConfig mirrors server.Config.
type ServerConfig struct {
	Addr           string        `toml:"addr"`
	MaxNodes       int           `toml:"max_nodes" validate:"min=0"`
	MaxBodyBytes   int64         `toml:"max_body_bytes" validate:"min=0"`
	RequestTimeout time.Duration `toml:"request_timeout" validate:"min=0"`
}

// AnalysisConfig provides defaults for analysis.Options.
type AnalysisConfig struct {
	DepthLimit    int `toml:"depth_limit" validate:"min=0"`
	Workers       int `toml:"workers" validate:"min=0,max=256"`
	ExactMaxNodes int `toml:"exact_max_nodes" validate:"min=0,max=24"` // 2^n table; 24 nodes ≈ 128 MiB
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel: "info",
		Cache:    CacheConfig{Backend: BackendFile, TTL: cache.ResultTTL},
		Server:   ServerConfig{Addr: server.DefaultAddr},
		Analysis: AnalysisConfig{
			Workers:       analysis.DefaultWorkers,
			ExactMaxNodes: analysis.DefaultExactMaxNodes,
		},
	}
}

// DefaultPath returns the XDG config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// DefaultCacheDir returns the XDG cache directory.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads the config file at path over the defaults. An empty path means
// DefaultPath, where a missing file is not an error; an explicit path that
// does not exist is FILE_NOT_FOUND.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
			}
			return Default(), nil
		}
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return errs.ValidateStruct(c)
}

// Level returns the configured log level, defaulting to info.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// AnalysisOptions returns analysis options seeded with the configured defaults.
func (c Config) AnalysisOptions() analysis.Options {
	return analysis.Options{
		DepthLimit:    c.Analysis.DepthLimit,
		Workers:       c.Analysis.Workers,
		ExactMaxNodes: c.Analysis.ExactMaxNodes,
	}
}

// ServerConfig converts the [server] table.
func (c Config) ServerConfig() server.Config {
	return server.Config{
		Addr:           c.Server.Addr,
		MaxNodes:       c.Server.MaxNodes,
		MaxBodyBytes:   c.Server.MaxBodyBytes,
		RequestTimeout: c.Server.RequestTimeout,
	}
}

// OpenCache opens the configured cache backend.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		dir, err := c.CacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
}

// CacheDir returns the file cache directory.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}
