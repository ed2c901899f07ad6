// Package config handles configuration loading from TOML files and
// environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/yanqirenshi/padgen/pkg/errors"
)

// Cache backend names accepted in configuration.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// AddrOrDefault returns the configured listen address or ":8080" if unset.
func (s ServerConfig) AddrOrDefault() string {
	if s.Addr == "" {
		return ":8080"
	}
	return s.Addr
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	// Backend selects the cache implementation: none, memory, file, redis.
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Defaults to the user cache dir.
	Dir string `toml:"dir"`

	// RedisAddr is the redis backend's address (host:port).
	RedisAddr string `toml:"redis_addr"`

	// TTLHours bounds how long results are kept. Defaults to 24.
	TTLHours int `toml:"ttl_hours"`
}

// BackendOrDefault returns the configured backend, defaulting to the file
// backend for CLI-friendly persistence.
func (c CacheConfig) BackendOrDefault() string {
	if c.Backend == "" {
		return BackendFile
	}
	return c.Backend
}

// TTL returns the configured TTL or 24 hours if unset.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.TTLHours) * time.Hour
}

// StoreConfig holds diagram store settings.
type StoreConfig struct {
	// MongoURI enables the MongoDB backend when set; otherwise the server
	// keeps saved diagrams in memory.
	MongoURI string `toml:"mongo_uri"`
}

// Load reads configuration from a TOML file and applies environment
// variable overrides. A missing file yields the defaults; a malformed file
// or an unknown cache backend is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
		}
	}

	applyEnv(cfg)

	switch cfg.Cache.BackendOrDefault() {
	case BackendNone, BackendMemory, BackendFile, BackendRedis:
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", cfg.Cache.Backend)
	}

	return cfg, nil
}

// DefaultPath returns the conventional config file location
// (~/.config/padgen/config.toml), or empty if the home directory is
// unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "padgen", "config.toml")
}

// applyEnv overrides file values with PADGEN_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PADGEN_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("PADGEN_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("PADGEN_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("PADGEN_REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("PADGEN_MONGO_URI"); v != "" {
		cfg.Store.MongoURI = v
	}
}
