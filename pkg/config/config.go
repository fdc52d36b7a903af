// Package config loads the crysldoc configuration file. Configuration is
// explicit: every knob lives in one TOML document and nothing is read from
// process-global state.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/roshansamantaray/CogniCrypt-DOC-LLM/pkg/errors"
)

// Cache backend names accepted in the [cache] section.
const (
	CacheBackendFile = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone = "none"
)

// Store backend names accepted in the [store] section.
const (
	StoreBackendMemory = "memory"
	StoreBackendMongo  = "mongo"
)

// Config is the full crysldoc configuration.
type Config struct {
	Resolver Resolver `toml:"resolver"`
	Cache    CacheCfg `toml:"cache"`
	Store    StoreCfg `toml:"store"`
	Server   Server   `toml:"server"`
}

// Resolver configures the resolution pipeline.
type Resolver struct {
	// DisableRecovery turns off the sanitizer's provider-recovery
	// heuristic.
	DisableRecovery bool `toml:"disable_recovery"`
}

// CacheCfg configures the result cache.
type CacheCfg struct {
	Backend string `toml:"backend"` // file, redis, none
	Dir     string `toml:"dir"`     // file backend; defaults to the XDG cache dir

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// StoreCfg configures universe persistence.
type StoreCfg struct {
	Backend    string `toml:"backend"` // memory, mongo
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"` // listen address, defaults to :8080
}

// Default returns the configuration used when no file is present: file cache,
// in-memory store, recovery enabled.
func Default() Config {
	return Config{
		Cache:  CacheCfg{Backend: CacheBackendFile},
		Store:  StoreCfg{Backend: StoreBackendMemory},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads the TOML configuration at path. A missing file yields the
// defaults; a present but malformed file is an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that backend names are known.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreBackendMemory, StoreBackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// DefaultPath returns the conventional config location,
// $XDG_CONFIG_HOME/crysldoc/config.toml with the usual home fallback.
func DefaultPath() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "crysldoc", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "crysldoc.toml"
	}
	return filepath.Join(home, ".config", "crysldoc", "config.toml")
}
