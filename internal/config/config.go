// Package config loads server settings from a YAML file with VILLAINOUS_*
// environment overrides.
package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/villainous-api/internal/errors"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "VILLAINOUS_"

// Storage backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Effect interpreters
const (
	EffectsLua  = "lua"
	EffectsNone = "none"
)

// Config is the full server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Game    GameConfig    `yaml:"game"`
}

// ServerConfig controls the gRPC listener
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig controls the slog handler
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
	// Format is text or json
	Format string `yaml:"format"`
}

// StorageConfig picks and tunes the game repository
type StorageConfig struct {
	Backend string       `yaml:"backend"`
	Redis   RedisConfig  `yaml:"redis"`
	SQLite  SQLiteConfig `yaml:"sqlite"`
}

// RedisConfig points at a single node or a cluster
type RedisConfig struct {
	Endpoint         string        `yaml:"endpoint"`
	ClusterEndpoints []string      `yaml:"cluster_endpoints"`
	PoolSize         int           `yaml:"pool_size"`
	UseTLS           bool          `yaml:"use_tls"`
	TTL              time.Duration `yaml:"ttl"`
}

// SQLiteConfig locates the database file
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// GameConfig tunes the rules engine
type GameConfig struct {
	HandSize int `yaml:"hand_size"`
	// DataDir replaces the embedded boards and cards when set
	DataDir string `yaml:"data_dir"`
	Effects string `yaml:"effects"`
}

// Default returns a config that runs everything in memory
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            50051,
			ShutdownTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Storage: StorageConfig{
			Backend: BackendMemory,
			Redis: RedisConfig{
				Endpoint: "localhost:6379",
				PoolSize: 10,
				TTL:      24 * time.Hour,
			},
			SQLite: SQLiteConfig{Path: "villainous.db"},
		},
		Game: GameConfig{
			HandSize: 4,
			Effects:  EffectsLua,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse config")
	}
	return cfg, nil
}

// LoadWithEnv loads path and applies the process environment
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// ApplyEnv overrides fields from VILLAINOUS_* variables found by lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	vb := errors.NewValidationBuilder()

	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	integer := func(name string, dst *int) {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			vb.InvalidField(EnvPrefix+name, "not an integer")
			return
		}
		*dst = n
	}
	duration := func(name string, dst *time.Duration) {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			vb.InvalidField(EnvPrefix+name, "not a duration")
			return
		}
		*dst = d
	}

	integer("PORT", &c.Server.Port)
	duration("SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("STORAGE_BACKEND", &c.Storage.Backend)
	str("REDIS_ENDPOINT", &c.Storage.Redis.Endpoint)
	duration("REDIS_TTL", &c.Storage.Redis.TTL)
	str("SQLITE_PATH", &c.Storage.SQLite.Path)
	integer("HAND_SIZE", &c.Game.HandSize)
	str("DATA_DIR", &c.Game.DataDir)
	str("EFFECTS", &c.Game.Effects)

	if v, ok := lookup(EnvPrefix + "REDIS_CLUSTER_ENDPOINTS"); ok && v != "" {
		c.Storage.Redis.ClusterEndpoints = strings.Split(v, ",")
	}

	return vb.Build()
}

// Validate checks every section
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("server.port", c.Server.Port, 1, 65535, vb)
	if c.Server.ShutdownTimeout <= 0 {
		vb.Field("server.shutdown_timeout", "must be positive")
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		vb.InvalidField("log.level", c.Log.Level)
	}
	errors.ValidateEnum("log.format", c.Log.Format, []string{"text", "json"}, vb)

	errors.ValidateEnum("storage.backend", c.Storage.Backend, []string{BackendMemory, BackendRedis, BackendSQLite}, vb)
	switch c.Storage.Backend {
	case BackendRedis:
		if c.Storage.Redis.Endpoint == "" && len(c.Storage.Redis.ClusterEndpoints) == 0 {
			vb.RequiredField("storage.redis.endpoint")
		}
		if c.Storage.Redis.TTL < 0 {
			vb.Field("storage.redis.ttl", "must not be negative")
		}
	case BackendSQLite:
		errors.ValidateRequired("storage.sqlite.path", c.Storage.SQLite.Path, vb)
	}

	errors.ValidateMin("game.hand_size", c.Game.HandSize, 1, vb)
	errors.ValidateEnum("game.effects", c.Game.Effects, []string{EffectsLua, EffectsNone}, vb)

	return vb.Build()
}

// Level returns the configured slog level, info when unparseable
func (c *Config) Level() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger builds the slog logger described by the log section
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}
