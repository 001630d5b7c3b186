// Package config loads server and client settings from an optional config
// file, CODEX_* environment variables and bound command flags.
package config

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/KirkDiggler/rpg-codex/internal/errors"
)

// EnvPrefix is prepended to every environment variable, so storage.path is
// read from CODEX_STORAGE_PATH
const EnvPrefix = "CODEX"

// Config is the complete runtime configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Remote  RemoteConfig  `mapstructure:"remote"`
	Codex   CodexConfig   `mapstructure:"codex"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds the listener ports. A metrics port of 0 disables the
// metrics endpoint.
type ServerConfig struct {
	Port        int `mapstructure:"port" validate:"min=1,max=65535"`
	MetricsPort int `mapstructure:"metrics_port" validate:"min=0,max=65535"`
}

// StorageConfig configures the local profile store
type StorageConfig struct {
	Path      string `mapstructure:"path" validate:"required"`
	CacheSize int    `mapstructure:"cache_size" validate:"min=1"`
}

// RedisConfig configures the remote store connection. An empty endpoint
// runs the server without a remote copy.
type RedisConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	PoolSize   int    `mapstructure:"pool_size" validate:"min=0"`
	MaxRetries int    `mapstructure:"max_retries" validate:"min=-1"`
}

// RemoteConfig configures remote document access
type RemoteConfig struct {
	Collection string        `mapstructure:"collection" validate:"required"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// CodexConfig holds profile behavior switches
type CodexConfig struct {
	EnsureMainHandWeapon bool `mapstructure:"ensure_main_hand_weapon"`
}

// LogConfig configures the process logger
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// RemoteEnabled reports whether a remote store is configured
func (c *Config) RemoteEnabled() bool {
	return strings.TrimSpace(c.Redis.Endpoint) != ""
}

// SetDefaults registers the default for every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 50051)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("storage.path", "codex.db")
	v.SetDefault("storage.cache_size", 128)
	v.SetDefault("redis.endpoint", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("remote.collection", "hero_inventories")
	v.SetDefault("remote.timeout", 5*time.Second)
	v.SetDefault("codex.ensure_main_hand_weapon", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration into a Config. An empty path skips the config
// file; flags bound to v before calling Load take precedence over the
// environment.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read config file")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its validate tag
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("mapstructure")
	})

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "failed to validate config")
	}

	vb := errors.NewValidationBuilder()
	for _, fe := range fieldErrs {
		vb.Fieldf(strings.TrimPrefix(fe.Namespace(), "Config."), "failed %s=%s", fe.Tag(), fe.Param())
	}
	return vb.Build()
}
