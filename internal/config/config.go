// Package config loads mudra settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. MUDRA_SERVER_ADDR.
const EnvPrefix = "MUDRA"

// Config is the root configuration.
type Config struct {
	Logger      LoggerConfig      `mapstructure:"logger" yaml:"logger"`
	Server      ServerConfig      `mapstructure:"server" yaml:"server"`
	Store       StoreConfig       `mapstructure:"store" yaml:"store"`
	Pipeline    PipelineConfig    `mapstructure:"pipeline" yaml:"pipeline"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics" yaml:"diagnostics"`
	Gestures    GesturesConfig    `mapstructure:"gestures" yaml:"gestures"`
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr      string `mapstructure:"addr" yaml:"addr"`
	StaticDir string `mapstructure:"static_dir" yaml:"static_dir"`
}

// StoreConfig configures the profile database.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// PipelineConfig configures the per-surface event queue.
type PipelineConfig struct {
	QueueSize int `mapstructure:"queue_size" yaml:"queue_size"`
}

// DiagnosticsConfig toggles validation tracing.
type DiagnosticsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// GesturesConfig holds the thresholds of the built-in gestures.
type GesturesConfig struct {
	Tap TapConfig `mapstructure:"tap" yaml:"tap"`
}

// TapConfig overrides the tap thresholds. Durations are in milliseconds,
// distances in surface units.
type TapConfig struct {
	Enabled         bool    `mapstructure:"enabled" yaml:"enabled"`
	MaxDuration     float64 `mapstructure:"max_duration" yaml:"max_duration"`
	MaxDistance     float64 `mapstructure:"max_distance" yaml:"max_distance"`
	MaxLiveDistance float64 `mapstructure:"max_live_distance" yaml:"max_live_distance"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "mudra")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	// -- Server --
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.static_dir", "")

	// -- Store --
	v.SetDefault("store.path", "mudra.db")

	// -- Pipeline --
	v.SetDefault("pipeline.queue_size", 256)

	// -- Diagnostics --
	v.SetDefault("diagnostics.enabled", false)

	// -- Gestures --
	v.SetDefault("gestures.tap.enabled", true)
	v.SetDefault("gestures.tap.max_duration", 200)
	v.SetDefault("gestures.tap.max_distance", 30)
	v.SetDefault("gestures.tap.max_live_distance", 30)
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path, if given, or mudra.yaml from the working directory and
// the user config dir, then decodes and validates the result.
func Load(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mudra")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/mudra")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return NewConfigFromViper(v)
}

// NewDefaultConfig returns the configuration made of defaults only.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper decodes v and validates the result.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Pipeline.QueueSize <= 0 {
		return fmt.Errorf("pipeline.queue_size must be a positive integer")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}
	if err := c.Gestures.Tap.Validate(); err != nil {
		return fmt.Errorf("gestures.tap: %w", err)
	}
	return nil
}

// Validate checks the tap thresholds.
func (t TapConfig) Validate() error {
	if t.MaxDuration < 0 || t.MaxDistance < 0 || t.MaxLiveDistance < 0 {
		return fmt.Errorf("thresholds must not be negative")
	}
	return nil
}
