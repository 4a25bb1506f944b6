// Package config handles configuration loading and validation for the
// external-gas mining engine's demo harness.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the demo harness that wraps the
// mining engine: the engine itself takes its parameters per-call through
// mining.Inputs and is not configured here.
type Config struct {
	Engine    EngineConfig    `mapstructure:"engine"`
	API       APIConfig       `mapstructure:"api"`
	Profiling ProfilingConfig `mapstructure:"profiling"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

// EngineConfig defines the default mining parameters the demo CLI falls
// back to when a caller does not override them on the command line.
type EngineConfig struct {
	DefaultDifficulty uint32        `mapstructure:"default_difficulty"`
	DefaultMaxThreads uint32        `mapstructure:"default_max_threads"`
	StartupTimeout    time.Duration `mapstructure:"startup_timeout"`
}

// APIConfig defines the demo REST API server's settings.
type APIConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Bind        string        `mapstructure:"bind"`
	StatsCache  time.Duration `mapstructure:"stats_cache"`
	CORSOrigins []string      `mapstructure:"cors_origins"`
}

// ProfilingConfig defines the pprof debug server's settings.
type ProfilingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Bind    string `mapstructure:"bind"`
}

// TelemetryConfig defines the APM reporting settings.
type TelemetryConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	AppName    string `mapstructure:"app_name"`
	LicenseKey string `mapstructure:"license_key"`
}

// LogConfig defines logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Load reads configuration from file and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/skalegasminer")
	}

	v.SetEnvPrefix("SKALEGASMINER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.default_difficulty", 1000000)
	v.SetDefault("engine.default_max_threads", 0)
	v.SetDefault("engine.startup_timeout", "10s")

	v.SetDefault("api.enabled", true)
	v.SetDefault("api.bind", "0.0.0.0:8080")
	v.SetDefault("api.stats_cache", "2s")
	v.SetDefault("api.cors_origins", []string{"*"})

	v.SetDefault("profiling.enabled", false)
	v.SetDefault("profiling.bind", "127.0.0.1:6060")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.app_name", "skalegasminer")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Validate checks configuration for errors.
func (c *Config) Validate() error {
	if c.Engine.DefaultDifficulty == 0 {
		return fmt.Errorf("engine.default_difficulty must be > 0")
	}

	if c.API.Enabled && c.API.Bind == "" {
		return fmt.Errorf("api.bind is required when api is enabled")
	}

	if c.Profiling.Enabled && c.Profiling.Bind == "" {
		return fmt.Errorf("profiling.bind is required when profiling is enabled")
	}

	if c.Telemetry.Enabled && c.Telemetry.AppName == "" {
		return fmt.Errorf("telemetry.app_name is required when telemetry is enabled")
	}

	return nil
}
