package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/settings-provider/internal/settings"
)

const (
	defaultPort              = "8080"
	defaultSettingsFile      = "settings.yaml"
	defaultSettingsEnvPrefix = "SETTINGS"
	defaultLogLevel          = "info"
	defaultRateLimitRPS      = 25.0
	defaultRateLimitBurst    = 50
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > Environment variables > YAML config > Defaults
type Config struct {
	Port                 string        `validate:"required"`
	SettingsFile         string        `validate:"required_if=SettingsSource file"`
	SettingsSource       string        `validate:"required,oneof=file viper"`
	SettingsEnvPrefix    string        `validate:"omitempty,printascii"`
	Connections          []string      `validate:"dive,required"`
	LogLevel             string        `validate:"required,oneof=debug info warn error"`
	ShutdownGracePeriod  time.Duration `validate:"gt=0"`
	ReadHeaderTimeout    time.Duration `validate:"gte=0"`
	WriteTimeout         time.Duration `validate:"gte=0"`
	IdleTimeout          time.Duration `validate:"gte=0"`
	EnableRequestLogging bool
	RateLimitRPS         float64 `validate:"gte=0"`
	RateLimitBurst       int     `validate:"gte=0"`
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	Settings             yamlSettings  `yaml:"settings"`
	LogLevel             string        `yaml:"log_level"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
}

// yamlSettings represents the settings source section in YAML.
type yamlSettings struct {
	File        string   `yaml:"file"`
	Source      string   `yaml:"source"`
	EnvPrefix   string   `yaml:"env_prefix"`
	Connections []string `yaml:"connections"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	SettingsFile   *string
	SettingsSource *string
	LogLevel       *string
	Connections    []string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > Environment variables > YAML config > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		SettingsFile:         defaultSettingsFile,
		SettingsSource:       settings.KindFile,
		SettingsEnvPrefix:    defaultSettingsEnvPrefix,
		LogLevel:             defaultLogLevel,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct. Durations
// that fail to parse are reported instead of being ignored.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}
	if yamlCfg.Settings.File != "" {
		cfg.SettingsFile = yamlCfg.Settings.File
	}
	if yamlCfg.Settings.Source != "" {
		cfg.SettingsSource = yamlCfg.Settings.Source
	}
	if yamlCfg.Settings.EnvPrefix != "" {
		cfg.SettingsEnvPrefix = yamlCfg.Settings.EnvPrefix
	}
	if len(yamlCfg.Settings.Connections) > 0 {
		cfg.Connections = yamlCfg.Settings.Connections
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	durations := []struct {
		name   string
		raw    string
		target *time.Duration
	}{
		{"shutdown_grace_period", yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod},
		{"read_header_timeout", yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{"write_timeout", yamlCfg.WriteTimeout, &cfg.WriteTimeout},
		{"idle_timeout", yamlCfg.IdleTimeout, &cfg.IdleTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		value, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.name, d.raw, err)
		}
		*d.target = value
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}
	if yamlCfg.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}
	if yamlCfg.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}

	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if file := strings.TrimSpace(os.Getenv("SETTINGS_FILE")); file != "" {
		cfg.SettingsFile = file
	}

	if source := strings.TrimSpace(os.Getenv("SETTINGS_SOURCE")); source != "" {
		cfg.SettingsSource = source
	}

	if prefix := strings.TrimSpace(os.Getenv("SETTINGS_ENV_PREFIX")); prefix != "" {
		cfg.SettingsEnvPrefix = prefix
	}

	if raw := strings.TrimSpace(os.Getenv("SETTINGS_CONNECTIONS")); raw != "" {
		names, err := parseNames(raw)
		if err != nil {
			return fmt.Errorf("parse SETTINGS_CONNECTIONS: %w", err)
		}
		cfg.Connections = names
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.SettingsFile != nil && *overrides.SettingsFile != "" {
		cfg.SettingsFile = *overrides.SettingsFile
	}

	if overrides.SettingsSource != nil && *overrides.SettingsSource != "" {
		cfg.SettingsSource = *overrides.SettingsSource
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if len(overrides.Connections) > 0 {
		cfg.Connections = overrides.Connections
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("validation failed for Config: %w", err)
	}
	return nil
}

// parseNames parses a comma-separated list of connection names.
func parseNames(raw string) ([]string, error) {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		names = append(names, part)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no connection names provided")
	}
	return names, nil
}
