// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	port := cfg.Server.Port
//	maxRooms := cfg.Search.MaxRooms
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when a setting is missing or zero.
const (
	DefaultPort               = 8080
	DefaultRateLimitPerMinute = 120
	DefaultRateLimitBurst     = 20
	DefaultMaxRooms           = 8
	DefaultMaxGuests          = 16
	DefaultMaxCapacity        = 8
	DefaultCacheSize          = 256
	DefaultIdleTimeout        = 30 * time.Minute
	DefaultRepeatInterval     = 100 * time.Millisecond
)

// Config represents the entire application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Search        SearchConfig        `yaml:"search"`
	Sessions      SessionsConfig      `yaml:"sessions"`
	Stepper       StepperConfig       `yaml:"stepper"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port               int      `yaml:"port"`
	AllowedOrigins     []string `yaml:"allowed_origins"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"`
	RateLimitBurst     int      `yaml:"rate_limit_burst"`
}

// SearchConfig bounds the exhaustive allocation search.
type SearchConfig struct {
	MaxRooms    int `yaml:"max_rooms"`
	MaxGuests   int `yaml:"max_guests"`
	MaxCapacity int `yaml:"max_capacity"` // per room
	CacheSize   int `yaml:"cache_size"`
}

// SessionsConfig holds editing session settings
type SessionsConfig struct {
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// StepperConfig holds press-and-hold settings
type StepperConfig struct {
	RepeatInterval time.Duration `yaml:"repeat_interval"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${ROOMALLOC_PORT})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnvInt("ROOMALLOC_PORT", DefaultPort),
			AllowedOrigins:     getEnvList("ROOMALLOC_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
			RateLimitPerMinute: getEnvInt("ROOMALLOC_RATE_LIMIT_PER_MINUTE", DefaultRateLimitPerMinute),
			RateLimitBurst:     getEnvInt("ROOMALLOC_RATE_LIMIT_BURST", DefaultRateLimitBurst),
		},
		Search: SearchConfig{
			MaxRooms:    getEnvInt("ROOMALLOC_MAX_ROOMS", DefaultMaxRooms),
			MaxGuests:   getEnvInt("ROOMALLOC_MAX_GUESTS", DefaultMaxGuests),
			MaxCapacity: getEnvInt("ROOMALLOC_MAX_CAPACITY", DefaultMaxCapacity),
			CacheSize:   getEnvInt("ROOMALLOC_CACHE_SIZE", DefaultCacheSize),
		},
		Sessions: SessionsConfig{
			IdleTimeout: getEnvDuration("ROOMALLOC_SESSION_IDLE_TIMEOUT", DefaultIdleTimeout),
		},
		Stepper: StepperConfig{
			RepeatInterval: getEnvDuration("ROOMALLOC_REPEAT_INTERVAL", DefaultRepeatInterval),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnv_WithPath("config.yaml")
}

// LoadOrEnv_WithPath tries to load from specified path, falls back to environment variables
func LoadOrEnv_WithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Search.MaxRooms < 0 || c.Search.MaxGuests < 0 || c.Search.MaxCapacity < 0 {
		return fmt.Errorf("search limits cannot be negative")
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("search.cache_size cannot be negative")
	}
	switch strings.ToLower(c.Observability.Logging.Format) {
	case "", "text", "json", "logfmt":
	default:
		return fmt.Errorf("unknown log format %q", c.Observability.Logging.Format)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.RateLimitPerMinute == 0 {
		c.Server.RateLimitPerMinute = DefaultRateLimitPerMinute
	}
	if c.Server.RateLimitBurst == 0 {
		c.Server.RateLimitBurst = DefaultRateLimitBurst
	}
	if c.Search.MaxRooms == 0 {
		c.Search.MaxRooms = DefaultMaxRooms
	}
	if c.Search.MaxGuests == 0 {
		c.Search.MaxGuests = DefaultMaxGuests
	}
	if c.Search.MaxCapacity == 0 {
		c.Search.MaxCapacity = DefaultMaxCapacity
	}
	if c.Search.CacheSize == 0 {
		c.Search.CacheSize = DefaultCacheSize
	}
	if c.Sessions.IdleTimeout == 0 {
		c.Sessions.IdleTimeout = DefaultIdleTimeout
	}
	if c.Stepper.RepeatInterval == 0 {
		c.Stepper.RepeatInterval = DefaultRepeatInterval
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

// getEnvDuration retrieves a duration such as "30m" with a fallback default
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Defaults returns a configuration with every setting at its default.
func Defaults() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
