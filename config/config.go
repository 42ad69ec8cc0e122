package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Search     SearchConfig     `mapstructure:"search"`
	Images     ImagesConfig     `mapstructure:"images"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Capsule    CapsuleConfig    `mapstructure:"capsule"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	PublicBaseURL  string   `mapstructure:"public_base_url"` // prefix for image refs in responses
}

// SearchConfig holds catalog search client configuration
type SearchConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	PageSize      int           `mapstructure:"page_size"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetries    int           `mapstructure:"max_retries"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	Burst         int           `mapstructure:"burst"`
	Dest          int           `mapstructure:"dest"`
	AuthToken     string        `mapstructure:"auth_token"`
}

// ImagesConfig holds product image configuration
type ImagesConfig struct {
	HostsURL string        `mapstructure:"hosts_url"`
	Size     string        `mapstructure:"size"`
	Format   string        `mapstructure:"format"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// EnrichmentConfig holds LLM enrichment configuration
type EnrichmentConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type       string        `mapstructure:"type"` // "memory", "redis" or "badger"
	RedisURL   string        `mapstructure:"redis_url"`
	BadgerPath string        `mapstructure:"badger_path"`
	TTL        time.Duration `mapstructure:"ttl"`
}

// CapsuleConfig holds capsule assembly configuration
type CapsuleConfig struct {
	Count         int    `mapstructure:"count"`
	PoolLimit     int    `mapstructure:"pool_limit"`
	FallbackLimit int    `mapstructure:"fallback_limit"`
	ShuffleSeed   uint64 `mapstructure:"shuffle_seed"` // 0 seeds from the clock
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/wardrobelens/")

	// WARDROBE_SEARCH_PAGE_SIZE -> search.page_size
	v.SetEnvPrefix("WARDROBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a .env file from the working directory if present.
// Variables already set in the environment win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values.
// Every key needs a default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"chrome-extension://*"})
	v.SetDefault("server.public_base_url", "http://localhost:8080")

	// Search defaults
	v.SetDefault("search.base_url", "https://search.wb.ru/exactmatch/ru/common/v18/search")
	v.SetDefault("search.page_size", 30)
	v.SetDefault("search.timeout", "20s")
	v.SetDefault("search.max_retries", 3)
	v.SetDefault("search.rate_per_second", 5)
	v.SetDefault("search.burst", 10)
	v.SetDefault("search.dest", -1257786)
	v.SetDefault("search.auth_token", "")

	// Image defaults
	v.SetDefault("images.hosts_url", "https://basketstate.wbbasket.ru/v1/list/short?mediabasket")
	v.SetDefault("images.size", "c246x328")
	v.SetDefault("images.format", "webp")
	v.SetDefault("images.timeout", "2s")

	// Enrichment defaults
	v.SetDefault("enrichment.enabled", false)
	v.SetDefault("enrichment.api_key", "")
	v.SetDefault("enrichment.base_url", "")
	v.SetDefault("enrichment.model", "glm-4.5-air")
	v.SetDefault("enrichment.timeout", "30s")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.badger_path", "")
	v.SetDefault("cache.ttl", "720h") // 30 days

	// Capsule defaults
	v.SetDefault("capsule.count", 3)
	v.SetDefault("capsule.pool_limit", 12)
	v.SetDefault("capsule.fallback_limit", 6)
	v.SetDefault("capsule.shuffle_seed", 0)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Cache.Type {
	case "memory", "redis", "badger":
	default:
		return fmt.Errorf("cache type must be 'memory', 'redis' or 'badger', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Cache.Type == "badger" && config.Cache.BadgerPath == "" {
		return fmt.Errorf("badger path is required when cache type is 'badger'")
	}

	if config.Enrichment.Enabled {
		if config.Enrichment.APIKey == "" {
			return fmt.Errorf("enrichment API key is required when enrichment is enabled (set WARDROBE_ENRICHMENT_API_KEY)")
		}
		if config.Enrichment.Model == "" {
			return fmt.Errorf("enrichment model is required when enrichment is enabled")
		}
	}

	if config.Search.PageSize <= 0 {
		return fmt.Errorf("search page size must be positive, got: %d", config.Search.PageSize)
	}

	if config.Capsule.Count <= 0 {
		return fmt.Errorf("capsule count must be positive, got: %d", config.Capsule.Count)
	}

	return nil
}
