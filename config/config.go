package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Serp      SerpConfig
	Vision    VisionConfig
	OpenAI    OpenAIConfig
	Cache     CacheConfig
	Pipeline  PipelineConfig
	RateLimit RateLimitConfig
	Rules     RulesConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SerpConfig holds shopping-search provider configuration
type SerpConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// VisionConfig holds the OCR service configuration
type VisionConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Key      string `mapstructure:"key"`
}

// OpenAIConfig holds the item-extraction and explanation model configuration
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// PipelineConfig holds retrieval pipeline configuration
type PipelineConfig struct {
	FetchLimit int `mapstructure:"fetch_limit"` // provider result ceiling
	TopN       int `mapstructure:"top_n"`       // offers returned per item
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP
	Serp  int `mapstructure:"serp"`   // outbound provider requests per hour
}

// RulesConfig points at an optional override file for the filter tables
type RulesConfig struct {
	Path string `mapstructure:"path"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shopsense/")

	v.SetEnvPrefix("SHOPSENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults suffice
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
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

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("serp.api_key", "")
	v.SetDefault("serp.base_url", "https://serpapi.com")

	v.SetDefault("vision.endpoint", "")
	v.SetDefault("vision.key", "")

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "https://api.openai.com")
	v.SetDefault("openai.model", "gpt-4o-mini")

	v.SetDefault("rules.path", "")

	v.SetDefault("cache.ttl", "1h")

	v.SetDefault("pipeline.fetch_limit", 50)
	v.SetDefault("pipeline.top_n", 10)

	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.serp", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Serp.APIKey == "" {
		return fmt.Errorf("search provider API key is required (set SHOPSENSE_SERP_API_KEY)")
	}

	if config.Pipeline.FetchLimit <= 0 {
		return fmt.Errorf("pipeline fetch limit must be positive, got: %d", config.Pipeline.FetchLimit)
	}
	if config.Pipeline.TopN <= 0 {
		return fmt.Errorf("pipeline top N must be positive, got: %d", config.Pipeline.TopN)
	}

	return nil
}
