package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	BaseURL        string `mapstructure:"BASE_URL"`
	OutputCSV      string `mapstructure:"OUTPUT_CSV"`
	UserAgent      string `mapstructure:"USER_AGENT"`
	AcceptLanguage string `mapstructure:"ACCEPT_LANGUAGE"`
	MaxPages       int    `mapstructure:"MAX_PAGES"`
	PageDelayMs    int    `mapstructure:"PAGE_DELAY_MS"`
	FetchTimeout   int    `mapstructure:"FETCH_TIMEOUT"`
	MetricsAddr    string `mapstructure:"METRICS_ADDR"`
	PostgresURL    string `mapstructure:"POSTGRES_URL"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	SeenTTLHours   int    `mapstructure:"SEEN_TTL_HOURS"`
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present.
	// This allows configuration purely through environment variables.
	_ = viper.ReadInConfig()

	// Set default values
	viper.SetDefault("BASE_URL", "https://www.olx.in/items/q-car-cover")
	viper.SetDefault("OUTPUT_CSV", "olx_car_covers.csv")
	viper.SetDefault("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	viper.SetDefault("ACCEPT_LANGUAGE", "en-IN,en;q=0.9")
	viper.SetDefault("MAX_PAGES", 5)
	viper.SetDefault("PAGE_DELAY_MS", 1800)
	viper.SetDefault("FETCH_TIMEOUT", 20) // in seconds
	viper.SetDefault("METRICS_ADDR", "")
	viper.SetDefault("POSTGRES_URL", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("SEEN_TTL_HOURS", 48)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PageDelay is the pause between successive page fetches.
func (c *Config) PageDelay() time.Duration {
	return time.Duration(c.PageDelayMs) * time.Millisecond
}

// Timeout bounds a single page fetch.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

// SeenTTL is how long a listing URL stays in the cross-run seen cache.
func (c *Config) SeenTTL() time.Duration {
	return time.Duration(c.SeenTTLHours) * time.Hour
}
