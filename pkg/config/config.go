package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
	Finnhub struct {
		APIKey         string             `yaml:"api_key"`
		BaseURL        string             `yaml:"base_url"`
		VIXFallbackURL string             `yaml:"vix_fallback_url"`
		Timeout        time.Duration      `yaml:"timeout"`
		FallbackPrices map[string]float64 `yaml:"fallback_prices"`
	} `yaml:"finnhub"`
	Cache struct {
		QuoteOpenTTL     time.Duration `yaml:"quote_open_ttl"`
		QuoteExtendedTTL time.Duration `yaml:"quote_extended_ttl"`
		QuoteClosedTTL   time.Duration `yaml:"quote_closed_ttl"`
		IndicatorsTTL    time.Duration `yaml:"indicators_ttl"`
		AnalysisTTL      time.Duration `yaml:"analysis_ttl"`
	} `yaml:"cache"`
	Calendar struct {
		Timezone string   `yaml:"timezone"`
		Holidays []string `yaml:"holidays"`
	} `yaml:"calendar"`
	Refresher struct {
		Symbols  []string `yaml:"symbols"`
		Schedule string   `yaml:"schedule"`
	} `yaml:"refresher"`
	Stream struct {
		Interval time.Duration `yaml:"interval"`
	} `yaml:"stream"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		c.Finnhub.APIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
		c.Redis.Enabled = true
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, perr := strconv.Atoi(v); perr == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		c.Refresher.Symbols = strings.Split(v, ",")
	}

	return c, nil
}

// Validate checks if the configuration is valid. A missing Finnhub API key
// is allowed: the data layer degrades to simulated values without one.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535], got %d", c.Server.Port)
	}
	if c.Calendar.Timezone == "" {
		return fmt.Errorf("calendar.timezone is required")
	}
	for _, d := range c.Calendar.Holidays {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("calendar.holidays entry '%s' is not YYYY-MM-DD", d)
		}
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when redis is enabled")
	}
	return nil
}
