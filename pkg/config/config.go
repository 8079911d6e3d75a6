package config

import (
	"fmt"
	"os"
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
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Catalog struct {
		Source          string        `yaml:"source"` // http or file
		RefreshInterval time.Duration `yaml:"refresh_interval"`
		Kalshi          struct {
			BaseURL   string `yaml:"base_url"`
			PageLimit int    `yaml:"page_limit"`
			File      string `yaml:"file"`
		} `yaml:"kalshi"`
		Polymarket struct {
			BaseURL   string `yaml:"base_url"`
			PageLimit int    `yaml:"page_limit"`
			File      string `yaml:"file"`
		} `yaml:"polymarket"`
	} `yaml:"catalog"`
	Semantic struct {
		URL      string        `yaml:"url"`
		TopK     int           `yaml:"top_k"`
		Timeout  time.Duration `yaml:"timeout"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"semantic"`
	Assistant struct {
		URL     string        `yaml:"url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"assistant"`
	Ranking struct {
		FallbackSize     int `yaml:"fallback_size"`
		ContextSize      int `yaml:"context_size"`
		DefaultRecommend int `yaml:"default_recommend"`
	} `yaml:"ranking"`
	Preferences struct {
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"preferences"`
	Interactions struct {
		Enabled bool     `yaml:"enabled"`
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
	} `yaml:"interactions"`
	RankingLog struct {
		Enabled    bool   `yaml:"enabled"`
		Table      string `yaml:"table"`
		ClickHouse struct {
			Host        string        `yaml:"host"`
			Port        int           `yaml:"port"`
			Database    string        `yaml:"database"`
			User        string        `yaml:"user"`
			Password    string        `yaml:"password"`
			DialTimeout time.Duration `yaml:"dial_timeout"`
		} `yaml:"clickhouse"`
	} `yaml:"ranking_log"`
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

	c.applyDefaults()

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
	if v := os.Getenv("SEMANTIC_URL"); v != "" {
		c.Semantic.URL = v
	}
	if v := os.Getenv("ASSISTANT_URL"); v != "" {
		c.Assistant.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Preferences.Redis.Addr = v
		c.Preferences.Redis.Enabled = true
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Interactions.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("CATALOG_SOURCE"); v != "" {
		c.Catalog.Source = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Catalog.Source == "" {
		c.Catalog.Source = "http"
	}
	if c.Catalog.RefreshInterval <= 0 {
		c.Catalog.RefreshInterval = 10 * time.Minute
	}
	if c.Catalog.Kalshi.PageLimit <= 0 {
		c.Catalog.Kalshi.PageLimit = 200
	}
	if c.Catalog.Polymarket.PageLimit <= 0 {
		c.Catalog.Polymarket.PageLimit = 100
	}
	if c.Semantic.TopK <= 0 {
		c.Semantic.TopK = 100
	}
	if c.Semantic.Timeout <= 0 {
		c.Semantic.Timeout = 2 * time.Second
	}
	if c.Assistant.Timeout <= 0 {
		c.Assistant.Timeout = 30 * time.Second
	}
	if c.Ranking.FallbackSize <= 0 {
		c.Ranking.FallbackSize = 150
	}
	if c.Ranking.ContextSize <= 0 {
		c.Ranking.ContextSize = 150
	}
	if c.Ranking.DefaultRecommend <= 0 {
		c.Ranking.DefaultRecommend = 5
	}
	if c.Preferences.Redis.Prefix == "" {
		c.Preferences.Redis.Prefix = "predictpulse"
	}
	if c.Interactions.Topic == "" {
		c.Interactions.Topic = "pulse.interactions"
	}
	if c.RankingLog.Table == "" {
		c.RankingLog.Table = "ranking_passes"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Catalog.Source {
	case "http":
		if c.Catalog.Kalshi.BaseURL == "" && c.Catalog.Polymarket.BaseURL == "" {
			return fmt.Errorf("catalog: at least one platform base_url is required for http source")
		}
	case "file":
		if c.Catalog.Kalshi.File == "" && c.Catalog.Polymarket.File == "" {
			return fmt.Errorf("catalog: at least one platform file is required for file source")
		}
	default:
		return fmt.Errorf("catalog.source must be 'http' or 'file', got '%s'", c.Catalog.Source)
	}
	if c.Interactions.Enabled && len(c.Interactions.Brokers) == 0 {
		return fmt.Errorf("interactions.brokers cannot be empty when enabled")
	}
	if c.RankingLog.Enabled && c.RankingLog.ClickHouse.Host == "" {
		return fmt.Errorf("ranking_log.clickhouse.host is required when enabled")
	}
	return nil
}
