package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration.
type Config struct {
	Data    DataConfig   `toml:"data"`
	Charts  ChartsConfig `toml:"charts"`
	Crawl   CrawlConfig  `toml:"crawl"`
	Logging LogConfig    `toml:"logging"`
}

// DataConfig holds dataset location settings.
type DataConfig struct {
	Dir     string `envconfig:"DATA_DIR" default:"data" toml:"dir"`
	Pattern string `envconfig:"DATA_PATTERN" default:"*.{csv,csv.gz}" toml:"pattern"`
}

// ChartsConfig holds chart output settings.
type ChartsConfig struct {
	OutDir string `envconfig:"CHART_DIR" default:"charts" toml:"out_dir"`
	TopN   int    `envconfig:"TOP_N" default:"10" toml:"top_n"`
	Bins   int    `envconfig:"HIST_BINS" default:"10" toml:"bins"`
}

// CrawlConfig holds OpenLibrary crawler settings.
type CrawlConfig struct {
	BaseURL           string  `envconfig:"CRAWL_BASE_URL" default:"https://openlibrary.org" toml:"base_url"`
	Subject           string  `envconfig:"CRAWL_SUBJECT" default:"science_fiction" toml:"subject"`
	MaxPages          int     `envconfig:"CRAWL_MAX_PAGES" default:"3" toml:"max_pages"`
	RequestsPerSecond float64 `envconfig:"CRAWL_RPS" default:"2" toml:"requests_per_second"`
	OutDir            string  `envconfig:"CRAWL_OUT_DIR" default:"data" toml:"out_dir"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" toml:"development"`
}

// Load loads configuration from SHELFSTATS_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("shelfstats", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:     "data",
			Pattern: "*.{csv,csv.gz}",
		},
		Charts: ChartsConfig{
			OutDir: "charts",
			TopN:   10,
			Bins:   10,
		},
		Crawl: CrawlConfig{
			BaseURL:           "https://openlibrary.org",
			Subject:           "science_fiction",
			MaxPages:          3,
			RequestsPerSecond: 2,
			OutDir:            "data",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// ApplyFile overlays settings from a TOML file onto the config.
// Environment variables already loaded keep their values only where the
// file does not set them, matching the file-over-env precedence the CLI
// documents.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}
