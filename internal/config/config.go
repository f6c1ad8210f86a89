package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	DBPath                  string `yaml:"db_path"`
	LogLevel                string `yaml:"log_level"`
	SearchLookbackDays      int    `yaml:"search_lookback_days"`
	SearchQueryLookbackDays int    `yaml:"search_query_lookback_days"`
	ConfirmBulk             bool   `yaml:"confirm_bulk"`
}

// Load loads configuration from multiple sources with precedence:
// 1. Environment variables
// 2. ./.env.local (dotenv)
// 3. ~/.config/tempus/config.yaml (YAML)
// 4. Built-in defaults
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:                "info",
		SearchLookbackDays:      30,
		SearchQueryLookbackDays: 90,
		ConfirmBulk:             true,
	}

	if _, err := os.Stat(".env.local"); err == nil {
		_ = godotenv.Load(".env.local")
	}

	// YAML config is optional; a missing file is not an error.
	if err := loadYAMLConfig(cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading config file: %w", err)
	}

	if dbPath := os.Getenv("TEMPUS_DB"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel := os.Getenv("TEMPUS_LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if confirm := os.Getenv("TEMPUS_CONFIRM_BULK"); confirm != "" {
		if v, err := strconv.ParseBool(confirm); err == nil {
			cfg.ConfirmBulk = v
		}
	}

	if cfg.DBPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(homeDir, ".tempus", "tempus.db")
	}

	return cfg, nil
}

func loadYAMLConfig(cfg *Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	path := filepath.Join(homeDir, ".config", "tempus", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
