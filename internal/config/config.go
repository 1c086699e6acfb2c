// Package config loads application configuration from an optional JSON
// file with environment-variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Store         StoreConfig         `json:"store"`
	Logging       LoggingConfig       `json:"logging"`
	Export        ExportConfig        `json:"export"`
	Images        ImagesConfig        `json:"images"`
	Notifications NotificationsConfig `json:"notifications"`
}

// StoreConfig configures the local object store.
type StoreConfig struct {
	Path          string `json:"path"`
	SchemaVersion int    `json:"schema_version"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `json:"level"`
}

// ExportConfig configures document export.
type ExportConfig struct {
	Dir string `json:"dir"`
}

// ImagesConfig configures image processing.
type ImagesConfig struct {
	Dir       string `json:"dir"`
	MaxWidth  int    `json:"max_width"`
	MaxHeight int    `json:"max_height"`
	Quality   int    `json:"quality"`
}

// NotificationsConfig configures the reminder dispatch loop.
type NotificationsConfig struct {
	DispatchInterval time.Duration `json:"dispatch_interval"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Path:          "terralot.db",
			SchemaVersion: 1,
		},
		Logging: LoggingConfig{Level: "info"},
		Export:  ExportConfig{Dir: "exports"},
		Images: ImagesConfig{
			Dir:       "images",
			MaxWidth:  1920,
			MaxHeight: 1920,
			Quality:   85,
		},
		Notifications: NotificationsConfig{DispatchInterval: 30 * time.Second},
	}
}

// LoadConfig loads configuration: defaults, then the JSON file at
// configPath if it exists, then environment variables. A .env file in
// the working directory is honored when present.
func LoadConfig(configPath string) (*Config, error) {
	// Best effort; a missing .env file is fine.
	_ = godotenv.Load()

	cfg := Default()

	if configPath != "" {
		raw, err := os.ReadFile(configPath)
		switch {
		case os.IsNotExist(err):
			// Fall through to env overrides.
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		default:
			if err := json.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", configPath, err)
			}
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TERRALOT_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("TERRALOT_SCHEMA_VERSION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Store.SchemaVersion = n
		}
	}
	if v := os.Getenv("TERRALOT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TERRALOT_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("TERRALOT_IMAGES_DIR"); v != "" {
		cfg.Images.Dir = v
	}
	if v := os.Getenv("TERRALOT_DISPATCH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Notifications.DispatchInterval = d
		}
	}
}
