package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API APIConfig `mapstructure:"api"`
	UI  UIConfig  `mapstructure:"ui"`
}

// APIConfig holds remote service settings. BaseURL is the single
// externally supplied value every request path is built from.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSize       int    `mapstructure:"page_size"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
	DateFormat     string `mapstructure:"date_format"`
}

// Timeout returns the per-request deadline.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Load reads configuration from file and env. Env var overrides use prefix
// BUDGETDASH_; BUDGETDASH_CONFIG points at an explicit config file.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout_seconds", 15)
	v.SetDefault("ui.page_size", 10)
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.date_format", "02/01/2006")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("BUDGETDASH_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "budgetdash"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BUDGETDASH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.PageSize < 1 {
		c.UI.PageSize = 10
	}

	// first run: write a starter file so there is something to edit
	if cfgPath == "" {
		cfgPath = filepath.Join(os.Getenv("HOME"), ".config", "budgetdash", "config.toml")
	}
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if err := Save(c); err != nil {
			return Config{}, err
		}
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory
// if needed.
func Save(cfg Config) error {
	path := os.Getenv("BUDGETDASH_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "budgetdash", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout_seconds", cfg.API.TimeoutSeconds)
	v.Set("ui.page_size", cfg.UI.PageSize)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.date_format", cfg.UI.DateFormat)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
