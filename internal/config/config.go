// Package config loads hmmcount settings from a config file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rcliao/hmmcount/internal/hmm"
)

const (
	DefaultAppName = "hmmcount"
	DefaultOrder   = 3
)

// Config stores all configuration of the application.
type Config struct {
	Model ModelConfig `mapstructure:"model"`
	Rare  RareConfig  `mapstructure:"rare"`
	Store StoreConfig `mapstructure:"store"`
}

// ModelConfig controls counting.
type ModelConfig struct {
	Order  int   `mapstructure:"order"`
	Orders []int `mapstructure:"orders"`
}

// RareConfig controls rare-word relabeling.
type RareConfig struct {
	Threshold   float64 `mapstructure:"threshold"`
	Placeholder string  `mapstructure:"placeholder"`
}

// StoreConfig locates the snapshot database.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// DefaultConfigDir is where the config file and database live by default.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + DefaultAppName
	}
	return filepath.Join(home, "."+DefaultAppName)
}

// Load reads configuration from configPath, or from config.yaml in the
// working directory or DefaultConfigDir when configPath is empty.
// HMMCOUNT_* environment variables override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("model.order", DefaultOrder)
	v.SetDefault("rare.threshold", hmm.DefaultRareThreshold)
	v.SetDefault("rare.placeholder", hmm.DefaultPlaceholder)
	v.SetDefault("store.path", filepath.Join(DefaultConfigDir(), "counts.db"))

	v.SetEnvPrefix(DefaultAppName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Model.Orders) == 0 {
		cfg.Model.Orders = allOrders(cfg.Model.Order)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Model.Order < 2 {
		return fmt.Errorf("model.order must be >= 2, got %d", c.Model.Order)
	}
	for _, k := range c.Model.Orders {
		if k < 1 || k > c.Model.Order {
			return fmt.Errorf("model.orders: %d outside 1..%d", k, c.Model.Order)
		}
	}
	if c.Rare.Threshold < 0 {
		return fmt.Errorf("rare.threshold must be >= 0, got %g", c.Rare.Threshold)
	}
	if c.Rare.Placeholder == "" || strings.ContainsAny(c.Rare.Placeholder, " \t\n") {
		return fmt.Errorf("rare.placeholder must be a single non-empty token, got %q", c.Rare.Placeholder)
	}
	return nil
}

func allOrders(n int) []int {
	orders := make([]int, 0, n)
	for k := 1; k <= n; k++ {
		orders = append(orders, k)
	}
	return orders
}
