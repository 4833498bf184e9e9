package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the complete tracker configuration
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// AccountConfig describes the tracked account
type AccountConfig struct {
	Currency string `json:"currency" yaml:"currency"`
	// OpeningValue is the starting balance used for the first trade when
	// no Value is entered with it.
	OpeningValue string `json:"opening_value,omitempty" yaml:"opening_value,omitempty"`
}

// StoreConfig selects the ledger backend
type StoreConfig struct {
	Type          string `json:"type" yaml:"type"` // "csv", "sqlite" or "memory"
	Path          string `json:"path,omitempty" yaml:"path,omitempty"`
	ValueColumn   bool   `json:"value_column" yaml:"value_column"`
	ConflictCheck bool   `json:"conflict_check" yaml:"conflict_check"`
}

// CacheConfig controls the read cache in front of the store
type CacheConfig struct {
	TTL string `json:"ttl" yaml:"ttl"` // e.g. "5m"; "0" disables
}

// LogConfig controls logging output
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "console" or "json"
}

// ParseTTL converts the TTL string to time.Duration
func (c CacheConfig) ParseTTL() (time.Duration, error) {
	if c.TTL == "" || c.TTL == "0" {
		return 0, nil
	}
	return time.ParseDuration(c.TTL)
}

// Opening returns the configured opening value, zero when unset
func (a AccountConfig) Opening() (decimal.Decimal, error) {
	if strings.TrimSpace(a.OpeningValue) == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.TrimSpace(a.OpeningValue))
}

// LoadFromFile loads configuration from a file (JSON or YAML). It does not
// validate: environment and flag overrides may still fill in fields.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides settings from TRACKER_* environment variables
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("TRACKER_STORE_TYPE"); v != "" {
		c.Store.Type = v
	}
	if v := os.Getenv("TRACKER_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("TRACKER_VALUE_COLUMN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRACKER_VALUE_COLUMN: %w", err)
		}
		c.Store.ValueColumn = b
	}
	if v := os.Getenv("TRACKER_CACHE_TTL"); v != "" {
		c.Cache.TTL = v
	}
	if v := os.Getenv("TRACKER_CURRENCY"); v != "" {
		c.Account.Currency = v
	}
	if v := os.Getenv("TRACKER_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if money.GetCurrency(c.Account.Currency) == nil {
		return fmt.Errorf("unknown currency: %s", c.Account.Currency)
	}
	if _, err := c.Account.Opening(); err != nil {
		return fmt.Errorf("account.opening_value must be a number")
	}
	switch c.Store.Type {
	case "csv", "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path required for %s store", c.Store.Type)
		}
	case "memory":
	default:
		return fmt.Errorf("store.type must be 'csv', 'sqlite' or 'memory'")
	}
	if _, err := c.Cache.ParseTTL(); err != nil {
		return fmt.Errorf("cache.ttl: %w", err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency: "USD",
		},
		Store: StoreConfig{
			Type: "csv",
			Path: "./trades_data.csv",
		},
		Cache: CacheConfig{
			TTL: "5m",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
