// Package config provides file-backed configuration for crosslock. All
// tunable protocol parameters (fee rate, refund lock window) live here so
// the swap builders receive them as plain values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/crosslock-exchange/crosslock/internal/chain"
)

// Config is the top-level configuration.
type Config struct {
	// Symbol and Network select the chain this instance settles on.
	Symbol  string `yaml:"symbol"`
	Network string `yaml:"network"`

	// DataDir holds the session database and the encrypted seed.
	DataDir string `yaml:"data_dir"`

	// FeePerKB is the flat fee rate, in the smallest unit per kilobyte,
	// applied to all constructed transactions.
	FeePerKB uint64 `yaml:"fee_per_kb"`

	// RefundLockHours is how far in the future this party sets its own
	// refund lock time. It must fall inside the validation window or the
	// counterparty will reject the refund.
	RefundLockHours int `yaml:"refund_lock_hours"`

	// MinLockAheadHours and MaxLockAheadHours bound the lock times this
	// party accepts on counterparty-built refunds.
	MinLockAheadHours int `yaml:"min_lock_ahead_hours"`
	MaxLockAheadHours int `yaml:"max_lock_ahead_hours"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Symbol:            "BTC",
		Network:           string(chain.Testnet),
		DataDir:           "~/.crosslock",
		FeePerKB:          1000,
		RefundLockHours:   48,
		MinLockAheadHours: 12,
		MaxLockAheadHours: 72,
		Logging:           LoggingConfig{Level: "info"},
	}
}

// Load reads a config file, filling unset fields with defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if _, ok := chain.Get(c.Symbol, chain.Network(c.Network)); !ok {
		return fmt.Errorf("unsupported chain %s on %s", c.Symbol, c.Network)
	}
	if c.FeePerKB == 0 {
		return fmt.Errorf("fee_per_kb must be greater than 0")
	}
	if c.MinLockAheadHours <= 0 || c.MaxLockAheadHours <= c.MinLockAheadHours {
		return fmt.Errorf("lock window [%dh, %dh] is not a valid range", c.MinLockAheadHours, c.MaxLockAheadHours)
	}
	if c.RefundLockHours <= c.MinLockAheadHours || c.RefundLockHours >= c.MaxLockAheadHours {
		return fmt.Errorf("refund_lock_hours %d must fall strictly inside the lock window [%dh, %dh]",
			c.RefundLockHours, c.MinLockAheadHours, c.MaxLockAheadHours)
	}
	return nil
}

// ChainParams resolves the configured chain parameters.
func (c *Config) ChainParams() (*chain.Params, error) {
	params, ok := chain.Get(c.Symbol, chain.Network(c.Network))
	if !ok {
		return nil, fmt.Errorf("unsupported chain %s on %s", c.Symbol, c.Network)
	}
	return params, nil
}

// MinLockAhead returns the lower bound of the accepted lock window.
func (c *Config) MinLockAhead() time.Duration {
	return time.Duration(c.MinLockAheadHours) * time.Hour
}

// MaxLockAhead returns the upper bound of the accepted lock window.
func (c *Config) MaxLockAhead() time.Duration {
	return time.Duration(c.MaxLockAheadHours) * time.Hour
}

// RefundLockTime returns the absolute lock time this party sets on its own
// refund, relative to now.
func (c *Config) RefundLockTime(now time.Time) uint32 {
	return uint32(now.Add(time.Duration(c.RefundLockHours) * time.Hour).Unix())
}

// ExpandPath expands a leading ~ in a path.
func ExpandPath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
