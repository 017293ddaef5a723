package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config does not validate: %v", err)
	}
	if cfg.Symbol != "BTC" || cfg.Network != "testnet" {
		t.Errorf("default chain = %s/%s, want BTC/testnet", cfg.Symbol, cfg.Network)
	}
	if _, err := cfg.ChainParams(); err != nil {
		t.Errorf("default chain params unresolvable: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FeePerKB != Default().FeePerKB {
		t.Error("missing file did not yield defaults")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	cfg := Default()
	cfg.FeePerKB = 2500
	cfg.RefundLockHours = 24
	cfg.Logging.Level = "debug"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.FeePerKB != 2500 {
		t.Errorf("fee_per_kb = %d, want 2500", loaded.FeePerKB)
	}
	if loaded.RefundLockHours != 24 {
		t.Errorf("refund_lock_hours = %d, want 24", loaded.RefundLockHours)
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("logging level = %s, want debug", loaded.Logging.Level)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("fee_per_kb: 4000\n"), 0600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FeePerKB != 4000 {
		t.Errorf("fee_per_kb = %d, want 4000", cfg.FeePerKB)
	}
	if cfg.Symbol != "BTC" {
		t.Errorf("symbol = %s, want the BTC default", cfg.Symbol)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("fee_per_kb: [not a number\n"), 0600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml accepted")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(c *Config)
	}{
		{name: "unknown chain", mut: func(c *Config) { c.Symbol = "DOGE" }},
		{name: "unknown network", mut: func(c *Config) { c.Network = "signet" }},
		{name: "zero fee", mut: func(c *Config) { c.FeePerKB = 0 }},
		{name: "inverted window", mut: func(c *Config) { c.MinLockAheadHours = 80 }},
		{name: "zero window", mut: func(c *Config) { c.MinLockAheadHours = 0 }},
		{name: "lock below window", mut: func(c *Config) { c.RefundLockHours = 6 }},
		{name: "lock above window", mut: func(c *Config) { c.RefundLockHours = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mut(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}

func TestLockWindowAccessors(t *testing.T) {
	cfg := Default()
	if cfg.MinLockAhead() != 12*time.Hour {
		t.Errorf("MinLockAhead = %s, want 12h", cfg.MinLockAhead())
	}
	if cfg.MaxLockAhead() != 72*time.Hour {
		t.Errorf("MaxLockAhead = %s, want 72h", cfg.MaxLockAhead())
	}

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	want := uint32(now.Add(48 * time.Hour).Unix())
	if got := cfg.RefundLockTime(now); got != want {
		t.Errorf("RefundLockTime = %d, want %d", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	if got := ExpandPath("~/.crosslock"); got != filepath.Join(home, ".crosslock") {
		t.Errorf("ExpandPath = %s", got)
	}
	if got := ExpandPath("/var/lib/crosslock"); got != "/var/lib/crosslock" {
		t.Errorf("absolute path changed: %s", got)
	}
}
