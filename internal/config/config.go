// Package config loads kwsp user configuration and scenario files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all kwsp configuration.
type Config struct {
	Defaults   DefaultsConfig   `toml:"defaults"`
	Server     ServerConfig     `toml:"server"`
	Appearance AppearanceConfig `toml:"appearance"`
	Output     OutputConfig     `toml:"output"`
	Log        LogConfig        `toml:"log"`
}

// DefaultsConfig pre-fills the calculation inputs.
type DefaultsConfig struct {
	InitialBalance       float64 `toml:"initial_balance"`
	DividendRatePercent  float64 `toml:"dividend_rate_percent"`
	InflationRatePercent float64 `toml:"inflation_rate_percent"`
	Years                int     `toml:"years"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// OutputConfig controls how amounts are printed.
type OutputConfig struct {
	Currency string `toml:"currency"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Environment overrides.
const (
	EnvServerAddr = "KWSP_SERVER_ADDR"
	EnvLogLevel   = "KWSP_LOG_LEVEL"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultsConfig{
			InitialBalance:       1_300_000,
			DividendRatePercent:  5.2,
			InflationRatePercent: 5.0,
			Years:                20,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8790",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Output: OutputConfig{
			Currency: "RM",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "kwsp")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "kwsp")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied last.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvServerAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
