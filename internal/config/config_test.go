package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvServerAddr, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("Load = %+v, want defaults", cfg)
	}
	if Exists() {
		t.Fatal("Exists = true with empty config dir")
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvServerAddr, "")
	t.Setenv(EnvLogLevel, "")

	cfg := DefaultConfig()
	cfg.Defaults.Years = 30
	cfg.Defaults.DividendRatePercent = 4.5
	cfg.Output.Currency = "MYR"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	info, err := os.Stat(Path())
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("config perm = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got != cfg {
		t.Fatalf("Load = %+v, want %+v", got, cfg)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "kwsp"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "kwsp", "config.toml"), []byte("[defaults\nyears = "), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Load returned nil error for malformed TOML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvServerAddr, ":9999")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Fatalf("Server.Addr = %q, want :9999", cfg.Server.Addr)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestParseScenariosSingle(t *testing.T) {
	data := []byte(`
name: baseline
initial_balance: 1300000
dividend_rate_percent: 5.2
inflation_rate_percent: 5
years: 20
`)
	got, err := ParseScenarios(data)
	if err != nil {
		t.Fatalf("ParseScenarios error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Name != "baseline" || got[0].Years != 20 || got[0].DividendRatePercent != 5.2 {
		t.Fatalf("scenario = %+v", got[0])
	}

	p := got[0].Params()
	if p.DividendRate != 5.2/100 || p.InflationRate != 0.05 {
		t.Fatalf("Params rates = %v / %v, want fractions", p.DividendRate, p.InflationRate)
	}
}

func TestParseScenariosList(t *testing.T) {
	data := []byte(`
scenarios:
  - name: short
    initial_balance: 500000
    dividend_rate_percent: 4
    inflation_rate_percent: 3
    years: 10
  - name: long
    initial_balance: 500000
    dividend_rate_percent: 4
    inflation_rate_percent: 3
    years: 30
`)
	got, err := ParseScenarios(data)
	if err != nil {
		t.Fatalf("ParseScenarios error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "short" || got[1].Years != 30 {
		t.Fatalf("scenarios = %+v", got)
	}
}

func TestParseScenariosRejectsUnknownKeys(t *testing.T) {
	data := []byte(`
initial_balance: 1000
dividend_rate: 5
years: 10
`)
	if _, err := ParseScenarios(data); err == nil {
		t.Fatal("ParseScenarios accepted unknown key dividend_rate")
	}
}

func TestLoadScenariosMissingFile(t *testing.T) {
	if _, err := LoadScenarios(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("LoadScenarios returned nil error for missing file")
	}
}
