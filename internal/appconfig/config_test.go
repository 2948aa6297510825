package appconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	netspeed "github.com/justrawaccel/network-speed"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.RefreshInterval != time.Second {
		t.Errorf("expected refresh interval 1s, got %v", cfg.RefreshInterval)
	}
	if cfg.MaxHistory != 300 {
		t.Errorf("expected max history 300, got %d", cfg.MaxHistory)
	}
	if cfg.Precision != "instant" {
		t.Errorf("expected precision 'instant', got %q", cfg.Precision)
	}
	if cfg.SNMPPort != 161 || cfg.SNMPVersion != "2c" {
		t.Errorf("unexpected SNMP defaults: port %d version %q", cfg.SNMPPort, cfg.SNMPVersion)
	}
}

func TestConfigSaveLoad(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	cfg := DefaultConfig()
	cfg.RefreshInterval = 2 * time.Second
	cfg.Precision = "windowed"
	cfg.Window = 500 * time.Millisecond
	cfg.NameFilters = []string{"docker"}

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.RefreshInterval != 2*time.Second {
		t.Errorf("expected refresh interval 2s, got %v", loaded.RefreshInterval)
	}
	if loaded.Precision != "windowed" || loaded.Window != 500*time.Millisecond {
		t.Errorf("expected windowed/500ms, got %q/%v", loaded.Precision, loaded.Window)
	}
	if len(loaded.NameFilters) != 1 || loaded.NameFilters[0] != "docker" {
		t.Errorf("expected name filters [docker], got %v", loaded.NameFilters)
	}
}

func TestConfigLoadMissing(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("LoadConfig() should return defaults for missing file, got error: %v", err)
	}
	if cfg.RefreshInterval != time.Second {
		t.Errorf("expected default refresh interval, got %v", cfg.RefreshInterval)
	}
}

func TestConfigLoadMalformed(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(path, []byte("refresh_interval = ["), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestMonitorConfigInstant(t *testing.T) {
	mc, err := DefaultConfig().MonitorConfig()
	if err != nil {
		t.Fatalf("MonitorConfig() error: %v", err)
	}
	if _, ok := mc.Precision.(netspeed.Instant); !ok {
		t.Errorf("expected Instant precision, got %T", mc.Precision)
	}
	if !mc.ExcludeVirtual || !mc.ExcludeLoopback || !mc.ExcludeBluetooth {
		t.Error("defaults should exclude virtual, loopback, and bluetooth")
	}
}

func TestMonitorConfigSampled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Precision = "sampled"
	cfg.SampleCount = 4
	cfg.SampleInterval = 250 * time.Millisecond

	mc, err := cfg.MonitorConfig()
	if err != nil {
		t.Fatalf("MonitorConfig() error: %v", err)
	}
	s, ok := mc.Precision.(netspeed.Sampled)
	if !ok {
		t.Fatalf("expected Sampled precision, got %T", mc.Precision)
	}
	if s.Count != 4 || s.Interval != 250*time.Millisecond {
		t.Errorf("unexpected sampled parameters: %+v", s)
	}
}

func TestMonitorConfigLoopbackOptIn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IncludeLoopback = true

	mc, err := cfg.MonitorConfig()
	if err != nil {
		t.Fatalf("MonitorConfig() error: %v", err)
	}
	if mc.ExcludeLoopback {
		t.Error("loopback opt-in should clear the exclusion")
	}
	if len(mc.InterfaceTypeFilters) != 0 {
		t.Errorf("loopback opt-in should clear the type filter, got %v", mc.InterfaceTypeFilters)
	}
}

func TestMonitorConfigUnknownPrecision(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Precision = "psychic"
	if _, err := cfg.MonitorConfig(); err == nil {
		t.Error("expected an error for an unknown precision mode")
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath() error: %v", err)
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("unexpected config path %q", path)
	}
	if filepath.Base(filepath.Dir(path)) != appName {
		t.Errorf("config path should live under the %s directory, got %q", appName, path)
	}
}
