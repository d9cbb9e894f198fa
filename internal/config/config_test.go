package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Config{
		ClientBin:      "mcp-client",
		ClientConfig:   "/etc/mcp/servers.json",
		MCPName:        "youtrack",
		DefaultProject: "DEMO",
		YouTrackURL:    "https://example.youtrack.cloud",
		TimeoutSeconds: 60,
		Version:        "1.0",
	}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if loaded.ClientBin != cfg.ClientBin {
		t.Errorf("ClientBin = %q, want %q", loaded.ClientBin, cfg.ClientBin)
	}
	if loaded.ClientConfig != cfg.ClientConfig {
		t.Errorf("ClientConfig = %q, want %q", loaded.ClientConfig, cfg.ClientConfig)
	}
	if loaded.MCPName != cfg.MCPName {
		t.Errorf("MCPName = %q, want %q", loaded.MCPName, cfg.MCPName)
	}
	if loaded.DefaultProject != "DEMO" {
		t.Errorf("DefaultProject = %q, want DEMO", loaded.DefaultProject)
	}
	if loaded.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds = %d, want 60", loaded.TimeoutSeconds)
	}
	if loaded.InitTime == 0 {
		t.Error("InitTime should be set on first save")
	}
}

func TestSaveToUsesRestrictivePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file permissions = %o, want 600", perm)
	}
}

func TestLoadFromAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "client_config: /etc/mcp/servers.json\n"
	if err := os.WriteFile(path, []byte(partial), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if loaded.ClientBin != DefaultClientBin {
		t.Errorf("ClientBin = %q, want default %q", loaded.ClientBin, DefaultClientBin)
	}
	if loaded.MCPName != DefaultMCPName {
		t.Errorf("MCPName = %q, want default %q", loaded.MCPName, DefaultMCPName)
	}
	if loaded.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want default %d", loaded.TimeoutSeconds, DefaultTimeoutSeconds)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("client_bin: [unclosed"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestConfigPathOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv("YTMENU_CONFIG_PATH", override)

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath failed: %v", err)
	}
	if path != override {
		t.Errorf("ConfigPath = %q, want %q", path, override)
	}
}

func TestIsFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("YTMENU_CONFIG_PATH", path)

	if !IsFirstRun() {
		t.Error("expected first run when no config exists")
	}

	cfg := DefaultConfig()
	cfg.ClientConfig = "/etc/mcp/servers.json"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	if IsFirstRun() {
		t.Error("expected not-first-run after config is saved")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		ClientBin:      "mcp-client",
		ClientConfig:   "/etc/mcp/servers.json",
		MCPName:        "youtrack",
		TimeoutSeconds: 120,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing client bin", func(c *Config) { c.ClientBin = "" }},
		{"missing client config", func(c *Config) { c.ClientConfig = "" }},
		{"missing mcp name", func(c *Config) { c.MCPName = "" }},
		{"zero timeout", func(c *Config) { c.TimeoutSeconds = 0 }},
		{"negative timeout", func(c *Config) { c.TimeoutSeconds = -5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	cfg := Config{TimeoutSeconds: 30}
	if got := cfg.Timeout().Seconds(); got != 30 {
		t.Errorf("Timeout = %vs, want 30s", got)
	}

	cfg.TimeoutSeconds = 0
	if got := cfg.Timeout().Seconds(); got != DefaultTimeoutSeconds {
		t.Errorf("Timeout = %vs, want default %ds", got, DefaultTimeoutSeconds)
	}
}
