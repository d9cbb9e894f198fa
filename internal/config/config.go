package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ytmenu/internal/logging"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "ytmenu" // application name used for config directory

// Default invocation settings for the external MCP client.
const (
	DefaultClientBin      = "mcp-client"
	DefaultMCPName        = "youtrack"
	DefaultTimeoutSeconds = 120
)

// Config holds user configuration for ytmenu.
//
// ytmenu itself talks to nothing but the external MCP client binary; every
// field here ends up as a flag or an environment variable on that child
// process.
type Config struct {
	// ClientBin is the external MCP client executable (name or absolute path).
	ClientBin string `yaml:"client_bin"`
	// ClientConfig is the path to the client's own config file, passed through
	// verbatim as --config.
	ClientConfig string `yaml:"client_config"`
	// MCPName selects the server entry inside the client config, passed as --mcp-name.
	MCPName string `yaml:"mcp_name"`
	// DefaultProject is the YouTrack project short name pre-filled in prompts (e.g. "DEMO").
	DefaultProject string `yaml:"default_project,omitempty"`
	// YouTrackURL, when set, is exported to the child process as YOUTRACK_URL.
	YouTrackURL string `yaml:"youtrack_url,omitempty"`
	// TimeoutSeconds bounds a single tool invocation.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	Version  string `yaml:"version"`   // Track config version
	InitTime int64  `yaml:"init_time"` // Unix timestamp of first setup
}

// ConfigPath returns the standard config file path for the current platform.
// YTMENU_CONFIG_PATH overrides it, which is how tests avoid the real config.
func ConfigPath() (string, error) {
	if override := os.Getenv("YTMENU_CONFIG_PATH"); override != "" {
		return override, nil
	}

	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	configPath := filepath.Join(configDir, "config.yaml")

	logging.Debug("Determined config path", "path", configPath)
	return configPath, nil
}

// Load loads the config from the standard location
// If no config exists, it returns an error indicating first run is needed
func Load() (*Config, error) {
	configPath, exists := FindConfigFile()
	logging.Debug("Loading config from", "path", configPath)
	if !exists {
		return nil, fmt.Errorf("no configuration found, first-time setup required")
	}

	return LoadFrom(configPath)
}

// LoadFrom loads config from a specific path
func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// FindConfigFile returns the path to an existing config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found at primary path", "path", primary)
		return primary, true
	}

	// Return primary path for new config
	return primary, false
}

// IsFirstRun checks if this is the first time the application is run
func IsFirstRun() bool {
	_, exists := FindConfigFile()
	return !exists
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ClientBin:      DefaultClientBin,
		MCPName:        DefaultMCPName,
		TimeoutSeconds: DefaultTimeoutSeconds,
		Version:        "1.0",
		InitTime:       0, // Will be set during first save
	}
}

// Validate checks that the config is usable for invoking the external client.
func (c *Config) Validate() error {
	if c.ClientBin == "" {
		return fmt.Errorf("client binary is not configured")
	}
	if c.ClientConfig == "" {
		return fmt.Errorf("client config file is not configured")
	}
	if c.MCPName == "" {
		return fmt.Errorf("MCP server name is not configured")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

// Timeout returns the invocation timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) applyDefaults() {
	if c.ClientBin == "" {
		c.ClientBin = DefaultClientBin
	}
	if c.MCPName == "" {
		c.MCPName = DefaultMCPName
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	configPath, _ := FindConfigFile()
	return c.SaveTo(configPath)
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	// Set init time if this is the first save
	if c.InitTime == 0 {
		c.InitTime = time.Now().Unix()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file with restrictive permissions (600) for security
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
