// Package config loads the hub configuration.
//
// Configuration file locations (in order of precedence):
//   - path given on the command line
//   - ~/.hub/config.toml
//   - built-in defaults
//
// Individual values can be overridden with HUB_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the complete hub configuration.
type Config struct {
	// DataDir holds the slot database. Default ~/.hub.
	DataDir string `toml:"data_dir"`

	// Agent configures the scripted responder.
	Agent AgentConfig `toml:"agent"`

	// UI configures the terminal interface.
	UI UIConfig `toml:"ui"`
}

// AgentConfig contains scripted-agent settings.
type AgentConfig struct {
	// ReplyDelayMs is the simulated latency before an agent reply, in
	// milliseconds.
	ReplyDelayMs int `toml:"reply_delay_ms"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is "light" or "dark".
	Theme string `toml:"theme"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DataDir: filepath.Join(home, ".hub"),
		Agent:   AgentConfig{ReplyDelayMs: 800},
		UI:      UIConfig{Theme: "light"},
	}
}

// Load reads the configuration from path, or from ~/.hub/config.toml when
// path is empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = filepath.Join(cfg.DataDir, "config.toml")
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HUB_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("HUB_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Agent.ReplyDelayMs < 0 {
		return fmt.Errorf("agent.reply_delay_ms must not be negative, got %d", c.Agent.ReplyDelayMs)
	}
	if c.UI.Theme != "light" && c.UI.Theme != "dark" {
		return fmt.Errorf("ui.theme must be \"light\" or \"dark\", got %q", c.UI.Theme)
	}
	return nil
}

// DBPath returns the slot database location inside the data dir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "hub.db")
}

// ReplyDelay returns the agent latency as a duration.
func (c *Config) ReplyDelay() time.Duration {
	return time.Duration(c.Agent.ReplyDelayMs) * time.Millisecond
}
