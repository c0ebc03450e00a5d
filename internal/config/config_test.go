package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DataDir == "" {
		t.Error("DataDir should have a default")
	}
	if cfg.Agent.ReplyDelayMs != 800 {
		t.Errorf("ReplyDelayMs = %d, want 800", cfg.Agent.ReplyDelayMs)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Agent.ReplyDelayMs != 800 {
		t.Error("Missing file should yield defaults")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
data_dir = "/tmp/hub-test"

[agent]
reply_delay_ms = 50

[ui]
theme = "dark"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "/tmp/hub-test" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.ReplyDelay() != 50*time.Millisecond {
		t.Errorf("ReplyDelay = %v, want 50ms", cfg.ReplyDelay())
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", cfg.UI.Theme)
	}
	if cfg.DBPath() != filepath.Join("/tmp/hub-test", "hub.db") {
		t.Errorf("DBPath = %q", cfg.DBPath())
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("HUB_DATA_DIR", "/tmp/hub-env")
	t.Setenv("HUB_THEME", "dark")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "/tmp/hub-env" {
		t.Errorf("DataDir = %q, want env override", cfg.DataDir)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Theme = %q, want env override", cfg.UI.Theme)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Agent.ReplyDelayMs = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Negative delay should fail validation")
	}

	cfg = Default()
	cfg.UI.Theme = "neon"
	if err := cfg.Validate(); err == nil {
		t.Error("Unknown theme should fail validation")
	}
}

func TestLoadRejectsBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("data_dir = [broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Broken TOML should fail to load")
	}
}
