package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Oracle.Endpoint != "http://localhost:11434/api/generate" {
		t.Errorf("default endpoint = %q", cfg.Oracle.Endpoint)
	}
	if cfg.Confirm.DetectTimeoutSeconds != 15 || cfg.Confirm.ExecuteTimeoutSeconds != 5 {
		t.Errorf("default confirm timeouts = %+v", cfg.Confirm)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config not written: %v", err)
	}
}

func TestLoadHydratesPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := `oracle:
  conversational_model: my-conv
  command_model: my-cmd
`
	if err := os.WriteFile(path, []byte(partial), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Oracle.ConversationalModel != "my-conv" || cfg.Oracle.CommandModel != "my-cmd" {
		t.Errorf("models not read: %+v", cfg.Oracle)
	}
	if cfg.Oracle.Endpoint == "" {
		t.Error("endpoint default not hydrated")
	}
	if cfg.Session.CooldownSeconds != 3 {
		t.Errorf("cooldown default = %d, want 3", cfg.Session.CooldownSeconds)
	}
}

func TestPathOverrideEnv(t *testing.T) {
	t.Setenv("VOSH_CONFIG", "/tmp/custom-vosh.yaml")
	loader := NewFileLoader("")
	if got := loader.Path(); got != "/tmp/custom-vosh.yaml" {
		t.Errorf("Path() = %q", got)
	}
}
