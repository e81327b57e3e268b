package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.Output != "bg.png" || !cfg.Mask || cfg.Property != "_XROOTPMAP_ID" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromPath_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
output: "-"
format: ppm
mask: false
ignore_layout_errors: true
max_width: 1280
log_level: debug
`)
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output != "-" || cfg.Format != "ppm" || cfg.Mask || !cfg.IgnoreLayoutErrors {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.MaxWidth != 1280 || cfg.LogLevel != "debug" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	// Unset fields keep their defaults.
	if cfg.Property != "_XROOTPMAP_ID" {
		t.Fatalf("expected default property, got %q", cfg.Property)
	}
}

func TestLoadFromPath_RejectsBadValues(t *testing.T) {
	cases := []string{
		"format: gif\n",
		"log_level: loud\n",
		"max_width: -1\n",
		"property: \"\"\n",
	}
	for _, content := range cases {
		if _, err := LoadFromPath(writeConfig(t, content)); err == nil {
			t.Fatalf("expected validation error for %q", content)
		}
	}
}

func TestLoadFromPath_RejectsMalformedYAML(t *testing.T) {
	if _, err := LoadFromPath(writeConfig(t, "output: [unclosed\n")); err == nil {
		t.Fatalf("expected parse error")
	}
}
