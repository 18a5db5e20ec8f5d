package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultHasSpecMaxSetSize(t *testing.T) {
	cfg := Default()
	if cfg.MaxSetSize != 512 {
		t.Fatalf("MaxSetSize = %d, want 512", cfg.MaxSetSize)
	}
	if !cfg.FeatureEnabled("classes") {
		t.Fatalf("classes feature should default to enabled")
	}
}

func TestLoadOverlaysOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lacsap.toml")
	contents := `
max_set_size = 256

[features]
classes = false

[warnings]
shadowed-name = true
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxSetSize != 256 {
		t.Fatalf("MaxSetSize = %d, want 256 (overlaid)", cfg.MaxSetSize)
	}
	if cfg.WordSize != 8 {
		t.Fatalf("WordSize = %d, want 8 (default, untouched)", cfg.WordSize)
	}
	if cfg.FeatureEnabled("classes") {
		t.Fatalf("classes should have been disabled by the file")
	}
	if !cfg.FeatureEnabled("funcptrs") {
		t.Fatalf("funcptrs was not mentioned in the file and should keep its default")
	}
	if !cfg.WarningEnabled("shadowed-name") {
		t.Fatalf("shadowed-name should have been enabled by the file")
	}
}
