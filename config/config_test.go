package config

import (
	"os"
	"path/filepath"
	"testing"

	"depscan/graph"
)

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFileName))
	if err != nil {
		t.Fatalf("missing config must yield defaults: %v", err)
	}
	if cfg.Format != "dot" || !cfg.Include.Assets || cfg.Include.Folders {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	err := os.WriteFile(path, []byte(`
format: json
prune: true
ignore:
  - "*.test.js"
include:
  builtins: false
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format != "json" || !cfg.Prune {
		t.Fatalf("cfg = %+v", cfg)
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "*.test.js" {
		t.Fatalf("ignore = %v", cfg.Ignore)
	}
	if cfg.Include.Builtins {
		t.Fatal("builtins should be disabled")
	}
	// Untouched toggles keep their defaults.
	if !cfg.Include.Assets || !cfg.Include.Packages {
		t.Fatalf("include = %+v", cfg.Include)
	}
}

func TestLoadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if _, err := LoadFile(path); !os.IsNotExist(err) {
		t.Fatalf("explicitly named config must exist, got %v", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte(":\tnot yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed config must error")
	}
}

func TestIncludeMap(t *testing.T) {
	cfg := Default()
	cfg.Include.Externals = false
	m := cfg.IncludeMap()
	if !m[graph.KindFile] {
		t.Fatal("File must always be included")
	}
	if m[graph.KindExternal] {
		t.Fatal("External should be excluded")
	}
	if m[graph.KindFolder] {
		t.Fatal("Folder is excluded by default")
	}
}
