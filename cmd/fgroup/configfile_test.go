package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigOrdersPatternsAndNestsMaps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "root: .\nfiles:\n  \"*.txt\": text\n  src:\n    \"*.go\": source\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if len(cfg.Patterns) != 2 {
		t.Fatalf("got %d top-level patterns, want 2", len(cfg.Patterns))
	}
	if cfg.Patterns[0].Pattern != "*.txt" || cfg.Patterns[0].Value != "text" {
		t.Fatalf("patterns[0] = %+v", cfg.Patterns[0])
	}
	if cfg.Patterns[1].Pattern != "src" {
		t.Fatalf("patterns[1] = %+v, want pattern src", cfg.Patterns[1])
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("bogus_key: true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Fatalf("expected an error for an unknown top-level config key")
	}
}

func TestLoadConfigRejectsMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func TestValidateGlobKeyRejectsBadSyntax(t *testing.T) {
	if err := validateGlobKey("["); err == nil {
		t.Fatalf("expected an error for unbalanced character class syntax")
	}
}

func TestValidateGlobKeyAcceptsAlternation(t *testing.T) {
	if err := validateGlobKey("*.go, *.md"); err != nil {
		t.Fatalf("validateGlobKey: %v", err)
	}
}
