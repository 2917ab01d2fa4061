package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"learnify/internal/platform/config"
)

func TestNewAppliesDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, ".learnify", "learnify.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	if cfg.Cache.DefaultStale != 5*time.Minute || cfg.Cache.CatalogStale != 10*time.Minute ||
		cfg.Cache.SearchStale != 2*time.Minute || cfg.Cache.RecommendStale != 15*time.Minute ||
		cfg.Cache.GCTime != 10*time.Minute {
		t.Fatalf("unexpected cache windows: %+v", cfg.Cache)
	}
	if cfg.Cache.Retries != 3 || cfg.Query.MinSearchLength != 3 || cfg.Query.RecommendLimit != 4 {
		t.Fatalf("unexpected limits: %+v %+v", cfg.Cache, cfg.Query)
	}
	if cfg.Storage.Driver != config.StorageSQLite || cfg.Storage.Prefix != "learnify_" {
		t.Fatalf("unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.Enrollment.StrictValidation {
		t.Fatalf("strict validation must be off by default")
	}
}

func TestNewReadsConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	content := "storage:\n  driver: memory\ncache:\n  search_stale: 30s\nenrollment:\n  strict_validation: true\n"
	if err := os.WriteFile(filepath.Join(dir, "learnify.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Storage.Driver != config.StorageMemory {
		t.Fatalf("expected memory driver, got %s", cfg.Storage.Driver)
	}
	if cfg.Cache.SearchStale != 30*time.Second {
		t.Fatalf("expected 30s search stale, got %s", cfg.Cache.SearchStale)
	}
	if !cfg.Enrollment.StrictValidation {
		t.Fatalf("expected strict validation from file")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	t.Parallel()
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty data dir must fail")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "learnify.yaml"), []byte("storage:\n  driver: redis\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.New(dir); err == nil {
		t.Fatalf("redis without address must fail")
	}
}
