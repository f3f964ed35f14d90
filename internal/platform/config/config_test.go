package config_test

import (
	"path/filepath"
	"testing"

	"github.com/javikin/umbral-sub003/internal/platform/config"
)

func TestNewDerivesPathsFromDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UMBRAL_DATA_DIR", "")
	t.Setenv("UMBRAL_DB_PATH", "")
	t.Setenv("UMBRAL_TUNING", "")
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, "umbral.db") {
		t.Fatalf("unexpected db path: %s", cfg.DBPath)
	}
	if cfg.TuningPath != filepath.Join(dir, "tuning.yaml") {
		t.Fatalf("unexpected tuning path: %s", cfg.TuningPath)
	}
	if cfg.LogMode != "development" {
		t.Fatalf("expected development log mode, got %s", cfg.LogMode)
	}
}

func TestNewEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UMBRAL_DATA_DIR", "")
	t.Setenv("UMBRAL_DB_PATH", filepath.Join(dir, "custom.db"))
	t.Setenv("UMBRAL_TUNING", "")
	t.Setenv("UMBRAL_LOG_MODE", "production")
	t.Setenv("UMBRAL_VERIFIER_PLUGIN", "/opt/tagverifier")
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, "custom.db") || cfg.LogMode != "production" || cfg.VerifierPlugin != "/opt/tagverifier" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestNewRequiresDataDir(t *testing.T) {
	t.Setenv("UMBRAL_DATA_DIR", "")
	if _, err := config.New(""); err == nil {
		t.Fatalf("expected error without data dir")
	}
}
