package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DataDir        string `env:"UMBRAL_DATA_DIR"`
	DBPath         string `env:"UMBRAL_DB_PATH"`
	TuningPath     string `env:"UMBRAL_TUNING"`
	LogMode        string `env:"UMBRAL_LOG_MODE" envDefault:"development"`
	VerifierPlugin string `env:"UMBRAL_VERIFIER_PLUGIN"`
	// VerifierPluginSHA256 pins the plugin binary when set.
	VerifierPluginSHA256 string `env:"UMBRAL_VERIFIER_PLUGIN_SHA256"`
}

// New derives file locations from dataDir, then lets environment variables override them.
func New(dataDir string) (Config, error) {
	cfg := Config{DataDir: dataDir}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "umbral.db")
	}
	if cfg.TuningPath == "" {
		cfg.TuningPath = filepath.Join(cfg.DataDir, "tuning.yaml")
	}
	return cfg, nil
}
