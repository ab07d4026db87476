// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.Server.Port != 8460 {
		t.Errorf("default port = %d, want 8460", cfg.Server.Port)
	}
	if cfg.Training.Dimensions != 128 || cfg.Training.WalkLength != 80 || cfg.Training.NumWalks != 10 {
		t.Errorf("training defaults = %+v", cfg.Training)
	}
	if cfg.Training.ReturnParam != 1.0 || cfg.Training.InOutParam != 1.0 {
		t.Errorf("walk bias defaults = p=%v q=%v, want 1.0/1.0", cfg.Training.ReturnParam, cfg.Training.InOutParam)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"zero dimensions", func(c *Config) { c.Training.Dimensions = 0 }},
		{"negative learning rate", func(c *Config) { c.Training.LearningRate = -1 }},
		{"empty employees path", func(c *Config) { c.Data.EmployeesPath = "" }},
		{"zero keep versions", func(c *Config) { c.Artifacts.KeepVersions = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() accepted invalid config")
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
training:
  dimensions: 64
  seed: 7
api:
  cors_origins:
    - https://hr.example.com
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090 from file", cfg.Server.Port)
	}
	if cfg.Training.Dimensions != 64 {
		t.Errorf("dimensions = %d, want 64 from file", cfg.Training.Dimensions)
	}
	// Untouched settings keep defaults.
	if cfg.Training.WalkLength != 80 {
		t.Errorf("walk_length = %d, want default 80", cfg.Training.WalkLength)
	}
	if len(cfg.API.CORSOrigins) != 1 || cfg.API.CORSOrigins[0] != "https://hr.example.com" {
		t.Errorf("cors origins = %v", cfg.API.CORSOrigins)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("TRAIN_DIMENSIONS", "32")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want env override 7070", cfg.Server.Port)
	}
	if cfg.Training.Dimensions != 32 {
		t.Errorf("dimensions = %d, want env override 32", cfg.Training.Dimensions)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
}

func TestEnvSliceParsing(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.API.CORSOrigins) != 2 {
		t.Fatalf("cors origins = %v, want 2 entries", cfg.API.CORSOrigins)
	}
	if cfg.API.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("second origin = %q", cfg.API.CORSOrigins[1])
	}
}

func TestEnvDurationParsing(t *testing.T) {
	t.Setenv("TRAIN_INTERVAL", "6h")
	t.Setenv("RECOMMEND_CACHE_TTL", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Training.Interval != 6*time.Hour {
		t.Errorf("interval = %v, want 6h", cfg.Training.Interval)
	}
	if cfg.Recommend.CacheTTL != 90*time.Second {
		t.Errorf("cache ttl = %v, want 90s", cfg.Recommend.CacheTTL)
	}
}

func TestUnmappedEnvVarsIgnored(t *testing.T) {
	t.Setenv("PATH_INFO", "garbage")
	t.Setenv("RANDOM_SETTING", "true")

	if _, err := Load(); err != nil {
		t.Errorf("Load() with unrelated env vars error = %v", err)
	}
}
