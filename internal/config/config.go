// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

// Package config provides layered configuration for TalentGraph.
//
// Configuration is loaded with Koanf v2 in three layers with increasing
// precedence: built-in defaults, an optional YAML config file, and
// environment variables. The resulting struct is validated with
// go-playground/validator before use.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration for all TalentGraph binaries.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Data       DataConfig       `koanf:"data"`
	Artifacts  ArtifactsConfig  `koanf:"artifacts"`
	Directory  DirectoryConfig  `koanf:"directory"`
	Training   TrainingConfig   `koanf:"training"`
	Similarity SimilarityConfig `koanf:"similarity"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	API        APIConfig        `koanf:"api"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port" validate:"gt=0,lte=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// DataConfig points at the upstream workforce snapshot files.
type DataConfig struct {
	// EmployeesPath is the employee registry CSV (id, department, job role).
	EmployeesPath string `koanf:"employees_path" validate:"required"`

	// SkillsPath is the skill-assignment ledger CSV
	// (employee id, skill name, proficiency).
	SkillsPath string `koanf:"skills_path" validate:"required"`
}

// ArtifactsConfig holds trained-model artifact storage settings.
type ArtifactsConfig struct {
	// Dir is the root directory for versioned snapshot artifacts.
	Dir string `koanf:"dir" validate:"required"`

	// KeepVersions is how many snapshot versions to retain when pruning.
	KeepVersions int `koanf:"keep_versions" validate:"gte=1"`
}

// DirectoryConfig holds the badger-backed employee directory settings.
type DirectoryConfig struct {
	// Path is the badger database directory. Ignored when InMemory is set.
	Path string `koanf:"path"`

	// InMemory runs the directory entirely in memory (tests, ephemeral runs).
	InMemory bool `koanf:"in_memory"`
}

// TrainingConfig holds embedding training hyperparameters and scheduling.
type TrainingConfig struct {
	// Dimensions is the embedding vector length D.
	Dimensions int `koanf:"dimensions" validate:"gt=0"`

	// WalkLength is the number of steps per random walk.
	WalkLength int `koanf:"walk_length" validate:"gt=1"`

	// NumWalks is how many walks start from each node.
	NumWalks int `koanf:"num_walks" validate:"gt=0"`

	// WindowSize is the skip-gram context window.
	WindowSize int `koanf:"window_size" validate:"gt=0"`

	// NegativeSamples is the number of negative samples per positive pair.
	NegativeSamples int `koanf:"negative_samples" validate:"gt=0"`

	// Epochs is the number of passes over the walk corpus.
	Epochs int `koanf:"epochs" validate:"gt=0"`

	// LearningRate is the initial SGD step size.
	LearningRate float64 `koanf:"learning_rate" validate:"gt=0"`

	// ReturnParam is the node2vec return parameter p.
	// 1.0 reduces the walk to unbiased first-order behavior.
	ReturnParam float64 `koanf:"return_param" validate:"gt=0"`

	// InOutParam is the node2vec in-out parameter q.
	// 1.0 reduces the walk to unbiased first-order behavior.
	InOutParam float64 `koanf:"in_out_param" validate:"gt=0"`

	// Workers bounds the walk-generation worker pool. 0 = runtime.NumCPU().
	Workers int `koanf:"workers" validate:"gte=0"`

	// Seed makes walk sampling and model initialization reproducible.
	Seed int64 `koanf:"seed"`

	// Interval is how often the serving binary retrains. 0 disables.
	Interval time.Duration `koanf:"interval"`

	// OnStartup triggers a training run when the serving binary starts.
	OnStartup bool `koanf:"on_startup"`
}

// SimilarityConfig holds similarity query limits.
type SimilarityConfig struct {
	DefaultTopK int `koanf:"default_top_k" validate:"gt=0"`
	MaxTopK     int `koanf:"max_top_k" validate:"gt=0"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	// SimilarPool is how many similar employees feed career-path generation.
	SimilarPool int `koanf:"similar_pool" validate:"gt=0"`

	// MaxPaths is the maximum number of career-path recommendations returned.
	MaxPaths int `koanf:"max_paths" validate:"gt=0"`

	// CacheTTL is the per-request result cache lifetime. 0 disables caching.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// APIConfig holds HTTP API settings.
type APIConfig struct {
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"gt=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// defaultConfig returns a Config with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8460,
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Data: DataConfig{
			EmployeesPath: "/data/employees.csv",
			SkillsPath:    "/data/employee_skills.csv",
		},
		Artifacts: ArtifactsConfig{
			Dir:          "/data/mobility",
			KeepVersions: 3,
		},
		Directory: DirectoryConfig{
			Path:     "/data/directory",
			InMemory: false,
		},
		Training: TrainingConfig{
			Dimensions:      128,
			WalkLength:      80,
			NumWalks:        10,
			WindowSize:      10,
			NegativeSamples: 5,
			Epochs:          5,
			LearningRate:    0.025,
			ReturnParam:     1.0,
			InOutParam:      1.0,
			Workers:         0, // 0 = runtime.NumCPU()
			Seed:            42,
			Interval:        24 * time.Hour,
			OnStartup:       false,
		},
		Similarity: SimilarityConfig{
			DefaultTopK: 5,
			MaxTopK:     100,
		},
		Recommend: RecommendConfig{
			SimilarPool: 10,
			MaxPaths:    5,
			CacheTTL:    5 * time.Minute,
		},
		API: APIConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}
