// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

// The trainer binary runs one end-to-end training pass and exits:
// ingest CSVs, build the graph, train embeddings, persist a new
// artifact version. Running servers pick the version up on their next
// start or scheduled reload.
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/atlashr/talentgraph/internal/artifact"
	"github.com/atlashr/talentgraph/internal/config"
	"github.com/atlashr/talentgraph/internal/directory"
	"github.com/atlashr/talentgraph/internal/embedding"
	"github.com/atlashr/talentgraph/internal/logging"
	"github.com/atlashr/talentgraph/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("training run failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := artifact.NewStore(cfg.Artifacts.Dir)
	if err != nil {
		return err
	}

	dir, err := directory.Open(directory.Options{
		Path:     cfg.Directory.Path,
		InMemory: cfg.Directory.InMemory,
	})
	if err != nil {
		return fmt.Errorf("open directory: %w", err)
	}
	defer func() {
		if err := dir.Close(); err != nil {
			logging.Warn().Err(err).Msg("directory close failed")
		}
	}()

	svc := services.NewTrainingService(services.TrainingOptions{
		EmployeesPath: cfg.Data.EmployeesPath,
		SkillsPath:    cfg.Data.SkillsPath,
		Embedding: embedding.Config{
			Dimensions:      cfg.Training.Dimensions,
			WalkLength:      cfg.Training.WalkLength,
			NumWalks:        cfg.Training.NumWalks,
			WindowSize:      cfg.Training.WindowSize,
			NegativeSamples: cfg.Training.NegativeSamples,
			Epochs:          cfg.Training.Epochs,
			LearningRate:    cfg.Training.LearningRate,
			ReturnParam:     cfg.Training.ReturnParam,
			InOutParam:      cfg.Training.InOutParam,
			Workers:         cfg.Training.Workers,
			Seed:            cfg.Training.Seed,
		},
		KeepVersions: cfg.Artifacts.KeepVersions,
	}, store, dir, nil)

	return svc.RunOnce(ctx)
}
