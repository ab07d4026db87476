// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

// The server binary runs the full mobility engine: supervised training
// pipeline, snapshot reloading, and the HTTP query API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/atlashr/talentgraph/internal/api"
	"github.com/atlashr/talentgraph/internal/artifact"
	"github.com/atlashr/talentgraph/internal/config"
	"github.com/atlashr/talentgraph/internal/directory"
	"github.com/atlashr/talentgraph/internal/embedding"
	"github.com/atlashr/talentgraph/internal/events"
	"github.com/atlashr/talentgraph/internal/logging"
	"github.com/atlashr/talentgraph/internal/recommend"
	"github.com/atlashr/talentgraph/internal/services"
	"github.com/atlashr/talentgraph/internal/similarity"
	"github.com/atlashr/talentgraph/internal/snapshot"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server failed")
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
	logging.Info().
		Str("employees_path", cfg.Data.EmployeesPath).
		Str("skills_path", cfg.Data.SkillsPath).
		Str("artifacts_dir", cfg.Artifacts.Dir).
		Msg("talentgraph server starting")

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

	bus := events.NewBus()
	defer func() { _ = bus.Close() }() //nolint:errcheck // process is exiting

	holder := &snapshot.Holder{}
	simEngine := similarity.NewEngine(holder)
	recEngine := recommend.NewEngine(holder, dir, recommend.Config{
		SimilarPool: cfg.Recommend.SimilarPool,
		MaxPaths:    cfg.Recommend.MaxPaths,
		CacheTTL:    cfg.Recommend.CacheTTL,
	})

	trainSvc := services.NewTrainingService(services.TrainingOptions{
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
		Interval:     cfg.Training.Interval,
		OnStartup:    cfg.Training.OnStartup,
		KeepVersions: cfg.Artifacts.KeepVersions,
	}, store, dir, bus)

	reloadSvc := services.NewReloadService(store, holder, bus, recEngine.CleanupCache)

	router := api.NewRouter(holder, simEngine, recEngine, api.RouterConfig{
		RateLimitRequests: cfg.API.RateLimitReqs,
		RateLimitWindow:   cfg.API.RateLimitWindow,
		CORSOrigins:       cfg.API.CORSOrigins,
		DefaultTopK:       cfg.Similarity.DefaultTopK,
		MaxTopK:           cfg.Similarity.MaxTopK,
	}).WithTrainTrigger(trainSvc.Trigger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpSvc := services.NewHTTPService(addr, router.Handler(), cfg.Server.Timeout)

	tree := services.NewTree(logging.NewSlogLogger(), services.DefaultTreeConfig())
	tree.AddPipelineService(trainSvc)
	tree.AddPipelineService(reloadSvc)
	tree.AddAPIService(httpSvc)

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logging.Info().Msg("talentgraph server stopped")
	return nil
}
