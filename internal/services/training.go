// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/atlashr/talentgraph/internal/artifact"
	"github.com/atlashr/talentgraph/internal/directory"
	"github.com/atlashr/talentgraph/internal/embedding"
	"github.com/atlashr/talentgraph/internal/events"
	"github.com/atlashr/talentgraph/internal/graph"
	"github.com/atlashr/talentgraph/internal/ingest"
	"github.com/atlashr/talentgraph/internal/logging"
	"github.com/atlashr/talentgraph/internal/metrics"
)

// TrainingOptions configures the supervised training loop.
type TrainingOptions struct {
	EmployeesPath string
	SkillsPath    string
	Embedding     embedding.Config
	// Interval between scheduled retraining runs. 0 disables the ticker.
	Interval time.Duration
	// OnStartup runs one training pass immediately when the service starts.
	OnStartup bool
	// KeepVersions bounds how many artifact versions Prune retains.
	KeepVersions int
}

// TrainingService runs the full pipeline on a schedule: ingest CSVs,
// build the graph, train embeddings, persist a new artifact version,
// sync the registry directory, and announce the version on the bus.
type TrainingService struct {
	opts    TrainingOptions
	store   *artifact.Store
	dir     *directory.Directory
	bus     *events.Bus
	trigger chan struct{}
	logger  zerolog.Logger
}

var _ suture.Service = (*TrainingService)(nil)

// NewTrainingService creates the training service. dir may be nil when
// no registry directory is configured.
func NewTrainingService(opts TrainingOptions, store *artifact.Store, dir *directory.Directory, bus *events.Bus) *TrainingService {
	return &TrainingService{
		opts:    opts,
		store:   store,
		dir:     dir,
		bus:     bus,
		trigger: make(chan struct{}, 1),
		logger:  logging.WithComponent("training-service"),
	}
}

// Trigger requests an out-of-schedule training run. Requests arriving
// while a run is already pending coalesce into one.
func (s *TrainingService) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// String names the service in supervisor events.
func (s *TrainingService) String() string { return "training-service" }

// Serve runs the training loop until ctx is cancelled. A failed run is
// logged and counted but does not crash the service; the last good
// artifact version keeps serving.
func (s *TrainingService) Serve(ctx context.Context) error {
	if s.opts.OnStartup {
		if err := s.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Error().Err(err).Msg("startup training run failed")
		}
	}

	var tick <-chan time.Time
	if s.opts.Interval > 0 {
		ticker := time.NewTicker(s.opts.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			if err := s.RunOnce(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Error().Err(err).Msg("scheduled training run failed")
			}
		case <-s.trigger:
			if err := s.RunOnce(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Error().Err(err).Msg("requested training run failed")
			}
		}
	}
}

// RunOnce executes a single end-to-end training pass.
func (s *TrainingService) RunOnce(ctx context.Context) error {
	start := time.Now()
	err := s.run(ctx)
	metrics.TrainingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TrainingRuns.WithLabelValues("error").Inc()
		return err
	}
	metrics.TrainingRuns.WithLabelValues("success").Inc()
	return nil
}

func (s *TrainingService) run(ctx context.Context) error {
	loader, err := ingest.NewLoader()
	if err != nil {
		return fmt.Errorf("open loader: %w", err)
	}
	defer func() { _ = loader.Close() }() //nolint:errcheck // in-memory instance, nothing to recover

	employees, err := loader.LoadEmployees(ctx, s.opts.EmployeesPath)
	if err != nil {
		return err
	}
	assignments, err := loader.LoadSkillAssignments(ctx, s.opts.SkillsPath)
	if err != nil {
		return err
	}

	g, stats := graph.NewBuilder().Build(employees, assignments)
	s.logger.Info().
		Int("employees", stats.Employees).
		Int("skills", stats.Skills).
		Int("edges", stats.Edges).
		Int("records_skipped", stats.RecordsSkipped).
		Msg("training graph ready")

	table, err := embedding.NewTrainer(s.opts.Embedding).Train(ctx, g)
	if err != nil {
		return fmt.Errorf("train embeddings: %w", err)
	}

	manifest, err := s.store.Save(g, table)
	if err != nil {
		return fmt.Errorf("persist artifact: %w", err)
	}
	if err := s.store.Prune(s.opts.KeepVersions); err != nil {
		s.logger.Warn().Err(err).Msg("artifact prune failed")
	}

	if s.dir != nil {
		if err := s.dir.PutAll(employees); err != nil {
			return fmt.Errorf("sync directory: %w", err)
		}
	}

	if s.bus != nil {
		if err := s.bus.PublishSnapshotTrained(events.SnapshotTrained{
			SnapshotID: manifest.SnapshotID,
			Version:    manifest.Version,
		}); err != nil {
			return err
		}
	}

	s.logger.Info().
		Int("version", manifest.Version).
		Str("snapshot_id", manifest.SnapshotID).
		Dur("elapsed", time.Since(manifest.TrainedAt)).
		Msg("training run complete")
	return nil
}
