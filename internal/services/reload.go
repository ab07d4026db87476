// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/atlashr/talentgraph/internal/artifact"
	"github.com/atlashr/talentgraph/internal/events"
	"github.com/atlashr/talentgraph/internal/logging"
	"github.com/atlashr/talentgraph/internal/metrics"
	"github.com/atlashr/talentgraph/internal/snapshot"
)

// cacheCleanupInterval paces eviction of expired recommendation cache entries.
const cacheCleanupInterval = time.Minute

// ReloadService keeps the serving snapshot current. At startup it loads
// the latest persisted artifact version, then it swaps in each version
// the training service announces on the bus. It also runs the periodic
// cache cleanup for the query engines.
type ReloadService struct {
	store  *artifact.Store
	holder *snapshot.Holder
	bus    *events.Bus
	// cleanup is invoked on a timer; the serving process passes the
	// recommendation engine's cache eviction here.
	cleanup func()
	logger  zerolog.Logger
}

var _ suture.Service = (*ReloadService)(nil)

// NewReloadService creates the reload service. cleanup may be nil.
func NewReloadService(store *artifact.Store, holder *snapshot.Holder, bus *events.Bus, cleanup func()) *ReloadService {
	return &ReloadService{
		store:   store,
		holder:  holder,
		bus:     bus,
		cleanup: cleanup,
		logger:  logging.WithComponent("reload-service"),
	}
}

// String names the service in supervisor events.
func (s *ReloadService) String() string { return "reload-service" }

// Serve loads the latest version if one exists, then follows bus
// announcements until ctx is cancelled. An empty store at startup is
// not an error here: with training-on-startup enabled the first
// announcement arrives shortly, and queries return a not-ready error
// until it does.
func (s *ReloadService) Serve(ctx context.Context) error {
	if err := s.loadLatest(); err != nil {
		if !errors.Is(err, artifact.ErrNotFound) {
			return err
		}
		s.logger.Warn().Msg("no persisted artifact yet, waiting for first training run")
	}

	var eventsCh <-chan events.SnapshotTrained
	if s.bus != nil {
		ch, err := s.bus.SubscribeSnapshotTrained(ctx)
		if err != nil {
			return err
		}
		eventsCh = ch
	}

	ticker := time.NewTicker(cacheCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if s.cleanup != nil {
				s.cleanup()
			}
		case event, ok := <-eventsCh:
			if !ok {
				return ctx.Err()
			}
			if err := s.loadVersion(event.Version); err != nil {
				// A corrupt or missing version never replaces the
				// serving snapshot.
				s.logger.Error().Err(err).Int("version", event.Version).Msg("snapshot reload failed")
			}
		}
	}
}

func (s *ReloadService) loadLatest() error {
	version, err := s.store.LatestVersion()
	if err != nil {
		return err
	}
	return s.loadVersion(version)
}

func (s *ReloadService) loadVersion(version int) error {
	g, table, manifest, err := s.store.Load(version)
	if err != nil {
		return err
	}

	s.holder.Swap(&snapshot.Snapshot{Graph: g, Embeddings: table, Manifest: manifest})
	metrics.SnapshotVersion.Set(float64(manifest.Version))
	metrics.SetGraphGauges(manifest.Employees, manifest.Skills, manifest.Edges)

	s.logger.Info().
		Int("version", manifest.Version).
		Str("snapshot_id", manifest.SnapshotID).
		Msg("serving snapshot swapped")
	return nil
}
