// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

// Package snapshot holds the immutable serving state. Queries read a
// consistent (graph, embeddings, manifest) triple through a single
// atomic pointer, and retraining publishes a new triple with one swap.
// No locks sit on the query path.
package snapshot

import (
	"sync/atomic"

	"github.com/atlashr/talentgraph/internal/artifact"
	"github.com/atlashr/talentgraph/internal/embedding"
	"github.com/atlashr/talentgraph/internal/graph"
)

// Snapshot is one immutable serving state. Nothing mutates a snapshot
// after construction; a new training run produces a new snapshot.
type Snapshot struct {
	Graph      *graph.Graph
	Embeddings *embedding.Table
	Manifest   *artifact.Manifest
}

// Holder publishes the current snapshot to concurrent readers.
// The zero value holds no snapshot.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// Current returns the serving snapshot, or nil before the first Swap.
// Callers must treat the returned snapshot as read-only.
func (h *Holder) Current() *Snapshot {
	return h.current.Load()
}

// Swap atomically publishes a new snapshot and returns the previous
// one. In-flight queries holding the old snapshot finish against it.
func (h *Holder) Swap(s *Snapshot) *Snapshot {
	return h.current.Swap(s)
}

// Ready reports whether a snapshot has been published.
func (h *Holder) Ready() bool {
	return h.current.Load() != nil
}
