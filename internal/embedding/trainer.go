// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package embedding

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/atlashr/talentgraph/internal/graph"
	"github.com/atlashr/talentgraph/internal/logging"
)

// ErrDegenerateGraph is returned when the graph has no edges. Training
// on such a graph would produce meaningless vectors, so it fails fast.
var ErrDegenerateGraph = errors.New("embedding: graph has no edges")

// Table maps node IDs to their embedding vectors. Once published inside
// a snapshot it is treated as immutable.
type Table struct {
	Dimensions int                  `json:"dimensions"`
	Vectors    map[string][]float64 `json:"vectors"`
}

// Vector returns the embedding for a node.
func (t *Table) Vector(nodeID string) ([]float64, bool) {
	v, ok := t.Vectors[nodeID]
	return v, ok
}

// Len returns the number of embedded nodes.
func (t *Table) Len() int {
	return len(t.Vectors)
}

// Trainer runs the full embedding pipeline: biased walks, then
// skip-gram with negative sampling. A Trainer is safe to reuse across
// training runs.
type Trainer struct {
	cfg    Config
	logger zerolog.Logger
}

// NewTrainer creates a trainer. Zero config fields fall back to defaults.
func NewTrainer(cfg Config) *Trainer {
	return &Trainer{
		cfg:    cfg.withDefaults(),
		logger: logging.WithComponent("embedding-trainer"),
	}
}

// Train learns embeddings for every node in the graph. Every node gets
// a vector: connected nodes through the walk corpus, isolated nodes
// through small seeded random vectors so downstream lookups never miss.
// A graph with zero edges is a fatal input error.
func (t *Trainer) Train(ctx context.Context, g *graph.Graph) (*Table, error) {
	if g.EdgeCount() == 0 {
		return nil, ErrDegenerateGraph
	}

	start := time.Now()
	w := &walker{g: g, cfg: t.cfg}
	walks, err := w.generateWalks(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate walks: %w", err)
	}

	t.logger.Info().
		Int("walks", len(walks)).
		Int("walk_length", t.cfg.WalkLength).
		Dur("elapsed", time.Since(start)).
		Msg("walk corpus generated")

	sg := newSkipGram(walks, t.cfg)
	if err := sg.train(ctx, walks); err != nil {
		return nil, fmt.Errorf("skip-gram training: %w", err)
	}

	table := &Table{
		Dimensions: t.cfg.Dimensions,
		Vectors:    sg.vectors(),
	}
	t.fillIsolated(g, table)

	t.logger.Info().
		Int("nodes", table.Len()).
		Int("dimensions", table.Dimensions).
		Dur("elapsed", time.Since(start)).
		Msg("embedding training complete")

	return table, nil
}

// fillIsolated assigns small seeded random vectors to nodes the walk
// corpus never visited. Offsetting the seed keeps these distinct from
// the skip-gram init.
func (t *Trainer) fillIsolated(g *graph.Graph, table *Table) {
	rng := rand.New(rand.NewSource(t.cfg.Seed + 2)) //nolint:gosec // reproducibility matters, not cryptographic strength
	filled := 0
	for _, id := range g.AllNodeIDs() {
		if _, ok := table.Vectors[id]; ok {
			continue
		}
		v := make([]float64, t.cfg.Dimensions)
		for d := range v {
			v[d] = (rng.Float64() - 0.5) / float64(t.cfg.Dimensions)
		}
		table.Vectors[id] = v
		filled++
	}
	if filled > 0 {
		t.logger.Debug().Int("isolated_nodes", filled).Msg("assigned random vectors to isolated nodes")
	}
}
