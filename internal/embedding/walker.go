// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package embedding

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/atlashr/talentgraph/internal/graph"
	"github.com/atlashr/talentgraph/internal/metrics"
)

// walker generates second-order biased random walks over the graph.
// Transition weights follow edge weight times a bias term: 1/p for
// stepping back to the previous node, 1 for stepping to a neighbor of
// the previous node, 1/q otherwise. On a bipartite graph the middle
// case never fires (neighbors of the previous node sit in the walker's
// own partition), so p and q alone shape the walk.
type walker struct {
	g   *graph.Graph
	cfg Config
}

// generateWalks produces NumWalks walks of WalkLength from every
// non-isolated node, sharded across workers. Each worker derives its
// rng from the base seed and its shard index so results are
// reproducible regardless of scheduling.
func (w *walker) generateWalks(ctx context.Context) ([][]string, error) {
	startNodes := make([]string, 0, w.g.NodeCount())
	for _, id := range w.g.AllNodeIDs() {
		if w.g.Degree(id) > 0 {
			startNodes = append(startNodes, id)
		}
	}
	if len(startNodes) == 0 {
		return nil, nil
	}

	workers := w.cfg.Workers
	if workers > len(startNodes) {
		workers = len(startNodes)
	}
	chunkSize := (len(startNodes) + workers - 1) / workers

	results := make([][][]string, workers)
	eg, ctx := errgroup.WithContext(ctx)

	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > len(startNodes) {
			end = len(startNodes)
		}
		if start >= end {
			break
		}

		shard := i
		nodes := startNodes[start:end]
		eg.Go(func() error {
			rng := rand.New(rand.NewSource(w.cfg.Seed + int64(shard))) //nolint:gosec // reproducibility matters, not cryptographic strength
			walks := make([][]string, 0, len(nodes)*w.cfg.NumWalks)
			for _, node := range nodes {
				for n := 0; n < w.cfg.NumWalks; n++ {
					if err := ctx.Err(); err != nil {
						return err
					}
					walks = append(walks, w.walk(node, rng))
				}
			}
			results[shard] = walks
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var walks [][]string
	for _, shard := range results {
		walks = append(walks, shard...)
	}
	metrics.WalksGenerated.Add(float64(len(walks)))
	return walks, nil
}

// walk performs one biased walk starting at the given node. The walk
// ends early if it reaches a node with no neighbors.
func (w *walker) walk(start string, rng *rand.Rand) []string {
	path := make([]string, 1, w.cfg.WalkLength)
	path[0] = start

	for len(path) < w.cfg.WalkLength {
		current := path[len(path)-1]
		neighbors := w.g.Neighbors(current)
		if len(neighbors) == 0 {
			break
		}

		var next string
		if len(path) == 1 {
			next = w.firstStep(current, neighbors, rng)
		} else {
			next = w.biasedStep(path[len(path)-2], current, neighbors, rng)
		}
		path = append(path, next)
	}

	return path
}

// firstStep samples a neighbor proportionally to edge weight.
func (w *walker) firstStep(current string, neighbors []string, rng *rand.Rand) string {
	total := 0.0
	for _, n := range neighbors {
		total += w.g.Weight(current, n)
	}

	r := rng.Float64() * total
	for _, n := range neighbors {
		r -= w.g.Weight(current, n)
		if r <= 0 {
			return n
		}
	}
	return neighbors[len(neighbors)-1]
}

// biasedStep samples the next node with the second-order bias applied
// on top of edge weights.
func (w *walker) biasedStep(prev, current string, neighbors []string, rng *rand.Rand) string {
	weights := make([]float64, len(neighbors))
	total := 0.0
	for i, n := range neighbors {
		weight := w.g.Weight(current, n)
		switch {
		case n == prev:
			weight /= w.cfg.ReturnParam
		case w.g.HasEdge(n, prev):
			// unmodified
		default:
			weight /= w.cfg.InOutParam
		}
		weights[i] = weight
		total += weight
	}

	r := rng.Float64() * total
	for i, n := range neighbors {
		r -= weights[i]
		if r <= 0 {
			return n
		}
	}
	return neighbors[len(neighbors)-1]
}
