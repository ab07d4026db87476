// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

// Package similarity answers "who resembles this employee" queries by
// ranking cosine similarity over the embedding space. Only employee
// nodes are candidates; skill nodes never appear in results.
package similarity

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/atlashr/talentgraph/internal/graph"
	"github.com/atlashr/talentgraph/internal/snapshot"
)

// ErrEmployeeNotFound is returned when the queried employee has no node
// in the serving graph. Callers surface this to the client; the serving
// process keeps running.
var ErrEmployeeNotFound = errors.New("similarity: employee not found")

// Match is one ranked similar employee. Score is cosine similarity
// clipped to [0, 1] for display.
type Match struct {
	EmployeeID string  `json:"employee_id"`
	Department string  `json:"department,omitempty"`
	Role       string  `json:"job_role,omitempty"`
	Score      float64 `json:"similarity_score"`
}

// Engine ranks employees by embedding similarity against a snapshot.
// Engines are stateless; one is created per query path and reads
// whatever snapshot the holder currently serves.
type Engine struct {
	holder *snapshot.Holder
}

// NewEngine creates a similarity engine over the snapshot holder.
func NewEngine(holder *snapshot.Holder) *Engine {
	return &Engine{holder: holder}
}

// SimilarEmployees returns up to topK employees most similar to the
// given employee, ordered by descending score with ascending ID as the
// tie-break. The queried employee is excluded. Negative cosine values
// clip to 0 in the result but keep their true ordering.
func (e *Engine) SimilarEmployees(employeeID string, topK int) ([]Match, error) {
	snap := e.holder.Current()
	if snap == nil {
		return nil, errors.New("similarity: no serving snapshot")
	}
	return SimilarInSnapshot(snap, employeeID, topK)
}

// SimilarInSnapshot ranks similar employees within an explicit
// snapshot, so callers composing multiple lookups see one consistent
// state.
func SimilarInSnapshot(snap *snapshot.Snapshot, employeeID string, topK int) ([]Match, error) {
	if !snap.Graph.HasNode(employeeID) {
		return nil, fmt.Errorf("employee %q: %w", employeeID, ErrEmployeeNotFound)
	}

	queryVec, ok := snap.Embeddings.Vector(employeeID)
	if !ok {
		// Every graph node gets a vector at training time; a miss here
		// means the snapshot pair is inconsistent.
		return nil, fmt.Errorf("employee %q has no embedding: %w", employeeID, ErrEmployeeNotFound)
	}

	if topK <= 0 {
		return []Match{}, nil
	}

	candidates := snap.Graph.NodeIDs(graph.NodeEmployee)
	matches := make([]Match, 0, len(candidates))
	for _, id := range candidates {
		if id == employeeID {
			continue
		}
		vec, ok := snap.Embeddings.Vector(id)
		if !ok {
			continue
		}
		n, _ := snap.Graph.Node(id)
		matches = append(matches, Match{
			EmployeeID: id,
			Department: n.Department,
			Role:       n.Role,
			Score:      Cosine(queryVec, vec),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].EmployeeID < matches[j].EmployeeID
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}

	// Clip after ranking so negative scores still order correctly.
	for i := range matches {
		if matches[i].Score < 0 {
			matches[i].Score = 0
		}
	}
	return matches, nil
}

// Cosine computes cosine similarity between two vectors. Zero vectors
// or mismatched lengths yield 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
