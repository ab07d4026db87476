// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package graph

// Metrics describes the shape of a built graph for reporting and the
// serving-path graph metrics endpoint.
type Metrics struct {
	Employees     int     `json:"total_employees"`
	Skills        int     `json:"total_skills"`
	Edges         int     `json:"total_edges"`
	AverageDegree float64 `json:"avg_skills_per_employee"`
	Density       float64 `json:"graph_density"`
}

// ComputeMetrics derives structural metrics from the graph.
//
// AverageDegree is edges per employee node, not the graph-theoretic mean
// degree: it reads as "skills per employee" in reports. Density uses the
// standard simple-graph formula 2E / (N(N-1)) over all nodes. Both are 0
// for graphs too small for the formula to apply.
func ComputeMetrics(g *Graph) Metrics {
	m := Metrics{
		Employees: g.EmployeeCount(),
		Skills:    g.SkillCount(),
		Edges:     g.EdgeCount(),
	}

	if m.Employees > 0 {
		m.AverageDegree = float64(m.Edges) / float64(m.Employees)
	}

	n := g.NodeCount()
	if n > 1 {
		m.Density = 2.0 * float64(m.Edges) / (float64(n) * float64(n-1))
	}

	return m
}
