// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package graph

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/atlashr/talentgraph/internal/ingest"
	"github.com/atlashr/talentgraph/internal/logging"
	"github.com/atlashr/talentgraph/internal/metrics"
)

// BuildStats summarizes one construction pass.
type BuildStats struct {
	Employees      int `json:"employees"`
	Skills         int `json:"skills"`
	Edges          int `json:"edges"`
	RecordsTotal   int `json:"records_total"`
	RecordsSkipped int `json:"records_skipped"`
}

// Builder constructs the bipartite graph from an employee registry and a
// skill-assignment ledger. Construction is deterministic: the same input
// always yields an equal graph.
type Builder struct {
	logger zerolog.Logger
}

// NewBuilder creates a graph builder.
func NewBuilder() *Builder {
	return &Builder{
		logger: logging.WithComponent("graph-builder"),
	}
}

// Build assembles the graph. Every employee in the registry becomes a
// node even when no assignment references it, so workforce coverage
// metrics stay honest. Malformed assignment records are skipped and
// logged with record context, never failing the batch. Duplicate
// employee-skill pairs keep the maximum proficiency seen.
func (b *Builder) Build(employees []ingest.Employee, assignments []ingest.SkillAssignment) (*Graph, BuildStats) {
	g := newGraph()

	for _, e := range employees {
		g.addNode(Node{
			ID:         e.ID,
			Type:       NodeEmployee,
			Department: e.Department,
			Role:       e.JobRole,
		})
	}

	skipped := 0
	for i, a := range assignments {
		reason, ok := b.validateAssignment(a)
		if !ok {
			skipped++
			metrics.RecordsSkipped.WithLabelValues(reason).Inc()
			b.logger.Warn().
				Int("record", i).
				Str("employee_id", a.EmployeeID).
				Str("skill_name", a.SkillName).
				Str("proficiency", a.Proficiency).
				Str("reason", reason).
				Msg("skipping malformed skill assignment")
			continue
		}

		prof, err := ingest.ParseProficiency(a.Proficiency)
		if err != nil {
			skipped++
			metrics.RecordsSkipped.WithLabelValues("unknown_proficiency").Inc()
			b.logger.Warn().
				Int("record", i).
				Str("employee_id", a.EmployeeID).
				Str("skill_name", a.SkillName).
				Str("proficiency", a.Proficiency).
				Msg("skipping assignment with unknown proficiency")
			continue
		}

		employeeID := strings.TrimSpace(a.EmployeeID)
		skillID := SkillNodeID(strings.TrimSpace(a.SkillName))

		// Assignments may reference employees absent from the registry;
		// the node is created without department or role attributes.
		g.addNode(Node{ID: employeeID, Type: NodeEmployee})
		g.addNode(Node{ID: skillID, Type: NodeSkill})
		g.addEdge(employeeID, skillID, float64(prof))
	}

	stats := BuildStats{
		Employees:      g.EmployeeCount(),
		Skills:         g.SkillCount(),
		Edges:          g.EdgeCount(),
		RecordsTotal:   len(assignments),
		RecordsSkipped: skipped,
	}

	b.logger.Info().
		Int("employees", stats.Employees).
		Int("skills", stats.Skills).
		Int("edges", stats.Edges).
		Int("records_total", stats.RecordsTotal).
		Int("records_skipped", stats.RecordsSkipped).
		Msg("graph constructed")

	return g, stats
}

// validateAssignment checks required fields, returning a skip reason
// when the record is unusable.
func (b *Builder) validateAssignment(a ingest.SkillAssignment) (string, bool) {
	if strings.TrimSpace(a.EmployeeID) == "" {
		return "missing_employee_id", false
	}
	if strings.TrimSpace(a.SkillName) == "" {
		return "missing_skill_name", false
	}
	return "", true
}
