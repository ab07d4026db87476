// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

// Package ingest defines the validated record types at the ingestion
// boundary and loads workforce snapshots from CSV files through DuckDB.
//
// Upstream systems deliver two files: the employee registry and the
// skill-assignment ledger. Both are read as immutable snapshots once per
// training run.
package ingest

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Proficiency is the ordinal skill level used as edge weight.
type Proficiency int

const (
	// ProficiencyBeginner is the lowest proficiency level.
	ProficiencyBeginner Proficiency = 1
	// ProficiencyIntermediate indicates working knowledge.
	ProficiencyIntermediate Proficiency = 2
	// ProficiencyAdvanced indicates deep practical experience.
	ProficiencyAdvanced Proficiency = 3
	// ProficiencyExpert is the highest proficiency level.
	ProficiencyExpert Proficiency = 4
)

// String returns the canonical label for the proficiency level.
func (p Proficiency) String() string {
	switch p {
	case ProficiencyBeginner:
		return "Beginner"
	case ProficiencyIntermediate:
		return "Intermediate"
	case ProficiencyAdvanced:
		return "Advanced"
	case ProficiencyExpert:
		return "Expert"
	default:
		return "Unknown"
	}
}

// ParseProficiency maps a proficiency label to its ordinal level.
// Labels are matched case-insensitively. Unrecognized labels are an
// error; the graph builder skips and logs such records rather than
// guessing a default.
func ParseProficiency(label string) (Proficiency, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "beginner":
		return ProficiencyBeginner, nil
	case "intermediate":
		return ProficiencyIntermediate, nil
	case "advanced":
		return ProficiencyAdvanced, nil
	case "expert":
		return ProficiencyExpert, nil
	default:
		return 0, fmt.Errorf("unknown proficiency label %q", label)
	}
}

// Employee is one row of the employee registry.
type Employee struct {
	ID         string `json:"employee_id" validate:"required"`
	Department string `json:"department"`
	JobRole    string `json:"job_role"`
}

// SkillAssignment is one row of the skill-assignment ledger.
// Records may arrive malformed; the graph builder validates each one
// and skips invalid rows without aborting the batch.
type SkillAssignment struct {
	EmployeeID  string `json:"employee_id"`
	SkillName   string `json:"skill_name"`
	Proficiency string `json:"proficiency"`
}

// validate is shared by the loaders; validator instances are safe for
// concurrent use and cache struct metadata.
var validate = validator.New()

// ValidateEmployee checks an employee registry row.
func ValidateEmployee(e Employee) error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("employee record: %w", err)
	}
	return nil
}
