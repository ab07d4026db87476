// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package ingest

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "duckdb" database/sql driver.
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/atlashr/talentgraph/internal/logging"
)

// Loader reads workforce snapshot CSVs through an in-memory DuckDB
// instance. DuckDB handles quoting, type sniffing, and large files far
// better than a hand-rolled CSV reader, and keeps ingestion SQL-shaped.
type Loader struct {
	db *sql.DB
}

// NewLoader opens an in-memory DuckDB instance for CSV ingestion.
func NewLoader() (*Loader, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &Loader{db: db}, nil
}

// Close releases the underlying DuckDB instance.
func (l *Loader) Close() error {
	return l.db.Close()
}

// LoadEmployees reads the employee registry CSV.
// The registry is assumed pre-validated and deduplicated upstream; rows
// failing basic validation are still rejected here as a guard.
func (l *Loader) LoadEmployees(ctx context.Context, path string) ([]Employee, error) {
	query := `
		SELECT
			CAST(employee_id AS VARCHAR),
			COALESCE(CAST(department AS VARCHAR), ''),
			COALESCE(CAST(job_role AS VARCHAR), '')
		FROM read_csv_auto(?, header = true)`

	rows, err := l.db.QueryContext(ctx, query, path)
	if err != nil {
		return nil, fmt.Errorf("read employees csv %s: %w", path, err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // error on close after read is not actionable

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Department, &e.JobRole); err != nil {
			return nil, fmt.Errorf("scan employee row: %w", err)
		}
		if err := ValidateEmployee(e); err != nil {
			logging.Warn().Err(err).Msg("rejecting invalid employee registry row")
			continue
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}

	logging.Info().Int("employees", len(employees)).Str("path", path).Msg("loaded employee registry")
	return employees, nil
}

// LoadSkillAssignments reads the skill-assignment ledger CSV.
// Rows are returned as-is; the graph builder performs per-record
// validation so malformed rows are skipped with record-level context
// instead of failing the batch here.
func (l *Loader) LoadSkillAssignments(ctx context.Context, path string) ([]SkillAssignment, error) {
	query := `
		SELECT
			COALESCE(CAST(employee_id AS VARCHAR), ''),
			COALESCE(CAST(skill_name AS VARCHAR), ''),
			COALESCE(CAST(proficiency AS VARCHAR), '')
		FROM read_csv_auto(?, header = true)`

	rows, err := l.db.QueryContext(ctx, query, path)
	if err != nil {
		return nil, fmt.Errorf("read skill assignments csv %s: %w", path, err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // error on close after read is not actionable

	var assignments []SkillAssignment
	for rows.Next() {
		var a SkillAssignment
		if err := rows.Scan(&a.EmployeeID, &a.SkillName, &a.Proficiency); err != nil {
			return nil, fmt.Errorf("scan skill assignment row: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skill assignments: %w", err)
	}

	logging.Info().Int("assignments", len(assignments)).Str("path", path).Msg("loaded skill-assignment ledger")
	return assignments, nil
}
