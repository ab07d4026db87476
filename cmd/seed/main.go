// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

// The seed binary generates a synthetic workforce snapshot for local
// development and demos: an employee registry CSV and a matching
// skill-assignment ledger CSV.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/atlashr/talentgraph/internal/ingest"
	"github.com/atlashr/talentgraph/internal/logging"
)

var departments = []string{
	"Engineering", "Analytics", "Product", "Sales", "Marketing", "People Operations", "Finance",
}

var rolesByDepartment = map[string][]string{
	"Engineering":       {"Backend Engineer", "Frontend Engineer", "Data Engineer", "Site Reliability Engineer", "Engineering Manager"},
	"Analytics":         {"Data Analyst", "Data Scientist", "Analytics Engineer", "BI Developer"},
	"Product":           {"Product Manager", "Product Designer", "UX Researcher"},
	"Sales":             {"Account Executive", "Sales Engineer", "Sales Manager"},
	"Marketing":         {"Marketing Manager", "Content Strategist", "Growth Analyst"},
	"People Operations": {"HR Business Partner", "Recruiter", "People Analyst"},
	"Finance":           {"Financial Analyst", "Accountant", "Finance Manager"},
}

var skillPool = []string{
	"Python", "SQL", "Go", "Java", "JavaScript", "TypeScript", "Kubernetes", "Docker", "AWS", "GCP",
	"Terraform", "Spark", "Airflow", "dbt", "Tableau", "Power BI", "Excel", "Machine Learning",
	"Statistics", "A/B Testing", "Product Strategy", "Roadmapping", "User Research", "Figma",
	"Salesforce", "Negotiation", "Public Speaking", "SEO", "Content Writing", "Recruiting",
	"Compensation Analysis", "Financial Modeling", "Forecasting", "Project Management", "Agile",
}

var proficiencies = []string{"Beginner", "Intermediate", "Advanced", "Expert"}

func main() {
	var (
		count    = flag.Int("employees", 200, "number of employees to generate")
		outDir   = flag.String("out", ".", "output directory for CSV files")
		seed     = flag.Int64("seed", 42, "random seed")
		minSkill = flag.Int("min-skills", 3, "minimum skills per employee")
		maxSkill = flag.Int("max-skills", 8, "maximum skills per employee")
	)
	flag.Parse()

	if err := run(*count, *outDir, *seed, *minSkill, *maxSkill); err != nil {
		logging.Fatal().Err(err).Msg("seed generation failed")
	}
}

func run(count int, outDir string, seed int64, minSkills, maxSkills int) error {
	if minSkills < 1 || maxSkills < minSkills {
		return fmt.Errorf("invalid skill range %d..%d", minSkills, maxSkills)
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic demo data

	employeesPath := filepath.Join(outDir, "employees.csv")
	skillsPath := filepath.Join(outDir, "employee_skills.csv")

	employees := make([]ingest.Employee, 0, count)
	for i := 0; i < count; i++ {
		dept := departments[rng.Intn(len(departments))]
		roles := rolesByDepartment[dept]
		employees = append(employees, ingest.Employee{
			ID:         fmt.Sprintf("EMP%d", 1000+i),
			Department: dept,
			JobRole:    roles[rng.Intn(len(roles))],
		})
	}

	if err := writeEmployees(employeesPath, employees); err != nil {
		return err
	}

	assignments := 0
	if err := writeCSV(skillsPath, []string{"employee_id", "skill_name", "proficiency"}, func(w *csv.Writer) error {
		for _, e := range employees {
			numSkills := minSkills + rng.Intn(maxSkills-minSkills+1)
			for _, idx := range rng.Perm(len(skillPool))[:numSkills] {
				record := []string{e.ID, skillPool[idx], proficiencies[rng.Intn(len(proficiencies))]}
				if err := w.Write(record); err != nil {
					return err
				}
				assignments++
			}
		}
		return nil
	}); err != nil {
		return err
	}

	logging.Info().
		Int("employees", len(employees)).
		Int("assignments", assignments).
		Str("employees_path", employeesPath).
		Str("skills_path", skillsPath).
		Msg("synthetic workforce snapshot written")
	return nil
}

func writeEmployees(path string, employees []ingest.Employee) error {
	return writeCSV(path, []string{"employee_id", "department", "job_role"}, func(w *csv.Writer) error {
		for _, e := range employees {
			if err := w.Write([]string{e.ID, e.Department, e.JobRole}); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCSV(path string, header []string, body func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // close error caught via Flush/Error below

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := body(w); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}
