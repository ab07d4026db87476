// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package recommend

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/atlashr/talentgraph/internal/artifact"
	"github.com/atlashr/talentgraph/internal/embedding"
	"github.com/atlashr/talentgraph/internal/graph"
	"github.com/atlashr/talentgraph/internal/ingest"
	"github.com/atlashr/talentgraph/internal/similarity"
	"github.com/atlashr/talentgraph/internal/snapshot"
)

// roleMapMatcher is a deterministic RoleMatcher for tests.
type roleMapMatcher map[string]string

func (m roleMapMatcher) MatchesRole(employeeID, targetRole string) (bool, error) {
	role, ok := m[employeeID]
	if !ok {
		return false, nil
	}
	return strings.Contains(strings.ToLower(role), strings.ToLower(targetRole)), nil
}

// newTestHolder builds a snapshot with hand-placed vectors:
// EMP001 {Python, SQL}, EMP002 {Python, SQL, AWS} sits closest to
// EMP001, EMP003 {Tableau} is distant.
func newTestHolder(t *testing.T) *snapshot.Holder {
	t.Helper()
	employees := []ingest.Employee{
		{ID: "EMP001", Department: "Engineering", JobRole: "Backend Engineer"},
		{ID: "EMP002", Department: "Engineering", JobRole: "Data Engineer"},
		{ID: "EMP003", Department: "Analytics", JobRole: "Data Analyst"},
	}
	assignments := []ingest.SkillAssignment{
		{EmployeeID: "EMP001", SkillName: "Python", Proficiency: "Advanced"},
		{EmployeeID: "EMP001", SkillName: "SQL", Proficiency: "Beginner"},
		{EmployeeID: "EMP002", SkillName: "Python", Proficiency: "Expert"},
		{EmployeeID: "EMP002", SkillName: "SQL", Proficiency: "Intermediate"},
		{EmployeeID: "EMP002", SkillName: "AWS", Proficiency: "Beginner"},
		{EmployeeID: "EMP003", SkillName: "Tableau", Proficiency: "Advanced"},
	}
	g, _ := graph.NewBuilder().Build(employees, assignments)

	table := &embedding.Table{
		Dimensions: 2,
		Vectors: map[string][]float64{
			"EMP001":        {1, 0},
			"EMP002":        {0.95, 0.05},
			"EMP003":        {0.1, 0.9},
			"skill_Python":  {0.9, 0.1},
			"skill_SQL":     {0.8, 0.2},
			"skill_AWS":     {0.7, 0.3},
			"skill_Tableau": {0.1, 0.8},
		},
	}

	holder := &snapshot.Holder{}
	holder.Swap(&snapshot.Snapshot{
		Graph:      g,
		Embeddings: table,
		Manifest:   &artifact.Manifest{Version: 1},
	})
	return holder
}

func TestCareerPathsSkillGap(t *testing.T) {
	e := NewEngine(newTestHolder(t), nil, Config{})

	paths, err := e.CareerPaths("EMP001", "")
	if err != nil {
		t.Fatalf("CareerPaths() error = %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2", len(paths))
	}

	// EMP002's path: 2 of 3 skills matched, AWS missing.
	var dataEng *CareerPath
	for i := range paths {
		if paths[i].TargetRole == "Data Engineer" {
			dataEng = &paths[i]
		}
	}
	if dataEng == nil {
		t.Fatal("no path toward Data Engineer")
	}
	if dataEng.PeerID != "EMP002" || dataEng.Department != "Engineering" {
		t.Errorf("path = %+v", dataEng)
	}
	if !reflect.DeepEqual(dataEng.MatchedSkills, []string{"Python", "SQL"}) {
		t.Errorf("MatchedSkills = %v, want [Python SQL]", dataEng.MatchedSkills)
	}
	if !reflect.DeepEqual(dataEng.MissingSkills, []string{"AWS"}) {
		t.Errorf("MissingSkills = %v, want [AWS]", dataEng.MissingSkills)
	}
	wantPct := 100.0 * 2.0 / 3.0
	if math.Abs(dataEng.SkillMatchPercent-wantPct) > 1e-9 {
		t.Errorf("SkillMatchPercent = %v, want %v", dataEng.SkillMatchPercent, wantPct)
	}
}

func TestCareerPathsOrderedBySkillMatch(t *testing.T) {
	e := NewEngine(newTestHolder(t), nil, Config{})

	paths, err := e.CareerPaths("EMP001", "")
	if err != nil {
		t.Fatalf("CareerPaths() error = %v", err)
	}

	for i := 1; i < len(paths); i++ {
		if paths[i].SkillMatchPercent > paths[i-1].SkillMatchPercent {
			t.Errorf("paths not ordered by skill match: %v before %v",
				paths[i-1].SkillMatchPercent, paths[i].SkillMatchPercent)
		}
	}
	// Data Engineer (66.7% match) must outrank Data Analyst (0%).
	if paths[0].TargetRole != "Data Engineer" {
		t.Errorf("top path = %s, want Data Engineer", paths[0].TargetRole)
	}
}

func TestCareerPathsTargetRoleFilter(t *testing.T) {
	roles := roleMapMatcher{
		"EMP001": "Backend Engineer",
		"EMP002": "Data Engineer",
		"EMP003": "Data Analyst",
	}
	e := NewEngine(newTestHolder(t), roles, Config{})

	paths, err := e.CareerPaths("EMP001", "analyst")
	if err != nil {
		t.Fatalf("CareerPaths() error = %v", err)
	}
	if len(paths) != 1 || paths[0].TargetRole != "Data Analyst" {
		t.Errorf("filtered paths = %+v, want only Data Analyst", paths)
	}
}

func TestCareerPathsTargetRoleNoMatch(t *testing.T) {
	roles := roleMapMatcher{
		"EMP002": "Data Engineer",
		"EMP003": "Data Analyst",
	}
	e := NewEngine(newTestHolder(t), roles, Config{})

	paths, err := e.CareerPaths("EMP001", "Surgeon")
	if err != nil {
		t.Fatalf("CareerPaths() with unmatched role error = %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("got %d paths for unmatched role, want 0", len(paths))
	}
}

func TestCareerPathsDedupeByRoleAndDepartment(t *testing.T) {
	// Two Engineering/Data Engineer peers at different similarity; only
	// the closer one survives.
	employees := []ingest.Employee{
		{ID: "EMP001", Department: "Engineering", JobRole: "Backend Engineer"},
		{ID: "EMP002", Department: "Engineering", JobRole: "Data Engineer"},
		{ID: "EMP005", Department: "Engineering", JobRole: "Data Engineer"},
	}
	assignments := []ingest.SkillAssignment{
		{EmployeeID: "EMP001", SkillName: "Python", Proficiency: "Advanced"},
		{EmployeeID: "EMP002", SkillName: "Python", Proficiency: "Expert"},
		{EmployeeID: "EMP005", SkillName: "Python", Proficiency: "Expert"},
	}
	g, _ := graph.NewBuilder().Build(employees, assignments)
	table := &embedding.Table{
		Dimensions: 2,
		Vectors: map[string][]float64{
			"EMP001":       {1, 0},
			"EMP002":       {0.99, 0.01},
			"EMP005":       {0.7, 0.3},
			"skill_Python": {0.9, 0.1},
		},
	}
	holder := &snapshot.Holder{}
	holder.Swap(&snapshot.Snapshot{Graph: g, Embeddings: table, Manifest: &artifact.Manifest{Version: 1}})

	e := NewEngine(holder, nil, Config{})
	paths, err := e.CareerPaths("EMP001", "")
	if err != nil {
		t.Fatalf("CareerPaths() error = %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("got %d paths, want 1 after dedupe", len(paths))
	}
	if paths[0].PeerID != "EMP002" {
		t.Errorf("dedupe kept %s, want the closer peer EMP002", paths[0].PeerID)
	}
}

func TestCareerPathsMaxPaths(t *testing.T) {
	e := NewEngine(newTestHolder(t), nil, Config{MaxPaths: 1})

	paths, err := e.CareerPaths("EMP001", "")
	if err != nil {
		t.Fatalf("CareerPaths() error = %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("got %d paths with MaxPaths=1", len(paths))
	}
}

func TestCareerPathsEmployeeWithoutSkills(t *testing.T) {
	// EMP004 is registered but holds no skill assignments, so training
	// gave it only the isolated-node fallback vector.
	employees := []ingest.Employee{
		{ID: "EMP001", Department: "Engineering", JobRole: "Backend Engineer"},
		{ID: "EMP002", Department: "Engineering", JobRole: "Data Engineer"},
		{ID: "EMP004", Department: "Operations", JobRole: "Office Manager"},
	}
	assignments := []ingest.SkillAssignment{
		{EmployeeID: "EMP001", SkillName: "Python", Proficiency: "Advanced"},
		{EmployeeID: "EMP002", SkillName: "Python", Proficiency: "Expert"},
		{EmployeeID: "EMP002", SkillName: "AWS", Proficiency: "Beginner"},
	}
	g, _ := graph.NewBuilder().Build(employees, assignments)
	table := &embedding.Table{
		Dimensions: 2,
		Vectors: map[string][]float64{
			"EMP001":       {1, 0},
			"EMP002":       {0.95, 0.05},
			"EMP004":       {0.001, 0.0005},
			"skill_Python": {0.9, 0.1},
			"skill_AWS":    {0.7, 0.3},
		},
	}
	holder := &snapshot.Holder{}
	holder.Swap(&snapshot.Snapshot{Graph: g, Embeddings: table, Manifest: &artifact.Manifest{Version: 1}})

	e := NewEngine(holder, nil, Config{})
	paths, err := e.CareerPaths("EMP004", "")
	if err != nil {
		t.Fatalf("CareerPaths() for skill-less employee error = %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("got %d paths for skill-less employee, want 0: %+v", len(paths), paths)
	}
}

func TestCareerPathsUnknownEmployee(t *testing.T) {
	e := NewEngine(newTestHolder(t), nil, Config{})

	_, err := e.CareerPaths("EMP999", "")
	if !errors.Is(err, similarity.ErrEmployeeNotFound) {
		t.Errorf("error = %v, want ErrEmployeeNotFound", err)
	}
}

func TestCareerPathsCached(t *testing.T) {
	e := NewEngine(newTestHolder(t), nil, Config{})

	first, err := e.CareerPaths("EMP001", "")
	if err != nil {
		t.Fatalf("first call error = %v", err)
	}
	second, err := e.CareerPaths("EMP001", "")
	if err != nil {
		t.Fatalf("second call error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached result differs from computed result")
	}
}

func TestSkillsForRole(t *testing.T) {
	e := NewEngine(newTestHolder(t), nil, Config{})

	// "engineer" covers EMP001 and EMP002: Python and SQL held by both,
	// AWS by one of two.
	skills, err := e.SkillsForRole("engineer", 10)
	if err != nil {
		t.Fatalf("SkillsForRole() error = %v", err)
	}
	if len(skills) != 3 {
		t.Fatalf("got %d skills, want 3: %+v", len(skills), skills)
	}

	bySkill := make(map[string]RoleSkill, len(skills))
	for _, s := range skills {
		bySkill[s.Skill] = s
	}

	python := bySkill["Python"]
	if python.HolderCount != 2 || python.Importance != ImportanceHigh {
		t.Errorf("Python = %+v, want 2 holders / High", python)
	}
	aws := bySkill["AWS"]
	if aws.HolderCount != 1 || aws.Importance != ImportanceMedium {
		t.Errorf("AWS = %+v, want 1 holder / Medium (50%% share)", aws)
	}

	// Ordered by holder count, ties by name.
	if skills[0].Skill != "Python" || skills[1].Skill != "SQL" || skills[2].Skill != "AWS" {
		t.Errorf("order = %v", []string{skills[0].Skill, skills[1].Skill, skills[2].Skill})
	}
}

func TestSkillsForRoleUnknownRole(t *testing.T) {
	e := NewEngine(newTestHolder(t), nil, Config{})

	skills, err := e.SkillsForRole("Astronaut", 10)
	if err != nil {
		t.Fatalf("SkillsForRole() error = %v", err)
	}
	if len(skills) != 0 {
		t.Errorf("unknown role returned %d skills, want 0", len(skills))
	}
}

func TestSkillsForRoleTopK(t *testing.T) {
	e := NewEngine(newTestHolder(t), nil, Config{})

	skills, err := e.SkillsForRole("engineer", 1)
	if err != nil {
		t.Fatalf("SkillsForRole() error = %v", err)
	}
	if len(skills) != 1 || skills[0].Skill != "Python" {
		t.Errorf("topK=1 = %+v, want just Python", skills)
	}
}

func TestImportanceThresholds(t *testing.T) {
	tests := []struct {
		share float64
		want  SkillImportance
	}{
		{1.0, ImportanceHigh},
		{0.71, ImportanceHigh},
		{0.7, ImportanceMedium},
		{0.41, ImportanceMedium},
		{0.4, ImportanceLow},
		{0.0, ImportanceLow},
	}
	for _, tt := range tests {
		if got := importanceFor(tt.share); got != tt.want {
			t.Errorf("importanceFor(%v) = %v, want %v", tt.share, got, tt.want)
		}
	}
}
