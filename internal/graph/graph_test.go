// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package graph

import (
	"math"
	"reflect"
	"testing"

	"github.com/atlashr/talentgraph/internal/ingest"
)

func testEmployees() []ingest.Employee {
	return []ingest.Employee{
		{ID: "EMP001", Department: "Engineering", JobRole: "Backend Engineer"},
		{ID: "EMP002", Department: "Engineering", JobRole: "Data Engineer"},
		{ID: "EMP003", Department: "Analytics", JobRole: "Data Analyst"},
	}
}

func testAssignments() []ingest.SkillAssignment {
	return []ingest.SkillAssignment{
		{EmployeeID: "EMP001", SkillName: "Python", Proficiency: "Advanced"},
		{EmployeeID: "EMP001", SkillName: "SQL", Proficiency: "Beginner"},
		{EmployeeID: "EMP002", SkillName: "Python", Proficiency: "Expert"},
		{EmployeeID: "EMP002", SkillName: "SQL", Proficiency: "Intermediate"},
		{EmployeeID: "EMP003", SkillName: "Tableau", Proficiency: "Advanced"},
	}
}

func TestBuilderBuild(t *testing.T) {
	g, stats := NewBuilder().Build(testEmployees(), testAssignments())

	if stats.Employees != 3 {
		t.Errorf("Employees = %d, want 3", stats.Employees)
	}
	if stats.Skills != 3 {
		t.Errorf("Skills = %d, want 3", stats.Skills)
	}
	if stats.Edges != 5 {
		t.Errorf("Edges = %d, want 5", stats.Edges)
	}
	if stats.RecordsSkipped != 0 {
		t.Errorf("RecordsSkipped = %d, want 0", stats.RecordsSkipped)
	}

	if w := g.Weight("EMP001", SkillNodeID("Python")); w != 3 {
		t.Errorf("weight(EMP001, Python) = %v, want 3", w)
	}
	if w := g.Weight("EMP002", SkillNodeID("Python")); w != 4 {
		t.Errorf("weight(EMP002, Python) = %v, want 4", w)
	}

	// Undirected: weight visible from both endpoints.
	if w := g.Weight(SkillNodeID("Python"), "EMP002"); w != 4 {
		t.Errorf("reverse weight(Python, EMP002) = %v, want 4", w)
	}

	n, ok := g.Node("EMP001")
	if !ok {
		t.Fatal("EMP001 node missing")
	}
	if n.Department != "Engineering" || n.Role != "Backend Engineer" {
		t.Errorf("EMP001 attributes = %+v", n)
	}
}

func TestBuilderSkipsMalformedRecords(t *testing.T) {
	assignments := []ingest.SkillAssignment{
		{EmployeeID: "EMP001", SkillName: "Python", Proficiency: "Advanced"},
		{EmployeeID: "", SkillName: "SQL", Proficiency: "Beginner"},
		{EmployeeID: "EMP001", SkillName: "", Proficiency: "Expert"},
		{EmployeeID: "EMP001", SkillName: "Go", Proficiency: "Wizard"},
		{EmployeeID: "   ", SkillName: "Rust", Proficiency: "Advanced"},
	}

	g, stats := NewBuilder().Build(testEmployees()[:1], assignments)

	if stats.RecordsSkipped != 4 {
		t.Errorf("RecordsSkipped = %d, want 4", stats.RecordsSkipped)
	}
	if stats.Edges != 1 {
		t.Errorf("Edges = %d, want 1", stats.Edges)
	}
	// Skipped records must not leave partial nodes behind.
	if g.HasNode(SkillNodeID("Go")) {
		t.Error("skill node created for record with unknown proficiency")
	}
	if g.HasNode(SkillNodeID("Rust")) {
		t.Error("skill node created for record with blank employee id")
	}
}

func TestBuilderDuplicatePairKeepsMaxWeight(t *testing.T) {
	assignments := []ingest.SkillAssignment{
		{EmployeeID: "EMP001", SkillName: "Python", Proficiency: "Expert"},
		{EmployeeID: "EMP001", SkillName: "Python", Proficiency: "Beginner"},
		{EmployeeID: "EMP001", SkillName: "Python", Proficiency: "Advanced"},
	}

	g, stats := NewBuilder().Build(testEmployees()[:1], assignments)

	if stats.Edges != 1 {
		t.Errorf("Edges = %d, want 1 for duplicate pair", stats.Edges)
	}
	if w := g.Weight("EMP001", SkillNodeID("Python")); w != 4 {
		t.Errorf("duplicate pair weight = %v, want max 4", w)
	}
}

func TestBuilderBipartiteInvariant(t *testing.T) {
	g, _ := NewBuilder().Build(testEmployees(), testAssignments())

	for _, e := range g.Edges() {
		from, _ := g.Node(e.From)
		to, _ := g.Node(e.To)
		if from.Type == to.Type {
			t.Errorf("edge %s -> %s connects same partition", e.From, e.To)
		}
	}
}

func TestBuilderIdempotent(t *testing.T) {
	b := NewBuilder()
	g1, s1 := b.Build(testEmployees(), testAssignments())
	g2, s2 := b.Build(testEmployees(), testAssignments())

	if s1 != s2 {
		t.Errorf("stats differ across rebuilds: %+v vs %+v", s1, s2)
	}
	if !g1.Equal(g2) {
		t.Error("rebuild from same input produced a different graph")
	}
}

func TestBuilderEmployeeWithoutAssignments(t *testing.T) {
	g, stats := NewBuilder().Build(testEmployees(), nil)

	if stats.Employees != 3 {
		t.Errorf("Employees = %d, want 3", stats.Employees)
	}
	if stats.Edges != 0 {
		t.Errorf("Edges = %d, want 0", stats.Edges)
	}
	if g.Degree("EMP001") != 0 {
		t.Errorf("isolated employee degree = %d, want 0", g.Degree("EMP001"))
	}
}

func TestBuilderAssignmentForUnregisteredEmployee(t *testing.T) {
	assignments := []ingest.SkillAssignment{
		{EmployeeID: "EMP999", SkillName: "Python", Proficiency: "Expert"},
	}

	g, _ := NewBuilder().Build(nil, assignments)

	n, ok := g.Node("EMP999")
	if !ok {
		t.Fatal("employee node not created from assignment")
	}
	if n.Type != NodeEmployee {
		t.Errorf("node type = %v, want employee", n.Type)
	}
	if n.Department != "" || n.Role != "" {
		t.Errorf("unregistered employee should have empty attributes, got %+v", n)
	}
}

func TestEmployeeSkills(t *testing.T) {
	g, _ := NewBuilder().Build(testEmployees(), testAssignments())

	got := g.EmployeeSkills("EMP002")
	want := []string{"Python", "SQL"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EmployeeSkills(EMP002) = %v, want %v", got, want)
	}

	if skills := g.EmployeeSkills("EMP404"); skills != nil {
		t.Errorf("EmployeeSkills for unknown employee = %v, want nil", skills)
	}
}

func TestSkillNodeIDRoundTrip(t *testing.T) {
	id := SkillNodeID("Machine Learning")
	if id != "skill_Machine Learning" {
		t.Errorf("SkillNodeID = %q", id)
	}
	if !IsSkillNode(id) {
		t.Error("IsSkillNode(skill node) = false")
	}
	if IsSkillNode("EMP001") {
		t.Error("IsSkillNode(employee node) = true")
	}
	if got := SkillName(id); got != "Machine Learning" {
		t.Errorf("SkillName = %q", got)
	}
}

func TestComputeMetrics(t *testing.T) {
	g, _ := NewBuilder().Build(testEmployees(), testAssignments())
	m := ComputeMetrics(g)

	if m.Employees != 3 || m.Skills != 3 || m.Edges != 5 {
		t.Fatalf("metrics = %+v", m)
	}

	wantAvg := 5.0 / 3.0
	if math.Abs(m.AverageDegree-wantAvg) > 1e-9 {
		t.Errorf("AverageDegree = %v, want %v", m.AverageDegree, wantAvg)
	}

	// 6 nodes total: density = 2*5 / (6*5).
	wantDensity := 10.0 / 30.0
	if math.Abs(m.Density-wantDensity) > 1e-9 {
		t.Errorf("Density = %v, want %v", m.Density, wantDensity)
	}
}

func TestComputeMetricsEmptyGraph(t *testing.T) {
	g, _ := NewBuilder().Build(nil, nil)
	m := ComputeMetrics(g)

	if m.AverageDegree != 0 {
		t.Errorf("AverageDegree on empty graph = %v, want 0", m.AverageDegree)
	}
	if m.Density != 0 {
		t.Errorf("Density on empty graph = %v, want 0", m.Density)
	}
}

func TestFromPartsRoundTrip(t *testing.T) {
	g, _ := NewBuilder().Build(testEmployees(), testAssignments())

	rebuilt := FromParts(g.Nodes(), g.Edges())
	if !g.Equal(rebuilt) {
		t.Error("FromParts(Nodes, Edges) did not reproduce the graph")
	}
}
