// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

// Package graph models the bipartite employee-skill graph that all
// training and serving flows operate on. Employee nodes carry registry
// attributes; skill nodes are namespaced with a "skill_" prefix so the
// two partitions can never collide on ID. Edges are weighted by
// proficiency level.
package graph

import (
	"sort"
	"strings"
)

// SkillPrefix namespaces skill node IDs away from employee IDs.
const SkillPrefix = "skill_"

// NodeType distinguishes the two partitions of the bipartite graph.
type NodeType int

const (
	// NodeEmployee is an employee node keyed by employee ID.
	NodeEmployee NodeType = iota
	// NodeSkill is a skill node keyed by SkillPrefix + skill name.
	NodeSkill
)

// String returns the node type label used in logs.
func (t NodeType) String() string {
	if t == NodeSkill {
		return "skill"
	}
	return "employee"
}

// Node is a vertex in the bipartite graph. Department and Role are only
// populated for employee nodes.
type Node struct {
	ID         string   `json:"id"`
	Type       NodeType `json:"type"`
	Department string   `json:"department,omitempty"`
	Role       string   `json:"role,omitempty"`
}

// Edge connects an employee node to a skill node with a proficiency weight.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`
}

// SkillNodeID returns the namespaced node ID for a skill name.
func SkillNodeID(skillName string) string {
	return SkillPrefix + skillName
}

// SkillName strips the namespace prefix from a skill node ID.
// Non-skill IDs are returned unchanged.
func SkillName(nodeID string) string {
	return strings.TrimPrefix(nodeID, SkillPrefix)
}

// IsSkillNode reports whether a node ID belongs to the skill partition.
func IsSkillNode(nodeID string) bool {
	return strings.HasPrefix(nodeID, SkillPrefix)
}

// Graph is an undirected weighted bipartite graph. It is mutable only
// through the Builder; once published inside a snapshot it is treated
// as immutable and is safe for concurrent reads.
type Graph struct {
	nodes map[string]Node
	// adjacency holds edge weights keyed by node on both endpoints,
	// so walks can step in either direction.
	adjacency map[string]map[string]float64
	edgeCount int
}

// newGraph allocates an empty graph.
func newGraph() *Graph {
	return &Graph{
		nodes:     make(map[string]Node),
		adjacency: make(map[string]map[string]float64),
	}
}

// addNode inserts a node, keeping existing attributes on re-insert.
func (g *Graph) addNode(n Node) {
	if _, exists := g.nodes[n.ID]; exists {
		return
	}
	g.nodes[n.ID] = n
	g.adjacency[n.ID] = make(map[string]float64)
}

// addEdge inserts or updates an undirected edge. Duplicate employee-skill
// pairs keep the maximum observed weight.
func (g *Graph) addEdge(from, to string, weight float64) {
	current, exists := g.adjacency[from][to]
	if exists {
		if weight > current {
			g.adjacency[from][to] = weight
			g.adjacency[to][from] = weight
		}
		return
	}
	g.adjacency[from][to] = weight
	g.adjacency[to][from] = weight
	g.edgeCount++
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasNode reports whether the graph contains the given node ID.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// NodeCount returns the total number of nodes across both partitions.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Weight returns the edge weight between two nodes, or 0 if no edge exists.
func (g *Graph) Weight(from, to string) float64 {
	return g.adjacency[from][to]
}

// HasEdge reports whether an edge exists between two nodes.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.adjacency[from][to]
	return ok
}

// Degree returns the number of edges incident on a node.
func (g *Graph) Degree(id string) int {
	return len(g.adjacency[id])
}

// Neighbors returns the sorted neighbor IDs of a node. The returned
// slice is freshly allocated and safe for callers to retain.
func (g *Graph) Neighbors(id string) []string {
	adj, ok := g.adjacency[id]
	if !ok {
		return nil
	}
	neighbors := make([]string, 0, len(adj))
	for n := range adj {
		neighbors = append(neighbors, n)
	}
	sort.Strings(neighbors)
	return neighbors
}

// NodeIDs returns all node IDs of the given type in sorted order.
func (g *Graph) NodeIDs(t NodeType) []string {
	ids := make([]string, 0, len(g.nodes))
	for id, n := range g.nodes {
		if n.Type == t {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// AllNodeIDs returns every node ID in sorted order.
func (g *Graph) AllNodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EmployeeCount returns the number of employee nodes.
func (g *Graph) EmployeeCount() int {
	count := 0
	for _, n := range g.nodes {
		if n.Type == NodeEmployee {
			count++
		}
	}
	return count
}

// SkillCount returns the number of skill nodes.
func (g *Graph) SkillCount() int {
	count := 0
	for _, n := range g.nodes {
		if n.Type == NodeSkill {
			count++
		}
	}
	return count
}

// EmployeeSkills returns the skill names adjacent to an employee node,
// with the namespace prefix stripped, in sorted order.
func (g *Graph) EmployeeSkills(employeeID string) []string {
	adj, ok := g.adjacency[employeeID]
	if !ok {
		return nil
	}
	skills := make([]string, 0, len(adj))
	for neighbor := range adj {
		if IsSkillNode(neighbor) {
			skills = append(skills, SkillName(neighbor))
		}
	}
	sort.Strings(skills)
	return skills
}

// Edges returns all edges with From on the employee side, sorted by
// (From, To). Used for serialization.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edgeCount)
	for id, n := range g.nodes {
		if n.Type != NodeEmployee {
			continue
		}
		for neighbor, weight := range g.adjacency[id] {
			edges = append(edges, Edge{From: id, To: neighbor, Weight: weight})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// Nodes returns all nodes sorted by ID. Used for serialization.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

// Equal reports whether two graphs have identical nodes and edge weights.
// Rebuilding from the same input must produce an equal graph.
func (g *Graph) Equal(other *Graph) bool {
	if other == nil {
		return g == nil
	}
	if len(g.nodes) != len(other.nodes) || g.edgeCount != other.edgeCount {
		return false
	}
	for id, n := range g.nodes {
		on, ok := other.nodes[id]
		if !ok || n != on {
			return false
		}
	}
	for from, adj := range g.adjacency {
		oadj, ok := other.adjacency[from]
		if !ok || len(adj) != len(oadj) {
			return false
		}
		for to, w := range adj {
			if ow, ok := oadj[to]; !ok || w != ow {
				return false
			}
		}
	}
	return true
}

// FromParts reconstructs a graph from serialized nodes and edges.
// Used when loading a persisted snapshot.
func FromParts(nodes []Node, edges []Edge) *Graph {
	g := newGraph()
	for _, n := range nodes {
		g.addNode(n)
	}
	for _, e := range edges {
		g.addEdge(e.From, e.To, e.Weight)
	}
	return g
}
