// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package recommend

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/atlashr/talentgraph/internal/cache"
	"github.com/atlashr/talentgraph/internal/graph"
	"github.com/atlashr/talentgraph/internal/logging"
	"github.com/atlashr/talentgraph/internal/metrics"
	"github.com/atlashr/talentgraph/internal/similarity"
	"github.com/atlashr/talentgraph/internal/snapshot"
)

// RoleMatcher resolves whether an employee's registry role matches a
// target role. The Badger-backed directory implements this.
type RoleMatcher interface {
	MatchesRole(employeeID, targetRole string) (bool, error)
}

// Config tunes the recommendation pipeline.
type Config struct {
	// SimilarPool is how many similar employees seed the career-path search.
	SimilarPool int
	// MaxPaths caps the number of career paths returned.
	MaxPaths int
	// CacheTTL bounds how long recommendation results are reused.
	CacheTTL time.Duration
}

// DefaultConfig returns the standard recommendation settings.
func DefaultConfig() Config {
	return Config{
		SimilarPool: 10,
		MaxPaths:    5,
		CacheTTL:    5 * time.Minute,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SimilarPool <= 0 {
		c.SimilarPool = d.SimilarPool
	}
	if c.MaxPaths <= 0 {
		c.MaxPaths = d.MaxPaths
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = d.CacheTTL
	}
	return c
}

// Engine computes recommendations against the serving snapshot.
// Results are cached per snapshot version, so a swap naturally starts
// a fresh cache namespace.
type Engine struct {
	holder *snapshot.Holder
	roles  RoleMatcher
	cfg    Config
	cache  *cache.Cache
	logger zerolog.Logger
}

// NewEngine creates a recommendation engine. roles may be nil when no
// registry directory is available; target-role filtering then falls
// back to the roles recorded on graph nodes.
func NewEngine(holder *snapshot.Holder, roles RoleMatcher, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		holder: holder,
		roles:  roles,
		cfg:    cfg,
		cache:  cache.New(cfg.CacheTTL),
		logger: logging.WithComponent("recommend-engine"),
	}
}

// CleanupCache evicts expired cache entries. The serving process calls
// this on a timer.
func (e *Engine) CleanupCache() {
	e.cache.Cleanup()
}

type careerPathParams struct {
	EmployeeID string `json:"employee_id"`
	TargetRole string `json:"target_role"`
	Version    int    `json:"version"`
}

// CareerPaths recommends up to MaxPaths moves for an employee.
//
// The employee's similar peers supply candidate roles. Each candidate
// carries the peer's skill set, split into matched and missing against
// the employee's own skills. Candidates sharing (role, department) are
// deduplicated keeping the higher similarity. Results order by skill
// match percentage descending, then by fewer missing skills.
//
// targetRole, when non-empty, keeps only peers whose registry role
// matches it; no matching peers yields an empty slice, not an error.
// An employee with no recorded skills also yields an empty slice.
func (e *Engine) CareerPaths(employeeID, targetRole string) ([]CareerPath, error) {
	snap := e.holder.Current()
	if snap == nil {
		return nil, errors.New("recommend: no serving snapshot")
	}

	key := cache.GenerateKey("career_paths", careerPathParams{
		EmployeeID: employeeID,
		TargetRole: targetRole,
		Version:    snap.Manifest.Version,
	})
	if cached, ok := e.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		return cached.([]CareerPath), nil
	}
	metrics.CacheMisses.Inc()

	if !snap.Graph.HasNode(employeeID) {
		return nil, fmt.Errorf("employee %q: %w", employeeID, similarity.ErrEmployeeNotFound)
	}

	// An employee with no skill edges is backed only by the isolated-node
	// fallback vector. Similarity against that vector is noise, so the
	// recommendation is empty rather than a list of all-gap paths.
	skills := snap.Graph.EmployeeSkills(employeeID)
	if len(skills) == 0 {
		result := []CareerPath{}
		e.cache.Set(key, result)
		return result, nil
	}

	peers, err := similarity.SimilarInSnapshot(snap, employeeID, e.cfg.SimilarPool)
	if err != nil {
		return nil, err
	}

	currentSkills := toSet(skills)

	paths := make([]CareerPath, 0, len(peers))
	for _, peer := range peers {
		if targetRole != "" {
			matched, err := e.matchesTargetRole(snap, peer.EmployeeID, targetRole)
			if err != nil {
				return nil, err
			}
			if !matched {
				continue
			}
		}

		peerSkills := snap.Graph.EmployeeSkills(peer.EmployeeID)
		path := CareerPath{
			PeerID:          peer.EmployeeID,
			TargetRole:      peer.Role,
			Department:      peer.Department,
			SimilarityScore: peer.Score,
			MatchedSkills:   []string{},
			MissingSkills:   []string{},
		}
		for _, skill := range peerSkills {
			if _, ok := currentSkills[skill]; ok {
				path.MatchedSkills = append(path.MatchedSkills, skill)
			} else {
				path.MissingSkills = append(path.MissingSkills, skill)
			}
		}
		path.MissingCount = len(path.MissingSkills)
		if len(peerSkills) > 0 {
			path.SkillMatchPercent = 100.0 * float64(len(path.MatchedSkills)) / float64(len(peerSkills))
		}
		paths = append(paths, path)
	}

	paths = dedupePaths(paths)

	sort.SliceStable(paths, func(i, j int) bool {
		if paths[i].SkillMatchPercent != paths[j].SkillMatchPercent {
			return paths[i].SkillMatchPercent > paths[j].SkillMatchPercent
		}
		return paths[i].MissingCount < paths[j].MissingCount
	})

	if len(paths) > e.cfg.MaxPaths {
		paths = paths[:e.cfg.MaxPaths]
	}

	e.cache.Set(key, paths)
	e.logger.Debug().
		Str("employee_id", employeeID).
		Str("target_role", targetRole).
		Int("paths", len(paths)).
		Msg("career paths computed")
	return paths, nil
}

// matchesTargetRole consults the registry directory when present and
// falls back to the role baked into the graph node otherwise.
func (e *Engine) matchesTargetRole(snap *snapshot.Snapshot, employeeID, targetRole string) (bool, error) {
	if e.roles != nil {
		matched, err := e.roles.MatchesRole(employeeID, targetRole)
		if err != nil {
			return false, fmt.Errorf("resolve role for %s: %w", employeeID, err)
		}
		return matched, nil
	}
	n, ok := snap.Graph.Node(employeeID)
	if !ok {
		return false, nil
	}
	return strings.Contains(strings.ToLower(n.Role), strings.ToLower(targetRole)), nil
}

// dedupePaths keeps one path per (role, department), preferring higher
// similarity.
func dedupePaths(paths []CareerPath) []CareerPath {
	type roleDept struct{ role, dept string }
	best := make(map[roleDept]int, len(paths))
	out := paths[:0]

	for _, p := range paths {
		key := roleDept{p.TargetRole, p.Department}
		if idx, ok := best[key]; ok {
			if p.SimilarityScore > out[idx].SimilarityScore {
				out[idx] = p
			}
			continue
		}
		best[key] = len(out)
		out = append(out, p)
	}
	return out
}

type roleSkillParams struct {
	Role    string `json:"role"`
	TopK    int    `json:"top_k"`
	Version int    `json:"version"`
}

// SkillsForRole ranks the skills held by employees in a role by how
// widespread they are. Roles match case-insensitively as substrings, so
// "engineer" covers every engineering title. An unknown role yields an
// empty slice.
func (e *Engine) SkillsForRole(role string, topK int) ([]RoleSkill, error) {
	snap := e.holder.Current()
	if snap == nil {
		return nil, errors.New("recommend: no serving snapshot")
	}
	if topK <= 0 {
		return []RoleSkill{}, nil
	}

	key := cache.GenerateKey("role_skills", roleSkillParams{
		Role:    role,
		TopK:    topK,
		Version: snap.Manifest.Version,
	})
	if cached, ok := e.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		return cached.([]RoleSkill), nil
	}
	metrics.CacheMisses.Inc()

	target := strings.ToLower(role)
	holders := 0
	counts := make(map[string]int)
	for _, id := range snap.Graph.NodeIDs(graph.NodeEmployee) {
		n, _ := snap.Graph.Node(id)
		if !strings.Contains(strings.ToLower(n.Role), target) {
			continue
		}
		holders++
		for _, skill := range snap.Graph.EmployeeSkills(id) {
			counts[skill]++
		}
	}
	if holders == 0 {
		result := []RoleSkill{}
		e.cache.Set(key, result)
		return result, nil
	}

	skills := make([]RoleSkill, 0, len(counts))
	for skill, count := range counts {
		share := float64(count) / float64(holders)
		skills = append(skills, RoleSkill{
			Skill:       skill,
			HolderCount: count,
			Share:       share,
			Importance:  importanceFor(share),
		})
	}

	sort.Slice(skills, func(i, j int) bool {
		if skills[i].HolderCount != skills[j].HolderCount {
			return skills[i].HolderCount > skills[j].HolderCount
		}
		return skills[i].Skill < skills[j].Skill
	})
	if len(skills) > topK {
		skills = skills[:topK]
	}

	e.cache.Set(key, skills)
	return skills, nil
}

func importanceFor(share float64) SkillImportance {
	switch {
	case share > 0.7:
		return ImportanceHigh
	case share > 0.4:
		return ImportanceMedium
	default:
		return ImportanceLow
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[s] = struct{}{}
	}
	return set
}
