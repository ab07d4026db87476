// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

// Package recommend derives career-path and skill recommendations from
// the serving snapshot. Career paths come from embedding-similar peers:
// the roles of employees who look like you are the roles you can move
// into, and the skills they have that you lack are the gap to close.
package recommend

// CareerPath is one recommended move toward a peer's role.
type CareerPath struct {
	// PeerID is the similar employee whose role anchors this path.
	PeerID string `json:"peer_employee_id"`
	// TargetRole is the peer's job role.
	TargetRole string `json:"target_role"`
	// Department is the peer's department.
	Department string `json:"department"`
	// SimilarityScore is the embedding similarity to the peer, in [0, 1].
	SimilarityScore float64 `json:"similarity_score"`
	// MatchedSkills are the peer's skills the employee already has.
	MatchedSkills []string `json:"matched_skills"`
	// MissingSkills are the peer's skills the employee lacks, the
	// development gap for this path.
	MissingSkills []string `json:"missing_skills"`
	// MissingCount is len(MissingSkills), surfaced for ranking and API
	// consumers that only need the gap size.
	MissingCount int `json:"missing_skill_count"`
	// SkillMatchPercent is 100 times the share of the peer's skills the
	// employee already holds. 0 when the peer has no skills on record.
	SkillMatchPercent float64 `json:"skill_match_percentage"`
}

// SkillImportance buckets how prevalent a skill is among role holders.
type SkillImportance string

const (
	// ImportanceHigh marks skills held by more than 70% of role holders.
	ImportanceHigh SkillImportance = "High"
	// ImportanceMedium marks skills held by more than 40% of role holders.
	ImportanceMedium SkillImportance = "Medium"
	// ImportanceLow marks all other observed skills.
	ImportanceLow SkillImportance = "Low"
)

// RoleSkill is one skill recommendation for a target role.
type RoleSkill struct {
	Skill string `json:"skill"`
	// HolderCount is how many employees in the role hold the skill.
	HolderCount int `json:"holder_count"`
	// Share is the fraction of role holders with the skill, in [0, 1].
	Share      float64         `json:"share"`
	Importance SkillImportance `json:"importance"`
}
