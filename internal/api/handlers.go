// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atlashr/talentgraph/internal/graph"
	"github.com/atlashr/talentgraph/internal/logging"
	"github.com/atlashr/talentgraph/internal/metrics"
	"github.com/atlashr/talentgraph/internal/similarity"
)

// health reports liveness plus whether a snapshot is serving.
func (rt *Router) health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, r, map[string]interface{}{
		"status": "ok",
		"ready":  rt.holder.Ready(),
	}, time.Now())
}

// similarEmployees handles GET /api/v1/employees/{id}/similar.
func (rt *Router) similarEmployees(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !rt.requireSnapshot(w, r) {
		return
	}
	employeeID := chi.URLParam(r, "id")
	topK, ok := rt.parseTopK(w, r)
	if !ok {
		return
	}

	matches, err := rt.similarity.SimilarEmployees(employeeID, topK)
	if err != nil {
		rt.queryError(w, r, "similar", employeeID, err)
		return
	}

	metrics.ObserveQuery("similar", start)
	writeSuccess(w, r, map[string]interface{}{
		"employee_id": employeeID,
		"similar":     matches,
	}, start)
}

// careerPaths handles GET /api/v1/employees/{id}/career-paths.
// An optional target_role query filters paths to matching roles.
func (rt *Router) careerPaths(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !rt.requireSnapshot(w, r) {
		return
	}
	employeeID := chi.URLParam(r, "id")
	targetRole := r.URL.Query().Get("target_role")

	paths, err := rt.recommend.CareerPaths(employeeID, targetRole)
	if err != nil {
		rt.queryError(w, r, "career_paths", employeeID, err)
		return
	}

	metrics.ObserveQuery("career_paths", start)
	writeSuccess(w, r, map[string]interface{}{
		"employee_id":  employeeID,
		"target_role":  targetRole,
		"career_paths": paths,
	}, start)
}

// roleSkills handles GET /api/v1/roles/{role}/skills.
func (rt *Router) roleSkills(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !rt.requireSnapshot(w, r) {
		return
	}
	role := chi.URLParam(r, "role")
	topK, ok := rt.parseTopK(w, r)
	if !ok {
		return
	}

	skills, err := rt.recommend.SkillsForRole(role, topK)
	if err != nil {
		rt.queryError(w, r, "role_skills", role, err)
		return
	}

	metrics.ObserveQuery("role_skills", start)
	writeSuccess(w, r, map[string]interface{}{
		"role":   role,
		"skills": skills,
	}, start)
}

// graphMetrics handles GET /api/v1/graph/metrics.
func (rt *Router) graphMetrics(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	snap := rt.holder.Current()
	if snap == nil {
		writeError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "no serving snapshot yet")
		return
	}

	metrics.ObserveQuery("graph_metrics", start)
	writeSuccess(w, r, graph.ComputeMetrics(snap.Graph), start)
}

// modelStatus handles GET /api/v1/model/status.
func (rt *Router) modelStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	snap := rt.holder.Current()
	if snap == nil {
		writeSuccess(w, r, map[string]interface{}{"ready": false}, start)
		return
	}

	writeSuccess(w, r, map[string]interface{}{
		"ready":       true,
		"snapshot_id": snap.Manifest.SnapshotID,
		"version":     snap.Manifest.Version,
		"trained_at":  snap.Manifest.TrainedAt,
		"dimensions":  snap.Manifest.Dimensions,
		"employees":   snap.Manifest.Employees,
		"skills":      snap.Manifest.Skills,
		"edges":       snap.Manifest.Edges,
	}, start)
}

// triggerTraining handles POST /api/v1/model/train. The run happens
// asynchronously; the response only acknowledges the request.
func (rt *Router) triggerTraining(w http.ResponseWriter, r *http.Request) {
	if rt.trainTrigger == nil {
		writeError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "training is not enabled on this instance")
		return
	}
	rt.trainTrigger()
	writeJSON(w, http.StatusAccepted, Response{
		Success: true,
		Data:    map[string]string{"status": "training requested"},
	})
}

// requireSnapshot writes a 503 when queries arrive before the first
// snapshot is serving.
func (rt *Router) requireSnapshot(w http.ResponseWriter, r *http.Request) bool {
	if !rt.holder.Ready() {
		writeError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "no serving snapshot yet")
		return false
	}
	return true
}

// parseTopK reads top_k with the configured default and cap.
func (rt *Router) parseTopK(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("top_k")
	if raw == "" {
		return rt.cfg.DefaultTopK, true
	}
	topK, err := strconv.Atoi(raw)
	if err != nil || topK < 1 {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "top_k must be a positive integer")
		return 0, false
	}
	if topK > rt.cfg.MaxTopK {
		topK = rt.cfg.MaxTopK
	}
	return topK, true
}

// queryError maps engine errors to HTTP statuses.
func (rt *Router) queryError(w http.ResponseWriter, r *http.Request, operation, subject string, err error) {
	metrics.QueryErrors.WithLabelValues(operation).Inc()
	if errors.Is(err, similarity.ErrEmployeeNotFound) {
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "employee not found: "+subject)
		return
	}
	logging.Ctx(r.Context()).Error().Err(err).Str("operation", operation).Msg("query failed")
	writeError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "query failed")
}
