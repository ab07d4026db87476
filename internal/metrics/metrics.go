// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

// Package metrics provides Prometheus instrumentation for TalentGraph:
// training pipeline durations, serving query latency, graph shape gauges,
// and recommendation cache efficiency.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Training pipeline metrics
	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mobility_training_duration_seconds",
			Help:    "Duration of full training runs (build + walks + skip-gram) in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mobility_training_runs_total",
			Help: "Total number of training runs by outcome",
		},
		[]string{"outcome"}, // "success", "error"
	)

	RecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mobility_ingest_records_skipped_total",
			Help: "Malformed ingest records skipped during graph construction",
		},
		[]string{"reason"}, // "missing_employee_id", "missing_skill_name", "unknown_proficiency"
	)

	WalksGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mobility_walks_generated_total",
			Help: "Total number of random walks generated across training runs",
		},
	)

	// Serving snapshot metrics
	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mobility_snapshot_version",
			Help: "Version of the snapshot currently serving queries",
		},
	)

	GraphEmployees = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mobility_graph_employees",
			Help: "Employee nodes in the serving graph",
		},
	)

	GraphSkills = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mobility_graph_skills",
			Help: "Skill nodes in the serving graph",
		},
	)

	GraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mobility_graph_edges",
			Help: "Edges in the serving graph",
		},
	)

	// Query metrics
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mobility_query_duration_seconds",
			Help:    "Duration of serving-path queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"}, // "similar", "career_paths", "role_skills", "graph_metrics"
	)

	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mobility_query_errors_total",
			Help: "Total per-query errors by operation",
		},
		[]string{"operation"},
	)

	// Recommendation cache metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mobility_recommend_cache_hits_total",
			Help: "Recommendation cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mobility_recommend_cache_misses_total",
			Help: "Recommendation cache misses",
		},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)
)

// ObserveQuery records a query duration for the given operation.
func ObserveQuery(operation string, start time.Time) {
	QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordAPIRequest records an API request with its outcome.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// SetGraphGauges updates the serving-graph shape gauges after a snapshot swap.
func SetGraphGauges(employees, skills, edges int) {
	GraphEmployees.Set(float64(employees))
	GraphSkills.Set(float64(skills))
	GraphEdges.Set(float64(edges))
}
