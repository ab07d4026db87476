// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atlashr/talentgraph/internal/recommend"
	"github.com/atlashr/talentgraph/internal/similarity"
	"github.com/atlashr/talentgraph/internal/snapshot"
)

// RouterConfig tunes the HTTP surface.
type RouterConfig struct {
	// RateLimitRequests per RateLimitWindow, per client IP.
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSOrigins       []string
	// DefaultTopK applies when a query omits top_k; MaxTopK caps it.
	DefaultTopK int
	MaxTopK     int
}

// Router wires the query engines into HTTP routes.
type Router struct {
	holder     *snapshot.Holder
	similarity *similarity.Engine
	recommend  *recommend.Engine
	// trainTrigger, when set, requests an out-of-schedule training run.
	trainTrigger func()
	cfg          RouterConfig
}

// NewRouter creates the API router.
func NewRouter(holder *snapshot.Holder, sim *similarity.Engine, rec *recommend.Engine, cfg RouterConfig) *Router {
	if cfg.RateLimitRequests <= 0 {
		cfg.RateLimitRequests = 100
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = time.Minute
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	if cfg.DefaultTopK <= 0 {
		cfg.DefaultTopK = 5
	}
	if cfg.MaxTopK <= 0 {
		cfg.MaxTopK = 100
	}
	return &Router{holder: holder, similarity: sim, recommend: rec, cfg: cfg}
}

// WithTrainTrigger enables the POST /api/v1/model/train endpoint.
func (rt *Router) WithTrainTrigger(trigger func()) *Router {
	rt.trainTrigger = trigger
	return rt
}

// Handler builds the chi handler with the full middleware stack.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", rt.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(rt.cfg.RateLimitRequests, rt.cfg.RateLimitWindow))
		r.Use(requestLogging)

		r.Get("/employees/{id}/similar", rt.similarEmployees)
		r.Get("/employees/{id}/career-paths", rt.careerPaths)
		r.Get("/roles/{role}/skills", rt.roleSkills)
		r.Get("/graph/metrics", rt.graphMetrics)
		r.Get("/model/status", rt.modelStatus)
		r.Post("/model/train", rt.triggerTraining)
	})

	return r
}
