// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atlashr/talentgraph/internal/logging"
	"github.com/atlashr/talentgraph/internal/metrics"
)

// requestID assigns each request an ID, propagates it through the
// context logger, and echoes it in the X-Request-ID header.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = logging.GenerateRequestID()
		}
		// Ctx adds the request_id field at log time, so the stored
		// logger stays unadorned.
		ctx := logging.ContextWithRequestID(r.Context(), id)

		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// requestLogging logs one line per request and records API metrics.
// The route pattern, not the raw path, labels the metrics so employee
// IDs don't explode cardinality.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = r.URL.Path
		}
		metrics.RecordAPIRequest(r.Method, pattern, rec.status, elapsed)

		logging.Ctx(r.Context()).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", elapsed).
			Msg("request")
	})
}
