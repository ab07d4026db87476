// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/atlashr/talentgraph/internal/logging"
)

// shutdownTimeout bounds graceful HTTP drain on service stop.
const shutdownTimeout = 10 * time.Second

// HTTPService runs the API server under supervision.
type HTTPService struct {
	server *http.Server
	logger zerolog.Logger
}

var _ suture.Service = (*HTTPService)(nil)

// NewHTTPService wraps a handler in a supervised HTTP server.
func NewHTTPService(addr string, handler http.Handler, timeout time.Duration) *HTTPService {
	return &HTTPService{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       timeout,
			WriteTimeout:      timeout,
			IdleTimeout:       2 * timeout,
		},
		logger: logging.WithComponent("http-service"),
	}
}

// String names the service in supervisor events.
func (s *HTTPService) String() string { return "http-service" }

// Serve listens until ctx is cancelled, then drains connections.
func (s *HTTPService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.server.Addr).Msg("http server listening")
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn().Err(err).Msg("http shutdown incomplete, closing")
			_ = s.server.Close() //nolint:errcheck // already shutting down
		}
		return ctx.Err()
	}
}
