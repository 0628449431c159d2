// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	apperrors "github.com/mchmarny/sitestack/pkg/errors"
)

// System endpoint paths.
const (
	PathHealth  = "/-/health"
	PathReady   = "/-/ready"
	PathMetrics = "/-/metrics"
)

// Server represents the preview HTTP server
type Server struct {
	config      *Config
	files       fs.FS
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	mu          sync.RWMutex
	ready       bool
}

// Option configures a Server.
type Option func(*Server)

// WithFS serves content from files instead of Config.Root.
func WithFS(files fs.FS) Option {
	return func(s *Server) {
		s.files = files
	}
}

// New creates a server for cfg. A nil cfg uses NewConfig.
func New(cfg *Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	s := &Server{
		config:      cfg,
		rateLimiter: rate.NewLimiter(cfg.RateLimit, cfg.RateLimitBurst),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.files == nil {
		info, err := os.Stat(cfg.Root)
		if err != nil {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeNotFound, "site content directory not found", err,
				map[string]any{"root": cfg.Root})
		}
		if !info.IsDir() {
			return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "site content path is not a directory",
				map[string]any{"root": cfg.Root})
		}
		s.files = os.DirFS(cfg.Root)
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return s, nil
}

// Handler returns the routes with their middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc(PathHealth, s.metricsMiddleware(routeSystem, s.handleHealth))
	mux.HandleFunc(PathReady, s.metricsMiddleware(routeSystem, s.handleReady))
	mux.Handle(PathMetrics, promhttp.Handler())

	mux.HandleFunc("/", s.withMiddleware(s.handleSite))

	return mux
}

// SetReady marks the server as ready to serve traffic
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady reports whether the server is serving traffic.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeUnavailable, "failed to listen", err,
			map[string]any{"address": s.httpServer.Addr})
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	slog.Info("serving site preview",
		"address", ln.Addr().String(),
		"root", s.config.Root,
		"errorStatus", s.config.ErrorStatus)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.SetReady(true)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown()
	})

	if err := g.Wait(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "preview server failed", err)
	}

	slog.Info("site preview stopped")
	return nil
}

func (s *Server) shutdown() error {
	s.SetReady(false)

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}
