// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and the feed
handler into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the composition root for the chi router.
  - Only this package and cmd/mdrss are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/mdrss/internal/platform/config"
	"github.com/taibuivan/mdrss/internal/platform/constants"
	"github.com/taibuivan/mdrss/internal/platform/middleware"
	"github.com/taibuivan/mdrss/internal/platform/reporter"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in cmd/mdrss with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups the HTTP handlers mounted by the server.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Feed serves /feed.
	Feed Router

	// Gatherer exposes /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// Router is implemented by handler sets that own a sub-tree of routes.
type Router interface {
	Routes() chi.Router
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all routes under cfg.URLPrefix.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, rep reporter.Reporter, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.PoweredBy(constants.PoweredBy))
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery(rep))
	r.Use(middleware.CORS(cfg, cfg.ExtraOrigins))
	r.Use(chimw.CleanPath)

	routes := func(router chi.Router) {
		// # Infrastructure Endpoints
		router.Get("/health", h.Liveness)
		router.Get("/ready", h.Readiness)
		if h.Gatherer != nil {
			router.Handle("/metrics", promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{}))
		}

		// # Feeds
		router.Mount("/feed", h.Feed.Routes())
	}

	if cfg.URLPrefix == "" {
		routes(r)
	} else {
		r.Route(cfg.URLPrefix, routes)
	}

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the fully wired router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
