// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/taibuivan/mdrss/internal/api"
	"github.com/taibuivan/mdrss/internal/feed"
	"github.com/taibuivan/mdrss/internal/ingest"
	"github.com/taibuivan/mdrss/internal/platform/constants"
	pgstore "github.com/taibuivan/mdrss/internal/platform/postgres"
	redisstore "github.com/taibuivan/mdrss/internal/platform/redis"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Serve feeds and run the ingestion scheduler",
		Action: serve,
	}
}

// # Startup Sequence
//
//  1. Load configuration, connect to Postgres and Redis, migrate.
//  2. Wire repositories, the ingestion scheduler and the feed handler.
//  3. Start the HTTP server.
//  4. On SIGINT/SIGTERM stop the scheduler and drain in-flight requests.
func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	rt, closeRuntime, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer closeRuntime()

	log := rt.log
	repos := rt.repositories()

	// # Ingestion
	var scheduler *ingest.Scheduler
	if rt.cfg.FetchEnabled {
		scheduler = ingest.NewScheduler(rt.ingestService(repos, prometheus.DefaultRegisterer), rt.cfg.FetchInterval, log)
		scheduler.Start()
	} else {
		log.Warn("ingest_scheduler_disabled")
	}

	// # Feeds
	feedService := feed.NewService(repos.chapters, repos.groups, repos.mangas, repos.users, log.With(slog.String("component", "feed")))
	feedHandler := feed.NewHandler(feedService, feed.NewRedisCache(rt.redis), rt.reporter, feed.NewMetrics(prometheus.DefaultRegisterer), feed.HandlerOptions{
		PublicBaseURL: rt.cfg.PublicBaseURL,
		CacheTTL:      rt.cfg.FeedCacheTTL,
	})

	// # Health
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, rt.pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rt.redis) },
	}, log)

	server := api.NewServer(ctx, rt.cfg, log, rt.reporter, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Feed:      feedHandler,
		Gatherer:  prometheus.DefaultGatherer,
	})

	// # Graceful Shutdown
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown_signal_received")
	case runErr = <-serverErr:
		log.Error("server_failed", slog.Any("error", runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.ShutdownTimeout)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		return errors.Join(runErr, err)
	}

	log.Info("server_stopped_cleanly")
	return runErr
}
