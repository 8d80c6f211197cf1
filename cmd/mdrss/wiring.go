// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/mdrss/internal/core/chapter"
	"github.com/taibuivan/mdrss/internal/core/group"
	"github.com/taibuivan/mdrss/internal/core/manga"
	"github.com/taibuivan/mdrss/internal/core/user"
	"github.com/taibuivan/mdrss/internal/ingest"
	"github.com/taibuivan/mdrss/internal/mangadex"
	"github.com/taibuivan/mdrss/internal/platform/config"
	"github.com/taibuivan/mdrss/internal/platform/constants"
	"github.com/taibuivan/mdrss/internal/platform/migration"
	pgstore "github.com/taibuivan/mdrss/internal/platform/postgres"
	redisstore "github.com/taibuivan/mdrss/internal/platform/redis"
	"github.com/taibuivan/mdrss/internal/platform/reporter"
)

// environment holds the process-wide dependencies shared by every command.
type environment struct {
	cfg      *config.Config
	log      *slog.Logger
	pool     *pgxpool.Pool
	redis    *goredis.Client
	reporter *reporter.SentryReporter
}

// bootstrap loads configuration, connects to Postgres and Redis, and applies
// pending migrations. The returned close function releases everything.
func bootstrap(ctx context.Context) (*environment, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log := newLogger(cfg.Debug)
	slog.SetDefault(log)
	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("addr", cfg.Addr()),
		slog.String("url_prefix", cfg.URLPrefix),
	)

	rep, err := reporter.NewSentry(reporter.Options{
		DSN:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          constants.AppName + "@" + constants.AppVersion,
		TracesSampleRate: cfg.SentryTracesSampleRate,
		Debug:            cfg.Debug,
	})
	if err != nil {
		return nil, nil, err
	}

	// Misconfiguration should surface quickly rather than hang indefinitely.
	startupCtx, cancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer cancel()

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, nil, err
	}

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	if err := migration.RunUp(cfg.DatabaseURL, log); err != nil {
		pool.Close()
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	closer := func() {
		rep.Flush(constants.ReporterFlushTimeout)

		log.Info("closing_redis_client")
		if err := rdb.Close(); err != nil {
			log.Error("redis_close_failed", slog.Any("error", err))
		}

		log.Info("closing_postgres_pool")
		pool.Close()
	}

	return &environment{cfg: cfg, log: log, pool: pool, redis: rdb, reporter: rep}, closer, nil
}

// repositories are the Postgres-backed stores.
type repositories struct {
	users    *user.PostgresRepository
	groups   *group.PostgresRepository
	mangas   *manga.PostgresRepository
	chapters *chapter.PostgresRepository
}

func (rt *environment) repositories() repositories {
	return repositories{
		users:    user.NewPostgresRepository(rt.pool),
		groups:   group.NewPostgresRepository(rt.pool),
		mangas:   manga.NewPostgresRepository(rt.pool),
		chapters: chapter.NewPostgresRepository(rt.pool),
	}
}

// ingestService wires the MangaDex client and stores into an ingestion service.
func (rt *environment) ingestService(repos repositories, registerer prometheus.Registerer) *ingest.Service {
	client := mangadex.NewClient(mangadex.Options{
		BaseURL:   rt.cfg.MangaDexBaseURL,
		UserAgent: rt.cfg.MangaDexUserAgent,
		RateLimit: rt.cfg.MangaDexRateLimit,
	}, rt.log)

	locker := ingest.NewRedisLocker(rt.redis, constants.RedisKeyIngestLock, constants.IngestLockTTL)

	return ingest.NewService(
		client,
		ingest.Stores{
			Users:    repos.users,
			Groups:   repos.groups,
			Mangas:   repos.mangas,
			Chapters: repos.chapters,
		},
		locker,
		rt.reporter,
		ingest.NewMetrics(registerer),
		ingest.Options{
			Limit:        rt.cfg.FetchLimit,
			Lookback:     rt.cfg.FetchLookback,
			CycleTimeout: constants.IngestCycleTimeout,
		},
		rt.log.With(slog.String("component", "ingest")),
	)
}
