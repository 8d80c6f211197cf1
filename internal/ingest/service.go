// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ingest keeps the chapter store in sync with MangaDex.

Each cycle reads the watermark (newest stored publication time), fetches one
page of chapters published since then, and upserts the referenced users,
groups, manga and chapters in that order so foreign keys always resolve.

# Cold Start

With an empty store there is no watermark. The cycle then fetches the newest
chapters within a lookback window instead of replaying the whole catalogue.
*/
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/taibuivan/mdrss/internal/core/chapter"
	"github.com/taibuivan/mdrss/internal/core/group"
	"github.com/taibuivan/mdrss/internal/core/manga"
	"github.com/taibuivan/mdrss/internal/core/user"
	"github.com/taibuivan/mdrss/internal/mangadex"
	"github.com/taibuivan/mdrss/internal/platform/reporter"
)

// # Dependencies

// Fetcher lists upstream chapters. [mangadex.Client] implements it.
type Fetcher interface {
	ListChapters(ctx context.Context, query mangadex.ChapterQuery) ([]mangadex.Chapter, error)
}

// Stores groups the repositories a cycle writes to.
type Stores struct {
	Users    user.Repository
	Groups   group.Repository
	Mangas   manga.Repository
	Chapters chapter.Repository
}

// Options tune a cycle.
type Options struct {
	// Limit is the upstream page size.
	Limit int

	// Lookback bounds the cold-start window.
	Lookback time.Duration

	// CycleTimeout bounds one RunOnce call.
	CycleTimeout time.Duration
}

// Result summarizes one cycle.
type Result struct {
	ColdStart bool
	Since     time.Time
	Fetched   int
	Discarded int
	Skipped   int

	Users    int
	Groups   int
	Mangas   int
	Chapters int

	// Watermark is the newest publication time stored after the cycle.
	Watermark *time.Time
}

// Service runs ingestion cycles.
type Service struct {
	fetcher  Fetcher
	stores   Stores
	locker   Locker
	reporter reporter.Reporter
	metrics  *Metrics
	options  Options
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires a Service. A nil locker falls back to an in-process mutex.
func NewService(fetcher Fetcher, stores Stores, locker Locker, rep reporter.Reporter, metrics *Metrics, options Options, logger *slog.Logger) *Service {
	if locker == nil {
		locker = &MutexLocker{}
	}
	if options.CycleTimeout <= 0 {
		options.CycleTimeout = 5 * time.Minute
	}

	return &Service{
		fetcher:  fetcher,
		stores:   stores,
		locker:   locker,
		reporter: rep,
		metrics:  metrics,
		options:  options,
		logger:   logger,
		now:      time.Now,
	}
}

// # Cycle Execution

/*
FetchNewChapters performs one ingestion pass without locking.

Description: Future-dated chapters are always dropped; on cold start chapters
older than the lookback cutoff are dropped too. Chapters lacking a manga or
uploader are skipped. Upserts that completed before a failure are kept.

Parameters:
  - ctx: context.Context

Returns:
  - Result: Counts and the resulting watermark
  - error: First upstream or storage failure
*/
func (service *Service) FetchNewChapters(ctx context.Context) (Result, error) {
	var result Result

	// 1. Resolve the watermark
	watermark, err := service.stores.Chapters.LatestPublishedAt(ctx)
	if err != nil {
		return result, fmt.Errorf("ingest: read watermark: %w", err)
	}
	result.Watermark = watermark

	now := service.now().UTC()
	query := mangadex.ChapterQuery{Limit: service.options.Limit, ExcludeFuture: true}

	if watermark != nil {
		query.PublishAtSince = watermark.UTC()
		query.Order = mangadex.OrderAsc
	} else {
		result.ColdStart = true
		query.PublishAtSince = now.Add(-service.options.Lookback)
		query.Order = mangadex.OrderDesc
	}
	result.Since = query.PublishAtSince

	// 2. Fetch one page
	upstream, err := service.fetcher.ListChapters(ctx, query)
	if err != nil {
		return result, fmt.Errorf("ingest: fetch chapters: %w", err)
	}
	result.Fetched = len(upstream)

	// 3. Filter and map
	records := make([]Record, 0, len(upstream))
	for _, source := range upstream {
		publishedAt := source.Attributes.PublishAt
		if publishedAt.After(now) || (result.ColdStart && publishedAt.Before(query.PublishAtSince)) {
			result.Discarded++
			continue
		}

		record, err := ToRecord(source)
		if errors.Is(err, ErrMissingRelationship) {
			result.Skipped++
			service.logger.WarnContext(ctx, "ingest_chapter_skipped",
				slog.String("chapter_id", source.ID),
				slog.Any("error", err),
			)
			continue
		}
		if err != nil {
			return result, err
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return result, nil
	}

	// 4. Deduplicate in first-seen order
	users := lo.UniqBy(lo.Map(records, func(record Record, _ int) *user.User { return record.Uploader }),
		func(entity *user.User) string { return entity.ID })
	groups := lo.UniqBy(lo.FlatMap(records, func(record Record, _ int) []*group.Group { return record.Groups }),
		func(entity *group.Group) string { return entity.ID })
	mangas := lo.UniqBy(lo.Map(records, func(record Record, _ int) *manga.Manga { return record.Manga }),
		func(entity *manga.Manga) string { return entity.ID })
	chapters := lo.UniqBy(lo.Map(records, func(record Record, _ int) *chapter.Chapter { return record.Chapter }),
		func(entity *chapter.Chapter) string { return entity.ID })

	// 5. Upsert parents before children
	if err := service.stores.Users.UpsertMany(ctx, users); err != nil {
		return result, fmt.Errorf("ingest: upsert users: %w", err)
	}
	result.Users = len(users)

	if err := service.stores.Groups.UpsertMany(ctx, groups); err != nil {
		return result, fmt.Errorf("ingest: upsert groups: %w", err)
	}
	result.Groups = len(groups)

	if err := service.stores.Mangas.UpsertMany(ctx, mangas); err != nil {
		return result, fmt.Errorf("ingest: upsert manga: %w", err)
	}
	result.Mangas = len(mangas)

	if err := service.stores.Chapters.UpsertMany(ctx, chapters); err != nil {
		return result, fmt.Errorf("ingest: upsert chapters: %w", err)
	}
	result.Chapters = len(chapters)

	// 6. Advance the watermark
	newest := lo.MaxBy(chapters, func(a, b *chapter.Chapter) bool { return a.PublishedAt.After(b.PublishedAt) }).PublishedAt
	if watermark == nil || newest.After(*watermark) {
		result.Watermark = &newest
	}

	return result, nil
}

/*
RunOnce runs a locked, timed, observed cycle.

Failures are logged, counted and reported, then returned; the caller never
needs to handle them for the loop to continue.

Parameters:
  - ctx: context.Context

Returns:
  - error: ErrCycleInProgress when another cycle holds the lock, or the cycle failure
*/
func (service *Service) RunOnce(ctx context.Context) error {
	unlock, acquired, err := service.locker.TryLock(ctx)
	if err != nil {
		service.fail(ctx, err)
		return err
	}
	if !acquired {
		service.metrics.cycles.WithLabelValues(resultSkipped).Inc()
		service.logger.InfoContext(ctx, "ingest_cycle_skipped", slog.String("reason", "lock_held"))
		return ErrCycleInProgress
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			service.logger.WarnContext(ctx, "ingest_unlock_failed", slog.Any("error", err))
		}
	}()

	cycleCtx, cancel := context.WithTimeout(ctx, service.options.CycleTimeout)
	defer cancel()

	startTime := time.Now()
	result, err := service.FetchNewChapters(cycleCtx)
	if err != nil {
		service.fail(ctx, err)
		return err
	}

	elapsed := time.Since(startTime)
	service.metrics.cycles.WithLabelValues(resultSuccess).Inc()
	service.metrics.cycleDuration.Observe(elapsed.Seconds())
	service.metrics.chapters.Add(float64(result.Chapters))

	attributes := []any{
		slog.Bool("cold_start", result.ColdStart),
		slog.Time("since", result.Since),
		slog.Int("fetched", result.Fetched),
		slog.Int("discarded", result.Discarded),
		slog.Int("skipped", result.Skipped),
		slog.Int("users", result.Users),
		slog.Int("groups", result.Groups),
		slog.Int("manga", result.Mangas),
		slog.Int("chapters", result.Chapters),
		slog.Int64("latency_ms", elapsed.Milliseconds()),
	}
	if result.Watermark != nil {
		service.metrics.watermarkLag.Set(service.now().Sub(*result.Watermark).Seconds())
		attributes = append(attributes, slog.Time("watermark", *result.Watermark))
	}

	service.logger.InfoContext(ctx, "ingest_cycle_finished", attributes...)
	return nil
}

func (service *Service) fail(ctx context.Context, err error) {
	service.metrics.cycles.WithLabelValues(resultFailure).Inc()
	service.logger.ErrorContext(ctx, "ingest_cycle_failed", slog.Any("error", err))
	service.reporter.Capture(ctx, err)
}
