// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mdrss/internal/core/manga"
	"github.com/taibuivan/mdrss/internal/core/user"
	"github.com/taibuivan/mdrss/internal/platform/database/schema"
	"github.com/taibuivan/mdrss/internal/platform/dberr"
	"github.com/taibuivan/mdrss/internal/platform/postgres"
)

var upsertChapter = postgres.Upsert{
	Table: schema.Chapter.Table,
	Key:   schema.Chapter.UUID,
	Columns: []string{
		schema.Chapter.UUID, schema.Chapter.Title, schema.Chapter.Chapter, schema.Chapter.Volume,
		schema.Chapter.PublishedAt, schema.Chapter.TranslatedLanguage, schema.Chapter.MangaUUID,
		schema.Chapter.UploaderUUID, schema.Chapter.GroupUUIDs,
	},
	Mutable: schema.Chapter.Mutable(),
	Touch:   schema.Chapter.UpdatedAt,
}

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed chapter store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Chapter Mutation

/*
UpsertMany writes all chapters in one transaction.

Description: Group UUIDs are stored in upstream order; a nil slice is stored as
an empty array so the column stays NOT NULL.

Parameters:
  - context: context.Context
  - chapters: []*Chapter

Returns:
  - error: Persistence failures, including missing manga or uploader rows
*/
func (repository *PostgresRepository) UpsertMany(context context.Context, chapters []*Chapter) error {
	rows := make([][]any, 0, len(chapters))
	for _, chapter := range chapters {
		groupIDs := chapter.GroupIDs
		if groupIDs == nil {
			groupIDs = []string{}
		}
		rows = append(rows, []any{
			chapter.ID, chapter.Title, chapter.Chapter, chapter.Volume,
			chapter.PublishedAt.UTC(), chapter.TranslatedLanguage, chapter.MangaID,
			chapter.UploaderID, groupIDs,
		})
	}

	err := postgres.ExecUpsert(context, repository.pool, upsertChapter, rows)
	return dberr.Wrap(err, "Chapter", "upsert_chapters")
}

// # Chapter Retrieval

// LatestPublishedAt returns max(publishedat), or nil when no chapter is stored.
func (repository *PostgresRepository) LatestPublishedAt(context context.Context) (*time.Time, error) {
	query := fmt.Sprintf(`SELECT max(%s) FROM %s`, schema.Chapter.PublishedAt, schema.Chapter.Table)

	var latest *time.Time
	if err := repository.pool.QueryRow(context, query).Scan(&latest); err != nil {
		return nil, dberr.Wrap(err, "Chapter", "get_latest_published_at")
	}
	return latest, nil
}

/*
ListFeed runs the disjunctive feed query.

Description: Joins manga (for original language and titles) and uploader
(for usernames). Groups are not joined; callers resolve them in one batch.

Parameters:
  - context: context.Context
  - filters: []FeedFilter
  - limit: int

Returns:
  - []*FeedRow: Newest first, at most limit rows
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListFeed(context context.Context, filters []FeedFilter, limit int) ([]*FeedRow, error) {
	query, args, ok := buildFeedQuery(filters, limit)
	if !ok {
		return nil, nil
	}

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Chapter", "list_feed")
	}
	defer rows.Close()

	var results []*FeedRow
	for rows.Next() {
		row, err := scanFeedRow(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Chapter", "scan_feed_row")
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Chapter", "iterate_feed")
	}
	return results, nil
}

func scanFeedRow(rows pgx.Rows) (*FeedRow, error) {
	chapter := &Chapter{}
	series := &manga.Manga{}
	uploader := &user.User{}

	err := rows.Scan(
		&chapter.ID, &chapter.Title, &chapter.Chapter, &chapter.Volume,
		&chapter.PublishedAt, &chapter.TranslatedLanguage, &chapter.MangaID,
		&chapter.UploaderID, &chapter.GroupIDs,
		&series.Title, &series.OriginalLanguage,
		&uploader.Username,
	)
	if err != nil {
		return nil, err
	}

	series.ID = chapter.MangaID
	uploader.ID = chapter.UploaderID
	return &FeedRow{Chapter: chapter, Manga: series, Uploader: uploader}, nil
}
