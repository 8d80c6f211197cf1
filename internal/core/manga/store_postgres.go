// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mdrss/internal/platform/database/schema"
	"github.com/taibuivan/mdrss/internal/platform/dberr"
	"github.com/taibuivan/mdrss/internal/platform/postgres"
)

var upsertManga = postgres.Upsert{
	Table:   schema.Manga.Table,
	Key:     schema.Manga.UUID,
	Columns: []string{schema.Manga.UUID, schema.Manga.Title, schema.Manga.OriginalLanguage},
	Mutable: []string{schema.Manga.Title, schema.Manga.OriginalLanguage},
	Touch:   schema.Manga.UpdatedAt,
}

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed manga store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// UpsertMany writes all manga in one transaction. Titles are stored as jsonb.
func (repository *PostgresRepository) UpsertMany(context context.Context, mangas []*Manga) error {
	rows := make([][]any, 0, len(mangas))
	for _, manga := range mangas {
		title := manga.Title
		if title == nil {
			title = Titles{}
		}
		rows = append(rows, []any{manga.ID, map[string]string(title), manga.OriginalLanguage})
	}

	err := postgres.ExecUpsert(context, repository.pool, upsertManga, rows)
	return dberr.Wrap(err, "Manga", "upsert_manga")
}

// FindByID retrieves a single manga by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Manga, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.Manga.UUID, schema.Manga.Title, schema.Manga.OriginalLanguage,
		schema.Manga.CreatedAt, schema.Manga.UpdatedAt,
		schema.Manga.Table, schema.Manga.UUID,
	)

	manga := &Manga{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&manga.ID, &manga.Title, &manga.OriginalLanguage, &manga.CreatedAt, &manga.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Manga", "get_manga_by_id")
	}
	return manga, nil
}
