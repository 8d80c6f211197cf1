// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mdrss/internal/platform/database/schema"
	"github.com/taibuivan/mdrss/internal/platform/dberr"
	"github.com/taibuivan/mdrss/internal/platform/postgres"
)

var upsertUser = postgres.Upsert{
	Table:   schema.Uploader.Table,
	Key:     schema.Uploader.UUID,
	Columns: []string{schema.Uploader.UUID, schema.Uploader.Username},
	Mutable: []string{schema.Uploader.Username},
	Touch:   schema.Uploader.UpdatedAt,
}

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed user store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// UpsertMany writes all users in one transaction.
func (repository *PostgresRepository) UpsertMany(context context.Context, users []*User) error {
	rows := make([][]any, 0, len(users))
	for _, user := range users {
		rows = append(rows, []any{user.ID, user.Username})
	}

	err := postgres.ExecUpsert(context, repository.pool, upsertUser, rows)
	return dberr.Wrap(err, "User", "upsert_users")
}

// FindByID retrieves a single user by primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.Uploader.UUID, schema.Uploader.Username, schema.Uploader.CreatedAt, schema.Uploader.UpdatedAt,
		schema.Uploader.Table, schema.Uploader.UUID,
	)

	user := &User{}
	err := repository.pool.QueryRow(context, query, id).Scan(&user.ID, &user.Username, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "User", "get_user_by_id")
	}
	return user, nil
}
