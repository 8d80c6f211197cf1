// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Upsert describes an idempotent INSERT ... ON CONFLICT DO UPDATE for one table.
type Upsert struct {
	Table string

	// Key is the conflict target column.
	Key string

	// Columns are inserted in this order; row values must match.
	Columns []string

	// Mutable columns are overwritten from EXCLUDED on conflict.
	Mutable []string

	// Touch is set to now() on conflict. Empty disables it.
	Touch string
}

// Build renders the statement for one row.
func (upsert Upsert) Build(values ...any) (string, []any) {
	builder := sqlbuilder.PostgreSQL.NewInsertBuilder()
	builder.InsertInto(upsert.Table).Cols(upsert.Columns...).Values(values...)

	assignments := make([]string, 0, len(upsert.Mutable)+1)
	for _, column := range upsert.Mutable {
		assignments = append(assignments, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}
	if upsert.Touch != "" {
		assignments = append(assignments, upsert.Touch+" = now()")
	}

	builder.SQL(fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", upsert.Key, strings.Join(assignments, ", ")))
	return builder.Build()
}

/*
ExecUpsert applies one upsert per row inside a single transaction.

The rows are pipelined with a pgx.Batch. Either every row is written or, on
the first failure, none of them are.

Parameters:
  - ctx: context.Context
  - pool: *pgxpool.Pool
  - upsert: Upsert (statement shape)
  - rows: [][]any (values per row, in Columns order)

Returns:
  - error: Index of the failing row wrapped with the driver error
*/
func ExecUpsert(ctx context.Context, pool *pgxpool.Pool, upsert Upsert, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	return WithTx(ctx, pool, func(transaction pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, row := range rows {
			statement, args := upsert.Build(row...)
			batch.Queue(statement, args...)
		}

		results := transaction.SendBatch(ctx, batch)
		for index := range rows {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return fmt.Errorf("row %d: %w", index, err)
			}
		}
		return results.Close()
	})
}

// WithTx runs fn in a transaction, committing on success and rolling back otherwise.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(pgx.Tx) error) error {
	transaction, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = transaction.Rollback(ctx) }()

	if err := fn(transaction); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
