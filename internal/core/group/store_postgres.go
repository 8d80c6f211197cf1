// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package group

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mdrss/internal/platform/database/schema"
	"github.com/taibuivan/mdrss/internal/platform/dberr"
	"github.com/taibuivan/mdrss/internal/platform/postgres"
)

var upsertGroup = postgres.Upsert{
	Table:   schema.ScanlationGroup.Table,
	Key:     schema.ScanlationGroup.UUID,
	Columns: []string{schema.ScanlationGroup.UUID, schema.ScanlationGroup.Name},
	Mutable: []string{schema.ScanlationGroup.Name},
	Touch:   schema.ScanlationGroup.UpdatedAt,
}

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed group store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Group Mutation

// UpsertMany writes all groups in one transaction.
func (repository *PostgresRepository) UpsertMany(context context.Context, groups []*Group) error {
	rows := make([][]any, 0, len(groups))
	for _, group := range groups {
		rows = append(rows, []any{group.ID, group.Name})
	}

	err := postgres.ExecUpsert(context, repository.pool, upsertGroup, rows)
	return dberr.Wrap(err, "Group", "upsert_groups")
}

// # Group Retrieval

/*
FindByIDs retrieves every known group among ids.

Parameters:
  - context: context.Context
  - ids: []string

Returns:
  - []*Group: Matching rows
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByIDs(context context.Context, ids []string) ([]*Group, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = ANY($1)`,
		schema.ScanlationGroup.UUID, schema.ScanlationGroup.Name,
		schema.ScanlationGroup.CreatedAt, schema.ScanlationGroup.UpdatedAt,
		schema.ScanlationGroup.Table, schema.ScanlationGroup.UUID,
	)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "Group", "list_groups_by_ids")
	}
	defer rows.Close()

	groups := make([]*Group, 0, len(ids))
	for rows.Next() {
		group := &Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedAt, &group.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "Group", "scan_group")
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Group", "iterate_groups")
	}
	return groups, nil
}
