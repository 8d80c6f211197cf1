// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestConvertToPgx5DSN verifies the scheme rewrite expected by the pgx/v5 driver.
*/
func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"postgres_scheme", "postgres://u:p@db:5432/mdrss", "pgx5://u:p@db:5432/mdrss"},
		{"postgresql_scheme", "postgresql://u:p@db/mdrss?sslmode=disable", "pgx5://u:p@db/mdrss?sslmode=disable"},
		{"already_pgx5", "pgx5://db/mdrss", "pgx5://db/mdrss"},
		{"keyword_dsn_untouched", "host=db dbname=mdrss", "host=db dbname=mdrss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convertToPgx5DSN(tt.dsn))
		})
	}
}

/*
TestEmbeddedMigrations verifies every up migration ships with a matching down file.
*/
func TestEmbeddedMigrations(t *testing.T) {
	ups, err := fs.Glob(migrations, "sql/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := up[:len(up)-len(".up.sql")] + ".down.sql"
		_, err := fs.Stat(migrations, down)
		assert.NoError(t, err, "missing down migration for %s", up)
	}
}
