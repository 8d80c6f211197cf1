// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mdrss/internal/platform/apperr"
	"github.com/taibuivan/mdrss/internal/platform/dberr"
)

/*
TestWrap verifies the mapping from driver errors to application errors.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), "NOT_FOUND", http.StatusNotFound},
		{"foreign_key", &pgconn.PgError{Code: "23503", ConstraintName: "chapter_mangauuid_fkey"}, "INTERNAL_ERROR", http.StatusInternalServerError},
		{"unknown", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appError := apperr.As(dberr.Wrap(tt.err, "Chapter", "upsert chapters"))
			require.NotNil(t, appError)
			assert.Equal(t, tt.code, appError.Code)
			assert.Equal(t, tt.status, appError.HTTPStatus)
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "Chapter", "upsert chapters"))
}
