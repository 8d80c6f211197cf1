// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/mdrss/internal/platform/apperr"
)

// SQLSTATE codes the repositories care about.
const (
	codeForeignKeyViolation = "23503"
	codeStatementTimeout    = "57014"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
//
// The action ("upsert chapters", "find manga") ends up in the cause so logs and
// error reports say which statement failed without exposing it to clients.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Known constraint and timeout failures keep their SQLSTATE in the cause
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeForeignKeyViolation:
			return apperr.Internal(fmt.Errorf("postgres: %s: missing parent row (%s): %w", action, pgErr.ConstraintName, err))
		case codeStatementTimeout:
			return apperr.Internal(fmt.Errorf("postgres: %s: statement timeout: %w", action, err))
		}
	}

	// 3. An unreachable server is a dependency outage, not a bug
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return apperr.ServiceUnavailable("Database", fmt.Errorf("postgres: %s: %w", action, err))
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("postgres: %s: %w", action, err))
}
