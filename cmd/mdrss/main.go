// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command mdrss serves RSS, Atom and JSON feeds of new MangaDex chapters.
//
// # Commands
//
//   - serve: HTTP server plus the ingestion scheduler.
//   - fetch: a single ingestion cycle, for cron jobs and debugging.
//   - migrate: apply or roll back the database schema.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/taibuivan/mdrss/internal/platform/constants"
)

func main() {
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(false)
	slog.SetDefault(log)

	app := &cli.App{
		Name:    constants.AppName,
		Usage:   "MangaDex chapter feeds",
		Version: constants.AppVersion,
		Commands: []*cli.Command{
			serveCommand(),
			fetchCommand(),
			migrateCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Error("command_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// newLogger returns the JSON process logger tagged with the app name.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}
