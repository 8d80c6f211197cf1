// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"github.com/urfave/cli/v2"

	"github.com/taibuivan/mdrss/internal/platform/config"
	"github.com/taibuivan/mdrss/internal/platform/migration"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(*cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					return migration.RunUp(cfg.DatabaseURL, newLogger(cfg.Debug))
				},
			},
			{
				Name:  "down",
				Usage: "Roll back migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					return migration.RunDown(cfg.DatabaseURL, c.Int("steps"), newLogger(cfg.Debug))
				},
			},
		},
	}
}
