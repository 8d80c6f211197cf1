// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/taibuivan/mdrss/internal/ingest"
)

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Run a single ingestion cycle and exit",
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			rt, closeRuntime, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer closeRuntime()

			// One-shot runs do not expose metrics.
			service := rt.ingestService(rt.repositories(), prometheus.NewRegistry())

			err = service.RunOnce(ctx)
			if errors.Is(err, ingest.ErrCycleInProgress) {
				rt.log.Info("fetch_skipped_cycle_in_progress")
				return nil
			}
			return err
		},
	}
}
