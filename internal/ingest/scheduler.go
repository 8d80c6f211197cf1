// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Runner executes one cycle. [Service] implements it.
type Runner interface {
	RunOnce(ctx context.Context) error
}

// Scheduler runs cycles immediately on start and then every interval.
// Overlapping ticks are skipped and panics are recovered.
type Scheduler struct {
	cron     *cron.Cron
	job      cron.Job
	interval time.Duration
	logger   *slog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	initial sync.WaitGroup
}

// NewScheduler builds a stopped scheduler.
func NewScheduler(runner Runner, interval time.Duration, logger *slog.Logger) *Scheduler {
	cronLogger := cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())

	scheduler := &Scheduler{
		cron:     cron.New(cron.WithLogger(cronLogger)),
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}

	// RunOnce logs and reports its own failures.
	scheduler.job = cron.NewChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	).Then(cron.FuncJob(func() {
		_ = runner.RunOnce(scheduler.ctx)
	}))

	return scheduler
}

// Start schedules the job and triggers the first cycle in the background.
func (scheduler *Scheduler) Start() {
	scheduler.cron.Schedule(cron.Every(scheduler.interval), scheduler.job)
	scheduler.cron.Start()

	scheduler.initial.Add(1)
	go func() {
		defer scheduler.initial.Done()
		scheduler.job.Run()
	}()

	scheduler.logger.Info("ingest_scheduler_started", slog.Duration("interval", scheduler.interval))
}

// Stop cancels the running cycle and waits for it to return, or for ctx.
func (scheduler *Scheduler) Stop(ctx context.Context) {
	scheduler.cancel()
	cronDone := scheduler.cron.Stop()

	initialDone := make(chan struct{})
	go func() {
		scheduler.initial.Wait()
		close(initialDone)
	}()

	for _, done := range []<-chan struct{}{cronDone.Done(), initialDone} {
		select {
		case <-done:
		case <-ctx.Done():
			scheduler.logger.Warn("ingest_scheduler_stop_timeout")
			return
		}
	}

	scheduler.logger.Info("ingest_scheduler_stopped")
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (adapter cronLogger) Info(msg string, keysAndValues ...any) {
	adapter.logger.Debug("cron_"+msg, keysAndValues...)
}

func (adapter cronLogger) Error(err error, msg string, keysAndValues ...any) {
	adapter.logger.Error("cron_"+msg, append(keysAndValues, slog.Any("error", err))...)
}
