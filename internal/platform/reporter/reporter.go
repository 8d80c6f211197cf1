// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reporter delivers unexpected errors to an out-of-band error tracker.

Reporting never influences control flow: callers log and handle the error as
they would anyway and hand a copy to the [Reporter]. The production
implementation is backed by Sentry; an empty DSN yields a client that
discards every event, so local runs need no special casing.
*/
package reporter

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/taibuivan/mdrss/internal/platform/ctxutil"
)

// Reporter captures errors for out-of-band observability.
type Reporter interface {
	// Capture records err. Implementations must be safe for concurrent use.
	Capture(ctx context.Context, err error)

	// Flush waits up to timeout for buffered events to be delivered.
	Flush(timeout time.Duration) bool
}

// Options configures the Sentry-backed reporter.
type Options struct {
	DSN              string
	Environment      string
	Release          string
	TracesSampleRate float64
	Debug            bool
}

// SentryReporter is a [Reporter] backed by its own Sentry hub.
type SentryReporter struct {
	hub *sentry.Hub
}

// NewSentry creates a reporter with a dedicated client and hub, leaving the
// sentry package globals untouched.
func NewSentry(options Options) (*SentryReporter, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              options.DSN,
		Environment:      options.Environment,
		Release:          options.Release,
		TracesSampleRate: options.TracesSampleRate,
		AttachStacktrace: true,
		Debug:            options.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("reporter: failed to create sentry client: %w", err)
	}

	return &SentryReporter{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// Capture sends err to Sentry, tagged with the request id when ctx carries one.
func (reporter *SentryReporter) Capture(ctx context.Context, err error) {
	if err == nil {
		return
	}

	// Each event gets its own scope so tags never leak between requests.
	hub := reporter.hub.Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
			scope.SetTag("request_id", requestID)
		}
		hub.CaptureException(err)
	})
}

// Flush waits for queued events to be sent.
func (reporter *SentryReporter) Flush(timeout time.Duration) bool {
	return reporter.hub.Flush(timeout)
}
