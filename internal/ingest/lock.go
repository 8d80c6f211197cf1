// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingest

import (
	"context"
	"errors"
	"sync"
)

// ErrCycleInProgress is returned when another cycle holds the lock.
var ErrCycleInProgress = errors.New("ingest: cycle already in progress")

// Unlock releases a lock obtained from a [Locker].
type Unlock func(ctx context.Context) error

// Locker guarantees that at most one ingestion cycle runs at a time.
type Locker interface {

	/*
		TryLock attempts to take the cycle lock without waiting.

		Parameters:
		  - ctx: context.Context

		Returns:
		  - Unlock: Releases the lock; nil when not acquired
		  - bool: Whether the lock was acquired
		  - error: Backend failures
	*/
	TryLock(ctx context.Context) (Unlock, bool, error)
}

// MutexLocker is an in-process [Locker] for single-replica setups and tests.
type MutexLocker struct {
	mu sync.Mutex
}

// TryLock implements [Locker].
func (locker *MutexLocker) TryLock(context.Context) (Unlock, bool, error) {
	if !locker.mu.TryLock() {
		return nil, false, nil
	}
	return func(context.Context) error {
		locker.mu.Unlock()
		return nil
	}, true, nil
}
