// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token, so a
// cycle that outlived its TTL cannot drop a lock taken by someone else.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a [Locker] shared by every replica pointing at the same Redis.
type RedisLocker struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// NewRedisLocker creates a locker on key. The ttl must exceed the longest
// expected cycle.
func NewRedisLocker(client redis.UniversalClient, key string, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, key: key, ttl: ttl}
}

// TryLock implements [Locker] with SET NX PX.
func (locker *RedisLocker) TryLock(ctx context.Context) (Unlock, bool, error) {
	token := uuid.NewString()

	acquired, err := locker.client.SetNX(ctx, locker.key, token, locker.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("ingest: acquire lock: %w", err)
	}
	if !acquired {
		return nil, false, nil
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, locker.client, []string{locker.key}, token).Err(); err != nil {
			return fmt.Errorf("ingest: release lock: %w", err)
		}
		return nil
	}, true, nil
}
