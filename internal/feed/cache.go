// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores rendered feed bodies.
type Cache interface {

	/*
		Get returns a cached body.

		Parameters:
		  - ctx: context.Context
		  - key: string

		Returns:
		  - []byte: Body when found
		  - bool: Whether the key was present
		  - error: Backend failures (a miss is not an error)
	*/
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores body under key for ttl.
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}

// CacheKey derives the key for a request URI rendered in format. The URI is
// part of the rendered feed link, so identical filters under different URIs
// are cached separately.
func CacheKey(prefix, requestURI string, format Format) string {
	sum := sha256.Sum256([]byte(string(format) + "\n" + requestURI))
	return prefix + hex.EncodeToString(sum[:])
}

// RedisCache is a [Cache] on Redis strings.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache wraps client.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// Get implements [Cache].
func (cache *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := cache.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("feed: cache get: %w", err)
	}
	return body, true, nil
}

// Set implements [Cache].
func (cache *RedisCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	if err := cache.client.Set(ctx, key, body, ttl).Err(); err != nil {
		return fmt.Errorf("feed: cache set: %w", err)
	}
	return nil
}
