// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values shared by the HTTP
server, the ingestion loop and the storage layer.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Headers: Canonical names of the headers the middleware reads and writes.
  - Redis Prefixes: Key taxonomy for cache entries and locks.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "mdrss"
	AppVersion = "0.1.0"

	// PoweredBy is sent in the X-Powered-By header of every response.
	PoweredBy = "Sweat and tears"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StartupTimeout bounds connecting to Postgres and Redis at boot.
	StartupTimeout = 60 * time.Second

	// ReporterFlushTimeout bounds delivery of buffered error reports on exit.
	ReporterFlushTimeout = 2 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 10.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 30

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXPoweredBy    = "X-Powered-By"
	HeaderOrigin        = "Origin"
	HeaderContentType   = "Content-Type"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaMDRSS = "mdrss"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixFeed    = "mdrss:feed:"
	RedisKeyIngestLock = "mdrss:ingest:lock"
)

// # Ingestion

const (
	// IngestCycleTimeout bounds a single ingestion cycle.
	IngestCycleTimeout = 5 * time.Minute

	// IngestLockTTL outlives IngestCycleTimeout so a crashed holder frees the lock.
	IngestLockTTL = IngestCycleTimeout + time.Minute
)
