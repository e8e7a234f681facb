// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities, IP tracking TTLs, and the submission ledger window.
  - Submission Pipeline: Default content bounds and upload limits.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "majalla-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	// Submissions carry multi-megabyte cover images plus sequential object
	// storage uploads, so this is generous compared to a plain CRUD API.
	GlobalRequestTimeout = 60 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute

	// SubmissionWindow is the rolling window for the email+IP submission ledger.
	SubmissionWindow = 1 * time.Hour

	// MaxSubmissionsPerWindow is the number of accepted submission attempts
	// allowed per email+IP key within [SubmissionWindow].
	MaxSubmissionsPerWindow = 3
)

// # Submission Pipeline Defaults

const (
	// DefaultMinWords is the minimum aggregate word count for article content.
	DefaultMinWords = 50

	// DefaultMaxWords is the maximum aggregate word count for article content.
	DefaultMaxWords = 5000

	// DefaultMaxFileSizeMB is the upload ceiling for cover and inline images.
	DefaultMaxFileSizeMB = 5

	// MaxFieldRunes is the hard cap applied to any single sanitized text field.
	MaxFieldRunes = 2000

	// MaxSlugRunes is the length cap for generated article slugs.
	MaxSlugRunes = 50
)

// # Wizard Sessions

const (
	// WizardSessionTTL is how long an idle wizard session survives in Redis.
	WizardSessionTTL = 24 * time.Hour
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim expected in verified JWTs.
	AuthIssuer = "majalla.net"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
)

// # Database Schemas

const (
	SchemaContent = "content"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixWizardSession  = "wizard:session:"
	RedisPrefixSubmissionRate = "submission:rate:"
)
