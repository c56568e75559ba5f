package utils

import "time"

// ContextKey is the type used for request-scoped context values
type ContextKey string

// Request-scoped context keys set by handlers for observability
const (
	RequestIDKey  ContextKey = "request_id"
	UserAgentKey  ContextKey = "user_agent"
	IPAddressKey  ContextKey = "ip_address"
	EndpointKey   ContextKey = "endpoint"
	TimeoutKey    ContextKey = "timeout"
	CancelFuncKey ContextKey = "cancel_func"
)

// Short URL constants
const (
	// ShortCodeLength is the number of characters in a generated short code
	ShortCodeLength = 8

	// ShortCodeMaxAttempts bounds retries when a generated code collides
	ShortCodeMaxAttempts = 3

	// ShortURLCacheTTL caps how long a resolved short URL stays in cache
	ShortURLCacheTTL = 15 * time.Minute
)

// Defaults for the DB-backed sliding window limiter
const (
	DefaultRateLimitMaxRequests   = 100
	DefaultRateLimitWindowMinutes = 60
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)
