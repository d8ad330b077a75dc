// Package ratelimit throttles the public contact form per client.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Result contains the result of a rate limit check.
type Result struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter is a token bucket keyed by client
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// hashKey creates a truncated SHA256 hash of a client key so raw IP
// addresses are never stored.
func hashKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:8])
}
