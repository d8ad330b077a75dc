package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	localIdleTTL = 10 * time.Minute
	localMaxKeys = 10000
)

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter keeps one x/time/rate bucket per key in process memory. It is
// used when no Redis is configured.
type LocalLimiter struct {
	mu      sync.Mutex
	entries map[string]*localEntry
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

func NewLocalLimiter(ratePerMinute, burst int) *LocalLimiter {
	limit := rate.Inf
	if ratePerMinute > 0 {
		limit = rate.Limit(float64(ratePerMinute) / 60.0)
	}
	return &LocalLimiter{
		entries: make(map[string]*localEntry),
		limit:   limit,
		burst:   burst,
		now:     time.Now,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key = hashKey(key)

	entry, ok := l.entries[key]
	if !ok {
		if len(l.entries) >= localMaxKeys {
			l.evictIdle(now)
		}
		entry = &localEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = entry
	}
	entry.lastSeen = now

	if entry.limiter.AllowN(now, 1) {
		return Result{Allowed: true, Remaining: int64(entry.limiter.TokensAt(now))}, nil
	}

	reservation := entry.limiter.ReserveN(now, 1)
	retryAfter := reservation.DelayFrom(now)
	reservation.CancelAt(now)

	return Result{Allowed: false, RetryAfter: retryAfter}, nil
}

func (l *LocalLimiter) evictIdle(now time.Time) {
	for key, entry := range l.entries {
		if now.Sub(entry.lastSeen) > localIdleTTL {
			delete(l.entries, key)
		}
	}
}
