package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const redisKeyPrefix = "ratelimit:contact:"

// tokenBucketScript refills and consumes in one atomic step.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])      -- tokens per second
	local burst = tonumber(ARGV[2])     -- bucket capacity
	local now = tonumber(ARGV[3])       -- current time in seconds
	local ttl = tonumber(ARGV[4])       -- TTL in seconds

	local data = redis.call('HMGET', key, 'tokens', 'last_update')
	local tokens = tonumber(data[1]) or burst
	local last_update = tonumber(data[2]) or now

	local elapsed = now - last_update
	tokens = math.min(burst, tokens + (elapsed * rate))

	local allowed = 0
	local retry_after = 0

	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	else
		retry_after = math.ceil((1 - tokens) / rate)
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_update', now)
	redis.call('EXPIRE', key, ttl)

	return {allowed, retry_after, math.floor(tokens)}
`)

// RedisLimiter shares buckets between every instance of the site through Redis.
// Redis errors fail open.
type RedisLimiter struct {
	client *redis.Client
	rate   float64
	burst  int
	ttl    int
}

// NewRedisClient parses redisURL and verifies the connection
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return client, nil
}

// NewRedisLimiter allows ratePerMinute requests per key with the given burst
func NewRedisLimiter(client *redis.Client, ratePerMinute, burst int) *RedisLimiter {
	perSecond := float64(ratePerMinute) / 60.0
	// keep a key around for as long as it takes an empty bucket to refill
	ttl := 60
	if perSecond > 0 {
		ttl = int(math.Ceil(float64(burst)/perSecond)) + 1
	}
	return &RedisLimiter{
		client: client,
		rate:   perSecond,
		burst:  burst,
		ttl:    ttl,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	if l.rate <= 0 {
		return Result{Allowed: true, Remaining: int64(l.burst)}, nil
	}

	res, err := tokenBucketScript.Run(ctx, l.client,
		[]string{redisKeyPrefix + hashKey(key)},
		l.rate, l.burst, time.Now().Unix(), l.ttl,
	).Int64Slice()
	if err != nil {
		log.Warn().Err(err).Msg("rate limit check failed, allowing request")
		return Result{Allowed: true, Remaining: int64(l.burst)}, nil
	}

	return Result{
		Allowed:    res[0] == 1,
		Remaining:  res[2],
		RetryAfter: time.Duration(res[1]) * time.Second,
	}, nil
}
