// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/piggybank/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
)

// Limiter decides whether a request identified by key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter implements a fixed-window rate limit backed by redis, shared
// across instances.
type RedisLimiter struct {
	client         *redis.Client
	maxAttempts    int
	windowDuration time.Duration
}

// NewRedisLimiter creates a redis-backed limiter. Zero values fall back to
// the defaults.
func NewRedisLimiter(client *redis.Client, maxAttempts int, windowDuration time.Duration) *RedisLimiter {
	if maxAttempts == 0 {
		maxAttempts = defaultMaxAttempts
	}
	if windowDuration == 0 {
		windowDuration = defaultWindowDuration
	}
	return &RedisLimiter{
		client:         client,
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// Allow increments the window counter for key and reports whether the request
// stays under the limit.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := "ratelimit:" + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.windowDuration)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= int64(l.maxAttempts), nil
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// MemoryLimiter implements a fixed-window rate limit in process memory, used
// when no redis instance is configured.
type MemoryLimiter struct {
	mu             sync.Mutex
	entries        map[string]*rateLimitEntry
	maxAttempts    int
	windowDuration time.Duration
}

// NewMemoryLimiter creates an in-memory limiter. Zero values fall back to the
// defaults.
func NewMemoryLimiter(maxAttempts int, windowDuration time.Duration) *MemoryLimiter {
	if maxAttempts == 0 {
		maxAttempts = defaultMaxAttempts
	}
	if windowDuration == 0 {
		windowDuration = defaultWindowDuration
	}
	return &MemoryLimiter{
		entries:        make(map[string]*rateLimitEntry),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// Allow reports whether a request from the given key should be allowed.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	entry, exists := l.entries[key]
	if !exists || now.After(entry.resetTime) {
		l.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(l.windowDuration),
		}
		return true, nil
	}

	if entry.attempts < l.maxAttempts {
		entry.attempts++
		return true, nil
	}

	return false, nil
}

// Reset clears the limiter state (useful for testing).
func (l *MemoryLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[string]*rateLimitEntry)
}

// RateLimit returns a Gin middleware handler that enforces the limiter per
// client IP. Limiter backend failures fail open with a warning so a redis
// outage does not lock everyone out.
func RateLimit(limiter Limiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		allowed, err := limiter.Allow(c.Request.Context(), clientIP)
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: "too many requests, try again later"})
			c.Abort()
			return
		}

		c.Next()
	}
}
