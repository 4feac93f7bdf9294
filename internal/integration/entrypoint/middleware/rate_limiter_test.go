package middleware_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/piggybank/backend/internal/integration/entrypoint/middleware"
)

var testCtx = context.Background()

func TestMemoryLimiterFixedWindow(t *testing.T) {
	limiter := middleware.NewMemoryLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(testCtx, "1.2.3.4")
		if err != nil {
			t.Fatalf("allow failed: %v", err)
		}
		if !allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	allowed, err := limiter.Allow(testCtx, "1.2.3.4")
	if err != nil {
		t.Fatalf("allow failed: %v", err)
	}
	if allowed {
		t.Error("expected 4th attempt to be blocked")
	}

	// a different key has its own window
	allowed, err = limiter.Allow(testCtx, "5.6.7.8")
	if err != nil {
		t.Fatalf("allow failed: %v", err)
	}
	if !allowed {
		t.Error("expected unrelated key to be allowed")
	}

	limiter.Reset()
	allowed, err = limiter.Allow(testCtx, "1.2.3.4")
	if err != nil {
		t.Fatalf("allow failed: %v", err)
	}
	if !allowed {
		t.Error("expected reset to clear the window")
	}
}

func TestRedisLimiterFixedWindow(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	limiter := middleware.NewRedisLimiter(client, 2, time.Minute)

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(testCtx, "1.2.3.4")
		if err != nil {
			t.Fatalf("allow failed: %v", err)
		}
		if !allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	allowed, err := limiter.Allow(testCtx, "1.2.3.4")
	if err != nil {
		t.Fatalf("allow failed: %v", err)
	}
	if allowed {
		t.Error("expected 3rd attempt to be blocked")
	}

	// advancing past the window opens a fresh one
	server.FastForward(2 * time.Minute)
	allowed, err = limiter.Allow(testCtx, "1.2.3.4")
	if err != nil {
		t.Fatalf("allow failed: %v", err)
	}
	if !allowed {
		t.Error("expected a fresh window after expiry")
	}
}

// failingLimiter simulates a limiter backend outage.
type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("backend unavailable")
}

func newRateLimitedEngine(limiter middleware.Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine.POST("/login", middleware.RateLimit(limiter, log), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestRateLimitMiddlewareBlocksWith429(t *testing.T) {
	engine := newRateLimitedEngine(middleware.NewMemoryLimiter(1, time.Minute))

	first := httptest.NewRecorder()
	engine.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/login", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	engine.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/login", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
}

func TestRateLimitMiddlewareFailsOpen(t *testing.T) {
	engine := newRateLimitedEngine(failingLimiter{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected limiter outage to fail open, got %d", w.Code)
	}
}
