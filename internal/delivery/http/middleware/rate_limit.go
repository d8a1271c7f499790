package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"simhire-backend/internal/delivery/http/response"
	"simhire-backend/pkg/logger"
	"simhire-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int // requests per window
	Window time.Duration
	// Scope separates counters of different limiters, e.g. "global" or "auth"
	Scope   string
	KeyFunc func(*gin.Context) string
	// Reject with 503 instead of falling back to memory when Redis errors
	FailClosed bool
}

type windowCounter struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// In-memory fallback, used when Redis is not configured
var (
	counters    sync.Map // key -> *windowCounter
	cleanupOnce sync.Once
)

// KEYS[1] = counter key, ARGV[1] = window in seconds. Returns {count, ttl}.
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

func startCleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			now := time.Now()
			counters.Range(func(key, value interface{}) bool {
				wc := value.(*windowCounter)
				wc.mu.Lock()
				if now.After(wc.resetAt) {
					counters.Delete(key)
				}
				wc.mu.Unlock()
				return true
			})
		}
	}()
}

func clientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// DefaultRateLimitConfig limits every client IP to limit requests per window
func DefaultRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{Limit: limit, Window: window, Scope: "global", KeyFunc: clientIPKey}
}

// AuthRateLimitConfig is the strict limiter for login and register
func AuthRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{Limit: limit, Window: window, Scope: "auth", KeyFunc: clientIPKey, FailClosed: true}
}

// RateLimitMiddleware counts requests per key in Redis when available, in memory otherwise
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	cleanupOnce.Do(startCleanup)

	return func(c *gin.Context) {
		key := redis.Key("rl", config.Scope, config.KeyFunc(c))

		count, resetAt, err := countRequest(c.Request.Context(), key, config)
		if err != nil {
			logger.Log.ErrorContext(c.Request.Context(), "rate limit store unavailable",
				"scope", config.Scope,
				"ip", c.ClientIP(),
				"error", err)
			if config.FailClosed {
				response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
				c.Abort()
				return
			}
			count, resetAt = countInMemory(key, config.Window, time.Now())
		}

		remaining := config.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			requestID, _ := c.Get("RequestID")
			logger.Log.WarnContext(c.Request.Context(), "rate limit triggered",
				"scope", config.Scope,
				"ip", c.ClientIP(),
				"path", c.FullPath(),
				"request_id", requestID)

			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func countRequest(ctx context.Context, key string, config RateLimitConfig) (int, time.Time, error) {
	client := redis.Client()
	if client == nil {
		count, resetAt := countInMemory(key, config.Window, time.Now())
		return count, resetAt, nil
	}
	return countInRedis(ctx, client, key, config.Window)
}

func countInRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, int(window.Seconds())).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

func countInMemory(key string, window time.Duration, now time.Time) (int, time.Time) {
	v, _ := counters.LoadOrStore(key, &windowCounter{resetAt: now.Add(window)})
	wc := v.(*windowCounter)

	wc.mu.Lock()
	defer wc.mu.Unlock()

	if now.After(wc.resetAt) {
		wc.count = 0
		wc.resetAt = now.Add(window)
	}
	wc.count++
	return wc.count, wc.resetAt
}

// GlobalRateLimitMiddleware applies default rate limiting to all routes
func GlobalRateLimitMiddleware(limit int, window time.Duration) gin.HandlerFunc {
	return RateLimitMiddleware(DefaultRateLimitConfig(limit, window))
}

// StrictRateLimitMiddleware for auth-sensitive endpoints
func StrictRateLimitMiddleware(limit int, window time.Duration) gin.HandlerFunc {
	return RateLimitMiddleware(AuthRateLimitConfig(limit, window))
}
