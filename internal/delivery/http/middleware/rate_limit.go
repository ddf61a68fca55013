package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/pkg/logger"
	"go-jobportal-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Scope labels the limiter in logs and metrics.
	Scope string
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Whether to reject when Redis is unavailable instead of falling back to memory
	FailClosed bool
}

// GlobalRateLimitConfig limits every API request per client IP.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Scope:     "global",
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
	}
}

// AuthRateLimitConfig is the strict limit on register and login.
func AuthRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Scope:      "auth",
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:auth:",
		FailClosed: true,
	}
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

var rateLimitScript = goredis.NewScript(rateLimitLuaScript)

type localLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter enforces a fixed window in Redis when a client is configured and a
// token bucket per key in process memory otherwise.
type RateLimiter struct {
	config  RateLimitConfig
	redis   *goredis.Client
	metrics metrics.Recorder

	mu     sync.Mutex
	local  map[string]*localLimiter
	stopCh chan struct{}
	once   sync.Once
}

// NewRateLimiter starts the background cleanup of idle in-memory limiters; call
// Stop on shutdown. client may be nil.
func NewRateLimiter(config RateLimitConfig, client *goredis.Client, rec metrics.Recorder) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if config.Limit < 1 {
		config.Limit = 1
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if rec == nil {
		rec = metrics.Nop{}
	}

	rl := &RateLimiter{
		config:  config,
		redis:   client,
		metrics: rec,
		local:   make(map[string]*localLimiter),
		stopCh:  make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopCh) })
}

// Middleware returns the gin handler enforcing the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.config.KeyPrefix + rl.config.KeyFunc(c)

		var (
			allowed    bool
			remaining  int
			retryAfter time.Duration
		)
		if rl.redis != nil {
			count, ttl, err := rl.checkRedis(c.Request.Context(), key)
			if err == nil {
				allowed = count <= rl.config.Limit
				remaining = rl.config.Limit - count
				retryAfter = ttl
			} else {
				logger.Log.Warn("rate limit store unavailable",
					zap.String("scope", rl.config.Scope),
					zap.Error(err),
				)
				if rl.config.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.")
					c.Abort()
					return
				}
				allowed, remaining, retryAfter = rl.checkLocal(key)
			}
		} else {
			allowed, remaining, retryAfter = rl.checkLocal(key)
		}

		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))

			rl.metrics.RecordRateLimited(rl.config.Scope)
			logger.Log.Warn("rate limit exceeded",
				zap.String("scope", rl.config.Scope),
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.FullPath()),
				zap.String("request_id", c.GetString("RequestID")),
			)
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRedis runs the counter script and returns the window's count and its time left.
func (rl *RateLimiter) checkRedis(ctx context.Context, key string) (int, time.Duration, error) {
	ttlSeconds := int(math.Ceil(rl.config.Window.Seconds()))

	result, err := rateLimitScript.Run(ctx, rl.redis, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, 0, fmt.Errorf("unexpected redis result format: %T", result)
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Duration(ttl) * time.Second, nil
}

// checkLocal spends one token of key's bucket. The bucket holds Limit tokens and
// refills over Window.
func (rl *RateLimiter) checkLocal(key string) (bool, int, time.Duration) {
	now := time.Now()

	rl.mu.Lock()
	entry, ok := rl.local[key]
	if !ok {
		every := rl.config.Window / time.Duration(rl.config.Limit)
		entry = &localLimiter{limiter: rate.NewLimiter(rate.Every(every), rl.config.Limit)}
		rl.local[key] = entry
	}
	entry.lastAccess = now
	rl.mu.Unlock()

	r := entry.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, 0, delay
	}
	return true, int(entry.limiter.TokensAt(now)), 0
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.Window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup drops limiters idle for longer than two windows; they are full again by then.
func (rl *RateLimiter) cleanup(now time.Time) {
	ttl := rl.config.Window * 2

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, entry := range rl.local {
		if now.Sub(entry.lastAccess) > ttl {
			delete(rl.local, key)
		}
	}
}
