package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/kitesurf-admin/internal/config"
)

// loginBucket is a token bucket with continuous refill: rate tokens per
// millisecond up to burst. One call spends one token.
// KEYS[1] bucket, ARGV: now_ms, burst, rate_per_ms, ttl_s.
// Returns {allowed, tokens_left, wait_ms}.
var loginBucket = redis.NewScript(`
local now = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local rate = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local level = tonumber(redis.call('HGET', KEYS[1], 'level'))
local seen = tonumber(redis.call('HGET', KEYS[1], 'seen'))
if level == nil then
    level = burst
    seen = now
end
level = math.min(burst, level + math.max(0, now - seen) * rate)

local ok = 0
local wait = 0
if level >= 1 then
    ok = 1
    level = level - 1
elseif rate > 0 then
    wait = math.ceil((1 - level) / rate)
end

redis.call('HSET', KEYS[1], 'level', tostring(level), 'seen', now)
redis.call('EXPIRE', KEYS[1], ttl)
return { ok, math.floor(level), wait }
`)

// NewTokenBucket limits requests with a Redis-backed token bucket. Without
// Redis, or when disabled, it passes everything through. Redis errors fail
// open so an outage never locks users out of login.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client, log *zap.Logger) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ratePerMs := float64(cfg.RefillTokens) / float64(cfg.RefillInterval.Milliseconds())
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := buildRateKey(cfg, c)
			vals, err := loginBucket.Run(c.Request().Context(), rdb, []string{key},
				time.Now().UnixMilli(), cfg.Capacity, ratePerMs, int64(cfg.TTL/time.Second)).Int64Slice()
			if err != nil || len(vals) != 3 {
				log.Warn("rate limit check skipped", zap.String("key", key), zap.Int64s("result", vals), zap.Error(err))
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(vals[1], 10))
			if cfg.Debug {
				h.Set("X-RateLimit-Key", key)
			}
			if vals[0] == 1 {
				return next(c)
			}

			wait := time.Duration(vals[2]) * time.Millisecond
			secs := int(math.Ceil(wait.Seconds()))
			h.Set("Retry-After", strconv.Itoa(secs))
			log.Info("rate limited", zap.String("key", key), zap.Duration("wait", wait))
			return c.JSON(http.StatusTooManyRequests, echo.Map{
				"error":       "Too many requests. Please try again later.",
				"retry_after": secs,
			})
		}
	}
}

// buildRateKey groups requests per client address, per route, or both.
// Login and signup are anonymous, so there is no per-user strategy.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	route := c.Request().Method + " " + c.Path()
	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		return cfg.Prefix + ":ip:" + ip
	case "route":
		return cfg.Prefix + ":route:" + route
	default:
		return cfg.Prefix + ":ip:" + ip + ":route:" + route
	}
}
