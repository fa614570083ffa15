package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"taskapi/internal/adapter/http/helper"
	"taskapi/internal/core/telemetry"
	"taskapi/pkg/config"
)

// RateLimiter is a fixed-window counter per client IP.
type RateLimiter struct {
	cache   *cache.Cache
	config  config.RateLimitConfig
	logger  *zap.Logger
	metrics *telemetry.AppMetrics
	mutex   sync.Mutex
}

type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig, logger *zap.Logger, metrics *telemetry.AppMetrics) *RateLimiter {
	return &RateLimiter{
		cache:   cache.New(cfg.Window, 2*cfg.Window),
		config:  cfg,
		logger:  logger,
		metrics: metrics,
	}
}

func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		key := "rate_limit:" + GetClientIP(c)

		allowed, remaining, resetTime := rl.checkRateLimit(key, time.Now())

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(c.Request.Context(), path)
			}

			rl.logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.String("path", path),
				zap.Int("limit", rl.config.Requests),
				zap.Duration("window", rl.config.Window))

			c.Header("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())+1))
			helper.AbortWithMessage(c, http.StatusTooManyRequests, "Too many requests")
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path)
		}

		c.Next()
	}
}

func (rl *RateLimiter) checkRateLimit(key string, now time.Time) (bool, int, time.Time) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if entry, found := rl.cache.Get(key); found {
		current := entry.(RateLimitEntry)

		if now.Before(current.ResetTime) {
			if current.Count >= rl.config.Requests {
				return false, 0, current.ResetTime
			}

			current.Count++
			rl.cache.Set(key, current, current.ResetTime.Sub(now))

			return true, rl.config.Requests - current.Count, current.ResetTime
		}
	}

	resetTime := now.Add(rl.config.Window)
	rl.cache.Set(key, RateLimitEntry{Count: 1, ResetTime: resetTime}, rl.config.Window)

	return true, rl.config.Requests - 1, resetTime
}

func (rl *RateLimiter) ActiveEntries() int {
	return rl.cache.ItemCount()
}

func GetClientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		ips := strings.Split(ip, ",")
		return strings.TrimSpace(ips[0])
	}

	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}

	ip := c.ClientIP()

	if ip == "" {
		return "unknown"
	}

	return ip
}
