package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"taskapi/internal/core/telemetry"
	"taskapi/pkg/config"
)

func newRateLimitedRouter(requests int, window time.Duration) (*gin.Engine, *RateLimiter) {
	metrics := telemetry.NewAppMetrics(prometheus.NewRegistry())
	rl := NewRateLimiter(config.RateLimitConfig{Requests: requests, Window: window}, zap.NewNop(), metrics)

	router := newRouter(rl.RateLimitMiddleware())
	router.GET("/tasks", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router, rl
}

func TestNewRateLimiter(t *testing.T) {
	RegisterTestingT(t)

	_, rl := newRateLimitedRouter(5, time.Minute)

	Expect(rl).ToNot(BeNil())
	Expect(rl.cache).ToNot(BeNil())
	Expect(rl.ActiveEntries()).To(Equal(0))
}

func TestRateLimitMiddleware_AllowedRequests(t *testing.T) {
	RegisterTestingT(t)

	router, rl := newRateLimitedRouter(5, time.Minute)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/tasks", nil)
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(200))
		Expect(w.Header().Get("X-RateLimit-Limit")).To(Equal("5"))
		Expect(w.Header().Get("X-RateLimit-Remaining")).To(Equal(strconv.Itoa(4 - i)))
	}

	Expect(rl.ActiveEntries()).To(Equal(1))
}

func TestRateLimitMiddleware_ExceedLimit(t *testing.T) {
	RegisterTestingT(t)

	router, _ := newRateLimitedRouter(3, time.Minute)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/tasks", nil)
		router.ServeHTTP(w, req)

		if i < 3 {
			Expect(w.Code).To(Equal(200))
		} else {
			Expect(w.Code).To(Equal(http.StatusTooManyRequests))
			Expect(w.Body.String()).To(MatchJSON(`{"message":"Too many requests"}`))
			Expect(w.Header().Get("Retry-After")).ToNot(BeEmpty())
		}
	}
}

func TestRateLimitMiddleware_SeparateClients(t *testing.T) {
	RegisterTestingT(t)

	router, _ := newRateLimitedRouter(1, time.Minute)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/tasks", nil)
		req.Header.Set("X-Forwarded-For", ip)
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(200))
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	RegisterTestingT(t)

	_, rl := newRateLimitedRouter(2, time.Minute)
	now := time.Now()

	allowed, remaining, _ := rl.checkRateLimit("k", now)
	Expect(allowed).To(BeTrue())
	Expect(remaining).To(Equal(1))

	rl.checkRateLimit("k", now)
	allowed, _, _ = rl.checkRateLimit("k", now)
	Expect(allowed).To(BeFalse())

	allowed, remaining, _ = rl.checkRateLimit("k", now.Add(2*time.Minute))
	Expect(allowed).To(BeTrue())
	Expect(remaining).To(Equal(1))
}
