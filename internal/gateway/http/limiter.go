package http

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apierrors "github.com/Apurer/shareit/internal/shared/errors"
	"github.com/Apurer/shareit/internal/shared/httpx"
)

// rateLimiter throttles per caller. The key is the sharer header when present
// and the client IP otherwise, so anonymous user creation is limited too.
type rateLimiter struct {
	rps      float64
	burst    int
	limiters sync.Map // map[string]*rate.Limiter
}

func newRateLimiter(rps float64, burst int) *rateLimiter {
	if burst <= 0 {
		burst = 5
	}
	return &rateLimiter{rps: rps, burst: burst}
}

// RateLimit builds the per-caller throttling middleware. A zero rps disables
// throttling.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	return newRateLimiter(rps, burst).Middleware()
}

func (l *rateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(rate.Limit(l.rps), l.burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}

// Middleware rejects requests over the per-caller budget with 429.
func (l *rateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.rps <= 0 {
			c.Next()
			return
		}
		key := c.GetHeader(httpx.HeaderSharerUserID)
		if key == "" {
			key = c.ClientIP()
		}
		if !l.getLimiter(key).Allow() {
			apierrors.Respond(c, apierrors.ErrTooManyRequests.WithDetail("request rate limit exceeded"))
			c.Abort()
			return
		}
		c.Next()
	}
}
