package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig bounds how often one client may hit an endpoint.
type RateLimitConfig struct {
	RPS   rate.Limit
	Burst int
}

// RateLimit returns a per-client-IP token-bucket limiter for the auth
// endpoints, so credential stuffing cannot hammer the identity provider
// through us. Buckets live for the process lifetime; the operator
// population of a single shop is small enough that this never matters.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		buckets = make(map[string]*rate.Limiter)
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		lim, ok := buckets[ip]
		if !ok {
			lim = rate.NewLimiter(cfg.RPS, cfg.Burst)
			buckets[ip] = lim
		}
		return lim
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "too_many_requests",
				"message": "rate limit exceeded, try again shortly",
			})
			return
		}
		c.Next()
	}
}
