package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// InMemoryRateLimiter tracks request timestamps per key in a sliding window.
// Unauthenticated traffic is keyed by client IP; authenticated traffic by user
// id, so one office NAT does not throttle a whole branch's check-ins.
type InMemoryRateLimiter struct {
	mu      sync.Mutex
	buckets map[string][]time.Time
	limit   int
	window  time.Duration
}

func NewInMemoryRateLimiter(limit int, window time.Duration) *InMemoryRateLimiter {
	r := &InMemoryRateLimiter{
		buckets: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
	}
	go r.cleanup()
	return r
}

func (r *InMemoryRateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	valid := pruneBefore(r.buckets[key], now.Add(-r.window))
	if len(valid) >= r.limit {
		r.buckets[key] = valid
		return false
	}
	r.buckets[key] = append(valid, now)
	return true
}

func pruneBefore(times []time.Time, cutoff time.Time) []time.Time {
	var valid []time.Time
	for _, t := range times {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	return valid
}

func (r *InMemoryRateLimiter) cleanup() {
	tick := time.NewTicker(time.Minute)
	for range tick.C {
		r.mu.Lock()
		cutoff := time.Now().Add(-r.window)
		for k, times := range r.buckets {
			valid := pruneBefore(times, cutoff)
			if len(valid) == 0 {
				delete(r.buckets, k)
			} else {
				r.buckets[k] = valid
			}
		}
		r.mu.Unlock()
	}
}

// RateLimit limits by user id when the request is authenticated, otherwise by
// client IP.
func RateLimit(limiter *InMemoryRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID := GetUserID(c); userID != 0 {
			key = "u:" + strconv.FormatUint(uint64(userID), 10)
		}
		if !limiter.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
