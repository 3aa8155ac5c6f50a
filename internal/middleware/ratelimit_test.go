package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func hitAs(t *testing.T, r *gin.Engine, path string) int {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "10.0.0.1:12345" // everyone behind the same NAT
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitKeysByUserWhenAuthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewInMemoryRateLimiter(1, time.Minute)

	r := gin.New()
	r.GET("/a", setUser(1), RateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/b", setUser(2), RateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusOK) })

	// Two users share an IP; each gets their own bucket.
	require.Equal(t, http.StatusOK, hitAs(t, r, "/a"))
	require.Equal(t, http.StatusOK, hitAs(t, r, "/b"))

	// The same user hitting again exceeds the limit.
	assert.Equal(t, http.StatusTooManyRequests, hitAs(t, r, "/a"))
}

func TestRateLimitFallsBackToIPWhenUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewInMemoryRateLimiter(1, time.Minute)

	r := gin.New()
	r.GET("/login", RateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusOK) })

	require.Equal(t, http.StatusOK, hitAs(t, r, "/login"))
	assert.Equal(t, http.StatusTooManyRequests, hitAs(t, r, "/login"))
}

func TestRateLimitWindowExpires(t *testing.T) {
	limiter := NewInMemoryRateLimiter(1, 10*time.Millisecond)

	require.True(t, limiter.Allow("k"))
	require.False(t, limiter.Allow("k"))
	time.Sleep(20 * time.Millisecond)
	assert.True(t, limiter.Allow("k"))
}
