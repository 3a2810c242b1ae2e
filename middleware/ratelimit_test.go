package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	clock := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return clock }

	ok, _ := rl.Allow("a")
	assert.True(t, ok)
	clock = clock.Add(10 * time.Second)
	ok, _ = rl.Allow("a")
	assert.True(t, ok)

	ok, wait := rl.Allow("a")
	assert.False(t, ok)
	assert.Equal(t, 50*time.Second, wait)

	ok, _ = rl.Allow("b")
	assert.True(t, ok)

	clock = clock.Add(51 * time.Second)
	ok, _ = rl.Allow("a")
	assert.True(t, ok)
}

func TestRateLimiter_Prune(t *testing.T) {
	clock := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, time.Minute)
	rl.now = func() time.Time { return clock }

	rl.Allow("idle")
	clock = clock.Add(2 * time.Minute)
	rl.Allow("busy")

	assert.Equal(t, 1, rl.Prune())
	assert.Len(t, rl.hits, 1)
	assert.Contains(t, rl.hits, "busy")
}

func TestRateLimit_KeysByViewer(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-Test-User"); uid != "" {
			c.Set(ctxUserID, uid)
		}
		c.Next()
	})
	r.Use(RateLimit(NewRateLimiter(1, time.Minute)))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	call := func(user string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		if user != "" {
			req.Header.Set("X-Test-User", user)
		}
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, call("alice").Code)
	assert.Equal(t, http.StatusOK, call("bob").Code)
	assert.Equal(t, http.StatusOK, call("").Code)

	limited := call("alice")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "60", limited.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"RATE_LIMITED","message":"Too many requests"}`, limited.Body.String())
	assert.Equal(t, http.StatusTooManyRequests, call("").Code)
}
