package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"actionmate/apperr"

	"github.com/gin-gonic/gin"
)

var errRateLimited = apperr.New(apperr.CodeRateLimited, "Too many requests")

// pruneAbove is the key count after which Allow sweeps idle callers.
const pruneAbove = 1024

// RateLimiter is a sliding-window limiter keyed by caller.
type RateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow records a hit for key. When the key is over its limit it returns
// false and how long until the oldest hit leaves the window.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if len(rl.hits) > pruneAbove {
		rl.prune(now)
	}

	recent := rl.inWindow(rl.hits[key], now)
	if len(recent) >= rl.limit {
		rl.hits[key] = recent
		return false, recent[0].Add(rl.window).Sub(now)
	}
	rl.hits[key] = append(recent, now)
	return true, 0
}

// Prune drops callers with no hits inside the window and returns how many
// were removed.
func (rl *RateLimiter) Prune() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.prune(rl.now())
}

func (rl *RateLimiter) prune(now time.Time) int {
	removed := 0
	for key, hits := range rl.hits {
		if len(rl.inWindow(hits, now)) == 0 {
			delete(rl.hits, key)
			removed++
		}
	}
	return removed
}

func (rl *RateLimiter) inWindow(hits []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-rl.window)
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}

// RateLimit throttles per signed-in viewer, falling back to the client IP
// for requests that carry no identity.
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if uid := c.GetString(ctxUserID); uid != "" {
			key = "user:" + uid
		}

		ok, wait := rl.Allow(key)
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			abort(c, errRateLimited)
			return
		}
		c.Next()
	}
}
