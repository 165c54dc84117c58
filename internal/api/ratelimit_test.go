package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterBurstThenRefill(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, 15*time.Minute)
	rl.now = func() time.Time { return now }

	ok, _ := rl.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok)

	// One token refills every 7m30s.
	now = now.Add(5 * time.Minute)
	ok, retry := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.InDelta(t, float64(150*time.Second), float64(retry), float64(time.Millisecond))

	// A refused request leaves the pending token untouched.
	ok, retry = rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.InDelta(t, float64(150*time.Second), float64(retry), float64(time.Millisecond))

	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok, "clients are limited independently")

	now = now.Add(151 * time.Second)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok, "a refilled token is available")
	ok, _ = rl.Allow("10.0.0.1")
	assert.False(t, ok)
}

func TestRateLimiterSweepsIdleClients(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	rl.Allow("b")
	assert.Equal(t, 2, rl.Tracked())

	now = now.Add(2 * time.Minute)
	rl.Allow("c")
	assert.Equal(t, 1, rl.Tracked())
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		ok, _ := rl.Allow("x")
		assert.True(t, ok)
	}
	assert.Zero(t, rl.Tracked())
}

func TestRateLimitMiddleware_RetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	s := &Server{limiter: NewRateLimiter(1, time.Minute), logger: zerolog.Nop()}
	s.limiter.now = func() time.Time { return now }

	engine := gin.New()
	engine.POST("/submit", s.rateLimit(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	now = now.Add(20500 * time.Millisecond)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "40", w.Header().Get("Retry-After"), "partial seconds round up")
}
