package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	t.Run("quota is honored within a window", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("10.0.0.1"), "request %d should fit the quota", i+1)
		}
		assert.False(t, limiter.Allow("10.0.0.1"))
	})

	t.Run("callers do not share quota", func(t *testing.T) {
		limiter := NewRateLimiter(2, time.Minute)

		limiter.Allow("10.0.0.2")
		limiter.Allow("10.0.0.2")
		assert.False(t, limiter.Allow("10.0.0.2"))

		assert.True(t, limiter.Allow("10.0.0.3"))
	})

	t.Run("quota recovers after the window", func(t *testing.T) {
		limiter := NewRateLimiter(1, 30*time.Millisecond)

		assert.True(t, limiter.Allow("10.0.0.4"))
		assert.False(t, limiter.Allow("10.0.0.4"))

		time.Sleep(40 * time.Millisecond)
		assert.True(t, limiter.Allow("10.0.0.4"))
	})

	t.Run("remaining tracks consumption", func(t *testing.T) {
		limiter := NewRateLimiter(5, time.Minute)

		assert.Equal(t, 5, limiter.Remaining("10.0.0.5"))
		limiter.Allow("10.0.0.5")
		limiter.Allow("10.0.0.5")
		assert.Equal(t, 3, limiter.Remaining("10.0.0.5"))
	})

	t.Run("concurrent callers never exceed the quota", func(t *testing.T) {
		limiter := NewRateLimiter(100, time.Minute)

		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0
		for i := 0; i < 150; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Allow("10.0.0.6") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 100, allowed)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(limiter *RateLimiter) *gin.Engine {
		router := gin.New()
		router.Use(RateLimit(limiter))
		router.GET("/ledgers", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		return router
	}

	t.Run("serves requests and exposes quota headers", func(t *testing.T) {
		router := newRouter(NewRateLimiter(5, time.Minute))

		req := httptest.NewRequest("GET", "/ledgers", nil)
		req.RemoteAddr = "203.0.113.10:40000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("over-quota caller gets 429 with Retry-After", func(t *testing.T) {
		router := newRouter(NewRateLimiter(2, time.Minute))

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest("GET", "/ledgers", nil)
			req.RemoteAddr = "203.0.113.11:40000"
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}

		req := httptest.NewRequest("GET", "/ledgers", nil)
		req.RemoteAddr = "203.0.113.11:40000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "RATE_LIMITED")
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
	})

	t.Run("throttling one IP leaves others unaffected", func(t *testing.T) {
		router := newRouter(NewRateLimiter(1, time.Minute))

		req1 := httptest.NewRequest("GET", "/ledgers", nil)
		req1.RemoteAddr = "203.0.113.12:40000"
		w1 := httptest.NewRecorder()
		router.ServeHTTP(w1, req1)
		assert.Equal(t, http.StatusOK, w1.Code)

		req2 := httptest.NewRequest("GET", "/ledgers", nil)
		req2.RemoteAddr = "203.0.113.12:40000"
		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, req2)
		assert.Equal(t, http.StatusTooManyRequests, w2.Code)

		req3 := httptest.NewRequest("GET", "/ledgers", nil)
		req3.RemoteAddr = "203.0.113.13:40000"
		w3 := httptest.NewRecorder()
		router.ServeHTTP(w3, req3)
		assert.Equal(t, http.StatusOK, w3.Code)
	})
}
