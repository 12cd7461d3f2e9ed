package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIPLimiters_EvictIdle(t *testing.T) {
	limiters := &ipLimiters{
		entries: make(map[string]*ipEntry),
		perMin:  60,
	}

	limiters.limiter("10.0.0.1")
	limiters.limiter("10.0.0.2")
	assert.Equal(t, 2, limiters.size())

	// Age one entry past the cutoff and touch the other
	limiters.entries["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	limiters.limiter("10.0.0.2")

	limiters.evictIdle(time.Now().Add(-limiterIdleTTL))

	assert.Equal(t, 1, limiters.size())
	_, stale := limiters.entries["10.0.0.1"]
	assert.False(t, stale)
	_, fresh := limiters.entries["10.0.0.2"]
	assert.True(t, fresh)
}

func TestIPLimiters_ReusesBucketPerIP(t *testing.T) {
	limiters := &ipLimiters{
		entries: make(map[string]*ipEntry),
		perMin:  60,
	}

	first := limiters.limiter("10.0.0.1")
	second := limiters.limiter("10.0.0.1")
	assert.Same(t, first, second)
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("429 once the bucket is drained", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimitMiddleware(2))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = "10.0.0.9:1234"
			router.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("non-positive limit disables limiting", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimitMiddleware(0))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 10; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = "10.0.0.9:1234"
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}
