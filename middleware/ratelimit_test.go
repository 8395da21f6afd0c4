package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/healthtrack/treatment-tracker/config"
)

// Without a Redis client the limiter must fail open: requests pass through
// untouched.
func TestRateLimiter_FailsOpenWithoutRedis(t *testing.T) {
	t.Setenv("APPENV", "test")
	config.SetRedisClientForTesting(nil)

	r := newTestRouter()
	r.Use(RateLimiter(RateLimitConfig{Limit: 1}))
	r.POST("/treatments", func(c *gin.Context) { c.Status(http.StatusCreated) })

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/treatments", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}

func TestRateLimiter_DefaultsApplied(t *testing.T) {
	// Zero-value config falls back to the package defaults instead of
	// blocking everything.
	t.Setenv("APPENV", "test")
	config.SetRedisClientForTesting(nil)

	r := newTestRouter()
	r.Use(RateLimiter(RateLimitConfig{}))
	r.DELETE("/treatments/1", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodDelete, "/treatments/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
