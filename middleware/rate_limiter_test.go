package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"freightbook/config"
)

func fireFrom(r *gin.Engine, ip string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Forwarded-For", ip)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestGetLimiterDerivesFromConfig(t *testing.T) {
	config.AppConfig.MaxRequestsPerMin = 120

	l := limiterStore.getLimiter("198.51.100.9")
	assert.Equal(t, rate.Every(time.Minute/120), l.Limit())
	assert.Equal(t, 12, l.Burst())
}

func TestGetLimiterFallsBackWhenUnconfigured(t *testing.T) {
	config.AppConfig.MaxRequestsPerMin = 0

	l := limiterStore.getLimiter("198.51.100.10")
	assert.Equal(t, rate.Every(time.Minute/100), l.Limit())
	assert.Equal(t, 10, l.Burst())
}

func TestRateLimitMiddlewareBlocksAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.AppConfig.MaxRequestsPerMin = 30

	r := gin.New()
	r.Use(RateLimitMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	// 30/min yields the minimum burst of 5.
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, fireFrom(r, "203.0.113.7"))
	}
	assert.Equal(t, http.StatusTooManyRequests, fireFrom(r, "203.0.113.7"))

	// Another client is unaffected.
	assert.Equal(t, http.StatusOK, fireFrom(r, "203.0.113.8"))
}
