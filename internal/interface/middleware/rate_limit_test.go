package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/cache"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

type stubLimiter struct {
	result     *cache.RateLimitResult
	err        error
	identifier string
}

func (s *stubLimiter) Allow(_ context.Context, identifier string, _ cache.RateLimitPolicy) (*cache.RateLimitResult, error) {
	s.identifier = identifier
	return s.result, s.err
}

var testPolicy = cache.RateLimitPolicy{Scope: "api", Requests: 10, Window: time.Minute}

func runRateLimit(limiter RateLimiter, userID string) (*httptest.ResponseRecorder, bool, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if userID != "" {
		SetUserID(c, userID)
	}

	called := false
	err := NewRateLimitMiddleware(limiter, testPolicy).ByUser()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, called, err
}

func TestRateLimit_Allowed_SetsHeaders(t *testing.T) {
	limiter := &stubLimiter{result: &cache.RateLimitResult{Allowed: true, Remaining: 9}}

	rec, called, err := runRateLimit(limiter, "user-1")
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "user-1", limiter.identifier)
	assert.Equal(t, "9", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimit_Denied_Returns429WithRetryAfter(t *testing.T) {
	limiter := &stubLimiter{result: &cache.RateLimitResult{Allowed: false, RetryAt: time.Now().Add(30 * time.Second)}}

	rec, called, err := runRateLimit(limiter, "user-1")
	assert.True(t, apperror.Is(err, apperror.CodeRateLimitExceeded))
	assert.False(t, called)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderRetryAfter))
}

func TestRateLimit_LimiterError_FailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}

	_, called, err := runRateLimit(limiter, "")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestRateLimit_NilLimiter_PassesThrough(t *testing.T) {
	_, called, err := runRateLimit(nil, "user-1")
	require.NoError(t, err)
	assert.True(t, called)
}
