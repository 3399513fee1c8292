package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/cache"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
	"github.com/Hiro-mackay/linkdrop/pkg/logger"
)

// RateLimiter はレート制限の判定を行います
type RateLimiter interface {
	Allow(ctx context.Context, identifier string, policy cache.RateLimitPolicy) (*cache.RateLimitResult, error)
}

// RateLimitMiddleware はレート制限ミドルウェアを提供します
type RateLimitMiddleware struct {
	limiter RateLimiter
	policy  cache.RateLimitPolicy
}

// NewRateLimitMiddleware は新しいRateLimitMiddlewareを作成します。limiterがnilなら制限しません
func NewRateLimitMiddleware(limiter RateLimiter, policy cache.RateLimitPolicy) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		policy:  policy,
	}
}

// ByUser はユーザーIDでレート制限するミドルウェアを返します。未認証ならIPで判定します
func (m *RateLimitMiddleware) ByUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.limiter == nil {
				return next(c)
			}

			identifier := GetUserID(c)
			if identifier == "" {
				identifier = c.RealIP()
			}

			result, err := m.limiter.Allow(c.Request().Context(), identifier, m.policy)
			if err != nil {
				// 判定できない場合は通します
				logger.Warn(c.Request().Context(), "rate limit check failed", "error", err.Error())
				return next(c)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.FormatInt(m.policy.Requests, 10))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))

			if !result.Allowed {
				c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(result)))
				return apperror.NewTooManyRequestsError("rate limit exceeded")
			}

			return next(c)
		}
	}
}

func retryAfterSeconds(result *cache.RateLimitResult) int {
	seconds := int(math.Ceil(time.Until(result.RetryAt).Seconds()))
	return max(seconds, 1)
}
