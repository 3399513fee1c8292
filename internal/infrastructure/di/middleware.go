package di

import (
	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/cache"
	"github.com/Hiro-mackay/linkdrop/internal/interface/middleware"
)

// Middlewares はアプリケーションのミドルウェアを保持します
type Middlewares struct {
	JWTAuth   *middleware.JWTAuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
}

// NewMiddlewares はContainerから全てのミドルウェアを初期化します
func NewMiddlewares(c *Container) *Middlewares {
	policy := cache.RateLimitPolicy{
		Scope:    "api",
		Requests: c.config.RateLimit.Requests,
		Window:   c.config.RateLimit.Window,
	}

	// Redisが無い場合は制限なしで通します
	var limiter middleware.RateLimiter
	if c.RateLimiter != nil {
		limiter = c.RateLimiter
	}

	return &Middlewares{
		JWTAuth:   middleware.NewJWTAuthMiddleware(c.Verifier),
		RateLimit: middleware.NewRateLimitMiddleware(limiter, policy),
	}
}
