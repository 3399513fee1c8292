package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders はセキュリティヘッダーを設定するミドルウェアを返します
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", "default-src 'none'")
			h.Set("Referrer-Policy", "no-referrer")

			return next(c)
		}
	}
}
