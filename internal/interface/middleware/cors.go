package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// CORS は許可オリジンを指定したCORSミドルウェアを返します
func CORS(origins []string) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, HeaderRequestID},
		ExposeHeaders:    []string{HeaderRequestID, echo.HeaderContentDisposition},
		AllowCredentials: true,
		MaxAge:           86400, // 24時間
	})
}
