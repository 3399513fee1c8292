package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
	"github.com/Hiro-mackay/linkdrop/pkg/metrics"
)

// Metrics はHTTPリクエスト数と処理時間を記録するミドルウェアを返します。
// ラベルにはパスではなくルート定義を使います。
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = statusOf(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// statusOf はエラーが最終的に返すHTTPステータスを求めます
func statusOf(err error) int {
	if appErr, ok := apperror.As(err); ok {
		return appErr.HTTPStatus
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
