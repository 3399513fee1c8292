package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
	"github.com/Hiro-mackay/linkdrop/pkg/jwt"
	"github.com/Hiro-mackay/linkdrop/pkg/logger"
)

// JWTAuthMiddleware は外部発行のアクセストークンを検証するミドルウェアを提供します。
// トークンのUserIDを不透明な呼び出し元IDとして扱います。
type JWTAuthMiddleware struct {
	verifier *jwt.Verifier
}

// NewJWTAuthMiddleware は新しいJWTAuthMiddlewareを作成します
func NewJWTAuthMiddleware(verifier *jwt.Verifier) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{verifier: verifier}
}

// Authenticate は認証ミドルウェアを返します
func (m *JWTAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return apperror.NewUnauthorizedError("authorization header required")
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return apperror.NewUnauthorizedError("invalid authorization header format")
			}

			claims, err := m.verifier.Verify(token)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return apperror.NewTokenExpiredError()
				}
				return apperror.NewUnauthorizedError("invalid or expired token")
			}

			userID := claims.UserID.String()
			SetUserID(c, userID)

			// リクエストコンテキストにも設定（ログで使用）
			ctx := logger.ContextWithUserID(c.Request().Context(), userID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
