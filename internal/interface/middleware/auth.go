package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	ContextKeyUserID = "user_id"
)

// GetUserID はコンテキストからユーザーIDを取得します
func GetUserID(c echo.Context) string {
	if id, ok := c.Get(ContextKeyUserID).(string); ok {
		return id
	}
	return ""
}

// GetUserUUID はコンテキストからユーザーIDをUUIDとして取得します。未認証ならuuid.Nilです
func GetUserUUID(c echo.Context) uuid.UUID {
	id, err := uuid.Parse(GetUserID(c))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// SetUserID はコンテキストにユーザーIDを設定します
func SetUserID(c echo.Context, userID string) {
	c.Set(ContextKeyUserID, userID)
}
