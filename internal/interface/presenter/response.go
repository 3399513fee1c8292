package presenter

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

// Response は統一レスポンス構造を定義します
type Response struct {
	Data any `json:"data"`
	Meta any `json:"meta"`
}

// Meta はメタ情報を定義します
type Meta struct {
	Message string `json:"message,omitempty"`
}

// PartialMeta は部分成功時のメタ情報です。errorは失敗分の内訳を持ちます
type PartialMeta struct {
	Error *apperror.AppError `json:"error"`
}

// OK は成功レスポンスを返します
func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Response{
		Data: data,
		Meta: nil,
	})
}

// Created は作成成功レスポンスを返します
func Created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, Response{
		Data: data,
		Meta: nil,
	})
}

// NoContent はコンテンツなしレスポンスを返します
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// Deleted は削除成功レスポンスを返します
func Deleted(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, Response{
		Data: data,
		Meta: Meta{Message: message},
	})
}

// MultiStatus は一部の項目だけ成功したときのレスポンスを返します。
// dataには成功分、metaには失敗分を入れます。
func MultiStatus(c echo.Context, data any, partial *apperror.AppError) error {
	return c.JSON(partial.HTTPStatus, Response{
		Data: data,
		Meta: PartialMeta{Error: partial},
	})
}
