package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode はエラーコードを表します
type ErrorCode string

const (
	CodeValidationError        ErrorCode = "VALIDATION_ERROR"
	CodeInvalidRequest         ErrorCode = "INVALID_REQUEST"
	CodeUnauthorized           ErrorCode = "UNAUTHORIZED"
	CodeTokenExpired           ErrorCode = "TOKEN_EXPIRED"
	CodeNotFound               ErrorCode = "NOT_FOUND"
	CodeCircularReference      ErrorCode = "CIRCULAR_REFERENCE"
	CodeNestingDepthExceeded   ErrorCode = "NESTING_DEPTH_EXCEEDED"
	CodeNameCollision          ErrorCode = "NAME_COLLISION"
	CodeStorageOperationFailed ErrorCode = "STORAGE_OPERATION_FAILED"
	CodePartialBulkFailure     ErrorCode = "PARTIAL_BULK_FAILURE"
	CodeRateLimitExceeded      ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeInternalError          ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable     ErrorCode = "SERVICE_UNAVAILABLE"
)

// AppError はアプリケーションエラーを表します
type AppError struct {
	Code       ErrorCode    `json:"code"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
	Retryable  bool         `json:"retryable,omitempty"`
	HTTPStatus int          `json:"-"`
	Err        error        `json:"-"`
}

// FieldError はフィールド単位(一括操作では項目単位)のエラーを表します
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error はerrorインターフェースを実装します
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap は元のエラーを返します
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError はバリデーションエラーを作成します
func NewValidationError(message string, details []FieldError) *AppError {
	return &AppError{
		Code:       CodeValidationError,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidRequestError は不正リクエストエラーを作成します
func NewInvalidRequestError(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUnauthorizedError は認証エラーを作成します
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewTokenExpiredError はトークン期限切れエラーを作成します
func NewTokenExpiredError() *AppError {
	return &AppError{
		Code:       CodeTokenExpired,
		Message:    "token has expired",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewNotFoundError はリソース不在エラーを作成します。
// 所有者でない場合もこのエラーを返し、存在の有無を呼び出し元に区別させません。
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewCircularReferenceError は循環参照エラーを作成します
func NewCircularReferenceError() *AppError {
	return &AppError{
		Code:       CodeCircularReference,
		Message:    "cannot move folder into itself or its descendant",
		HTTPStatus: http.StatusConflict,
	}
}

// NewNestingDepthExceededError は階層深さ超過エラーを作成します
func NewNestingDepthExceededError(maxDepth int) *AppError {
	return &AppError{
		Code:       CodeNestingDepthExceeded,
		Message:    fmt.Sprintf("folder nesting depth must stay below %d", maxDepth),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewNameCollisionError は同名衝突エラーを作成します
func NewNameCollisionError(name string) *AppError {
	return &AppError{
		Code:       CodeNameCollision,
		Message:    fmt.Sprintf("an item named %q already exists in the destination", name),
		HTTPStatus: http.StatusConflict,
	}
}

// NewStorageOperationFailedError はストレージ操作失敗エラーを作成します。再試行可能です。
func NewStorageOperationFailedError(err error) *AppError {
	return &AppError{
		Code:       CodeStorageOperationFailed,
		Message:    "storage operation did not complete, please retry",
		Retryable:  true,
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// NewPartialBulkFailureError は一括操作の部分失敗を作成します。Detailsに失敗項目を持ちます。
func NewPartialBulkFailureError(message string, failed []FieldError) *AppError {
	return &AppError{
		Code:       CodePartialBulkFailure,
		Message:    message,
		Details:    failed,
		Retryable:  true,
		HTTPStatus: http.StatusMultiStatus,
	}
}

// NewTooManyRequestsError はレート制限エラーを作成します
func NewTooManyRequestsError(message string) *AppError {
	return &AppError{
		Code:       CodeRateLimitExceeded,
		Message:    message,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// NewInternalError は内部エラーを作成します
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewServiceUnavailableError はサービス利用不可エラーを作成します
func NewServiceUnavailableError(message string) *AppError {
	return &AppError{
		Code:       CodeServiceUnavailable,
		Message:    message,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// HasCode はエラーが特定のコードかどうかを判定します
func (e *AppError) HasCode(code ErrorCode) bool {
	return e.Code == code
}

// As はラップされたエラーからAppErrorを取り出します
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf はエラーのコードを返します。AppErrorでなければ空文字を返します
func CodeOf(err error) ErrorCode {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ""
}

// Is はエラーが指定コードのAppErrorかどうかを判定します
func Is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// IsNotFound はリソース不在エラーかどうかを判定します
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsUnauthorized は認証エラーかどうかを判定します
func IsUnauthorized(err error) bool {
	code := CodeOf(err)
	return code == CodeUnauthorized || code == CodeTokenExpired
}

// IsRetryable は再試行可能なエラーかどうかを判定します
func IsRetryable(err error) bool {
	if appErr, ok := As(err); ok {
		return appErr.Retryable
	}
	return false
}
