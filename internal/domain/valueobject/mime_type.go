package valueobject

import (
	"errors"
	"mime"
	"strings"
)

// DefaultMimeType は種別不明時のMIMEタイプです
const DefaultMimeType = "application/octet-stream"

var (
	ErrInvalidMimeType = errors.New("invalid MIME type")
)

// MimeType はMIMEタイプを表す値オブジェクト
type MimeType struct {
	value string
}

// NewMimeType は文字列からMimeTypeを生成します。空の場合はDefaultMimeTypeになります
func NewMimeType(mimeType string) (MimeType, error) {
	trimmed := strings.TrimSpace(mimeType)
	if trimmed == "" {
		return MimeType{value: DefaultMimeType}, nil
	}

	mediaType, _, err := mime.ParseMediaType(trimmed)
	if err != nil || !strings.Contains(mediaType, "/") {
		return MimeType{}, ErrInvalidMimeType
	}
	return MimeType{value: strings.ToLower(trimmed)}, nil
}

// ReconstructMimeType はDBからMimeTypeを復元します
func ReconstructMimeType(value string) MimeType {
	return MimeType{value: value}
}

// Value は値を返します
func (m MimeType) Value() string {
	return m.value
}

// String は文字列を返します
func (m MimeType) String() string {
	return m.value
}
