package valueobject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidStorageKey = errors.New("invalid storage key")
)

// StorageKey はオブジェクトストレージ内のキーを表す値オブジェクト
// 形式: {workspace_id}/{file_id}
// ファイル作成時に一度だけ割り当てられ、以後変更されません。
type StorageKey struct {
	value string
}

// NewStorageKey はワークスペースIDとファイルIDからStorageKeyを生成します
func NewStorageKey(workspaceID, fileID uuid.UUID) StorageKey {
	return StorageKey{
		value: workspaceID.String() + "/" + fileID.String(),
	}
}

// NewStorageKeyFromString は文字列からStorageKeyを生成します
func NewStorageKeyFromString(key string) (StorageKey, error) {
	workspacePart, filePart, ok := strings.Cut(key, "/")
	if !ok {
		return StorageKey{}, fmt.Errorf("%w: missing separator", ErrInvalidStorageKey)
	}
	if _, err := uuid.Parse(workspacePart); err != nil {
		return StorageKey{}, fmt.Errorf("%w: %v", ErrInvalidStorageKey, err)
	}
	if _, err := uuid.Parse(filePart); err != nil {
		return StorageKey{}, fmt.Errorf("%w: %v", ErrInvalidStorageKey, err)
	}
	return StorageKey{value: key}, nil
}

// Value はキー文字列を返します
func (k StorageKey) Value() string {
	return k.value
}

// String はキー文字列を返します（Stringerインターフェース）
func (k StorageKey) String() string {
	return k.value
}

// IsEmpty はキーが空かどうかを判定します
func (k StorageKey) IsEmpty() bool {
	return k.value == ""
}
