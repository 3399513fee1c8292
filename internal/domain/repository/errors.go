package repository

import "errors"

// リポジトリ共通エラー
var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict は一意制約違反を表します。兄弟名の衝突はこのエラーとして観測されます
	ErrConflict = errors.New("record already exists")
)
