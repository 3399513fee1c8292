package entity

import "github.com/google/uuid"

// Attribution はアップロードリンク経由で作成された項目の由来情報です。
// LinkIDは弱参照であり、リンク削除時はnilへ戻されます。
type Attribution struct {
	LinkID          *uuid.UUID
	UploaderEmail   *string
	UploaderName    *string
	UploaderMessage *string
}

// HasLink はリンクに紐付いているかどうかを判定します
func (a Attribution) HasLink() bool {
	return a.LinkID != nil
}
