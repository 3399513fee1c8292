package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrphanedRecord はストレージ削除後にDB行の削除に失敗したファイルの記録です。
// ストレージ側は既に存在しないため、回収ジョブがDB行のみを削除します。
type OrphanedRecord struct {
	ID          uuid.UUID
	FileID      uuid.UUID
	WorkspaceID uuid.UUID
	StorageKey  string
	Reason      string
	Attempts    int
	DetectedAt  time.Time
	ResolvedAt  *time.Time
}

// NewOrphanedRecord は孤立レコードを作成します
func NewOrphanedRecord(file *File, reason string) *OrphanedRecord {
	return &OrphanedRecord{
		ID:          uuid.New(),
		FileID:      file.ID,
		WorkspaceID: file.WorkspaceID,
		StorageKey:  file.StorageKey.Value(),
		Reason:      reason,
		DetectedAt:  time.Now(),
	}
}

// IsResolved は回収済みかどうかを判定します
func (o *OrphanedRecord) IsResolved() bool {
	return o.ResolvedAt != nil
}
