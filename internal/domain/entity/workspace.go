package entity

import (
	"time"

	"github.com/google/uuid"
)

// Workspace はユーザーごとに1つだけ存在するフォルダ・ファイルの名前空間です
type Workspace struct {
	ID          uuid.UUID
	OwnerUserID uuid.UUID
	CreatedAt   time.Time
}

// NewWorkspace は新しいワークスペースを作成します
func NewWorkspace(ownerUserID uuid.UUID) *Workspace {
	return &Workspace{
		ID:          uuid.New(),
		OwnerUserID: ownerUserID,
		CreatedAt:   time.Now(),
	}
}

// ReconstructWorkspace はDBからワークスペースを復元します
func ReconstructWorkspace(id, ownerUserID uuid.UUID, createdAt time.Time) *Workspace {
	return &Workspace{
		ID:          id,
		OwnerUserID: ownerUserID,
		CreatedAt:   createdAt,
	}
}

// IsOwnedBy は指定ユーザーが所有者かどうかを判定します
func (w *Workspace) IsOwnedBy(userID uuid.UUID) bool {
	return w.OwnerUserID == userID
}
