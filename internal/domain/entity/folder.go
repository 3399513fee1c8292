package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
)

// DefaultMaxFolderDepth はルート(深さ0)から数えた深さの上限です。
// すべてのフォルダの深さはこの値未満でなければなりません。
const DefaultMaxFolderDepth = 20

// Folder はフォルダエンティティです。ストレージ上の実体を持ちません。
type Folder struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	Name        valueobject.FolderName
	ParentID    *uuid.UUID
	Attribution Attribution
	CreatedAt   time.Time
}

// NewFolder は新しいフォルダを作成します
func NewFolder(
	workspaceID uuid.UUID,
	name valueobject.FolderName,
	parentID *uuid.UUID,
	attribution Attribution,
) *Folder {
	return &Folder{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        name,
		ParentID:    parentID,
		Attribution: attribution,
		CreatedAt:   time.Now(),
	}
}

// ReconstructFolder はDBからフォルダを復元します
func ReconstructFolder(
	id uuid.UUID,
	workspaceID uuid.UUID,
	name valueobject.FolderName,
	parentID *uuid.UUID,
	attribution Attribution,
	createdAt time.Time,
) *Folder {
	return &Folder{
		ID:          id,
		WorkspaceID: workspaceID,
		Name:        name,
		ParentID:    parentID,
		Attribution: attribution,
		CreatedAt:   createdAt,
	}
}

// IsInParent は現在の親が指定した親と一致するかを判定します。nil同士は一致とみなします
func (f *Folder) IsInParent(parentID *uuid.UUID) bool {
	return SameParent(f.ParentID, parentID)
}

// MoveTo はフォルダを移動します
func (f *Folder) MoveTo(newParentID *uuid.UUID) {
	f.ParentID = newParentID
}

// Rename はフォルダ名を変更します
func (f *Folder) Rename(newName valueobject.FolderName) {
	f.Name = newName
}

// IsRoot はルートフォルダかどうかを判定します
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}

// BelongsTo は指定ワークスペースに属するかを判定します
func (f *Folder) BelongsTo(workspaceID uuid.UUID) bool {
	return f.WorkspaceID == workspaceID
}

// SameParent は2つの親IDが同一の場所を指すかを判定します
func SameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
