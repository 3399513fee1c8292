package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
)

// File はファイルメタデータのエンティティです。
// StorageKeyで指す1つのストレージオブジェクトに対応します。
type File struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	FolderID    *uuid.UUID
	Name        valueobject.FileName
	MimeType    valueobject.MimeType
	Size        int64
	StorageKey  valueobject.StorageKey
	Attribution Attribution
	CreatedAt   time.Time
}

// NewFileWithID は指定IDで新しいファイルを作成します。StorageKeyはIDから導出されます
func NewFileWithID(
	fileID uuid.UUID,
	workspaceID uuid.UUID,
	folderID *uuid.UUID,
	name valueobject.FileName,
	mimeType valueobject.MimeType,
	size int64,
	attribution Attribution,
) *File {
	return &File{
		ID:          fileID,
		WorkspaceID: workspaceID,
		FolderID:    folderID,
		Name:        name,
		MimeType:    mimeType,
		Size:        size,
		StorageKey:  valueobject.NewStorageKey(workspaceID, fileID),
		Attribution: attribution,
		CreatedAt:   time.Now(),
	}
}

// ReconstructFile はDBからファイルを復元します
func ReconstructFile(
	id uuid.UUID,
	workspaceID uuid.UUID,
	folderID *uuid.UUID,
	name valueobject.FileName,
	mimeType valueobject.MimeType,
	size int64,
	storageKey valueobject.StorageKey,
	attribution Attribution,
	createdAt time.Time,
) *File {
	return &File{
		ID:          id,
		WorkspaceID: workspaceID,
		FolderID:    folderID,
		Name:        name,
		MimeType:    mimeType,
		Size:        size,
		StorageKey:  storageKey,
		Attribution: attribution,
		CreatedAt:   createdAt,
	}
}

// Rename はファイル名を変更します
func (f *File) Rename(newName valueobject.FileName) {
	f.Name = newName
}

// MoveTo はファイルを別フォルダへ移動します
func (f *File) MoveTo(newFolderID *uuid.UUID) {
	f.FolderID = newFolderID
}

// IsInFolder は現在のフォルダが指定したフォルダと一致するかを判定します
func (f *File) IsInFolder(folderID *uuid.UUID) bool {
	return SameParent(f.FolderID, folderID)
}

// IsAtRoot はルート直下かどうかを判定します
func (f *File) IsAtRoot() bool {
	return f.FolderID == nil
}

// BelongsTo は指定ワークスペースに属するかを判定します
func (f *File) BelongsTo(workspaceID uuid.UUID) bool {
	return f.WorkspaceID == workspaceID
}
