package request

// InitiateUploadRequest はアップロード開始リクエストです
type InitiateUploadRequest struct {
	FolderID *string `json:"folderId" validate:"omitempty,uuid"`
	FileName string  `json:"fileName" validate:"required,filename"`
	MimeType string  `json:"mimeType" validate:"required"`
	Size     int64   `json:"size" validate:"gte=0"`
}

// CompleteUploadRequest はアップロード完了リクエストです。ストレージキーは受け付けません
type CompleteUploadRequest struct {
	FileID   string  `json:"fileId" validate:"required,uuid"`
	FolderID *string `json:"folderId" validate:"omitempty,uuid"`
	FileName string  `json:"fileName" validate:"required,filename"`
	MimeType string  `json:"mimeType" validate:"required"`
	Size     int64   `json:"size" validate:"gte=0"`
	Attribution
}

// RenameFileRequest はファイル名変更リクエストです
type RenameFileRequest struct {
	Name string `json:"name" validate:"required,filename"`
}

// MoveFileRequest はファイル移動リクエストです。newFolderIdがnullならルートへ移動します
type MoveFileRequest struct {
	NewFolderID *string `json:"newFolderId" validate:"omitempty,uuid"`
}

// BulkDeleteFilesRequest は一括削除リクエストです
type BulkDeleteFilesRequest struct {
	FileIDs []string `json:"fileIds" validate:"required,min=1,max=1000,dive,uuid"`
}

// BuildArchiveRequest はZIPダウンロードのリクエストです
type BuildArchiveRequest struct {
	FileIDs   []string `json:"fileIds" validate:"omitempty,dive,uuid"`
	FolderIDs []string `json:"folderIds" validate:"omitempty,dive,uuid"`
}
