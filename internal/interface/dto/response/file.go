package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
)

// FileResponse はファイルレスポンスです
type FileResponse struct {
	ID          string               `json:"id"`
	WorkspaceID string               `json:"workspaceId"`
	FolderID    *string              `json:"folderId"`
	Name        string               `json:"name"`
	MimeType    string               `json:"mimeType"`
	Size        int64                `json:"size"`
	Attribution *AttributionResponse `json:"attribution,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// AttributionResponse はアップロードリンク由来の情報です
type AttributionResponse struct {
	LinkID          *string `json:"linkId"`
	UploaderEmail   *string `json:"uploaderEmail,omitempty"`
	UploaderName    *string `json:"uploaderName,omitempty"`
	UploaderMessage *string `json:"uploaderMessage,omitempty"`
}

// InitiateUploadResponse はアップロード開始レスポンスです
type InitiateUploadResponse struct {
	FileID    string    `json:"fileId"`
	UploadURL string    `json:"uploadUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DownloadURLResponse はダウンロードURLレスポンスです
type DownloadURLResponse struct {
	FileID      string    `json:"fileId"`
	FileName    string    `json:"fileName"`
	MimeType    string    `json:"mimeType"`
	Size        int64     `json:"size"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// FileMoveResponse は移動結果です
type FileMoveResponse struct {
	File  FileResponse `json:"file"`
	Moved bool         `json:"moved"`
}

// BulkDeleteResponse は一括削除の結果です
type BulkDeleteResponse struct {
	Deleted []string `json:"deleted"`
}

// ToFileResponse はエンティティからレスポンスに変換します
func ToFileResponse(file *entity.File) FileResponse {
	var folderID *string
	if file.FolderID != nil {
		id := file.FolderID.String()
		folderID = &id
	}

	return FileResponse{
		ID:          file.ID.String(),
		WorkspaceID: file.WorkspaceID.String(),
		FolderID:    folderID,
		Name:        file.Name.String(),
		MimeType:    file.MimeType.String(),
		Size:        file.Size,
		Attribution: toAttributionResponse(file.Attribution),
		CreatedAt:   file.CreatedAt,
	}
}

// ToFileListResponse はエンティティリストからレスポンスリストに変換します
func ToFileListResponse(files []*entity.File) []FileResponse {
	responses := make([]FileResponse, len(files))
	for i, f := range files {
		responses[i] = ToFileResponse(f)
	}
	return responses
}

// ToIDList はIDリストを文字列化します
func ToIDList(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func toAttributionResponse(a entity.Attribution) *AttributionResponse {
	if a.LinkID == nil && a.UploaderEmail == nil && a.UploaderName == nil && a.UploaderMessage == nil {
		return nil
	}

	var linkID *string
	if a.LinkID != nil {
		id := a.LinkID.String()
		linkID = &id
	}
	return &AttributionResponse{
		LinkID:          linkID,
		UploaderEmail:   a.UploaderEmail,
		UploaderName:    a.UploaderName,
		UploaderMessage: a.UploaderMessage,
	}
}
