package response

import (
	"time"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
)

// FolderResponse はフォルダレスポンスです
type FolderResponse struct {
	ID          string               `json:"id"`
	WorkspaceID string               `json:"workspaceId"`
	Name        string               `json:"name"`
	ParentID    *string              `json:"parentId"`
	Attribution *AttributionResponse `json:"attribution,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// FolderContentsResponse はフォルダ内容一覧レスポンスです
type FolderContentsResponse struct {
	Folder  *FolderResponse  `json:"folder"`
	Folders []FolderResponse `json:"folders"`
	Files   []FileResponse   `json:"files"`
}

// BreadcrumbItem はパンくずリストアイテムです
type BreadcrumbItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BreadcrumbResponse はルートから対象までのパンくずリストです
type BreadcrumbResponse struct {
	Items []BreadcrumbItem `json:"items"`
	Depth int              `json:"depth"`
}

// FolderMoveResponse は移動結果です。movedがfalseなら変更はありません
type FolderMoveResponse struct {
	Folder FolderResponse `json:"folder"`
	Moved  bool           `json:"moved"`
}

// FolderDeleteResponse はフォルダ削除結果です
type FolderDeleteResponse struct {
	DeletedFolderIDs []string       `json:"deletedFolderIds"`
	DetachedFiles    []FileResponse `json:"detachedFiles"`
}

// ToFolderResponse はエンティティからレスポンスに変換します
func ToFolderResponse(folder *entity.Folder) FolderResponse {
	var parentID *string
	if folder.ParentID != nil {
		id := folder.ParentID.String()
		parentID = &id
	}

	return FolderResponse{
		ID:          folder.ID.String(),
		WorkspaceID: folder.WorkspaceID.String(),
		Name:        folder.Name.String(),
		ParentID:    parentID,
		Attribution: toAttributionResponse(folder.Attribution),
		CreatedAt:   folder.CreatedAt,
	}
}

// ToFolderListResponse はエンティティリストからレスポンスリストに変換します
func ToFolderListResponse(folders []*entity.Folder) []FolderResponse {
	responses := make([]FolderResponse, len(folders))
	for i, f := range folders {
		responses[i] = ToFolderResponse(f)
	}
	return responses
}

// ToBreadcrumbResponse はエンティティリストからパンくずリストレスポンスに変換します
func ToBreadcrumbResponse(folders []*entity.Folder, depth int) BreadcrumbResponse {
	items := make([]BreadcrumbItem, len(folders))
	for i, f := range folders {
		items[i] = BreadcrumbItem{
			ID:   f.ID.String(),
			Name: f.Name.String(),
		}
	}
	return BreadcrumbResponse{Items: items, Depth: depth}
}
