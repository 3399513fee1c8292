package response

import (
	"time"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
)

// WorkspaceResponse はワークスペースレスポンスです
type WorkspaceResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	Created   bool      `json:"created"`
}

// LinkDetachResponse はリンク切り離しの結果です
type LinkDetachResponse struct {
	FoldersDetached int64 `json:"foldersDetached"`
	FilesDetached   int64 `json:"filesDetached"`
}

// ToWorkspaceResponse はエンティティからレスポンスに変換します
func ToWorkspaceResponse(workspace *entity.Workspace, created bool) WorkspaceResponse {
	return WorkspaceResponse{
		ID:        workspace.ID.String(),
		OwnerID:   workspace.OwnerUserID.String(),
		CreatedAt: workspace.CreatedAt,
		Created:   created,
	}
}
