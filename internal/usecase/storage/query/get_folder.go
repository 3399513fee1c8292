package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
)

// GetFolderInput はフォルダ取得の入力を定義します
type GetFolderInput struct {
	FolderID uuid.UUID
	UserID   uuid.UUID
}

// GetFolderOutput はフォルダ取得の出力を定義します
type GetFolderOutput struct {
	Folder *entity.Folder
}

// GetFolderQuery はフォルダ取得クエリです
type GetFolderQuery struct {
	ownership service.OwnershipService
}

// NewGetFolderQuery は新しいGetFolderQueryを作成します
func NewGetFolderQuery(ownership service.OwnershipService) *GetFolderQuery {
	return &GetFolderQuery{ownership: ownership}
}

// Execute はフォルダを取得します
func (q *GetFolderQuery) Execute(ctx context.Context, input GetFolderInput) (*GetFolderOutput, error) {
	workspace, err := q.ownership.ResolveWorkspace(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	folder, err := q.ownership.VerifyFolder(ctx, input.FolderID, workspace.ID)
	if err != nil {
		return nil, err
	}

	return &GetFolderOutput{Folder: folder}, nil
}
