package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

// GetAncestorsInput は祖先取得の入力を定義します
type GetAncestorsInput struct {
	FolderID uuid.UUID
	UserID   uuid.UUID
}

// GetAncestorsOutput は祖先取得の出力を定義します
type GetAncestorsOutput struct {
	// Chain はルートから対象フォルダ自身までの順序付きリストです
	Chain []*entity.Folder
	Depth int
}

// GetAncestorsQuery は祖先取得クエリです (パンくずリスト用)
type GetAncestorsQuery struct {
	folderRepo repository.FolderRepository
	ownership  service.OwnershipService
}

// NewGetAncestorsQuery は新しいGetAncestorsQueryを作成します
func NewGetAncestorsQuery(
	folderRepo repository.FolderRepository,
	ownership service.OwnershipService,
) *GetAncestorsQuery {
	return &GetAncestorsQuery{
		folderRepo: folderRepo,
		ownership:  ownership,
	}
}

// Execute は祖先を取得します
func (q *GetAncestorsQuery) Execute(ctx context.Context, input GetAncestorsInput) (*GetAncestorsOutput, error) {
	workspace, err := q.ownership.ResolveWorkspace(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := q.ownership.VerifyFolder(ctx, input.FolderID, workspace.ID); err != nil {
		return nil, err
	}

	chain, err := q.folderRepo.GetAncestorChain(ctx, input.FolderID)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	return &GetAncestorsOutput{
		Chain: chain,
		Depth: len(chain) - 1,
	}, nil
}
