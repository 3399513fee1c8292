package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
)

// WorkspaceRepository はワークスペースリポジトリのインターフェース
type WorkspaceRepository interface {
	// Create はワークスペースを作成します。所有者が既に持つ場合はErrConflictを返します
	Create(ctx context.Context, workspace *entity.Workspace) error
	FindByOwner(ctx context.Context, userID uuid.UUID) (*entity.Workspace, error)
}
