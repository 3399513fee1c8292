package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/database"
)

// WorkspaceRepository はワークスペースリポジトリの実装です
type WorkspaceRepository struct {
	*database.BaseRepository
}

// NewWorkspaceRepository は新しいWorkspaceRepositoryを作成します
func NewWorkspaceRepository(txManager *database.TxManager) *WorkspaceRepository {
	return &WorkspaceRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// Create はワークスペースを作成します。同じ所有者が既にいればErrConflictです
func (r *WorkspaceRepository) Create(ctx context.Context, workspace *entity.Workspace) error {
	_, err := r.Querier(ctx).Exec(ctx,
		`INSERT INTO workspaces (id, owner_user_id, created_at) VALUES ($1, $2, $3)`,
		workspace.ID, workspace.OwnerUserID, workspace.CreatedAt,
	)
	return r.HandleError(err)
}

// FindByOwner は所有ユーザーのワークスペースを返します
func (r *WorkspaceRepository) FindByOwner(ctx context.Context, userID uuid.UUID) (*entity.Workspace, error) {
	var (
		id        uuid.UUID
		ownerID   uuid.UUID
		createdAt time.Time
	)
	err := r.Querier(ctx).QueryRow(ctx,
		`SELECT id, owner_user_id, created_at FROM workspaces WHERE owner_user_id = $1`, userID,
	).Scan(&id, &ownerID, &createdAt)
	if err != nil {
		return nil, r.HandleError(err)
	}
	return entity.ReconstructWorkspace(id, ownerID, createdAt), nil
}

var _ repository.WorkspaceRepository = (*WorkspaceRepository)(nil)
