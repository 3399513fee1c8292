package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/pkg/logger"
)

// WorkspaceCacheTTL はワークスペース解決結果の保持期間です
const WorkspaceCacheTTL = 10 * time.Minute

type cachedWorkspace struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CachedWorkspaceRepository は所有者からワークスペースへの解決結果をRedisに保持します。
// 所有者とワークスペースの対応は作成後に変わらないため無効化は行いません。
// Redisの障害時は下位のリポジトリへそのまま委譲します。
type CachedWorkspaceRepository struct {
	inner repository.WorkspaceRepository
	cache *Cache
}

// NewCachedWorkspaceRepository は新しいCachedWorkspaceRepositoryを作成します
func NewCachedWorkspaceRepository(inner repository.WorkspaceRepository, cache *Cache) *CachedWorkspaceRepository {
	return &CachedWorkspaceRepository{inner: inner, cache: cache}
}

// Create はワークスペースを作成し、結果をキャッシュします
func (r *CachedWorkspaceRepository) Create(ctx context.Context, workspace *entity.Workspace) error {
	if err := r.inner.Create(ctx, workspace); err != nil {
		return err
	}
	r.store(ctx, workspace)
	return nil
}

// FindByOwner はキャッシュを優先してワークスペースを返します
func (r *CachedWorkspaceRepository) FindByOwner(ctx context.Context, userID uuid.UUID) (*entity.Workspace, error) {
	var cached cachedWorkspace
	err := r.cache.Get(ctx, OwnerKey(userID), &cached)
	if err == nil {
		return entity.ReconstructWorkspace(cached.ID, cached.OwnerID, cached.CreatedAt), nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		logger.Debug(ctx, "workspace cache unavailable", "error", err.Error())
	}

	workspace, err := r.inner.FindByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	r.store(ctx, workspace)
	return workspace, nil
}

func (r *CachedWorkspaceRepository) store(ctx context.Context, workspace *entity.Workspace) {
	err := r.cache.Set(ctx, OwnerKey(workspace.OwnerUserID), cachedWorkspace{
		ID:        workspace.ID,
		OwnerID:   workspace.OwnerUserID,
		CreatedAt: workspace.CreatedAt,
	})
	if err != nil {
		logger.Debug(ctx, "failed to cache workspace", "error", err.Error())
	}
}

var _ repository.WorkspaceRepository = (*CachedWorkspaceRepository)(nil)
