package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
)

// FileRepository はファイルレコードストアのインターフェース
type FileRepository interface {
	// 基本CRUD
	Create(ctx context.Context, file *entity.File) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.File, error)
	Update(ctx context.Context, file *entity.File) error
	Delete(ctx context.Context, id uuid.UUID) error

	// 検索
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.File, error)
	FindByFolderID(ctx context.Context, workspaceID uuid.UUID, folderID *uuid.UUID) ([]*entity.File, error)
	FindByFolderIDs(ctx context.Context, folderIDs []uuid.UUID) ([]*entity.File, error)

	// 存在チェック
	IsNameAvailable(ctx context.Context, workspaceID uuid.UUID, name valueobject.FileName, folderID *uuid.UUID, excludeID *uuid.UUID) (bool, error)

	// 一括操作
	BulkDelete(ctx context.Context, ids []uuid.UUID) error
	DetachLink(ctx context.Context, workspaceID uuid.UUID, linkID uuid.UUID) (int64, error)
}
