package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
)

// FolderRepository はフォルダ階層ストアのインターフェース
// 階層は自己参照のparent_idのみで表現し、深さは保存せず都度計算します
type FolderRepository interface {
	// 基本CRUD
	Create(ctx context.Context, folder *entity.Folder) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Folder, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Folder, error)
	Update(ctx context.Context, folder *entity.Folder) error

	// 検索
	FindByParentID(ctx context.Context, workspaceID uuid.UUID, parentID *uuid.UUID) ([]*entity.Folder, error)

	// 階層クエリ
	// GetAncestorChain はルートから自身までの順序付きチェーンを返します
	GetAncestorChain(ctx context.Context, folderID uuid.UUID) ([]*entity.Folder, error)
	// GetDepth はルートを0とした深さを返します
	GetDepth(ctx context.Context, folderID uuid.UUID) (int, error)
	// GetSubtreeHeight は自身から最も深い子孫までの段数を返します(葉なら0)
	GetSubtreeHeight(ctx context.Context, folderID uuid.UUID) (int, error)
	// FindSubtree は自身を含むサブツリーの全フォルダを返します
	FindSubtree(ctx context.Context, folderID uuid.UUID) ([]*entity.Folder, error)

	// 存在チェック
	IsNameAvailable(ctx context.Context, workspaceID uuid.UUID, name valueobject.FolderName, parentID *uuid.UUID, excludeID *uuid.UUID) (bool, error)

	// 一括操作
	BulkDelete(ctx context.Context, ids []uuid.UUID) error
	DetachLink(ctx context.Context, workspaceID uuid.UUID, linkID uuid.UUID) (int64, error)
}
