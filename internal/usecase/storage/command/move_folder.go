package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
)

// MoveFolderInput はフォルダ移動の入力を定義します
type MoveFolderInput struct {
	FolderID    uuid.UUID
	NewParentID *uuid.UUID // nil の場合はルートへ移動
	UserID      uuid.UUID
}

// MoveFolderOutput はフォルダ移動の出力を定義します
type MoveFolderOutput struct {
	Folder *entity.Folder
	Moved  bool
}

// MoveFolderCommand はフォルダ移動コマンドです
type MoveFolderCommand struct {
	folderRepo repository.FolderRepository
	txManager  repository.TransactionManager
	ownership  service.OwnershipService
	hierarchy  service.FolderHierarchyService
}

// NewMoveFolderCommand は新しいMoveFolderCommandを作成します
func NewMoveFolderCommand(
	folderRepo repository.FolderRepository,
	txManager repository.TransactionManager,
	ownership service.OwnershipService,
	hierarchy service.FolderHierarchyService,
) *MoveFolderCommand {
	return &MoveFolderCommand{
		folderRepo: folderRepo,
		txManager:  txManager,
		ownership:  ownership,
		hierarchy:  hierarchy,
	}
}

// Execute はフォルダ移動を実行します
func (c *MoveFolderCommand) Execute(ctx context.Context, input MoveFolderInput) (*MoveFolderOutput, error) {
	// 1. 所有確認
	workspace, err := c.ownership.ResolveWorkspace(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	folder, err := c.ownership.VerifyFolder(ctx, input.FolderID, workspace.ID)
	if err != nil {
		return nil, err
	}

	// 2. 検証 (同一親・自己参照・移動先所有・循環・深さ・同名)
	decision, err := c.hierarchy.ValidateFolderMove(ctx, folder, input.NewParentID)
	if err != nil {
		return nil, err
	}
	if decision == service.MoveNoop {
		return &MoveFolderOutput{Folder: folder}, nil
	}

	// 3. 親ポインタの更新のみをトランザクションで実行
	folder.MoveTo(input.NewParentID)
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return c.folderRepo.Update(ctx, folder)
	})
	if err != nil {
		return nil, mutationError(err, folder.Name.Value())
	}

	return &MoveFolderOutput{Folder: folder, Moved: true}, nil
}
