package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
)

// MoveFileInput はファイル移動の入力を定義します
type MoveFileInput struct {
	FileID      uuid.UUID
	NewFolderID *uuid.UUID // nil の場合はルートへ移動
	UserID      uuid.UUID
}

// MoveFileOutput はファイル移動の出力を定義します
type MoveFileOutput struct {
	File  *entity.File
	Moved bool
}

// MoveFileCommand はファイル移動コマンドです
type MoveFileCommand struct {
	fileRepo  repository.FileRepository
	txManager repository.TransactionManager
	ownership service.OwnershipService
	hierarchy service.FolderHierarchyService
}

// NewMoveFileCommand は新しいMoveFileCommandを作成します
func NewMoveFileCommand(
	fileRepo repository.FileRepository,
	txManager repository.TransactionManager,
	ownership service.OwnershipService,
	hierarchy service.FolderHierarchyService,
) *MoveFileCommand {
	return &MoveFileCommand{
		fileRepo:  fileRepo,
		txManager: txManager,
		ownership: ownership,
		hierarchy: hierarchy,
	}
}

// Execute はファイル移動を実行します
func (c *MoveFileCommand) Execute(ctx context.Context, input MoveFileInput) (*MoveFileOutput, error) {
	workspace, err := c.ownership.ResolveWorkspace(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	file, err := c.ownership.VerifyFile(ctx, input.FileID, workspace.ID)
	if err != nil {
		return nil, err
	}

	decision, err := c.hierarchy.ValidateFileMove(ctx, file, input.NewFolderID)
	if err != nil {
		return nil, err
	}
	if decision == service.MoveNoop {
		return &MoveFileOutput{File: file}, nil
	}

	file.MoveTo(input.NewFolderID)
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return c.fileRepo.Update(ctx, file)
	})
	if err != nil {
		return nil, mutationError(err, file.Name.Value())
	}

	return &MoveFileOutput{File: file, Moved: true}, nil
}
