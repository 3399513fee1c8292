package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

// RenameFolderInput はフォルダ名変更の入力を定義します
type RenameFolderInput struct {
	FolderID uuid.UUID
	NewName  string
	UserID   uuid.UUID
}

// RenameFolderOutput はフォルダ名変更の出力を定義します
type RenameFolderOutput struct {
	Folder *entity.Folder
}

// RenameFolderCommand はフォルダ名変更コマンドです
type RenameFolderCommand struct {
	folderRepo repository.FolderRepository
	txManager  repository.TransactionManager
	ownership  service.OwnershipService
	hierarchy  service.FolderHierarchyService
}

// NewRenameFolderCommand は新しいRenameFolderCommandを作成します
func NewRenameFolderCommand(
	folderRepo repository.FolderRepository,
	txManager repository.TransactionManager,
	ownership service.OwnershipService,
	hierarchy service.FolderHierarchyService,
) *RenameFolderCommand {
	return &RenameFolderCommand{
		folderRepo: folderRepo,
		txManager:  txManager,
		ownership:  ownership,
		hierarchy:  hierarchy,
	}
}

// Execute はフォルダ名変更を実行します
func (c *RenameFolderCommand) Execute(ctx context.Context, input RenameFolderInput) (*RenameFolderOutput, error) {
	newName, err := valueobject.NewFolderName(input.NewName)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), []apperror.FieldError{{Field: "name", Message: err.Error()}})
	}

	workspace, err := c.ownership.ResolveWorkspace(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	folder, err := c.ownership.VerifyFolder(ctx, input.FolderID, workspace.ID)
	if err != nil {
		return nil, err
	}

	// 同じ名前なら何もしない
	if folder.Name.Equals(newName) {
		return &RenameFolderOutput{Folder: folder}, nil
	}

	if err := c.hierarchy.ValidateFolderRename(ctx, folder, newName); err != nil {
		return nil, err
	}

	folder.Rename(newName)
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return c.folderRepo.Update(ctx, folder)
	})
	if err != nil {
		return nil, mutationError(err, newName.Value())
	}

	return &RenameFolderOutput{Folder: folder}, nil
}
