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

// CreateFolderInput はフォルダ作成の入力を定義します
type CreateFolderInput struct {
	Name        string
	ParentID    *uuid.UUID
	UserID      uuid.UUID
	Attribution entity.Attribution
}

// CreateFolderOutput はフォルダ作成の出力を定義します
type CreateFolderOutput struct {
	Folder *entity.Folder
}

// CreateFolderCommand はフォルダ作成コマンドです
type CreateFolderCommand struct {
	folderRepo repository.FolderRepository
	txManager  repository.TransactionManager
	ownership  service.OwnershipService
	hierarchy  service.FolderHierarchyService
}

// NewCreateFolderCommand は新しいCreateFolderCommandを作成します
func NewCreateFolderCommand(
	folderRepo repository.FolderRepository,
	txManager repository.TransactionManager,
	ownership service.OwnershipService,
	hierarchy service.FolderHierarchyService,
) *CreateFolderCommand {
	return &CreateFolderCommand{
		folderRepo: folderRepo,
		txManager:  txManager,
		ownership:  ownership,
		hierarchy:  hierarchy,
	}
}

// Execute はフォルダ作成を実行します
func (c *CreateFolderCommand) Execute(ctx context.Context, input CreateFolderInput) (*CreateFolderOutput, error) {
	// 1. フォルダ名のバリデーション
	folderName, err := valueobject.NewFolderName(input.Name)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), []apperror.FieldError{{Field: "name", Message: err.Error()}})
	}

	// 2. ワークスペース解決
	workspace, err := c.ownership.ResolveWorkspace(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	// 3. 作成先の所有・深さ・同名チェック
	if err := c.hierarchy.ValidateFolderCreate(ctx, workspace.ID, folderName, input.ParentID); err != nil {
		return nil, err
	}

	// 4. 作成
	folder := entity.NewFolder(workspace.ID, folderName, input.ParentID, input.Attribution)
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return c.folderRepo.Create(ctx, folder)
	})
	if err != nil {
		return nil, mutationError(err, folderName.Value())
	}

	return &CreateFolderOutput{Folder: folder}, nil
}
