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

// RenameFileInput はファイル名変更の入力を定義します
type RenameFileInput struct {
	FileID  uuid.UUID
	NewName string
	UserID  uuid.UUID
}

// RenameFileOutput はファイル名変更の出力を定義します
type RenameFileOutput struct {
	File *entity.File
}

// RenameFileCommand はファイル名変更コマンドです
type RenameFileCommand struct {
	fileRepo  repository.FileRepository
	txManager repository.TransactionManager
	ownership service.OwnershipService
	hierarchy service.FolderHierarchyService
}

// NewRenameFileCommand は新しいRenameFileCommandを作成します
func NewRenameFileCommand(
	fileRepo repository.FileRepository,
	txManager repository.TransactionManager,
	ownership service.OwnershipService,
	hierarchy service.FolderHierarchyService,
) *RenameFileCommand {
	return &RenameFileCommand{
		fileRepo:  fileRepo,
		txManager: txManager,
		ownership: ownership,
		hierarchy: hierarchy,
	}
}

// Execute はファイル名変更を実行します
func (c *RenameFileCommand) Execute(ctx context.Context, input RenameFileInput) (*RenameFileOutput, error) {
	newName, err := valueobject.NewFileName(input.NewName)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), []apperror.FieldError{{Field: "name", Message: err.Error()}})
	}

	workspace, err := c.ownership.ResolveWorkspace(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	file, err := c.ownership.VerifyFile(ctx, input.FileID, workspace.ID)
	if err != nil {
		return nil, err
	}

	if file.Name.Equals(newName) {
		return &RenameFileOutput{File: file}, nil
	}

	if err := c.hierarchy.ValidateFilePlacement(ctx, workspace.ID, newName, file.FolderID, &file.ID); err != nil {
		return nil, err
	}

	file.Rename(newName)
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return c.fileRepo.Update(ctx, file)
	})
	if err != nil {
		return nil, mutationError(err, newName.Value())
	}

	return &RenameFileOutput{File: file}, nil
}
