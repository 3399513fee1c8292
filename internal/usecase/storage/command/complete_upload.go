package command

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

// CompleteUploadInput はアップロード完了の入力を定義します
type CompleteUploadInput struct {
	FileID      uuid.UUID
	FolderID    *uuid.UUID
	FileName    string
	MimeType    string
	Size        int64
	UserID      uuid.UUID
	Attribution entity.Attribution
}

// CompleteUploadOutput はアップロード完了の出力を定義します
type CompleteUploadOutput struct {
	File *entity.File
}

// CompleteUploadCommand はストレージ上のオブジェクトを確認してファイル行を作成します
type CompleteUploadCommand struct {
	fileRepo       repository.FileRepository
	txManager      repository.TransactionManager
	storageService service.StorageService
	ownership      service.OwnershipService
	hierarchy      service.FolderHierarchyService
}

// NewCompleteUploadCommand は新しいCompleteUploadCommandを作成します
func NewCompleteUploadCommand(
	fileRepo repository.FileRepository,
	txManager repository.TransactionManager,
	storageService service.StorageService,
	ownership service.OwnershipService,
	hierarchy service.FolderHierarchyService,
) *CompleteUploadCommand {
	return &CompleteUploadCommand{
		fileRepo:       fileRepo,
		txManager:      txManager,
		storageService: storageService,
		ownership:      ownership,
		hierarchy:      hierarchy,
	}
}

// Execute はアップロード完了を実行します
func (c *CompleteUploadCommand) Execute(ctx context.Context, input CompleteUploadInput) (*CompleteUploadOutput, error) {
	fileName, err := valueobject.NewFileName(input.FileName)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), []apperror.FieldError{{Field: "fileName", Message: err.Error()}})
	}
	mimeType, err := valueobject.NewMimeType(input.MimeType)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), []apperror.FieldError{{Field: "mimeType", Message: err.Error()}})
	}

	workspace, err := c.ownership.ResolveWorkspace(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	file := entity.NewFileWithID(input.FileID, workspace.ID, input.FolderID, fileName, mimeType, input.Size, input.Attribution)

	// 1. オブジェクトの存在確認 (キーはワークスペースとIDから導出)
	exists, err := c.storageService.ObjectExists(ctx, file.StorageKey.String())
	if err != nil {
		return nil, apperror.NewStorageOperationFailedError(err)
	}
	if !exists {
		return nil, apperror.NewNotFoundError("uploaded object")
	}

	// 2. 配置先の再検証
	if err := c.hierarchy.ValidateFilePlacement(ctx, workspace.ID, fileName, input.FolderID, nil); err != nil {
		return nil, err
	}

	// 3. 作成
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return c.fileRepo.Create(ctx, file)
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) && c.idTaken(ctx, input.FileID) {
			return nil, apperror.NewValidationError("fileId is already registered", []apperror.FieldError{
				{Field: "fileId", Message: "already registered, initiate a new upload"},
			})
		}
		return nil, mutationError(err, fileName.Value())
	}

	return &CompleteUploadOutput{File: file}, nil
}

// idTaken は一意制約違反が主キー由来かどうかを判定します。
// 同名衝突と区別するため、違反後にIDで行を引き直します。
func (c *CompleteUploadCommand) idTaken(ctx context.Context, fileID uuid.UUID) bool {
	_, err := c.fileRepo.FindByID(ctx, fileID)
	return err == nil
}
