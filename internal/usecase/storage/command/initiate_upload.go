package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

// UploadURLExpiry はアップロード用URLの有効期限です
const UploadURLExpiry = 15 * time.Minute

// InitiateUploadInput はアップロード開始の入力を定義します
type InitiateUploadInput struct {
	FolderID *uuid.UUID // nil の場合はルート
	FileName string
	MimeType string
	Size     int64
	UserID   uuid.UUID
}

// InitiateUploadOutput はアップロード開始の出力を定義します
type InitiateUploadOutput struct {
	FileID    uuid.UUID
	UploadURL string
	ExpiresAt time.Time
}

// InitiateUploadCommand はファイルIDとストレージキーを割り当て、アップロード用URLを発行します。
// DB行はCompleteUploadでオブジェクトの存在を確認してから作成します。
type InitiateUploadCommand struct {
	storageService service.StorageService
	ownership      service.OwnershipService
	hierarchy      service.FolderHierarchyService
}

// NewInitiateUploadCommand は新しいInitiateUploadCommandを作成します
func NewInitiateUploadCommand(
	storageService service.StorageService,
	ownership service.OwnershipService,
	hierarchy service.FolderHierarchyService,
) *InitiateUploadCommand {
	return &InitiateUploadCommand{
		storageService: storageService,
		ownership:      ownership,
		hierarchy:      hierarchy,
	}
}

// Execute はアップロード開始を実行します
func (c *InitiateUploadCommand) Execute(ctx context.Context, input InitiateUploadInput) (*InitiateUploadOutput, error) {
	// 1. 入力のバリデーション
	fileName, err := valueobject.NewFileName(input.FileName)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(), []apperror.FieldError{{Field: "fileName", Message: err.Error()}})
	}
	if _, err := valueobject.NewMimeType(input.MimeType); err != nil {
		return nil, apperror.NewValidationError(err.Error(), []apperror.FieldError{{Field: "mimeType", Message: err.Error()}})
	}
	if input.Size < 0 {
		return nil, apperror.NewValidationError("size must not be negative", []apperror.FieldError{{Field: "size", Message: "must not be negative"}})
	}

	// 2. 配置先の所有と同名チェック
	workspace, err := c.ownership.ResolveWorkspace(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := c.hierarchy.ValidateFilePlacement(ctx, workspace.ID, fileName, input.FolderID, nil); err != nil {
		return nil, err
	}

	// 3. IDとキーの割り当て
	fileID := uuid.New()
	storageKey := valueobject.NewStorageKey(workspace.ID, fileID)

	// 4. Presigned URL を生成
	presigned, err := c.storageService.GeneratePutURL(ctx, storageKey.String(), UploadURLExpiry)
	if err != nil {
		return nil, apperror.NewStorageOperationFailedError(err)
	}

	return &InitiateUploadOutput{
		FileID:    fileID,
		UploadURL: presigned.URL,
		ExpiresAt: presigned.ExpiresAt,
	}, nil
}
