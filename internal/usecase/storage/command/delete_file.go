package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
	"github.com/Hiro-mackay/linkdrop/pkg/logger"
)

// DeleteFileInput はファイル削除の入力を定義します
type DeleteFileInput struct {
	FileID uuid.UUID
	UserID uuid.UUID
}

// DeleteFileOutput はファイル削除の出力を定義します
type DeleteFileOutput struct {
	FileID uuid.UUID
	// RowOrphaned はストレージ削除後にDB行が残ったことを表します(呼び出し元には成功)
	RowOrphaned bool
}

// DeleteFileCommand は単一ファイルをストレージ優先で削除するコマンドです
type DeleteFileCommand struct {
	ownership service.OwnershipService
	engine    *deletionEngine
}

// NewDeleteFileCommand は新しいDeleteFileCommandを作成します
func NewDeleteFileCommand(
	fileRepo repository.FileRepository,
	orphanRepo repository.OrphanedRecordRepository,
	storageService service.StorageService,
	ownership service.OwnershipService,
	config DeletionConfig,
) *DeleteFileCommand {
	return &DeleteFileCommand{
		ownership: ownership,
		engine:    newDeletionEngine(fileRepo, orphanRepo, storageService, config),
	}
}

// Execute はファイル削除を実行します
func (c *DeleteFileCommand) Execute(ctx context.Context, input DeleteFileInput) (*DeleteFileOutput, error) {
	// 1. 所有確認
	workspace, err := c.ownership.ResolveWorkspace(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	file, err := c.ownership.VerifyFile(ctx, input.FileID, workspace.ID)
	if err != nil {
		return nil, err
	}

	// 2. ストレージ削除。失敗時はDB行に触れず再試行可能エラーを返す
	if err := c.engine.deleteObject(ctx, file); err != nil {
		logger.Warn(ctx, "storage delete failed, file kept",
			"file_id", file.ID,
			"error", err.Error(),
		)
		return nil, apperror.NewStorageOperationFailedError(err)
	}

	// 3. DB行削除。失敗は孤立レコードとして記録し、成功を返す
	rowDeleted := c.engine.deleteRow(ctx, file)

	return &DeleteFileOutput{
		FileID:      file.ID,
		RowOrphaned: !rowDeleted,
	}, nil
}
