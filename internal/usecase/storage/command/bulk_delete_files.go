package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
	"github.com/Hiro-mackay/linkdrop/pkg/logger"
	"github.com/Hiro-mackay/linkdrop/pkg/metrics"
)

// BulkDeleteFilesInput は一括削除の入力を定義します
type BulkDeleteFilesInput struct {
	FileIDs []uuid.UUID
	UserID  uuid.UUID
}

// BulkDeleteFailure は削除できなかった1件を表します
type BulkDeleteFailure struct {
	FileID uuid.UUID
	Reason string
}

// BulkDeleteFilesOutput は一括削除の出力を定義します
type BulkDeleteFilesOutput struct {
	DeletedCount  int
	FailedCount   int
	Deleted       []uuid.UUID
	Failed        []BulkDeleteFailure
	OrphanedCount int
}

// PartialFailure は一部失敗時のエラーを返します。全件成功ならnilです
func (o *BulkDeleteFilesOutput) PartialFailure() *apperror.AppError {
	if o.FailedCount == 0 {
		return nil
	}
	return apperror.NewPartialBulkFailureError(
		fmt.Sprintf("%d of %d files could not be deleted", o.FailedCount, o.DeletedCount+o.FailedCount),
		failureDetails(o.Failed),
	)
}

// BulkDeleteFilesCommand は複数ファイルを部分成功ありで削除するコマンドです。
// 所有確認は全件一括で行い、ストレージ削除は並行に実行して結果を個別に集めます。
type BulkDeleteFilesCommand struct {
	ownership service.OwnershipService
	engine    *deletionEngine
}

// NewBulkDeleteFilesCommand は新しいBulkDeleteFilesCommandを作成します
func NewBulkDeleteFilesCommand(
	fileRepo repository.FileRepository,
	orphanRepo repository.OrphanedRecordRepository,
	storageService service.StorageService,
	ownership service.OwnershipService,
	config DeletionConfig,
) *BulkDeleteFilesCommand {
	return &BulkDeleteFilesCommand{
		ownership: ownership,
		engine:    newDeletionEngine(fileRepo, orphanRepo, storageService, config),
	}
}

// Execute は一括削除を実行します
func (c *BulkDeleteFilesCommand) Execute(ctx context.Context, input BulkDeleteFilesInput) (*BulkDeleteFilesOutput, error) {
	if len(input.FileIDs) == 0 {
		return nil, apperror.NewValidationError("fileIds must not be empty", []apperror.FieldError{{Field: "fileIds", Message: "required"}})
	}

	// 1. 全件の所有確認。1件でも欠ければストレージに触れず中断
	workspace, err := c.ownership.ResolveWorkspace(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	files, err := c.ownership.VerifyFiles(ctx, input.FileIDs, workspace.ID)
	if err != nil {
		return nil, err
	}

	// 2. ストレージ削除を並行実行。失敗は他をキャンセルしない
	storageErrs := make([]error, len(files))
	var g errgroup.Group
	g.SetLimit(c.engine.config.Concurrency)
	for i, file := range files {
		g.Go(func() error {
			storageErrs[i] = c.engine.deleteObject(ctx, file)
			return nil
		})
	}
	_ = g.Wait()

	succeeded := make([]*entity.File, 0, len(files))
	output := &BulkDeleteFilesOutput{}
	for i, file := range files {
		if storageErrs[i] != nil {
			output.Failed = append(output.Failed, BulkDeleteFailure{FileID: file.ID, Reason: storageErrs[i].Error()})
			continue
		}
		succeeded = append(succeeded, file)
		output.Deleted = append(output.Deleted, file.ID)
	}
	output.DeletedCount = len(output.Deleted)
	output.FailedCount = len(output.Failed)

	// 3. 全件失敗ならDBに触れず失敗を返す
	if len(succeeded) == 0 {
		metrics.BulkDeleteOutcomes.WithLabelValues("failed").Inc()
		appErr := apperror.NewStorageOperationFailedError(nil)
		appErr.Message = fmt.Sprintf("none of %d files could be deleted, please retry", len(files))
		appErr.Details = failureDetails(output.Failed)
		return nil, appErr
	}

	// 4. 成功分のみDB行を削除。失敗は孤立レコードとして記録
	output.OrphanedCount = c.engine.deleteRows(ctx, succeeded)

	if output.FailedCount > 0 {
		metrics.BulkDeleteOutcomes.WithLabelValues("partial").Inc()
		logger.Warn(ctx, "bulk delete partially failed",
			"deleted", output.DeletedCount,
			"failed", output.FailedCount,
		)
	} else {
		metrics.BulkDeleteOutcomes.WithLabelValues("complete").Inc()
	}

	return output, nil
}

func failureDetails(failed []BulkDeleteFailure) []apperror.FieldError {
	details := make([]apperror.FieldError, 0, len(failed))
	for _, f := range failed {
		details = append(details, apperror.FieldError{Field: f.FileID.String(), Message: f.Reason})
	}
	return details
}
