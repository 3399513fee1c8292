package command

import (
	"context"
	"errors"

	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
	"github.com/Hiro-mackay/linkdrop/pkg/logger"
	"github.com/Hiro-mackay/linkdrop/pkg/metrics"
)

// DefaultReconcileBatchSize は1回の回収で処理する件数です
const DefaultReconcileBatchSize = 100

// ReconcileOrphansInput は孤立レコード回収の入力を定義します
type ReconcileOrphansInput struct {
	Limit int
}

// ReconcileOrphansOutput は孤立レコード回収の出力を定義します
type ReconcileOrphansOutput struct {
	Examined int
	Resolved int
	Failed   int
}

// ReconcileOrphansCommand は孤立したファイル行を削除します。
// ストレージ側は既に削除済みのため、ストレージには触れません。
type ReconcileOrphansCommand struct {
	fileRepo   repository.FileRepository
	orphanRepo repository.OrphanedRecordRepository
}

// NewReconcileOrphansCommand は新しいReconcileOrphansCommandを作成します
func NewReconcileOrphansCommand(
	fileRepo repository.FileRepository,
	orphanRepo repository.OrphanedRecordRepository,
) *ReconcileOrphansCommand {
	return &ReconcileOrphansCommand{
		fileRepo:   fileRepo,
		orphanRepo: orphanRepo,
	}
}

// Execute は孤立レコード回収を実行します
func (c *ReconcileOrphansCommand) Execute(ctx context.Context, input ReconcileOrphansInput) (*ReconcileOrphansOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultReconcileBatchSize
	}

	records, err := c.orphanRepo.FindUnresolved(ctx, limit)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	output := &ReconcileOrphansOutput{Examined: len(records)}
	for _, record := range records {
		if ctx.Err() != nil {
			break
		}

		err := c.fileRepo.Delete(ctx, record.FileID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			output.Failed++
			logger.Warn(ctx, "orphan reconcile failed",
				"file_id", record.FileID,
				"attempts", record.Attempts+1,
				"error", err.Error(),
			)
			if incErr := c.orphanRepo.IncrementAttempts(ctx, record.ID); incErr != nil {
				logger.Error(ctx, "failed to record reconcile attempt", "record_id", record.ID, "error", incErr.Error())
			}
			continue
		}

		if err := c.orphanRepo.MarkResolved(ctx, record.ID); err != nil {
			output.Failed++
			logger.Error(ctx, "failed to mark orphan resolved", "record_id", record.ID, "error", err.Error())
			continue
		}
		output.Resolved++
		metrics.OrphansReconciled.Inc()
	}

	return output, nil
}
