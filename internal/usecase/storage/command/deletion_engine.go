package command

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/pkg/logger"
	"github.com/Hiro-mackay/linkdrop/pkg/metrics"
)

// DeletionConfig は削除エンジンの設定を定義します
type DeletionConfig struct {
	Concurrency    int           // 一括削除時のストレージ呼び出し並列数
	StorageTimeout time.Duration // ストレージ削除1件あたりの上限時間
}

// DefaultDeletionConfig はデフォルト設定を返します
func DefaultDeletionConfig() DeletionConfig {
	return DeletionConfig{
		Concurrency:    16,
		StorageTimeout: 10 * time.Second,
	}
}

// deletionEngine はストレージ優先の削除手順を実装します。
// ストレージ削除が確定的に成功した後にのみDB行を削除します。
// DB行の削除に失敗した場合は孤立レコードとして記録し、呼び出し元には成功を返します。
type deletionEngine struct {
	fileRepo       repository.FileRepository
	orphanRepo     repository.OrphanedRecordRepository
	storageService service.StorageService
	config         DeletionConfig
}

func newDeletionEngine(
	fileRepo repository.FileRepository,
	orphanRepo repository.OrphanedRecordRepository,
	storageService service.StorageService,
	config DeletionConfig,
) *deletionEngine {
	if config.Concurrency < 1 {
		config.Concurrency = DefaultDeletionConfig().Concurrency
	}
	return &deletionEngine{
		fileRepo:       fileRepo,
		orphanRepo:     orphanRepo,
		storageService: storageService,
		config:         config,
	}
}

// deleteObject はストレージオブジェクトを削除します。
// タイムアウトやキャンセルはオブジェクトが残っているものとして失敗を返します。
func (e *deletionEngine) deleteObject(ctx context.Context, file *entity.File) error {
	if e.config.StorageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.StorageTimeout)
		defer cancel()
	}

	err := e.storageService.DeleteObject(ctx, file.StorageKey.String())
	if err == nil && ctx.Err() != nil {
		// 完了を確認できないまま期限切れになった
		err = ctx.Err()
	}
	if err != nil {
		metrics.StorageDeletes.WithLabelValues("failure").Inc()
		return err
	}
	metrics.StorageDeletes.WithLabelValues("success").Inc()
	return nil
}

// deleteRow はストレージ削除済みファイルのDB行を削除します。
// 失敗時は孤立レコードを記録し、記録できたかに関わらずfalseを返します。
func (e *deletionEngine) deleteRow(ctx context.Context, file *entity.File) bool {
	// ストレージは既に消えているため、呼び出し元のキャンセルでこの段階を中断しない
	ctx = context.WithoutCancel(ctx)

	err := e.fileRepo.Delete(ctx, file.ID)
	if err == nil || errors.Is(err, repository.ErrNotFound) {
		return true
	}
	e.recordOrphans(ctx, []*entity.File{file}, err)
	return false
}

// deleteRows はストレージ削除済みファイル群のDB行をまとめて削除します
func (e *deletionEngine) deleteRows(ctx context.Context, files []*entity.File) (orphaned int) {
	if len(files) == 0 {
		return 0
	}
	ctx = context.WithoutCancel(ctx)

	ids := make([]uuid.UUID, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.ID)
	}
	if err := e.fileRepo.BulkDelete(ctx, ids); err != nil {
		e.recordOrphans(ctx, files, err)
		return len(files)
	}
	return 0
}

// recordOrphans は孤立レコードを警告ログ・メトリクス・永続記録へ残します
func (e *deletionEngine) recordOrphans(ctx context.Context, files []*entity.File, cause error) {
	for _, file := range files {
		metrics.OrphanedRecords.Inc()
		logger.Warn(ctx, "orphaned file record: storage object deleted but row remains",
			"file_id", file.ID,
			"workspace_id", file.WorkspaceID,
			"storage_key", file.StorageKey.String(),
			"reason", cause.Error(),
		)

		if err := e.orphanRepo.Create(ctx, entity.NewOrphanedRecord(file, cause.Error())); err != nil {
			logger.Error(ctx, "failed to persist orphaned record",
				"file_id", file.ID,
				"error", err.Error(),
			)
		}
	}
}
