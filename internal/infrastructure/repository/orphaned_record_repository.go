package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/database"
)

const orphanedRecordColumns = "id, file_id, workspace_id, storage_key, reason, attempts, detected_at, resolved_at"

// OrphanedRecordRepository は孤立レコードリポジトリの実装です
type OrphanedRecordRepository struct {
	*database.BaseRepository
}

// NewOrphanedRecordRepository は新しいOrphanedRecordRepositoryを作成します
func NewOrphanedRecordRepository(txManager *database.TxManager) *OrphanedRecordRepository {
	return &OrphanedRecordRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// Create は孤立レコードを記録します
func (r *OrphanedRecordRepository) Create(ctx context.Context, record *entity.OrphanedRecord) error {
	_, err := r.Querier(ctx).Exec(ctx,
		`INSERT INTO orphaned_file_records (`+orphanedRecordColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		record.ID, record.FileID, record.WorkspaceID, record.StorageKey,
		record.Reason, record.Attempts, record.DetectedAt, record.ResolvedAt,
	)
	return r.HandleError(err)
}

// FindUnresolved は未回収の記録を古い順に返します
func (r *OrphanedRecordRepository) FindUnresolved(ctx context.Context, limit int) ([]*entity.OrphanedRecord, error) {
	rows, err := r.Querier(ctx).Query(ctx,
		`SELECT `+orphanedRecordColumns+` FROM orphaned_file_records
		 WHERE resolved_at IS NULL
		 ORDER BY detected_at
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, r.HandleError(err)
	}
	records, err := collect(rows, scanOrphanedRecord)
	if err != nil {
		return nil, r.HandleError(err)
	}
	if records == nil {
		records = []*entity.OrphanedRecord{}
	}
	return records, nil
}

// MarkResolved は記録を回収済みにします
func (r *OrphanedRecordRepository) MarkResolved(ctx context.Context, id uuid.UUID) error {
	tag, err := r.Querier(ctx).Exec(ctx,
		`UPDATE orphaned_file_records SET resolved_at = now() WHERE id = $1`,
		id,
	)
	return r.HandleError(database.RequireAffected(tag, err))
}

// IncrementAttempts は回収試行回数を1増やします
func (r *OrphanedRecordRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	tag, err := r.Querier(ctx).Exec(ctx,
		`UPDATE orphaned_file_records SET attempts = attempts + 1 WHERE id = $1`,
		id,
	)
	return r.HandleError(database.RequireAffected(tag, err))
}

func scanOrphanedRecord(row rowScanner) (*entity.OrphanedRecord, error) {
	var (
		record     entity.OrphanedRecord
		resolvedAt *time.Time
	)
	if err := row.Scan(
		&record.ID,
		&record.FileID,
		&record.WorkspaceID,
		&record.StorageKey,
		&record.Reason,
		&record.Attempts,
		&record.DetectedAt,
		&resolvedAt,
	); err != nil {
		return nil, err
	}
	record.ResolvedAt = resolvedAt
	return &record, nil
}

var _ repository.OrphanedRecordRepository = (*OrphanedRecordRepository)(nil)
