package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
)

// OrphanedRecordRepository は孤立レコード記録のインターフェース
type OrphanedRecordRepository interface {
	Create(ctx context.Context, record *entity.OrphanedRecord) error
	FindUnresolved(ctx context.Context, limit int) ([]*entity.OrphanedRecord, error)
	MarkResolved(ctx context.Context, id uuid.UUID) error
	IncrementAttempts(ctx context.Context, id uuid.UUID) error
}
