package query

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

// ダウンロードURL有効期限
const DownloadURLExpiry = 1 * time.Hour

// GetDownloadURLInput はダウンロードURL取得の入力を定義します
type GetDownloadURLInput struct {
	FileID uuid.UUID
	UserID uuid.UUID
}

// GetDownloadURLOutput はダウンロードURL取得の出力を定義します
type GetDownloadURLOutput struct {
	FileID      uuid.UUID
	FileName    string
	MimeType    string
	Size        int64
	DownloadURL string
	ExpiresAt   time.Time
}

// GetDownloadURLQuery はダウンロードURL取得クエリです
type GetDownloadURLQuery struct {
	storageService service.StorageService
	ownership      service.OwnershipService
}

// NewGetDownloadURLQuery は新しいGetDownloadURLQueryを作成します
func NewGetDownloadURLQuery(
	storageService service.StorageService,
	ownership service.OwnershipService,
) *GetDownloadURLQuery {
	return &GetDownloadURLQuery{
		storageService: storageService,
		ownership:      ownership,
	}
}

// Execute はダウンロードURLを取得します
func (q *GetDownloadURLQuery) Execute(ctx context.Context, input GetDownloadURLInput) (*GetDownloadURLOutput, error) {
	workspace, err := q.ownership.ResolveWorkspace(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	file, err := q.ownership.VerifyFile(ctx, input.FileID, workspace.ID)
	if err != nil {
		return nil, err
	}

	presigned, err := q.storageService.GenerateGetURL(ctx, file.StorageKey.String(), DownloadURLExpiry)
	if err != nil {
		return nil, apperror.NewStorageOperationFailedError(err)
	}

	return &GetDownloadURLOutput{
		FileID:      file.ID,
		FileName:    file.Name.String(),
		MimeType:    file.MimeType.String(),
		Size:        file.Size,
		DownloadURL: presigned.URL,
		ExpiresAt:   presigned.ExpiresAt,
	}, nil
}
