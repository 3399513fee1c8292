package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

// ListFolderContentsInput はフォルダ内容一覧の入力を定義します
type ListFolderContentsInput struct {
	FolderID *uuid.UUID // nil の場合はルートレベル
	UserID   uuid.UUID
}

// ListFolderContentsOutput はフォルダ内容一覧の出力を定義します
type ListFolderContentsOutput struct {
	Folder  *entity.Folder // ルートの場合はnil
	Folders []*entity.Folder
	Files   []*entity.File
}

// ListFolderContentsQuery はフォルダ内容一覧クエリです
type ListFolderContentsQuery struct {
	folderRepo repository.FolderRepository
	fileRepo   repository.FileRepository
	ownership  service.OwnershipService
}

// NewListFolderContentsQuery は新しいListFolderContentsQueryを作成します
func NewListFolderContentsQuery(
	folderRepo repository.FolderRepository,
	fileRepo repository.FileRepository,
	ownership service.OwnershipService,
) *ListFolderContentsQuery {
	return &ListFolderContentsQuery{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		ownership:  ownership,
	}
}

// Execute はフォルダ内容一覧を取得します
func (q *ListFolderContentsQuery) Execute(ctx context.Context, input ListFolderContentsInput) (*ListFolderContentsOutput, error) {
	workspace, err := q.ownership.ResolveWorkspace(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	var folder *entity.Folder
	if input.FolderID != nil {
		folder, err = q.ownership.VerifyFolder(ctx, *input.FolderID, workspace.ID)
		if err != nil {
			return nil, err
		}
	}

	folders, err := q.folderRepo.FindByParentID(ctx, workspace.ID, input.FolderID)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	files, err := q.fileRepo.FindByFolderID(ctx, workspace.ID, input.FolderID)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	return &ListFolderContentsOutput{
		Folder:  folder,
		Folders: folders,
		Files:   files,
	}, nil
}
