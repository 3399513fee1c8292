package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
	"github.com/Hiro-mackay/linkdrop/pkg/logger"
)

// DeleteFolderInput はフォルダ削除の入力を定義します
type DeleteFolderInput struct {
	FolderID uuid.UUID
	UserID   uuid.UUID
}

// DeleteFolderOutput はフォルダ削除の出力を定義します
type DeleteFolderOutput struct {
	DeletedFolderIDs []uuid.UUID
	DetachedFiles    []*entity.File
}

// DeleteFolderCommand はフォルダ削除コマンドです。
// サブツリーのフォルダを削除し、配下のファイルはルートへ切り離します。
// フォルダはストレージ上の実体を持たないため、ストレージには触れません。
type DeleteFolderCommand struct {
	folderRepo repository.FolderRepository
	fileRepo   repository.FileRepository
	txManager  repository.TransactionManager
	ownership  service.OwnershipService
}

// NewDeleteFolderCommand は新しいDeleteFolderCommandを作成します
func NewDeleteFolderCommand(
	folderRepo repository.FolderRepository,
	fileRepo repository.FileRepository,
	txManager repository.TransactionManager,
	ownership service.OwnershipService,
) *DeleteFolderCommand {
	return &DeleteFolderCommand{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		txManager:  txManager,
		ownership:  ownership,
	}
}

// Execute はフォルダ削除を実行します
func (c *DeleteFolderCommand) Execute(ctx context.Context, input DeleteFolderInput) (*DeleteFolderOutput, error) {
	workspace, err := c.ownership.ResolveWorkspace(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	folder, err := c.ownership.VerifyFolder(ctx, input.FolderID, workspace.ID)
	if err != nil {
		return nil, err
	}

	output := &DeleteFolderOutput{}
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		// 1. サブツリー収集
		subtree, err := c.folderRepo.FindSubtree(ctx, folder.ID)
		if err != nil {
			return err
		}
		folderIDs := make([]uuid.UUID, 0, len(subtree))
		for _, f := range subtree {
			folderIDs = append(folderIDs, f.ID)
		}

		// 2. 配下ファイルをルートへ切り離す
		files, err := c.fileRepo.FindByFolderIDs(ctx, folderIDs)
		if err != nil {
			return err
		}
		if len(files) > 0 {
			rootFiles, err := c.fileRepo.FindByFolderID(ctx, workspace.ID, nil)
			if err != nil {
				return err
			}
			taken := make(map[string]struct{}, len(rootFiles)+len(files))
			for _, f := range rootFiles {
				taken[f.Name.Value()] = struct{}{}
			}

			for _, f := range files {
				f.Rename(availableRootName(f.Name, taken))
				f.MoveTo(nil)
				if err := c.fileRepo.Update(ctx, f); err != nil {
					return err
				}
			}
		}

		// 3. サブツリーのフォルダを削除
		if err := c.folderRepo.BulkDelete(ctx, folderIDs); err != nil {
			return err
		}

		output.DeletedFolderIDs = folderIDs
		output.DetachedFiles = files
		return nil
	})
	if err != nil {
		return nil, mutationError(err, folder.Name.Value())
	}

	logger.Info(ctx, "folder deleted",
		"folder_id", folder.ID,
		"deleted_folders", len(output.DeletedFolderIDs),
		"detached_files", len(output.DetachedFiles),
	)

	return output, nil
}

// availableRootName はルート直下で未使用の名前を返し、使用済みとして登録します
func availableRootName(name valueobject.FileName, taken map[string]struct{}) valueobject.FileName {
	candidate := name
	for n := 1; ; n++ {
		if _, exists := taken[candidate.Value()]; !exists {
			break
		}
		candidate = name.WithSuffix(n)
	}
	taken[candidate.Value()] = struct{}{}
	return candidate
}
