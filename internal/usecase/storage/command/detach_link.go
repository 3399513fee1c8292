package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

// DetachLinkInput はリンク切り離しの入力を定義します
type DetachLinkInput struct {
	LinkID uuid.UUID
	UserID uuid.UUID
}

// DetachLinkOutput はリンク切り離しの出力を定義します
type DetachLinkOutput struct {
	FoldersDetached int64
	FilesDetached   int64
}

// DetachLinkCommand はリンク削除時にフォルダ・ファイルのlink_idをnullへ戻します。
// 項目自体は削除しません。
type DetachLinkCommand struct {
	folderRepo repository.FolderRepository
	fileRepo   repository.FileRepository
	txManager  repository.TransactionManager
	ownership  service.OwnershipService
}

// NewDetachLinkCommand は新しいDetachLinkCommandを作成します
func NewDetachLinkCommand(
	folderRepo repository.FolderRepository,
	fileRepo repository.FileRepository,
	txManager repository.TransactionManager,
	ownership service.OwnershipService,
) *DetachLinkCommand {
	return &DetachLinkCommand{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		txManager:  txManager,
		ownership:  ownership,
	}
}

// Execute はリンク切り離しを実行します
func (c *DetachLinkCommand) Execute(ctx context.Context, input DetachLinkInput) (*DetachLinkOutput, error) {
	workspace, err := c.ownership.ResolveWorkspace(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	output := &DetachLinkOutput{}
	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		folders, err := c.folderRepo.DetachLink(ctx, workspace.ID, input.LinkID)
		if err != nil {
			return err
		}
		files, err := c.fileRepo.DetachLink(ctx, workspace.ID, input.LinkID)
		if err != nil {
			return err
		}
		output.FoldersDetached = folders
		output.FilesDetached = files
		return nil
	})
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	return output, nil
}
