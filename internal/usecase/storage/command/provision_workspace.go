package command

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

// ProvisionWorkspaceInput はワークスペース作成の入力を定義します
type ProvisionWorkspaceInput struct {
	UserID uuid.UUID
}

// ProvisionWorkspaceOutput はワークスペース作成の出力を定義します
type ProvisionWorkspaceOutput struct {
	Workspace *entity.Workspace
	Created   bool
}

// ProvisionWorkspaceCommand はユーザーのワークスペースを冪等に用意します
type ProvisionWorkspaceCommand struct {
	workspaceRepo repository.WorkspaceRepository
}

// NewProvisionWorkspaceCommand は新しいProvisionWorkspaceCommandを作成します
func NewProvisionWorkspaceCommand(workspaceRepo repository.WorkspaceRepository) *ProvisionWorkspaceCommand {
	return &ProvisionWorkspaceCommand{workspaceRepo: workspaceRepo}
}

// Execute はワークスペース作成を実行します
func (c *ProvisionWorkspaceCommand) Execute(ctx context.Context, input ProvisionWorkspaceInput) (*ProvisionWorkspaceOutput, error) {
	existing, err := c.workspaceRepo.FindByOwner(ctx, input.UserID)
	if err == nil {
		return &ProvisionWorkspaceOutput{Workspace: existing}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NewInternalError(err)
	}

	workspace := entity.NewWorkspace(input.UserID)
	if err := c.workspaceRepo.Create(ctx, workspace); err != nil {
		// 同時作成に負けた場合は既存を返す
		if errors.Is(err, repository.ErrConflict) {
			existing, findErr := c.workspaceRepo.FindByOwner(ctx, input.UserID)
			if findErr != nil {
				return nil, apperror.NewInternalError(findErr)
			}
			return &ProvisionWorkspaceOutput{Workspace: existing}, nil
		}
		return nil, apperror.NewInternalError(err)
	}

	return &ProvisionWorkspaceOutput{Workspace: workspace, Created: true}, nil
}
