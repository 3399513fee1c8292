package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/usecase/storage/command"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

func (d *testDeps) newMoveFolderCommand() *command.MoveFolderCommand {
	return command.NewMoveFolderCommand(d.folderRepo, d.txManager, d.ownership, d.hierarchy)
}

func TestMoveFolderCommand_Execute_MoveToNewParent_ReturnsFolder(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	folder := deps.newFolder("Reports", nil)
	dest := deps.newFolder("Archive", nil)

	deps.expectWorkspace(ctx)
	deps.expectFolder(ctx, folder)
	deps.expectFolder(ctx, dest)
	deps.folderRepo.On("GetAncestorChain", ctx, dest.ID).Return([]*entity.Folder{dest}, nil)
	deps.folderRepo.On("GetSubtreeHeight", ctx, folder.ID).Return(0, nil)
	deps.folderRepo.On("IsNameAvailable", ctx, deps.workspace.ID, folder.Name, &dest.ID, &folder.ID).Return(true, nil)
	deps.folderRepo.On("Update", ctx, folder).Return(nil)

	output, err := deps.newMoveFolderCommand().Execute(ctx, command.MoveFolderInput{
		FolderID:    folder.ID,
		NewParentID: &dest.ID,
		UserID:      deps.userID,
	})
	require.NoError(t, err)
	assert.True(t, output.Moved)
	require.NotNil(t, output.Folder.ParentID)
	assert.Equal(t, dest.ID, *output.Folder.ParentID)
}

func TestMoveFolderCommand_Execute_MoveToRoot_SkipsAncestorLookup(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	parent := deps.newFolder("Parent", nil)
	folder := deps.newFolder("Child", &parent.ID)

	deps.expectWorkspace(ctx)
	deps.expectFolder(ctx, folder)
	deps.folderRepo.On("GetSubtreeHeight", ctx, folder.ID).Return(3, nil)
	deps.folderRepo.On("IsNameAvailable", ctx, deps.workspace.ID, folder.Name, noID, &folder.ID).Return(true, nil)
	deps.folderRepo.On("Update", ctx, folder).Return(nil)

	output, err := deps.newMoveFolderCommand().Execute(ctx, command.MoveFolderInput{
		FolderID: folder.ID,
		UserID:   deps.userID,
	})
	require.NoError(t, err)
	assert.True(t, output.Moved)
	assert.Nil(t, output.Folder.ParentID)
	deps.folderRepo.AssertNumberOfCalls(t, "GetAncestorChain", 0)
}

func TestMoveFolderCommand_Execute_SameParent_IsNoOp(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	parent := deps.newFolder("Parent", nil)
	folder := deps.newFolder("Child", &parent.ID)

	deps.expectWorkspace(ctx)
	deps.expectFolder(ctx, folder)

	cmd := deps.newMoveFolderCommand()
	input := command.MoveFolderInput{FolderID: folder.ID, NewParentID: idPtr(parent.ID), UserID: deps.userID}

	for i := 0; i < 2; i++ {
		output, err := cmd.Execute(ctx, input)
		require.NoError(t, err)
		assert.False(t, output.Moved)
		assert.Equal(t, parent.ID, *output.Folder.ParentID)
	}
	deps.folderRepo.AssertNumberOfCalls(t, "Update", 0)
}

func TestMoveFolderCommand_Execute_IntoItself_ReturnsCircularReference(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	folder := deps.newFolder("Loop", nil)

	deps.expectWorkspace(ctx)
	deps.expectFolder(ctx, folder)

	_, err := deps.newMoveFolderCommand().Execute(ctx, command.MoveFolderInput{
		FolderID:    folder.ID,
		NewParentID: idPtr(folder.ID),
		UserID:      deps.userID,
	})
	assert.True(t, apperror.Is(err, apperror.CodeCircularReference))
	deps.folderRepo.AssertNumberOfCalls(t, "Update", 0)
}

func TestMoveFolderCommand_Execute_IntoDescendant_ReturnsCircularReference(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	folder := deps.newFolder("Top", nil)
	child := deps.newFolder("Middle", &folder.ID)
	grandchild := deps.newFolder("Bottom", &child.ID)

	deps.expectWorkspace(ctx)
	deps.expectFolder(ctx, folder)
	deps.expectFolder(ctx, grandchild)
	deps.folderRepo.On("GetAncestorChain", ctx, grandchild.ID).Return([]*entity.Folder{folder, child, grandchild}, nil)

	_, err := deps.newMoveFolderCommand().Execute(ctx, command.MoveFolderInput{
		FolderID:    folder.ID,
		NewParentID: &grandchild.ID,
		UserID:      deps.userID,
	})
	assert.True(t, apperror.Is(err, apperror.CodeCircularReference))
	deps.folderRepo.AssertNumberOfCalls(t, "GetSubtreeHeight", 0)
	deps.folderRepo.AssertNumberOfCalls(t, "Update", 0)
}

func TestMoveFolderCommand_Execute_SwapParentAndChild_SecondMoveRejected(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	tax2024 := deps.newFolder("Tax2024", nil)
	tax2023 := deps.newFolder("Tax2023", nil)

	deps.expectWorkspace(ctx)
	deps.expectFolder(ctx, tax2024)
	deps.expectFolder(ctx, tax2023)

	// Tax2023 を Tax2024 の下へ
	deps.folderRepo.On("GetAncestorChain", ctx, tax2024.ID).Return([]*entity.Folder{tax2024}, nil)
	deps.folderRepo.On("GetSubtreeHeight", ctx, tax2023.ID).Return(0, nil)
	deps.folderRepo.On("IsNameAvailable", ctx, deps.workspace.ID, tax2023.Name, &tax2024.ID, &tax2023.ID).Return(true, nil)
	deps.folderRepo.On("Update", ctx, tax2023).Return(nil)

	cmd := deps.newMoveFolderCommand()
	output, err := cmd.Execute(ctx, command.MoveFolderInput{FolderID: tax2023.ID, NewParentID: &tax2024.ID, UserID: deps.userID})
	require.NoError(t, err)
	require.True(t, output.Moved)

	// Tax2024 を Tax2023 の下へ: Tax2023 の祖先に Tax2024 が含まれる
	deps.folderRepo.On("GetAncestorChain", ctx, tax2023.ID).Return([]*entity.Folder{tax2024, tax2023}, nil)

	_, err = cmd.Execute(ctx, command.MoveFolderInput{FolderID: tax2024.ID, NewParentID: &tax2023.ID, UserID: deps.userID})
	assert.True(t, apperror.Is(err, apperror.CodeCircularReference))
	assert.Nil(t, tax2024.ParentID)
	deps.folderRepo.AssertNumberOfCalls(t, "Update", 1)
}

func TestMoveFolderCommand_Execute_DestinationOneBelowLimit_Succeeds(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	folder := deps.newFolder("Leaf", nil)
	dest := deps.newFolder("Deep", nil)
	// dest の深さは MAX-2。移動後の深さは MAX-1
	chain := deps.chainOf(testMaxDepth-1, dest)

	deps.expectWorkspace(ctx)
	deps.expectFolder(ctx, folder)
	deps.expectFolder(ctx, dest)
	deps.folderRepo.On("GetAncestorChain", ctx, dest.ID).Return(chain, nil)
	deps.folderRepo.On("GetSubtreeHeight", ctx, folder.ID).Return(0, nil)
	deps.folderRepo.On("IsNameAvailable", ctx, deps.workspace.ID, folder.Name, &dest.ID, &folder.ID).Return(true, nil)
	deps.folderRepo.On("Update", ctx, folder).Return(nil)

	output, err := deps.newMoveFolderCommand().Execute(ctx, command.MoveFolderInput{FolderID: folder.ID, NewParentID: &dest.ID, UserID: deps.userID})
	require.NoError(t, err)
	assert.True(t, output.Moved)
}

func TestMoveFolderCommand_Execute_DestinationAtLimit_ReturnsNestingDepthExceeded(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	folder := deps.newFolder("Leaf", nil)
	dest := deps.newFolder("Deep", nil)
	chain := deps.chainOf(testMaxDepth, dest)

	deps.expectWorkspace(ctx)
	deps.expectFolder(ctx, folder)
	deps.expectFolder(ctx, dest)
	deps.folderRepo.On("GetAncestorChain", ctx, dest.ID).Return(chain, nil)
	deps.folderRepo.On("GetSubtreeHeight", ctx, folder.ID).Return(0, nil)

	_, err := deps.newMoveFolderCommand().Execute(ctx, command.MoveFolderInput{FolderID: folder.ID, NewParentID: &dest.ID, UserID: deps.userID})
	assert.True(t, apperror.Is(err, apperror.CodeNestingDepthExceeded))
	deps.folderRepo.AssertNumberOfCalls(t, "Update", 0)
}

func TestMoveFolderCommand_Execute_SubtreeWouldExceedLimit_ReturnsNestingDepthExceeded(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	folder := deps.newFolder("Project", nil)
	dest := deps.newFolder("Deep", nil)
	chain := deps.chainOf(testMaxDepth-2, dest)

	deps.expectWorkspace(ctx)
	deps.expectFolder(ctx, folder)
	deps.expectFolder(ctx, dest)
	deps.folderRepo.On("GetAncestorChain", ctx, dest.ID).Return(chain, nil)
	deps.folderRepo.On("GetSubtreeHeight", ctx, folder.ID).Return(2, nil)

	_, err := deps.newMoveFolderCommand().Execute(ctx, command.MoveFolderInput{FolderID: folder.ID, NewParentID: &dest.ID, UserID: deps.userID})
	assert.True(t, apperror.Is(err, apperror.CodeNestingDepthExceeded))
}

func TestMoveFolderCommand_Execute_NameTakenAtDestination_ReturnsNameCollision(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	folder := deps.newFolder("Reports", nil)
	dest := deps.newFolder("Archive", nil)

	deps.expectWorkspace(ctx)
	deps.expectFolder(ctx, folder)
	deps.expectFolder(ctx, dest)
	deps.folderRepo.On("GetAncestorChain", ctx, dest.ID).Return([]*entity.Folder{dest}, nil)
	deps.folderRepo.On("GetSubtreeHeight", ctx, folder.ID).Return(0, nil)
	deps.folderRepo.On("IsNameAvailable", ctx, deps.workspace.ID, folder.Name, &dest.ID, &folder.ID).Return(false, nil)

	_, err := deps.newMoveFolderCommand().Execute(ctx, command.MoveFolderInput{FolderID: folder.ID, NewParentID: &dest.ID, UserID: deps.userID})
	assert.True(t, apperror.Is(err, apperror.CodeNameCollision))
	assert.Nil(t, folder.ParentID)
	deps.folderRepo.AssertNumberOfCalls(t, "Update", 0)
}

func TestMoveFolderCommand_Execute_UniqueViolationOnCommit_ReturnsNameCollision(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	folder := deps.newFolder("Reports", nil)
	dest := deps.newFolder("Archive", nil)

	deps.expectWorkspace(ctx)
	deps.expectFolder(ctx, folder)
	deps.expectFolder(ctx, dest)
	deps.folderRepo.On("GetAncestorChain", ctx, dest.ID).Return([]*entity.Folder{dest}, nil)
	deps.folderRepo.On("GetSubtreeHeight", ctx, folder.ID).Return(0, nil)
	deps.folderRepo.On("IsNameAvailable", ctx, deps.workspace.ID, folder.Name, &dest.ID, &folder.ID).Return(true, nil)
	deps.folderRepo.On("Update", ctx, folder).Return(repository.ErrConflict)

	_, err := deps.newMoveFolderCommand().Execute(ctx, command.MoveFolderInput{FolderID: folder.ID, NewParentID: &dest.ID, UserID: deps.userID})
	assert.True(t, apperror.Is(err, apperror.CodeNameCollision))
}

func TestMoveFolderCommand_Execute_DestinationInOtherWorkspace_ReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	folder := deps.newFolder("Reports", nil)
	dest := foreignFolder("Elsewhere")

	deps.expectWorkspace(ctx)
	deps.expectFolder(ctx, folder)
	deps.expectFolder(ctx, dest)

	_, err := deps.newMoveFolderCommand().Execute(ctx, command.MoveFolderInput{FolderID: folder.ID, NewParentID: &dest.ID, UserID: deps.userID})
	assert.True(t, apperror.IsNotFound(err))
	deps.folderRepo.AssertNumberOfCalls(t, "GetAncestorChain", 0)
}

func TestMoveFolderCommand_Execute_FolderInOtherWorkspace_ReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	folder := foreignFolder("Theirs")

	deps.expectWorkspace(ctx)
	deps.expectFolder(ctx, folder)

	_, err := deps.newMoveFolderCommand().Execute(ctx, command.MoveFolderInput{FolderID: folder.ID, UserID: deps.userID})
	assert.True(t, apperror.IsNotFound(err))
}

func TestMoveFolderCommand_Execute_NoWorkspace_ReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	deps.workspaceRepo.On("FindByOwner", ctx, deps.userID).Return(nil, repository.ErrNotFound)

	_, err := deps.newMoveFolderCommand().Execute(ctx, command.MoveFolderInput{FolderID: deps.newFolder("x", nil).ID, UserID: deps.userID})
	assert.True(t, apperror.IsNotFound(err))
}
