package query_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/internal/usecase/storage/query"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

func TestGetFolderQuery_Execute_Owned_ReturnsFolder(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	folder := deps.newFolder("Docs", nil)
	deps.expectWorkspace(ctx)
	deps.folderRepo.On("FindByID", ctx, folder.ID).Return(folder, nil)

	output, err := query.NewGetFolderQuery(deps.ownership).Execute(ctx, query.GetFolderInput{FolderID: folder.ID, UserID: deps.userID})
	require.NoError(t, err)
	assert.Equal(t, folder.ID, output.Folder.ID)
}

func TestGetFolderQuery_Execute_Missing_ReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	folderID := uuid.New()
	deps.expectWorkspace(ctx)
	deps.folderRepo.On("FindByID", ctx, folderID).Return(nil, repository.ErrNotFound)

	_, err := query.NewGetFolderQuery(deps.ownership).Execute(ctx, query.GetFolderInput{FolderID: folderID, UserID: deps.userID})
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetFolderQuery_Execute_RepositoryError_ReturnsInternalError(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	folderID := uuid.New()
	deps.expectWorkspace(ctx)
	deps.folderRepo.On("FindByID", ctx, folderID).Return(nil, errors.New("db: closed"))

	_, err := query.NewGetFolderQuery(deps.ownership).Execute(ctx, query.GetFolderInput{FolderID: folderID, UserID: deps.userID})
	assert.True(t, apperror.Is(err, apperror.CodeInternalError))
}

func TestListFolderContentsQuery_Execute_Root_ListsRootItems(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	sub := deps.newFolder("Sub", nil)
	file := deps.newFile("readme.txt", nil)

	deps.expectWorkspace(ctx)
	deps.folderRepo.On("FindByParentID", ctx, deps.workspace.ID, noID).Return([]*entity.Folder{sub}, nil)
	deps.fileRepo.On("FindByFolderID", ctx, deps.workspace.ID, noID).Return([]*entity.File{file}, nil)

	output, err := query.NewListFolderContentsQuery(deps.folderRepo, deps.fileRepo, deps.ownership).
		Execute(ctx, query.ListFolderContentsInput{UserID: deps.userID})
	require.NoError(t, err)
	assert.Nil(t, output.Folder)
	assert.Len(t, output.Folders, 1)
	assert.Len(t, output.Files, 1)
}

func TestListFolderContentsQuery_Execute_Folder_ListsChildren(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	folder := deps.newFolder("Docs", nil)
	file := deps.newFile("a.txt", &folder.ID)

	deps.expectWorkspace(ctx)
	deps.folderRepo.On("FindByID", ctx, folder.ID).Return(folder, nil)
	deps.folderRepo.On("FindByParentID", ctx, deps.workspace.ID, &folder.ID).Return([]*entity.Folder{}, nil)
	deps.fileRepo.On("FindByFolderID", ctx, deps.workspace.ID, &folder.ID).Return([]*entity.File{file}, nil)

	output, err := query.NewListFolderContentsQuery(deps.folderRepo, deps.fileRepo, deps.ownership).
		Execute(ctx, query.ListFolderContentsInput{FolderID: &folder.ID, UserID: deps.userID})
	require.NoError(t, err)
	assert.Equal(t, folder.ID, output.Folder.ID)
	assert.Empty(t, output.Folders)
	assert.Len(t, output.Files, 1)
}

func TestGetAncestorsQuery_Execute_ReturnsChainAndDepth(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	top := deps.newFolder("A", nil)
	mid := deps.newFolder("B", &top.ID)
	leaf := deps.newFolder("C", &mid.ID)

	deps.expectWorkspace(ctx)
	deps.folderRepo.On("FindByID", ctx, leaf.ID).Return(leaf, nil)
	deps.folderRepo.On("GetAncestorChain", ctx, leaf.ID).Return([]*entity.Folder{top, mid, leaf}, nil)

	output, err := query.NewGetAncestorsQuery(deps.folderRepo, deps.ownership).Execute(ctx, query.GetAncestorsInput{FolderID: leaf.ID, UserID: deps.userID})
	require.NoError(t, err)
	assert.Equal(t, 2, output.Depth)
	require.Len(t, output.Chain, 3)
	assert.Equal(t, top.ID, output.Chain[0].ID)
	assert.Equal(t, leaf.ID, output.Chain[2].ID)
}

func TestGetDownloadURLQuery_Execute_ReturnsPresignedGet(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	file := deps.newFile("photo.jpg", nil)
	expires := time.Now().Add(query.DownloadURLExpiry)

	deps.expectWorkspace(ctx)
	deps.fileRepo.On("FindByID", ctx, file.ID).Return(file, nil)
	deps.storage.On("GenerateGetURL", ctx, file.StorageKey.String(), query.DownloadURLExpiry).
		Return(&service.PresignedURL{URL: "https://storage.local/get", ExpiresAt: expires}, nil)

	output, err := query.NewGetDownloadURLQuery(deps.storage, deps.ownership).Execute(ctx, query.GetDownloadURLInput{FileID: file.ID, UserID: deps.userID})
	require.NoError(t, err)
	assert.Equal(t, "https://storage.local/get", output.DownloadURL)
	assert.Equal(t, "photo.jpg", output.FileName)
	assert.Equal(t, expires, output.ExpiresAt)
}

func TestGetDownloadURLQuery_Execute_FileInOtherWorkspace_ReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	deps := newTestDeps(t)

	file := deps.newFile("photo.jpg", nil)
	file.WorkspaceID = uuid.New()

	deps.expectWorkspace(ctx)
	deps.fileRepo.On("FindByID", ctx, file.ID).Return(file, nil)

	_, err := query.NewGetDownloadURLQuery(deps.storage, deps.ownership).Execute(ctx, query.GetDownloadURLInput{FileID: file.ID, UserID: deps.userID})
	assert.True(t, apperror.IsNotFound(err))
	deps.storage.AssertNumberOfCalls(t, "GenerateGetURL", 0)
}
