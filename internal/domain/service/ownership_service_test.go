package service_test

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
	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
	"github.com/Hiro-mackay/linkdrop/internal/testutil/mocks"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

type serviceDeps struct {
	workspaceRepo *mocks.MockWorkspaceRepository
	folderRepo    *mocks.MockFolderRepository
	fileRepo      *mocks.MockFileRepository
	ownership     service.OwnershipService
	workspaceID   uuid.UUID
}

func newServiceDeps(t *testing.T) *serviceDeps {
	t.Helper()
	d := &serviceDeps{
		workspaceRepo: mocks.NewMockWorkspaceRepository(t),
		folderRepo:    mocks.NewMockFolderRepository(t),
		fileRepo:      mocks.NewMockFileRepository(t),
		workspaceID:   uuid.New(),
	}
	d.ownership = service.NewOwnershipService(d.workspaceRepo, d.folderRepo, d.fileRepo)
	return d
}

func (d *serviceDeps) folder(name string, parentID *uuid.UUID) *entity.Folder {
	return entity.ReconstructFolder(uuid.New(), d.workspaceID, valueobject.ReconstructFolderName(name), parentID, entity.Attribution{}, time.Now())
}

func (d *serviceDeps) file(name string) *entity.File {
	return entity.NewFileWithID(uuid.New(), d.workspaceID, nil, valueobject.ReconstructFileName(name), valueobject.ReconstructMimeType("text/plain"), 1, entity.Attribution{})
}

func TestOwnershipService_ResolveWorkspace_NoWorkspace_ReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	deps := newServiceDeps(t)
	userID := uuid.New()

	deps.workspaceRepo.On("FindByOwner", ctx, userID).Return(nil, repository.ErrNotFound)

	_, err := deps.ownership.ResolveWorkspace(ctx, userID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestOwnershipService_VerifyFolder_OtherWorkspace_IndistinguishableFromMissing(t *testing.T) {
	ctx := context.Background()
	deps := newServiceDeps(t)

	owned := deps.folder("Mine", nil)
	missingID := uuid.New()

	deps.folderRepo.On("FindByID", ctx, owned.ID).Return(owned, nil)
	deps.folderRepo.On("FindByID", ctx, missingID).Return(nil, repository.ErrNotFound)

	_, foreignErr := deps.ownership.VerifyFolder(ctx, owned.ID, uuid.New())
	_, missingErr := deps.ownership.VerifyFolder(ctx, missingID, deps.workspaceID)

	require.Error(t, foreignErr)
	require.Error(t, missingErr)
	assert.Equal(t, missingErr.Error(), foreignErr.Error())
}

func TestOwnershipService_VerifyFiles_PreservesOrderAndDeduplicates(t *testing.T) {
	ctx := context.Background()
	deps := newServiceDeps(t)

	a := deps.file("a")
	b := deps.file("b")

	deps.fileRepo.On("FindByIDs", ctx, []uuid.UUID{b.ID, a.ID}).Return([]*entity.File{a, b}, nil)

	files, err := deps.ownership.VerifyFiles(ctx, []uuid.UUID{b.ID, a.ID, b.ID}, deps.workspaceID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, b.ID, files[0].ID)
	assert.Equal(t, a.ID, files[1].ID)
}

func TestOwnershipService_VerifyFiles_AnyMissing_FailsWholeBatch(t *testing.T) {
	ctx := context.Background()
	deps := newServiceDeps(t)

	a := deps.file("a")
	missingID := uuid.New()

	deps.fileRepo.On("FindByIDs", ctx, []uuid.UUID{a.ID, missingID}).Return([]*entity.File{a}, nil)

	files, err := deps.ownership.VerifyFiles(ctx, []uuid.UUID{a.ID, missingID}, deps.workspaceID)
	assert.Nil(t, files)
	assert.True(t, apperror.IsNotFound(err))
}

func TestOwnershipService_VerifyFolders_RepositoryError_ReturnsInternalError(t *testing.T) {
	ctx := context.Background()
	deps := newServiceDeps(t)

	id := uuid.New()
	deps.folderRepo.On("FindByIDs", ctx, []uuid.UUID{id}).Return(nil, errors.New("db: closed"))

	_, err := deps.ownership.VerifyFolders(ctx, []uuid.UUID{id}, deps.workspaceID)
	assert.True(t, apperror.Is(err, apperror.CodeInternalError))
}
