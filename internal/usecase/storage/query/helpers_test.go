package query_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
	"github.com/Hiro-mackay/linkdrop/internal/testutil/mocks"
)

var noID *uuid.UUID

type testDeps struct {
	workspaceRepo *mocks.MockWorkspaceRepository
	folderRepo    *mocks.MockFolderRepository
	fileRepo      *mocks.MockFileRepository
	storage       *mocks.MockStorageService
	fetcher       *mocks.MockObjectFetcher

	ownership service.OwnershipService

	userID    uuid.UUID
	workspace *entity.Workspace
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	d := &testDeps{
		workspaceRepo: mocks.NewMockWorkspaceRepository(t),
		folderRepo:    mocks.NewMockFolderRepository(t),
		fileRepo:      mocks.NewMockFileRepository(t),
		storage:       mocks.NewMockStorageService(t),
		fetcher:       mocks.NewMockObjectFetcher(t),
		userID:        uuid.New(),
	}
	d.workspace = entity.ReconstructWorkspace(uuid.New(), d.userID, time.Now())
	d.ownership = service.NewOwnershipService(d.workspaceRepo, d.folderRepo, d.fileRepo)
	return d
}

func (d *testDeps) expectWorkspace(ctx context.Context) {
	d.workspaceRepo.On("FindByOwner", ctx, d.userID).Return(d.workspace, nil)
}

func (d *testDeps) newFolder(name string, parentID *uuid.UUID) *entity.Folder {
	return entity.ReconstructFolder(uuid.New(), d.workspace.ID, valueobject.ReconstructFolderName(name), parentID, entity.Attribution{}, time.Now())
}

func (d *testDeps) newFile(name string, folderID *uuid.UUID) *entity.File {
	return entity.NewFileWithID(uuid.New(), d.workspace.ID, folderID, valueobject.ReconstructFileName(name), valueobject.ReconstructMimeType("text/plain"), 1024, entity.Attribution{})
}
