package command_test

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

const testMaxDepth = 20

// noID は mock の引数比較で型付き nil として使います
var noID *uuid.UUID

type testDeps struct {
	workspaceRepo *mocks.MockWorkspaceRepository
	folderRepo    *mocks.MockFolderRepository
	fileRepo      *mocks.MockFileRepository
	orphanRepo    *mocks.MockOrphanedRecordRepository
	storage       *mocks.MockStorageService
	txManager     *mocks.MockTransactionManager

	ownership service.OwnershipService
	hierarchy service.FolderHierarchyService

	userID    uuid.UUID
	workspace *entity.Workspace
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	d := &testDeps{
		workspaceRepo: mocks.NewMockWorkspaceRepository(t),
		folderRepo:    mocks.NewMockFolderRepository(t),
		fileRepo:      mocks.NewMockFileRepository(t),
		orphanRepo:    mocks.NewMockOrphanedRecordRepository(t),
		storage:       mocks.NewMockStorageService(t),
		txManager:     mocks.NewMockTransactionManager(t),
		userID:        uuid.New(),
	}
	d.workspace = entity.ReconstructWorkspace(uuid.New(), d.userID, time.Now())
	d.ownership = service.NewOwnershipService(d.workspaceRepo, d.folderRepo, d.fileRepo)
	d.hierarchy = service.NewFolderHierarchyService(d.folderRepo, d.fileRepo, d.ownership, testMaxDepth)
	return d
}

func (d *testDeps) expectWorkspace(ctx context.Context) {
	d.workspaceRepo.On("FindByOwner", ctx, d.userID).Return(d.workspace, nil)
}

func (d *testDeps) expectFolder(ctx context.Context, folder *entity.Folder) {
	d.folderRepo.On("FindByID", ctx, folder.ID).Return(folder, nil)
}

func (d *testDeps) expectFile(ctx context.Context, file *entity.File) {
	d.fileRepo.On("FindByID", ctx, file.ID).Return(file, nil)
}

func (d *testDeps) newFolder(name string, parentID *uuid.UUID) *entity.Folder {
	return entity.ReconstructFolder(uuid.New(), d.workspace.ID, valueobject.ReconstructFolderName(name), parentID, entity.Attribution{}, time.Now())
}

func (d *testDeps) newFile(name string, folderID *uuid.UUID) *entity.File {
	fileName, err := valueobject.NewFileName(name)
	if err != nil {
		panic(err)
	}
	return entity.NewFileWithID(uuid.New(), d.workspace.ID, folderID, fileName, valueobject.ReconstructMimeType("application/pdf"), 1024, entity.Attribution{})
}

// foreignFolder は別ワークスペースに属するフォルダを返します
func foreignFolder(name string) *entity.Folder {
	return entity.ReconstructFolder(uuid.New(), uuid.New(), valueobject.ReconstructFolderName(name), nil, entity.Attribution{}, time.Now())
}

// chainOf は長さnの祖先チェーン(ルートから自身まで)を作ります
func (d *testDeps) chainOf(n int, last *entity.Folder) []*entity.Folder {
	chain := make([]*entity.Folder, 0, n)
	var parentID *uuid.UUID
	for i := 0; i < n-1; i++ {
		f := d.newFolder("level", parentID)
		chain = append(chain, f)
		parentID = &f.ID
	}
	return append(chain, last)
}

func idPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
