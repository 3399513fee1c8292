//go:build integration

package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	domainrepo "github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/database"
	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/repository"
)

// 実行例: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/repository/...

type repoEnv struct {
	tx         *database.TxManager
	workspaces *repository.WorkspaceRepository
	folders    *repository.FolderRepository
	files      *repository.FileRepository
	orphans    *repository.OrphanedRecordRepository
	workspace  *entity.Workspace
}

func setupRepoEnv(t *testing.T) *repoEnv {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	client, err := database.NewPostgresClient(ctx, url, database.DefaultDBConfig())
	require.NoError(t, err)
	t.Cleanup(client.Close)
	require.NoError(t, client.Migrate(ctx))

	_, err = client.Pool().Exec(ctx, "TRUNCATE TABLE orphaned_file_records, files, folders, workspaces CASCADE")
	require.NoError(t, err)

	tx := database.NewTxManager(client.Pool())
	env := &repoEnv{
		tx:         tx,
		workspaces: repository.NewWorkspaceRepository(tx),
		folders:    repository.NewFolderRepository(tx),
		files:      repository.NewFileRepository(tx),
		orphans:    repository.NewOrphanedRecordRepository(tx),
		workspace:  entity.NewWorkspace(uuid.New()),
	}
	require.NoError(t, env.workspaces.Create(ctx, env.workspace))
	return env
}

func (e *repoEnv) mkdir(t *testing.T, name string, parentID *uuid.UUID) *entity.Folder {
	t.Helper()
	folder := entity.NewFolder(e.workspace.ID, valueobject.ReconstructFolderName(name), parentID, entity.Attribution{})
	require.NoError(t, e.folders.Create(context.Background(), folder))
	return folder
}

func (e *repoEnv) touch(t *testing.T, name string, folderID *uuid.UUID) *entity.File {
	t.Helper()
	file := entity.NewFileWithID(uuid.New(), e.workspace.ID, folderID, valueobject.ReconstructFileName(name), valueobject.ReconstructMimeType("text/plain"), 3, entity.Attribution{})
	require.NoError(t, e.files.Create(context.Background(), file))
	return file
}

func TestFolderRepository_HierarchyQueries(t *testing.T) {
	ctx := context.Background()
	env := setupRepoEnv(t)

	a := env.mkdir(t, "A", nil)
	b := env.mkdir(t, "B", &a.ID)
	c := env.mkdir(t, "C", &b.ID)

	chain, err := env.folders.GetAncestorChain(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, chain, 3)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, []uuid.UUID{chain[0].ID, chain[1].ID, chain[2].ID})

	depth, err := env.folders.GetDepth(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, depth)

	height, err := env.folders.GetSubtreeHeight(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, height)

	subtree, err := env.folders.FindSubtree(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, subtree, 3)
	assert.Equal(t, a.ID, subtree[0].ID)

	_, err = env.folders.GetDepth(ctx, uuid.New())
	assert.ErrorIs(t, err, domainrepo.ErrNotFound)
}

func TestFolderRepository_SiblingNames(t *testing.T) {
	ctx := context.Background()
	env := setupRepoEnv(t)

	docs := env.mkdir(t, "Docs", nil)

	available, err := env.folders.IsNameAvailable(ctx, env.workspace.ID, docs.Name, nil, nil)
	require.NoError(t, err)
	assert.False(t, available)

	available, err = env.folders.IsNameAvailable(ctx, env.workspace.ID, docs.Name, nil, &docs.ID)
	require.NoError(t, err)
	assert.True(t, available)

	dup := entity.NewFolder(env.workspace.ID, docs.Name, nil, entity.Attribution{})
	assert.ErrorIs(t, env.folders.Create(ctx, dup), domainrepo.ErrConflict)

	// 親が違えば同名でも作成できる
	env.mkdir(t, "Docs", &docs.ID)
}

func TestFileRepository_MoveAndDelete(t *testing.T) {
	ctx := context.Background()
	env := setupRepoEnv(t)

	dest := env.mkdir(t, "Inbox", nil)
	file := env.touch(t, "a.txt", nil)

	file.MoveTo(&dest.ID)
	require.NoError(t, env.files.Update(ctx, file))

	inFolder, err := env.files.FindByFolderID(ctx, env.workspace.ID, &dest.ID)
	require.NoError(t, err)
	require.Len(t, inFolder, 1)
	assert.Equal(t, file.StorageKey, inFolder[0].StorageKey)

	require.NoError(t, env.files.Delete(ctx, file.ID))
	assert.ErrorIs(t, env.files.Delete(ctx, file.ID), domainrepo.ErrNotFound)
}

func TestFileRepository_DetachLink_KeepsUploaderFields(t *testing.T) {
	ctx := context.Background()
	env := setupRepoEnv(t)

	linkID := uuid.New()
	email := "guest@example.com"
	file := entity.NewFileWithID(uuid.New(), env.workspace.ID, nil, valueobject.ReconstructFileName("upload.bin"),
		valueobject.ReconstructMimeType("application/octet-stream"), 10,
		entity.Attribution{LinkID: &linkID, UploaderEmail: &email})
	require.NoError(t, env.files.Create(ctx, file))

	n, err := env.files.DetachLink(ctx, env.workspace.ID, linkID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := env.files.FindByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Attribution.LinkID)
	require.NotNil(t, got.Attribution.UploaderEmail)
	assert.Equal(t, email, *got.Attribution.UploaderEmail)
}

func TestOrphanedRecordRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	env := setupRepoEnv(t)

	file := env.touch(t, "left.txt", nil)
	record := entity.NewOrphanedRecord(file, "row delete failed")
	require.NoError(t, env.orphans.Create(ctx, record))
	require.NoError(t, env.orphans.IncrementAttempts(ctx, record.ID))

	pending, err := env.orphans.FindUnresolved(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].Attempts)

	require.NoError(t, env.orphans.MarkResolved(ctx, record.ID))
	pending, err = env.orphans.FindUnresolved(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	env := setupRepoEnv(t)

	folder := entity.NewFolder(env.workspace.ID, valueobject.ReconstructFolderName("Temp"), nil, entity.Attribution{})
	err := env.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := env.folders.Create(ctx, folder); err != nil {
			return err
		}
		return domainrepo.ErrConflict
	})
	require.Error(t, err)

	_, err = env.folders.FindByID(ctx, folder.ID)
	assert.ErrorIs(t, err, domainrepo.ErrNotFound)
}
