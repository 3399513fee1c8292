package handler_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
	"github.com/Hiro-mackay/linkdrop/internal/interface/handler"
	"github.com/Hiro-mackay/linkdrop/internal/interface/middleware"
	"github.com/Hiro-mackay/linkdrop/internal/interface/validator"
	"github.com/Hiro-mackay/linkdrop/internal/testutil/mocks"
	storagecmd "github.com/Hiro-mackay/linkdrop/internal/usecase/storage/command"
	storageqry "github.com/Hiro-mackay/linkdrop/internal/usecase/storage/query"
)

type handlerDeps struct {
	workspaceRepo *mocks.MockWorkspaceRepository
	folderRepo    *mocks.MockFolderRepository
	fileRepo      *mocks.MockFileRepository
	orphanRepo    *mocks.MockOrphanedRecordRepository
	storage       *mocks.MockStorageService
	fetcher       *mocks.MockObjectFetcher
	txManager     *mocks.MockTransactionManager

	ownership service.OwnershipService
	hierarchy service.FolderHierarchyService

	userID    uuid.UUID
	workspace *entity.Workspace
}

func newHandlerDeps(t *testing.T) *handlerDeps {
	t.Helper()
	d := &handlerDeps{
		workspaceRepo: mocks.NewMockWorkspaceRepository(t),
		folderRepo:    mocks.NewMockFolderRepository(t),
		fileRepo:      mocks.NewMockFileRepository(t),
		orphanRepo:    mocks.NewMockOrphanedRecordRepository(t),
		storage:       mocks.NewMockStorageService(t),
		fetcher:       mocks.NewMockObjectFetcher(t),
		txManager:     mocks.NewMockTransactionManager(t),
		userID:        uuid.New(),
	}
	d.workspace = entity.ReconstructWorkspace(uuid.New(), d.userID, time.Now())
	d.ownership = service.NewOwnershipService(d.workspaceRepo, d.folderRepo, d.fileRepo)
	d.hierarchy = service.NewFolderHierarchyService(d.folderRepo, d.fileRepo, d.ownership, 0)
	return d
}

func (d *handlerDeps) expectWorkspace() {
	d.workspaceRepo.On("FindByOwner", mock.Anything, d.userID).Return(d.workspace, nil)
}

func (d *handlerDeps) newFile(name string) *entity.File {
	return entity.NewFileWithID(uuid.New(), d.workspace.ID, nil, valueobject.ReconstructFileName(name), valueobject.ReconstructMimeType("text/plain"), 5, entity.Attribution{})
}

func (d *handlerDeps) newFolder(name string) *entity.Folder {
	return entity.ReconstructFolder(uuid.New(), d.workspace.ID, valueobject.ReconstructFolderName(name), nil, entity.Attribution{}, time.Now())
}

// newEcho は認証済みユーザーを注入するテスト用のEchoを返します
func newEcho(userID uuid.UUID) *echo.Echo {
	e := echo.New()
	e.Validator = validator.NewCustomValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID != uuid.Nil {
				middleware.SetUserID(c, userID.String())
			}
			return next(c)
		}
	})
	return e
}

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (d *handlerDeps) fileHandler() *handler.FileHandler {
	cfg := storagecmd.DefaultDeletionConfig()
	return handler.NewFileHandler(
		storagecmd.NewRenameFileCommand(d.fileRepo, d.txManager, d.ownership, d.hierarchy),
		storagecmd.NewMoveFileCommand(d.fileRepo, d.txManager, d.ownership, d.hierarchy),
		storagecmd.NewDeleteFileCommand(d.fileRepo, d.orphanRepo, d.storage, d.ownership, cfg),
		storagecmd.NewBulkDeleteFilesCommand(d.fileRepo, d.orphanRepo, d.storage, d.ownership, cfg),
		storageqry.NewGetDownloadURLQuery(d.storage, d.ownership),
	)
}

func TestFileHandler_BulkDeleteFiles_PartialFailure_Returns207(t *testing.T) {
	deps := newHandlerDeps(t)
	a := deps.newFile("a.txt")
	b := deps.newFile("b.txt")

	deps.expectWorkspace()
	deps.fileRepo.On("FindByIDs", mock.Anything, []uuid.UUID{a.ID, b.ID}).Return([]*entity.File{a, b}, nil)
	deps.storage.On("DeleteObject", mock.Anything, a.StorageKey.String()).Return(nil)
	deps.storage.On("DeleteObject", mock.Anything, b.StorageKey.String()).Return(errors.New("storage: timeout"))
	deps.fileRepo.On("BulkDelete", mock.Anything, []uuid.UUID{a.ID}).Return(nil)

	e := newEcho(deps.userID)
	e.POST("/files/bulk-delete", deps.fileHandler().BulkDeleteFiles)

	rec := serve(e, http.MethodPost, "/files/bulk-delete", `{"fileIds":["`+a.ID.String()+`","`+b.ID.String()+`"]}`)

	assert.Equal(t, http.StatusMultiStatus, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, []any{a.ID.String()}, body["data"].(map[string]any)["deleted"])
	partial := body["meta"].(map[string]any)["error"].(map[string]any)
	assert.Equal(t, "PARTIAL_BULK_FAILURE", partial["code"])
}

func TestFileHandler_BulkDeleteFiles_InvalidID_Returns400(t *testing.T) {
	deps := newHandlerDeps(t)

	e := newEcho(deps.userID)
	e.POST("/files/bulk-delete", deps.fileHandler().BulkDeleteFiles)

	rec := serve(e, http.MethodPost, "/files/bulk-delete", `{"fileIds":["not-a-uuid"]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	deps.fileRepo.AssertNumberOfCalls(t, "FindByIDs", 0)
}

func TestFileHandler_DeleteFile_Unauthenticated_Returns401(t *testing.T) {
	deps := newHandlerDeps(t)

	e := newEcho(uuid.Nil)
	e.DELETE("/files/:id", deps.fileHandler().DeleteFile)

	rec := serve(e, http.MethodDelete, "/files/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFolderHandler_MoveFolder_RootToRoot_ReportsNotMoved(t *testing.T) {
	deps := newHandlerDeps(t)
	folder := deps.newFolder("Projects")

	deps.expectWorkspace()
	deps.folderRepo.On("FindByID", mock.Anything, folder.ID).Return(folder, nil)

	h := handler.NewFolderHandler(
		nil, nil,
		storagecmd.NewMoveFolderCommand(deps.folderRepo, deps.txManager, deps.ownership, deps.hierarchy),
		nil, nil, nil, nil,
	)
	e := newEcho(deps.userID)
	e.PATCH("/folders/:id/move", h.MoveFolder)

	rec := serve(e, http.MethodPatch, "/folders/"+folder.ID.String()+"/move", `{"newParentId":null}`)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, false, data["moved"])
	deps.folderRepo.AssertNumberOfCalls(t, "Update", 0)
}

func TestFolderHandler_GetFolder_OtherWorkspace_Returns404(t *testing.T) {
	deps := newHandlerDeps(t)
	foreign := entity.ReconstructFolder(uuid.New(), uuid.New(), valueobject.ReconstructFolderName("theirs"), nil, entity.Attribution{}, time.Now())

	deps.expectWorkspace()
	deps.folderRepo.On("FindByID", mock.Anything, foreign.ID).Return(foreign, nil)

	h := handler.NewFolderHandler(nil, nil, nil, nil, storageqry.NewGetFolderQuery(deps.ownership), nil, nil)
	e := newEcho(deps.userID)
	e.GET("/folders/:id", h.GetFolder)

	rec := serve(e, http.MethodGet, "/folders/"+foreign.ID.String(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFolderHandler_CreateFolder_InvalidName_Returns400(t *testing.T) {
	deps := newHandlerDeps(t)

	h := handler.NewFolderHandler(
		storagecmd.NewCreateFolderCommand(deps.folderRepo, deps.txManager, deps.ownership, deps.hierarchy),
		nil, nil, nil, nil, nil, nil,
	)
	e := newEcho(deps.userID)
	e.POST("/folders", h.CreateFolder)

	rec := serve(e, http.MethodPost, "/folders", `{"name":"a/b"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	deps.workspaceRepo.AssertNumberOfCalls(t, "FindByOwner", 0)
}

func (d *handlerDeps) archiveHandler() *handler.ArchiveHandler {
	return handler.NewArchiveHandler(storageqry.NewBuildArchiveQuery(
		d.folderRepo, d.fileRepo, d.storage, d.fetcher, d.ownership, storageqry.ArchiveConfig{},
	))
}

func TestArchiveHandler_DownloadArchive_StreamsZip(t *testing.T) {
	deps := newHandlerDeps(t)
	file := deps.newFile("notes.txt")

	deps.expectWorkspace()
	deps.fileRepo.On("FindByIDs", mock.Anything, []uuid.UUID{file.ID}).Return([]*entity.File{file}, nil)
	deps.storage.On("ObjectExists", mock.Anything, file.StorageKey.String()).Return(true, nil)
	deps.storage.On("GenerateGetURL", mock.Anything, file.StorageKey.String(), mock.Anything).
		Return(&service.PresignedURL{URL: "http://storage.local/notes", ExpiresAt: time.Now().Add(time.Hour)}, nil)
	deps.fetcher.On("Fetch", mock.Anything, "http://storage.local/notes").
		Return(io.NopCloser(strings.NewReader("hello")), nil)

	e := newEcho(deps.userID)
	e.POST("/archives", deps.archiveHandler().DownloadArchive)

	rec := serve(e, http.MethodPost, "/archives", `{"fileIds":["`+file.ID.String()+`"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "notes.txt", zr.File[0].Name)
}

func TestArchiveHandler_DownloadArchive_MissingObject_ReturnsJSONError(t *testing.T) {
	deps := newHandlerDeps(t)
	file := deps.newFile("gone.txt")

	deps.expectWorkspace()
	deps.fileRepo.On("FindByIDs", mock.Anything, []uuid.UUID{file.ID}).Return([]*entity.File{file}, nil)
	deps.storage.On("ObjectExists", mock.Anything, file.StorageKey.String()).Return(false, nil)

	e := newEcho(deps.userID)
	e.POST("/archives", deps.archiveHandler().DownloadArchive)

	rec := serve(e, http.MethodPost, "/archives", `{"fileIds":["`+file.ID.String()+`"]}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
	deps.fetcher.AssertNumberOfCalls(t, "Fetch", 0)
}

func TestArchiveHandler_DownloadArchive_FetchFailsMidStream_AbortsConnection(t *testing.T) {
	deps := newHandlerDeps(t)
	first := deps.newFile("a.txt")
	second := deps.newFile("b.txt")
	ids := []uuid.UUID{first.ID, second.ID}

	deps.expectWorkspace()
	deps.fileRepo.On("FindByIDs", mock.Anything, ids).Return([]*entity.File{first, second}, nil)
	for _, f := range []*entity.File{first, second} {
		deps.storage.On("ObjectExists", mock.Anything, f.StorageKey.String()).Return(true, nil)
		deps.storage.On("GenerateGetURL", mock.Anything, f.StorageKey.String(), mock.Anything).
			Return(&service.PresignedURL{URL: "http://storage.local/" + f.Name.Value(), ExpiresAt: time.Now().Add(time.Hour)}, nil)
	}
	deps.fetcher.On("Fetch", mock.Anything, "http://storage.local/a.txt").
		Return(io.NopCloser(strings.NewReader("first")), nil)
	deps.fetcher.On("Fetch", mock.Anything, "http://storage.local/b.txt").
		Return(nil, errors.New("object removed"))

	e := newEcho(deps.userID)
	e.Use(middleware.Recover())
	e.POST("/archives", deps.archiveHandler().DownloadArchive)

	body := `{"fileIds":["` + first.ID.String() + `","` + second.ID.String() + `"]}`
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		serve(e, http.MethodPost, "/archives", body)
	})
}

func TestWorkspaceHandler_ProvisionWorkspace_Existing_Returns200(t *testing.T) {
	deps := newHandlerDeps(t)
	deps.expectWorkspace()

	h := handler.NewWorkspaceHandler(storagecmd.NewProvisionWorkspaceCommand(deps.workspaceRepo), nil)
	e := newEcho(deps.userID)
	e.POST("/workspace", h.ProvisionWorkspace)

	rec := serve(e, http.MethodPost, "/workspace", "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, deps.workspace.ID.String(), data["id"])
	assert.Equal(t, false, data["created"])
}

func TestHealthHandler_Ready_OptionalFailureStaysReady(t *testing.T) {
	h := handler.NewHealthHandler()
	h.RegisterChecker("database", handler.HealthCheckFunc(func(context.Context) error { return nil }))
	h.RegisterOptionalChecker("redis", handler.HealthCheckFunc(func(context.Context) error { return errors.New("redis: down") }))

	e := echo.New()
	e.GET("/ready", h.Ready)
	rec := serve(e, http.MethodGet, "/ready", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	services := decode(t, rec)["services"].(map[string]any)
	assert.Equal(t, "unhealthy", services["redis"].(map[string]any)["status"])
	assert.Len(t, h.Checkers(), 2)
}

func TestHealthHandler_Ready_RequiredFailure_Returns503(t *testing.T) {
	h := handler.NewHealthHandler()
	h.RegisterChecker("database", handler.HealthCheckFunc(func(context.Context) error { return errors.New("db: refused") }))

	e := echo.New()
	e.GET("/ready", h.Ready)
	rec := serve(e, http.MethodGet, "/ready", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
