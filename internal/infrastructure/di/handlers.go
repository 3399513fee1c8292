package di

import (
	"github.com/Hiro-mackay/linkdrop/internal/interface/handler"
)

// Handlers はアプリケーションのハンドラーを保持します
type Handlers struct {
	Health    *handler.HealthHandler
	Workspace *handler.WorkspaceHandler
	Folder    *handler.FolderHandler
	File      *handler.FileHandler
	Upload    *handler.UploadHandler
	Archive   *handler.ArchiveHandler
}

// NewHandlers はContainerから全てのハンドラーを初期化します
func NewHandlers(c *Container) *Handlers {
	h := NewHandlersForTest(c)

	// Health Handler
	h.Health = handler.NewHealthHandler()
	if c.PgClient != nil {
		h.Health.RegisterChecker("postgres", c.PgClient)
	}
	if c.MinIOClient != nil {
		h.Health.RegisterChecker("storage", c.MinIOClient)
	}
	if c.RedisClient != nil {
		h.Health.RegisterOptionalChecker("redis", c.RedisClient)
	}

	return h
}

// NewHandlersForTest はテスト用にハンドラーを初期化します（HealthHandlerなし）
func NewHandlersForTest(c *Container) *Handlers {
	uc := c.Storage
	return &Handlers{
		Workspace: handler.NewWorkspaceHandler(uc.ProvisionWorkspace, uc.DetachLink),
		Folder: handler.NewFolderHandler(
			uc.CreateFolder,
			uc.RenameFolder,
			uc.MoveFolder,
			uc.DeleteFolder,
			uc.GetFolder,
			uc.ListFolderContents,
			uc.GetAncestors,
		),
		File: handler.NewFileHandler(
			uc.RenameFile,
			uc.MoveFile,
			uc.DeleteFile,
			uc.BulkDeleteFiles,
			uc.GetDownloadURL,
		),
		Upload:  handler.NewUploadHandler(uc.InitiateUpload, uc.CompleteUpload),
		Archive: handler.NewArchiveHandler(uc.BuildArchive),
	}
}
