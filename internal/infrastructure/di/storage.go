package di

import (
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/cache"
	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/database"
	infraRepo "github.com/Hiro-mackay/linkdrop/internal/infrastructure/repository"
	storagecmd "github.com/Hiro-mackay/linkdrop/internal/usecase/storage/command"
	storageqry "github.com/Hiro-mackay/linkdrop/internal/usecase/storage/query"
	"github.com/Hiro-mackay/linkdrop/pkg/config"
)

// StorageUseCases はStorage関連のUseCaseを保持します
type StorageUseCases struct {
	// Workspace Commands
	ProvisionWorkspace *storagecmd.ProvisionWorkspaceCommand
	DetachLink         *storagecmd.DetachLinkCommand

	// Folder Commands
	CreateFolder *storagecmd.CreateFolderCommand
	RenameFolder *storagecmd.RenameFolderCommand
	MoveFolder   *storagecmd.MoveFolderCommand
	DeleteFolder *storagecmd.DeleteFolderCommand

	// Folder Queries
	GetFolder          *storageqry.GetFolderQuery
	ListFolderContents *storageqry.ListFolderContentsQuery
	GetAncestors       *storageqry.GetAncestorsQuery

	// File Commands
	InitiateUpload   *storagecmd.InitiateUploadCommand
	CompleteUpload   *storagecmd.CompleteUploadCommand
	RenameFile       *storagecmd.RenameFileCommand
	MoveFile         *storagecmd.MoveFileCommand
	DeleteFile       *storagecmd.DeleteFileCommand
	BulkDeleteFiles  *storagecmd.BulkDeleteFilesCommand
	ReconcileOrphans *storagecmd.ReconcileOrphansCommand

	// File Queries
	GetDownloadURL *storageqry.GetDownloadURLQuery
	BuildArchive   *storageqry.BuildArchiveQuery
}

// StorageRepositories はStorage関連のリポジトリを保持します
type StorageRepositories struct {
	WorkspaceRepo repository.WorkspaceRepository
	FolderRepo    repository.FolderRepository
	FileRepo      repository.FileRepository
	OrphanRepo    repository.OrphanedRecordRepository
}

// NewStorageRepositories は新しいStorageRepositoriesを作成します。
// workspaceCacheがあればワークスペース解決をキャッシュ越しに行います。
func NewStorageRepositories(txManager *database.TxManager, workspaceCache *cache.Cache) *StorageRepositories {
	var workspaceRepo repository.WorkspaceRepository = infraRepo.NewWorkspaceRepository(txManager)
	if workspaceCache != nil {
		workspaceRepo = cache.NewCachedWorkspaceRepository(workspaceRepo, workspaceCache)
	}
	return &StorageRepositories{
		WorkspaceRepo: workspaceRepo,
		FolderRepo:    infraRepo.NewFolderRepository(txManager),
		FileRepo:      infraRepo.NewFileRepository(txManager),
		OrphanRepo:    infraRepo.NewOrphanedRecordRepository(txManager),
	}
}

// NewStorageUseCases は新しいStorageUseCasesを作成します
func NewStorageUseCases(
	repos *StorageRepositories,
	txManager repository.TransactionManager,
	storageService service.StorageService,
	fetcher service.ObjectFetcher,
	cfg *config.Config,
) *StorageUseCases {
	ownership := service.NewOwnershipService(repos.WorkspaceRepo, repos.FolderRepo, repos.FileRepo)
	hierarchy := service.NewFolderHierarchyService(repos.FolderRepo, repos.FileRepo, ownership, cfg.Hierarchy.MaxDepth)

	deletion := storagecmd.DeletionConfig{
		Concurrency:    cfg.Deletion.Concurrency,
		StorageTimeout: cfg.Deletion.StorageTimeout,
	}
	archive := storageqry.ArchiveConfig{
		URLExpiry:   cfg.Archive.URLExpiry,
		MaxFiles:    cfg.Archive.MaxFiles,
		Concurrency: cfg.Archive.Concurrency,
	}

	return &StorageUseCases{
		// Workspace Commands
		ProvisionWorkspace: storagecmd.NewProvisionWorkspaceCommand(repos.WorkspaceRepo),
		DetachLink:         storagecmd.NewDetachLinkCommand(repos.FolderRepo, repos.FileRepo, txManager, ownership),

		// Folder Commands
		CreateFolder: storagecmd.NewCreateFolderCommand(repos.FolderRepo, txManager, ownership, hierarchy),
		RenameFolder: storagecmd.NewRenameFolderCommand(repos.FolderRepo, txManager, ownership, hierarchy),
		MoveFolder:   storagecmd.NewMoveFolderCommand(repos.FolderRepo, txManager, ownership, hierarchy),
		DeleteFolder: storagecmd.NewDeleteFolderCommand(repos.FolderRepo, repos.FileRepo, txManager, ownership),

		// Folder Queries
		GetFolder:          storageqry.NewGetFolderQuery(ownership),
		ListFolderContents: storageqry.NewListFolderContentsQuery(repos.FolderRepo, repos.FileRepo, ownership),
		GetAncestors:       storageqry.NewGetAncestorsQuery(repos.FolderRepo, ownership),

		// File Commands
		InitiateUpload:   storagecmd.NewInitiateUploadCommand(storageService, ownership, hierarchy),
		CompleteUpload:   storagecmd.NewCompleteUploadCommand(repos.FileRepo, txManager, storageService, ownership, hierarchy),
		RenameFile:       storagecmd.NewRenameFileCommand(repos.FileRepo, txManager, ownership, hierarchy),
		MoveFile:         storagecmd.NewMoveFileCommand(repos.FileRepo, txManager, ownership, hierarchy),
		DeleteFile:       storagecmd.NewDeleteFileCommand(repos.FileRepo, repos.OrphanRepo, storageService, ownership, deletion),
		BulkDeleteFiles:  storagecmd.NewBulkDeleteFilesCommand(repos.FileRepo, repos.OrphanRepo, storageService, ownership, deletion),
		ReconcileOrphans: storagecmd.NewReconcileOrphansCommand(repos.FileRepo, repos.OrphanRepo),

		// File Queries
		GetDownloadURL: storageqry.NewGetDownloadURLQuery(storageService, ownership),
		BuildArchive:   storageqry.NewBuildArchiveQuery(repos.FolderRepo, repos.FileRepo, storageService, fetcher, ownership, archive),
	}
}
