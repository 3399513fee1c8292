package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

// OwnershipService は呼び出し元ワークスペースによるリソース所有を確認します。
// 不在と他者所有はどちらもNOT_FOUNDとして返し、区別しません。
type OwnershipService interface {
	// ResolveWorkspace はユーザーのワークスペースを解決します
	ResolveWorkspace(ctx context.Context, userID uuid.UUID) (*entity.Workspace, error)

	// VerifyFolder はフォルダがワークスペースに属することを確認します
	VerifyFolder(ctx context.Context, folderID, workspaceID uuid.UUID) (*entity.Folder, error)

	// VerifyFile はファイルがワークスペースに属することを確認します
	VerifyFile(ctx context.Context, fileID, workspaceID uuid.UUID) (*entity.File, error)

	// VerifyFiles は全ファイルの所有を一括確認します。1件でも欠ければ全体を拒否します
	VerifyFiles(ctx context.Context, fileIDs []uuid.UUID, workspaceID uuid.UUID) ([]*entity.File, error)

	// VerifyFolders は全フォルダの所有を一括確認します。1件でも欠ければ全体を拒否します
	VerifyFolders(ctx context.Context, folderIDs []uuid.UUID, workspaceID uuid.UUID) ([]*entity.Folder, error)
}

type ownershipServiceImpl struct {
	workspaceRepo repository.WorkspaceRepository
	folderRepo    repository.FolderRepository
	fileRepo      repository.FileRepository
}

// NewOwnershipService は新しいOwnershipServiceを作成します
func NewOwnershipService(
	workspaceRepo repository.WorkspaceRepository,
	folderRepo repository.FolderRepository,
	fileRepo repository.FileRepository,
) OwnershipService {
	return &ownershipServiceImpl{
		workspaceRepo: workspaceRepo,
		folderRepo:    folderRepo,
		fileRepo:      fileRepo,
	}
}

func (s *ownershipServiceImpl) ResolveWorkspace(ctx context.Context, userID uuid.UUID) (*entity.Workspace, error) {
	workspace, err := s.workspaceRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, notFoundOrInternal("workspace", err)
	}
	return workspace, nil
}

func (s *ownershipServiceImpl) VerifyFolder(ctx context.Context, folderID, workspaceID uuid.UUID) (*entity.Folder, error) {
	folder, err := s.folderRepo.FindByID(ctx, folderID)
	if err != nil {
		return nil, notFoundOrInternal("folder", err)
	}
	if !folder.BelongsTo(workspaceID) {
		return nil, apperror.NewNotFoundError("folder")
	}
	return folder, nil
}

func (s *ownershipServiceImpl) VerifyFile(ctx context.Context, fileID, workspaceID uuid.UUID) (*entity.File, error) {
	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		return nil, notFoundOrInternal("file", err)
	}
	if !file.BelongsTo(workspaceID) {
		return nil, apperror.NewNotFoundError("file")
	}
	return file, nil
}

func (s *ownershipServiceImpl) VerifyFiles(ctx context.Context, fileIDs []uuid.UUID, workspaceID uuid.UUID) ([]*entity.File, error) {
	ids := uniqueIDs(fileIDs)
	if len(ids) == 0 {
		return nil, nil
	}

	files, err := s.fileRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	byID := make(map[uuid.UUID]*entity.File, len(files))
	for _, f := range files {
		if f.BelongsTo(workspaceID) {
			byID[f.ID] = f
		}
	}

	result := make([]*entity.File, 0, len(ids))
	for _, id := range ids {
		f, ok := byID[id]
		if !ok {
			return nil, apperror.NewNotFoundError("file")
		}
		result = append(result, f)
	}
	return result, nil
}

func (s *ownershipServiceImpl) VerifyFolders(ctx context.Context, folderIDs []uuid.UUID, workspaceID uuid.UUID) ([]*entity.Folder, error) {
	ids := uniqueIDs(folderIDs)
	if len(ids) == 0 {
		return nil, nil
	}

	folders, err := s.folderRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	byID := make(map[uuid.UUID]*entity.Folder, len(folders))
	for _, f := range folders {
		if f.BelongsTo(workspaceID) {
			byID[f.ID] = f
		}
	}

	result := make([]*entity.Folder, 0, len(ids))
	for _, id := range ids {
		f, ok := byID[id]
		if !ok {
			return nil, apperror.NewNotFoundError("folder")
		}
		result = append(result, f)
	}
	return result, nil
}

// notFoundOrInternal はリポジトリエラーをNOT_FOUNDか内部エラーへ変換します
func notFoundOrInternal(resource string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NewNotFoundError(resource)
	}
	return apperror.NewInternalError(err)
}

// uniqueIDs は順序を保ったまま重複を除去します
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
