package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/entity"
	"github.com/Hiro-mackay/linkdrop/internal/domain/repository"
	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
	"github.com/Hiro-mackay/linkdrop/pkg/apperror"
)

// MoveDecision は移動検証の結果です
type MoveDecision int

const (
	// MoveApply は検証を通過し、親ポインタの更新が必要なことを表します
	MoveApply MoveDecision = iota
	// MoveNoop は移動先が現在の親と同じで、更新不要なことを表します
	MoveNoop
)

// FolderHierarchyService は構造変更の前に階層の不変条件を検証するドメインサービスです。
// 検証はトランザクション外で行い、最終的な競合はDBの一意制約で検出します。
type FolderHierarchyService interface {
	// MaxDepth は深さの上限を返します
	MaxDepth() int

	// ValidateFolderCreate はフォルダ作成先の所有・深さ・名前を検証します
	ValidateFolderCreate(ctx context.Context, workspaceID uuid.UUID, name valueobject.FolderName, parentID *uuid.UUID) error

	// ValidateFolderMove はフォルダ移動を検証します
	ValidateFolderMove(ctx context.Context, folder *entity.Folder, newParentID *uuid.UUID) (MoveDecision, error)

	// ValidateFolderRename はフォルダ名変更を検証します
	ValidateFolderRename(ctx context.Context, folder *entity.Folder, newName valueobject.FolderName) error

	// ValidateFileMove はファイル移動を検証します(循環・深さの検査は行いません)
	ValidateFileMove(ctx context.Context, file *entity.File, newFolderID *uuid.UUID) (MoveDecision, error)

	// ValidateFilePlacement はファイルの配置先と名前を検証します
	ValidateFilePlacement(ctx context.Context, workspaceID uuid.UUID, name valueobject.FileName, folderID *uuid.UUID, excludeID *uuid.UUID) error
}

type folderHierarchyServiceImpl struct {
	folderRepo repository.FolderRepository
	fileRepo   repository.FileRepository
	ownership  OwnershipService
	maxDepth   int
}

// NewFolderHierarchyService は新しいFolderHierarchyServiceを作成します
func NewFolderHierarchyService(
	folderRepo repository.FolderRepository,
	fileRepo repository.FileRepository,
	ownership OwnershipService,
	maxDepth int,
) FolderHierarchyService {
	if maxDepth < 1 {
		maxDepth = entity.DefaultMaxFolderDepth
	}
	return &folderHierarchyServiceImpl{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		ownership:  ownership,
		maxDepth:   maxDepth,
	}
}

func (s *folderHierarchyServiceImpl) MaxDepth() int {
	return s.maxDepth
}

func (s *folderHierarchyServiceImpl) ValidateFolderCreate(
	ctx context.Context,
	workspaceID uuid.UUID,
	name valueobject.FolderName,
	parentID *uuid.UUID,
) error {
	if parentID != nil {
		if _, err := s.ownership.VerifyFolder(ctx, *parentID, workspaceID); err != nil {
			return err
		}

		parentDepth, err := s.folderRepo.GetDepth(ctx, *parentID)
		if err != nil {
			return apperror.NewInternalError(err)
		}
		if err := s.checkDepth(parentDepth+1, 0); err != nil {
			return err
		}
	}

	return s.checkFolderName(ctx, workspaceID, name, parentID, nil)
}

func (s *folderHierarchyServiceImpl) ValidateFolderMove(
	ctx context.Context,
	folder *entity.Folder,
	newParentID *uuid.UUID,
) (MoveDecision, error) {
	if folder.IsInParent(newParentID) {
		return MoveNoop, nil
	}

	if newParentID != nil && *newParentID == folder.ID {
		return MoveApply, apperror.NewCircularReferenceError()
	}

	newDepth := 0
	if newParentID != nil {
		if _, err := s.ownership.VerifyFolder(ctx, *newParentID, folder.WorkspaceID); err != nil {
			return MoveApply, err
		}

		chain, err := s.folderRepo.GetAncestorChain(ctx, *newParentID)
		if err != nil {
			return MoveApply, apperror.NewInternalError(err)
		}
		for _, ancestor := range chain {
			if ancestor.ID == folder.ID {
				return MoveApply, apperror.NewCircularReferenceError()
			}
		}
		newDepth = len(chain)
	}

	height, err := s.folderRepo.GetSubtreeHeight(ctx, folder.ID)
	if err != nil {
		return MoveApply, apperror.NewInternalError(err)
	}
	if err := s.checkDepth(newDepth, height); err != nil {
		return MoveApply, err
	}

	if err := s.checkFolderName(ctx, folder.WorkspaceID, folder.Name, newParentID, &folder.ID); err != nil {
		return MoveApply, err
	}
	return MoveApply, nil
}

func (s *folderHierarchyServiceImpl) ValidateFolderRename(
	ctx context.Context,
	folder *entity.Folder,
	newName valueobject.FolderName,
) error {
	return s.checkFolderName(ctx, folder.WorkspaceID, newName, folder.ParentID, &folder.ID)
}

func (s *folderHierarchyServiceImpl) ValidateFileMove(
	ctx context.Context,
	file *entity.File,
	newFolderID *uuid.UUID,
) (MoveDecision, error) {
	if file.IsInFolder(newFolderID) {
		return MoveNoop, nil
	}

	if err := s.ValidateFilePlacement(ctx, file.WorkspaceID, file.Name, newFolderID, &file.ID); err != nil {
		return MoveApply, err
	}
	return MoveApply, nil
}

func (s *folderHierarchyServiceImpl) ValidateFilePlacement(
	ctx context.Context,
	workspaceID uuid.UUID,
	name valueobject.FileName,
	folderID *uuid.UUID,
	excludeID *uuid.UUID,
) error {
	if folderID != nil {
		if _, err := s.ownership.VerifyFolder(ctx, *folderID, workspaceID); err != nil {
			return err
		}
	}

	available, err := s.fileRepo.IsNameAvailable(ctx, workspaceID, name, folderID, excludeID)
	if err != nil {
		return apperror.NewInternalError(err)
	}
	if !available {
		return apperror.NewNameCollisionError(name.Value())
	}
	return nil
}

// checkDepth は移動・作成後の最深部が上限未満であることを確認します
func (s *folderHierarchyServiceImpl) checkDepth(newDepth, subtreeHeight int) error {
	if newDepth+subtreeHeight >= s.maxDepth {
		return apperror.NewNestingDepthExceededError(s.maxDepth)
	}
	return nil
}

func (s *folderHierarchyServiceImpl) checkFolderName(
	ctx context.Context,
	workspaceID uuid.UUID,
	name valueobject.FolderName,
	parentID *uuid.UUID,
	excludeID *uuid.UUID,
) error {
	available, err := s.folderRepo.IsNameAvailable(ctx, workspaceID, name, parentID, excludeID)
	if err != nil {
		return apperror.NewInternalError(err)
	}
	if !available {
		return apperror.NewNameCollisionError(name.Value())
	}
	return nil
}
