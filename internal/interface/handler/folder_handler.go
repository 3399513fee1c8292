package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/linkdrop/internal/interface/dto/request"
	"github.com/Hiro-mackay/linkdrop/internal/interface/dto/response"
	"github.com/Hiro-mackay/linkdrop/internal/interface/presenter"
	storagecmd "github.com/Hiro-mackay/linkdrop/internal/usecase/storage/command"
	storageqry "github.com/Hiro-mackay/linkdrop/internal/usecase/storage/query"
)

// FolderHandler はフォルダ関連のHTTPハンドラーです
type FolderHandler struct {
	// Commands
	createFolderCommand *storagecmd.CreateFolderCommand
	renameFolderCommand *storagecmd.RenameFolderCommand
	moveFolderCommand   *storagecmd.MoveFolderCommand
	deleteFolderCommand *storagecmd.DeleteFolderCommand

	// Queries
	getFolderQuery          *storageqry.GetFolderQuery
	listFolderContentsQuery *storageqry.ListFolderContentsQuery
	getAncestorsQuery       *storageqry.GetAncestorsQuery
}

// NewFolderHandler は新しいFolderHandlerを作成します
func NewFolderHandler(
	createFolderCommand *storagecmd.CreateFolderCommand,
	renameFolderCommand *storagecmd.RenameFolderCommand,
	moveFolderCommand *storagecmd.MoveFolderCommand,
	deleteFolderCommand *storagecmd.DeleteFolderCommand,
	getFolderQuery *storageqry.GetFolderQuery,
	listFolderContentsQuery *storageqry.ListFolderContentsQuery,
	getAncestorsQuery *storageqry.GetAncestorsQuery,
) *FolderHandler {
	return &FolderHandler{
		createFolderCommand:     createFolderCommand,
		renameFolderCommand:     renameFolderCommand,
		moveFolderCommand:       moveFolderCommand,
		deleteFolderCommand:     deleteFolderCommand,
		getFolderQuery:          getFolderQuery,
		listFolderContentsQuery: listFolderContentsQuery,
		getAncestorsQuery:       getAncestorsQuery,
	}
}

// CreateFolder はフォルダを作成します
// POST /api/v1/folders
func (h *FolderHandler) CreateFolder(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req request.CreateFolderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	parentID, err := optionalID(req.ParentID, "parent")
	if err != nil {
		return err
	}
	attribution, err := toAttribution(req.Attribution)
	if err != nil {
		return err
	}

	output, err := h.createFolderCommand.Execute(c.Request().Context(), storagecmd.CreateFolderInput{
		Name:        req.Name,
		ParentID:    parentID,
		UserID:      userID,
		Attribution: attribution,
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.ToFolderResponse(output.Folder))
}

// GetFolder はフォルダを取得します
// GET /api/v1/folders/:id
func (h *FolderHandler) GetFolder(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	folderID, err := pathID(c, "id", "folder")
	if err != nil {
		return err
	}

	output, err := h.getFolderQuery.Execute(c.Request().Context(), storageqry.GetFolderInput{
		FolderID: folderID,
		UserID:   userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToFolderResponse(output.Folder))
}

// ListRootContents はルート直下の内容を取得します
// GET /api/v1/folders/root/contents
func (h *FolderHandler) ListRootContents(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	return h.listContents(c, storageqry.ListFolderContentsInput{UserID: userID})
}

// ListFolderContents はフォルダ直下の内容を取得します
// GET /api/v1/folders/:id/contents
func (h *FolderHandler) ListFolderContents(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	folderID, err := pathID(c, "id", "folder")
	if err != nil {
		return err
	}
	return h.listContents(c, storageqry.ListFolderContentsInput{FolderID: &folderID, UserID: userID})
}

func (h *FolderHandler) listContents(c echo.Context, input storageqry.ListFolderContentsInput) error {
	output, err := h.listFolderContentsQuery.Execute(c.Request().Context(), input)
	if err != nil {
		return err
	}

	resp := response.FolderContentsResponse{
		Folders: response.ToFolderListResponse(output.Folders),
		Files:   response.ToFileListResponse(output.Files),
	}
	if output.Folder != nil {
		folder := response.ToFolderResponse(output.Folder)
		resp.Folder = &folder
	}

	return presenter.OK(c, resp)
}

// GetAncestors はパンくずリストを取得します
// GET /api/v1/folders/:id/ancestors
func (h *FolderHandler) GetAncestors(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	folderID, err := pathID(c, "id", "folder")
	if err != nil {
		return err
	}

	output, err := h.getAncestorsQuery.Execute(c.Request().Context(), storageqry.GetAncestorsInput{
		FolderID: folderID,
		UserID:   userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToBreadcrumbResponse(output.Chain, output.Depth))
}

// RenameFolder はフォルダ名を変更します
// PATCH /api/v1/folders/:id/rename
func (h *FolderHandler) RenameFolder(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	folderID, err := pathID(c, "id", "folder")
	if err != nil {
		return err
	}

	var req request.RenameFolderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.renameFolderCommand.Execute(c.Request().Context(), storagecmd.RenameFolderInput{
		FolderID: folderID,
		NewName:  req.Name,
		UserID:   userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToFolderResponse(output.Folder))
}

// MoveFolder はフォルダを移動します。newParentIdがnullならルートへ移動します
// PATCH /api/v1/folders/:id/move
func (h *FolderHandler) MoveFolder(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	folderID, err := pathID(c, "id", "folder")
	if err != nil {
		return err
	}

	var req request.MoveFolderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	newParentID, err := optionalID(req.NewParentID, "parent")
	if err != nil {
		return err
	}

	output, err := h.moveFolderCommand.Execute(c.Request().Context(), storagecmd.MoveFolderInput{
		FolderID:    folderID,
		NewParentID: newParentID,
		UserID:      userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.FolderMoveResponse{
		Folder: response.ToFolderResponse(output.Folder),
		Moved:  output.Moved,
	})
}

// DeleteFolder はフォルダとその子孫を削除します。配下のファイルは呼び出し元に返します
// DELETE /api/v1/folders/:id
func (h *FolderHandler) DeleteFolder(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	folderID, err := pathID(c, "id", "folder")
	if err != nil {
		return err
	}

	output, err := h.deleteFolderCommand.Execute(c.Request().Context(), storagecmd.DeleteFolderInput{
		FolderID: folderID,
		UserID:   userID,
	})
	if err != nil {
		return err
	}

	return presenter.Deleted(c, response.FolderDeleteResponse{
		DeletedFolderIDs: response.ToIDList(output.DeletedFolderIDs),
		DetachedFiles:    response.ToFileListResponse(output.DetachedFiles),
	}, "folder deleted")
}
