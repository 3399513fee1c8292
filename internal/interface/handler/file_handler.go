package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/linkdrop/internal/interface/dto/request"
	"github.com/Hiro-mackay/linkdrop/internal/interface/dto/response"
	"github.com/Hiro-mackay/linkdrop/internal/interface/presenter"
	storagecmd "github.com/Hiro-mackay/linkdrop/internal/usecase/storage/command"
	storageqry "github.com/Hiro-mackay/linkdrop/internal/usecase/storage/query"
)

// FileHandler はファイル関連のHTTPハンドラーです
type FileHandler struct {
	// Commands
	renameFileCommand      *storagecmd.RenameFileCommand
	moveFileCommand        *storagecmd.MoveFileCommand
	deleteFileCommand      *storagecmd.DeleteFileCommand
	bulkDeleteFilesCommand *storagecmd.BulkDeleteFilesCommand

	// Queries
	getDownloadURLQuery *storageqry.GetDownloadURLQuery
}

// NewFileHandler は新しいFileHandlerを作成します
func NewFileHandler(
	renameFileCommand *storagecmd.RenameFileCommand,
	moveFileCommand *storagecmd.MoveFileCommand,
	deleteFileCommand *storagecmd.DeleteFileCommand,
	bulkDeleteFilesCommand *storagecmd.BulkDeleteFilesCommand,
	getDownloadURLQuery *storageqry.GetDownloadURLQuery,
) *FileHandler {
	return &FileHandler{
		renameFileCommand:      renameFileCommand,
		moveFileCommand:        moveFileCommand,
		deleteFileCommand:      deleteFileCommand,
		bulkDeleteFilesCommand: bulkDeleteFilesCommand,
		getDownloadURLQuery:    getDownloadURLQuery,
	}
}

// GetDownloadURL はダウンロード用の署名付きURLを取得します
// GET /api/v1/files/:id/download
func (h *FileHandler) GetDownloadURL(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	fileID, err := pathID(c, "id", "file")
	if err != nil {
		return err
	}

	output, err := h.getDownloadURLQuery.Execute(c.Request().Context(), storageqry.GetDownloadURLInput{
		FileID: fileID,
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.DownloadURLResponse{
		FileID:      output.FileID.String(),
		FileName:    output.FileName,
		MimeType:    output.MimeType,
		Size:        output.Size,
		DownloadURL: output.DownloadURL,
		ExpiresAt:   output.ExpiresAt,
	})
}

// RenameFile はファイル名を変更します
// PATCH /api/v1/files/:id/rename
func (h *FileHandler) RenameFile(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	fileID, err := pathID(c, "id", "file")
	if err != nil {
		return err
	}

	var req request.RenameFileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.renameFileCommand.Execute(c.Request().Context(), storagecmd.RenameFileInput{
		FileID:  fileID,
		NewName: req.Name,
		UserID:  userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToFileResponse(output.File))
}

// MoveFile はファイルを移動します
// PATCH /api/v1/files/:id/move
func (h *FileHandler) MoveFile(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	fileID, err := pathID(c, "id", "file")
	if err != nil {
		return err
	}

	var req request.MoveFileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	newFolderID, err := optionalID(req.NewFolderID, "folder")
	if err != nil {
		return err
	}

	output, err := h.moveFileCommand.Execute(c.Request().Context(), storagecmd.MoveFileInput{
		FileID:      fileID,
		NewFolderID: newFolderID,
		UserID:      userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.FileMoveResponse{
		File:  response.ToFileResponse(output.File),
		Moved: output.Moved,
	})
}

// DeleteFile はファイルを削除します
// DELETE /api/v1/files/:id
func (h *FileHandler) DeleteFile(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	fileID, err := pathID(c, "id", "file")
	if err != nil {
		return err
	}

	if _, err := h.deleteFileCommand.Execute(c.Request().Context(), storagecmd.DeleteFileInput{
		FileID: fileID,
		UserID: userID,
	}); err != nil {
		return err
	}

	return presenter.NoContent(c)
}

// BulkDeleteFiles は複数ファイルを削除します。一部失敗時は207を返します
// POST /api/v1/files/bulk-delete
func (h *FileHandler) BulkDeleteFiles(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req request.BulkDeleteFilesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	fileIDs, err := parseIDs(req.FileIDs, "file")
	if err != nil {
		return err
	}

	output, err := h.bulkDeleteFilesCommand.Execute(c.Request().Context(), storagecmd.BulkDeleteFilesInput{
		FileIDs: fileIDs,
		UserID:  userID,
	})
	if err != nil {
		return err
	}

	data := response.BulkDeleteResponse{Deleted: response.ToIDList(output.Deleted)}
	if partial := output.PartialFailure(); partial != nil {
		return presenter.MultiStatus(c, data, partial)
	}
	return presenter.OK(c, data)
}
