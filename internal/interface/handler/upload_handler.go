package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/linkdrop/internal/interface/dto/request"
	"github.com/Hiro-mackay/linkdrop/internal/interface/dto/response"
	"github.com/Hiro-mackay/linkdrop/internal/interface/presenter"
	storagecmd "github.com/Hiro-mackay/linkdrop/internal/usecase/storage/command"
)

// UploadHandler はアップロード関連のHTTPハンドラーです。
// 本体はクライアントが署名付きURLへ直接PUTし、サーバーは前後の記帳だけを行います。
type UploadHandler struct {
	initiateUploadCommand *storagecmd.InitiateUploadCommand
	completeUploadCommand *storagecmd.CompleteUploadCommand
}

// NewUploadHandler は新しいUploadHandlerを作成します
func NewUploadHandler(
	initiateUploadCommand *storagecmd.InitiateUploadCommand,
	completeUploadCommand *storagecmd.CompleteUploadCommand,
) *UploadHandler {
	return &UploadHandler{
		initiateUploadCommand: initiateUploadCommand,
		completeUploadCommand: completeUploadCommand,
	}
}

// InitiateUpload はファイルIDを採番しアップロードURLを発行します
// POST /api/v1/files/upload
func (h *UploadHandler) InitiateUpload(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req request.InitiateUploadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	folderID, err := optionalID(req.FolderID, "folder")
	if err != nil {
		return err
	}

	output, err := h.initiateUploadCommand.Execute(c.Request().Context(), storagecmd.InitiateUploadInput{
		FolderID: folderID,
		FileName: req.FileName,
		MimeType: req.MimeType,
		Size:     req.Size,
		UserID:   userID,
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.InitiateUploadResponse{
		FileID:    output.FileID.String(),
		UploadURL: output.UploadURL,
		ExpiresAt: output.ExpiresAt,
	})
}

// CompleteUpload はストレージ上のオブジェクトを確認してファイルを記録します
// POST /api/v1/files/upload/complete
func (h *UploadHandler) CompleteUpload(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req request.CompleteUploadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	fileID, err := optionalID(&req.FileID, "file")
	if err != nil {
		return err
	}
	folderID, err := optionalID(req.FolderID, "folder")
	if err != nil {
		return err
	}
	attribution, err := toAttribution(req.Attribution)
	if err != nil {
		return err
	}

	output, err := h.completeUploadCommand.Execute(c.Request().Context(), storagecmd.CompleteUploadInput{
		FileID:      *fileID,
		FolderID:    folderID,
		FileName:    req.FileName,
		MimeType:    req.MimeType,
		Size:        req.Size,
		UserID:      userID,
		Attribution: attribution,
	})
	if err != nil {
		return err
	}

	return presenter.Created(c, response.ToFileResponse(output.File))
}
