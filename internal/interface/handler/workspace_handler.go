package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/linkdrop/internal/interface/dto/response"
	"github.com/Hiro-mackay/linkdrop/internal/interface/presenter"
	storagecmd "github.com/Hiro-mackay/linkdrop/internal/usecase/storage/command"
)

// WorkspaceHandler はワークスペースとアップロードリンクのHTTPハンドラーです
type WorkspaceHandler struct {
	provisionWorkspaceCommand *storagecmd.ProvisionWorkspaceCommand
	detachLinkCommand         *storagecmd.DetachLinkCommand
}

// NewWorkspaceHandler は新しいWorkspaceHandlerを作成します
func NewWorkspaceHandler(
	provisionWorkspaceCommand *storagecmd.ProvisionWorkspaceCommand,
	detachLinkCommand *storagecmd.DetachLinkCommand,
) *WorkspaceHandler {
	return &WorkspaceHandler{
		provisionWorkspaceCommand: provisionWorkspaceCommand,
		detachLinkCommand:         detachLinkCommand,
	}
}

// ProvisionWorkspace は認証ユーザーのワークスペースを用意します。既にあればそれを返します
// POST /api/v1/workspace
func (h *WorkspaceHandler) ProvisionWorkspace(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	output, err := h.provisionWorkspaceCommand.Execute(c.Request().Context(), storagecmd.ProvisionWorkspaceInput{
		UserID: userID,
	})
	if err != nil {
		return err
	}

	body := response.ToWorkspaceResponse(output.Workspace, output.Created)
	if output.Created {
		return presenter.Created(c, body)
	}
	return presenter.OK(c, body)
}

// DetachLink は削除されたアップロードリンクへの参照を外します
// DELETE /api/v1/links/:id
func (h *WorkspaceHandler) DetachLink(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	linkID, err := pathID(c, "id", "link")
	if err != nil {
		return err
	}

	output, err := h.detachLinkCommand.Execute(c.Request().Context(), storagecmd.DetachLinkInput{
		LinkID: linkID,
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.LinkDetachResponse{
		FoldersDetached: output.FoldersDetached,
		FilesDetached:   output.FilesDetached,
	})
}
