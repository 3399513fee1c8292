package handler

import (
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Hiro-mackay/linkdrop/internal/interface/dto/request"
	storageqry "github.com/Hiro-mackay/linkdrop/internal/usecase/storage/query"
	"github.com/Hiro-mackay/linkdrop/pkg/logger"
)

// ArchiveHandler はZIPダウンロードのHTTPハンドラーです
type ArchiveHandler struct {
	buildArchiveQuery *storageqry.BuildArchiveQuery
}

// NewArchiveHandler は新しいArchiveHandlerを作成します
func NewArchiveHandler(buildArchiveQuery *storageqry.BuildArchiveQuery) *ArchiveHandler {
	return &ArchiveHandler{buildArchiveQuery: buildArchiveQuery}
}

// DownloadArchive は選択したファイルとフォルダをZIPでストリーミングします。
// 計画段階のエラーは通常のJSONエラーとして返します。書き出し開始後に失敗した場合は
// 接続を切断し、200のまま壊れたZIPが届かないようにします。
// POST /api/v1/archives
func (h *ArchiveHandler) DownloadArchive(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req request.BuildArchiveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	fileIDs, err := parseIDs(req.FileIDs, "file")
	if err != nil {
		return err
	}
	folderIDs, err := parseIDs(req.FolderIDs, "folder")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	plan, err := h.buildArchiveQuery.Plan(ctx, storageqry.BuildArchiveInput{
		FileIDs:   fileIDs,
		FolderIDs: folderIDs,
		UserID:    userID,
	})
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "application/zip")
	res.Header().Set(echo.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": plan.Name}))
	res.WriteHeader(http.StatusOK)

	if err := h.buildArchiveQuery.Write(ctx, plan, res); err != nil {
		logger.Error(ctx, "archive stream aborted",
			"archive", plan.Name,
			"entries", len(plan.Entries),
			"error", err,
		)
		panic(http.ErrAbortHandler)
	}
	return nil
}
