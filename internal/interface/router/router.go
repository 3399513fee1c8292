package router

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/di"
	"github.com/Hiro-mackay/linkdrop/internal/interface/presenter"
	"github.com/Hiro-mackay/linkdrop/pkg/metrics"
)

// Options はルーティングの任意設定です
type Options struct {
	// MetricsPath が空でなければPrometheusの公開エンドポイントを登録します
	MetricsPath string
	// RequestTimeout はZIPストリーミング以外のAPIに適用する処理時間の上限です
	RequestTimeout time.Duration
}

// Router はルート定義を管理します
type Router struct {
	echo        *echo.Echo
	handlers    *di.Handlers
	middlewares *di.Middlewares
	opts        Options
}

// NewRouter は新しいRouterを作成します
func NewRouter(e *echo.Echo, handlers *di.Handlers, middlewares *di.Middlewares, opts Options) *Router {
	return &Router{
		echo:        e,
		handlers:    handlers,
		middlewares: middlewares,
		opts:        opts,
	}
}

// Setup は全てのルートを設定します
func (r *Router) Setup() {
	r.setupHealthRoutes()
	r.setupAPIRoutes()
}

// setupHealthRoutes はヘルスチェックとメトリクスのルートを設定します
func (r *Router) setupHealthRoutes() {
	if r.opts.MetricsPath != "" {
		r.echo.GET(r.opts.MetricsPath, echo.WrapHandler(metrics.Handler()))
	}
	if r.handlers.Health == nil {
		return
	}
	r.echo.GET("/health", r.handlers.Health.Check)
	r.echo.GET("/ready", r.handlers.Health.Ready)
}

// setupAPIRoutes はAPIルートを設定します
func (r *Router) setupAPIRoutes() {
	api := r.echo.Group("/api/v1")

	api.GET("/", func(c echo.Context) error {
		return presenter.OK(c, map[string]string{
			"message": "Linkdrop API v1",
		})
	})

	// 以降は全て認証必須。レート制限は認証後にユーザー単位で数えます
	protected := api.Group("", r.middlewares.JWTAuth.Authenticate(), r.middlewares.RateLimit.ByUser())

	r.setupArchiveRoutes(protected)

	if r.opts.RequestTimeout > 0 {
		protected = protected.Group("", echomw.ContextTimeout(r.opts.RequestTimeout))
	}
	r.setupWorkspaceRoutes(protected)
	r.setupStorageRoutes(protected)
}

// setupWorkspaceRoutes はワークスペースとリンク関連ルートを設定します
func (r *Router) setupWorkspaceRoutes(api *echo.Group) {
	if r.handlers.Workspace == nil {
		return
	}
	api.POST("/workspace", r.handlers.Workspace.ProvisionWorkspace)
	api.DELETE("/links/:id", r.handlers.Workspace.DetachLink)
}

// setupStorageRoutes はフォルダとファイル関連ルートを設定します
func (r *Router) setupStorageRoutes(api *echo.Group) {
	if r.handlers.Folder != nil {
		foldersGroup := api.Group("/folders")
		foldersGroup.POST("", r.handlers.Folder.CreateFolder)
		foldersGroup.GET("/root/contents", r.handlers.Folder.ListRootContents)
		foldersGroup.GET("/:id", r.handlers.Folder.GetFolder)
		foldersGroup.GET("/:id/contents", r.handlers.Folder.ListFolderContents)
		foldersGroup.GET("/:id/ancestors", r.handlers.Folder.GetAncestors)
		foldersGroup.PATCH("/:id/rename", r.handlers.Folder.RenameFolder)
		foldersGroup.PATCH("/:id/move", r.handlers.Folder.MoveFolder)
		foldersGroup.DELETE("/:id", r.handlers.Folder.DeleteFolder)
	}

	filesGroup := api.Group("/files")
	if r.handlers.Upload != nil {
		filesGroup.POST("/upload", r.handlers.Upload.InitiateUpload)
		filesGroup.POST("/upload/complete", r.handlers.Upload.CompleteUpload)
	}
	if r.handlers.File != nil {
		filesGroup.POST("/bulk-delete", r.handlers.File.BulkDeleteFiles)
		filesGroup.GET("/:id/download", r.handlers.File.GetDownloadURL)
		filesGroup.PATCH("/:id/rename", r.handlers.File.RenameFile)
		filesGroup.PATCH("/:id/move", r.handlers.File.MoveFile)
		filesGroup.DELETE("/:id", r.handlers.File.DeleteFile)
	}
}

// setupArchiveRoutes はZIPダウンロードのルートを設定します。長時間のストリーミングになるためタイムアウトを掛けません
func (r *Router) setupArchiveRoutes(api *echo.Group) {
	if r.handlers.Archive == nil {
		return
	}
	api.POST("/archives", r.handlers.Archive.DownloadArchive)
}
