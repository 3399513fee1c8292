package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/di"
	"github.com/Hiro-mackay/linkdrop/internal/interface/middleware"
	"github.com/Hiro-mackay/linkdrop/internal/interface/router"
	"github.com/Hiro-mackay/linkdrop/internal/interface/server"
	"github.com/Hiro-mackay/linkdrop/internal/interface/validator"
	"github.com/Hiro-mackay/linkdrop/pkg/logger"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.bootstrap()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			// Initialize DI Container
			container, err := di.NewContainer(ctx, cfg)
			if err != nil {
				return err
			}
			defer container.Close()

			handlers := di.NewHandlers(container)
			middlewares := di.NewMiddlewares(container)

			// Setup Server
			srv := server.NewServer(server.ConfigFrom(cfg.Server))
			e := srv.Echo()

			// Setup validator and error handler
			e.Validator = validator.NewCustomValidator()
			e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

			// Global middleware
			e.Use(middleware.RequestID())
			e.Use(middleware.Logger())
			e.Use(middleware.Recover())
			if cfg.Metrics.Enabled {
				e.Use(middleware.Metrics())
			}
			e.Use(middleware.SecurityHeaders())
			e.Use(middleware.CORS(cfg.Security.CORSOrigins))

			// Setup Router
			routerOpts := router.Options{RequestTimeout: cfg.Server.RequestTimeout}
			if cfg.Metrics.Enabled {
				routerOpts.MetricsPath = cfg.Metrics.Path
			}
			router.NewRouter(e, handlers, middlewares, routerOpts).Setup()

			// Start background workers
			workerMgr, err := di.NewWorkerManager(container, handlers.Health.Checkers())
			if err != nil {
				return err
			}
			workerMgr.Start()

			// Start server
			logger.Info(ctx, "starting server", "address", srv.Address())
			serveErr := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()

			// Graceful shutdown
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			var runErr error
			select {
			case <-quit:
			case runErr = <-serveErr:
				logger.Error(ctx, "server error", "error", runErr)
			}

			logger.Info(ctx, "shutting down server...")
			workerMgr.Shutdown(srv.Config().ShutdownTimeout)

			if err := srv.Shutdown(context.Background()); err != nil {
				logger.Error(ctx, "server shutdown error", "error", err)
			}
			logger.Info(ctx, "server stopped")
			return runErr
		},
	}
}
