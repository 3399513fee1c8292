package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/database"
	"github.com/Hiro-mackay/linkdrop/pkg/config"
	"github.com/Hiro-mackay/linkdrop/pkg/logger"
)

// rootOptions は全サブコマンド共通のフラグです
type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "linkdrop",
		Short:         "Folder and file hierarchy backend for upload links",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"config file or directory (env LINKDROP_* overrides)")

	cmd.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newReconcileCommand(opts),
	)
	return cmd
}

// bootstrap は設定を読み込みロガーを初期化します
func (o *rootOptions) bootstrap() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if err := logger.Setup(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		AddSource:  cfg.Log.AddSource,
		TimeFormat: logger.DefaultConfig().TimeFormat,
	}); err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	return cfg, nil
}

// connectDatabase はサブコマンド用にPostgreSQLへ接続します
func connectDatabase(ctx context.Context, cfg *config.Config) (*database.PostgresClient, error) {
	client, err := database.NewPostgresClient(ctx, cfg.Database.URL, database.DBConfigFrom(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	return client, nil
}
