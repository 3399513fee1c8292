package main

import (
	"github.com/spf13/cobra"

	"github.com/Hiro-mackay/linkdrop/pkg/logger"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.bootstrap()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := connectDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Migrate(ctx); err != nil {
				return err
			}
			logger.Info(ctx, "schema applied")
			return nil
		},
	}
}
