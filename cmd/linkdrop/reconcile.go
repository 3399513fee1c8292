package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/database"
	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/di"
	storagecmd "github.com/Hiro-mackay/linkdrop/internal/usecase/storage/command"
)

func newReconcileCommand(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Remove file rows whose stored objects were already deleted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.bootstrap()
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = cfg.OrphanReconcile.BatchSize
			}

			ctx := cmd.Context()
			client, err := connectDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			repos := di.NewStorageRepositories(database.NewTxManager(client.Pool()), nil)
			output, err := storagecmd.NewReconcileOrphansCommand(repos.FileRepo, repos.OrphanRepo).
				Execute(ctx, storagecmd.ReconcileOrphansInput{Limit: limit})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "examined=%d resolved=%d failed=%d\n",
				output.Examined, output.Resolved, output.Failed)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "max records to examine (default: orphan_reconcile.batch_size)")
	return cmd
}
