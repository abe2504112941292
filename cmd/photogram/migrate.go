package main

import (
	"github.com/deppfellow/photogram/internal/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	var target int32

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long:  "Migrate the database to the latest version, or to --to when given (0 drops every table).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, loggerService, err := bootstrap()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			if err := database.MigrateTo(cmd.Context(), log, cfg, target); err != nil {
				log.Error().Err(err).Msg("migration failed")
				return err
			}
			return nil
		},
	}

	cmd.Flags().Int32Var(&target, "to", -1, "target schema version, -1 for latest")

	return cmd
}
