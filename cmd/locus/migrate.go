package main

import (
	"fmt"
	"log/slog"

	"github.com/aevon-lab/project-locus/internal/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			db, dialect, err := openDB(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrations.RunMigrations(db, dialect, true); err != nil {
				return err
			}

			version, dirty, err := migrations.Version(db, dialect)
			if err != nil {
				return err
			}
			slog.Info("[Migrations] Schema ready", "dialect", dialect, "version", version, "dirty", dirty)
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema at version %d\n", dialect, version)
			return nil
		},
	}
}
