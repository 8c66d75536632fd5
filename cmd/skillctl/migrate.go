package main

import (
	"context"

	"github.com/spf13/cobra"

	"skill-match/internal/app"
	"skill-match/internal/database/migration"
	"skill-match/internal/database/seeder"
	"skill-match/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			r := migration.Runner{FS: migration.Embedded(), Logger: logger.Named(c.Logger, "migration")}
			return r.Run(ctx, c.DB.SQLDB())
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the starter dictionary, synonyms and roles",
	Long:  "Insert the starter dictionary, synonyms and roles. Existing rows are left untouched, so the command can be rerun.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			r := seeder.Runner{Seeders: seeder.Defaults(), Logger: logger.Named(c.Logger, "seeder")}
			if err := r.Run(ctx, c.DB); err != nil {
				return err
			}
			c.Variants.Invalidate()
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
}
