package cmd

import (
	"context"
	"fmt"

	"gallery-sync/core/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		rt, err := bootstrap(ctx, true, true)
		if err != nil {
			return err
		}
		if err := database.Migrate(ctx, rt.db); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		v, err := database.SchemaVersion(ctx, rt.db)
		if err != nil {
			return err
		}
		rt.logger.Info("Migrations applied", zap.Int64("version", v))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
