package cmd

import (
	"context"

	"gallery-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage and the database",
	Long:  `Checks that the bucket holds the gallery tree, that the database schema matches the models, and counts indexed records.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and fix the gallery base path",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the database schema against the models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// recordsCmd represents the integrity records command
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Count indexed galleries, users and photos",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(storageCmd, schemaCmd, recordsCmd)

	storageCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the base path when missing")
}

func runIntegrityChecks(ctx context.Context, runStorage, runSchema, runRecords bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := bootstrap(ctx, runSchema || runRecords, false)
	if err != nil {
		return err
	}
	logg := rt.logger
	svc := integrity.NewService(rt.client, rt.cfg.Storage.Bucket, rt.cfg.Gallery.BasePath, rt.db, logg)

	if runStorage {
		logg.Info("Checking storage...", zap.String("bucket", rt.cfg.Storage.Bucket))
		report, err := svc.CheckStorage(ctx)
		if err != nil {
			logg.Error("Storage check failed", zap.Error(err))
		} else if report.BasePathPresent {
			logg.Info("Base path is present.", zap.String("path", report.BasePath))
		} else {
			logg.Warn("Base path holds no objects", zap.String("path", report.BasePath))
			if fixFlag {
				logg.Info("Creating base path...")
				if err := svc.FixStorage(ctx); err != nil {
					return err
				}
				logg.Info("Base path created successfully.")
			} else {
				logg.Info("Run with --fix to create the base path.")
			}
		}
	}

	if runSchema {
		logg.Info("Checking database schema...")
		report, err := svc.CheckSchema(ctx)
		if err != nil {
			logg.Error("Schema check failed", zap.Error(err))
		} else if report.Matched {
			logg.Info("Schema matches the models.", zap.String("driver", report.Driver), zap.Int64("version", report.Version))
		} else {
			logg.Warn("Schema mismatches found", zap.String("driver", report.Driver), zap.Int64("version", report.Version))
			for table, tblReport := range report.Tables {
				if tblReport.Status == "ok" {
					continue
				}
				if len(tblReport.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
				}
				if len(tblReport.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if runRecords {
		report, err := svc.CountRecords(ctx)
		if err != nil {
			logg.Error("Record count failed", zap.Error(err))
		} else {
			fields := make([]zap.Field, 0, len(report.Counts)+1)
			for _, table := range integrity.Tables {
				if n, ok := report.Counts[table]; ok {
					fields = append(fields, zap.Int64(table, n))
				}
			}
			if len(report.Missing) > 0 {
				fields = append(fields, zap.Strings("missing_tables", report.Missing))
			}
			logg.Info("Indexed records", fields...)
		}
	}
	return nil
}
