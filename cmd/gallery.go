package cmd

import (
	"context"
	"fmt"

	"gallery-sync/feature/gallery"
	"gallery-sync/feature/gallery/read"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// galleryDetailCmd represents the top-level gallery command
var galleryDetailCmd = &cobra.Command{
	Use:   "gallery [folder]",
	Short: "View details and consistency of one gallery",
	Long:  `Checks whether a gallery folder is indexed in the database and listed in storage, and whether both sides agree.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGalleryDetail(cmd.Context(), args[0])
	},
}

func init() {
	RootCmd.AddCommand(galleryDetailCmd)
}

func runGalleryDetail(ctx context.Context, folder string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := bootstrap(ctx, true, true)
	if err != nil {
		return err
	}
	logg := rt.logger

	st := rt.gateway()
	svc := gallery.NewService(st, read.NewChain(logg, nil, read.NewStoreStrategy(st)), rt.syncer(), logg)

	logg.Info("Checking gallery...", zap.String("folder", folder))
	report, err := svc.Detail(ctx, folder)
	if err != nil {
		return fmt.Errorf("gallery detail check failed: %w", err)
	}

	fmt.Println("\n--- Gallery Detail View ---")
	fmt.Printf("Folder:         %s\n", report.FolderName)
	fmt.Printf("Title:          %s\n", report.Title)
	fmt.Printf("Event Date:     %s\n", report.EventDate)
	fmt.Printf("Protected:      %v\n", report.Protected)
	fmt.Println("---------------------------")
	fmt.Printf("In Database:    %v\n", report.InStore)
	fmt.Printf("In Storage:     %v\n", report.InStorage)
	fmt.Printf("Stored Photos:  %d\n", report.StoredPhotos)
	fmt.Printf("Listed Photos:  %d\n", report.ListedPhotos)

	statusColor := "\033[32m" // Green
	if report.Status == "FAIL" {
		statusColor = "\033[31m" // Red
	} else if report.Status == "WARNING" {
		statusColor = "\033[33m" // Yellow
	}
	resetColor := "\033[0m"

	fmt.Printf("Consistency:    %s%s%s\n", statusColor, report.Status, resetColor)

	if len(report.Mismatches) > 0 {
		fmt.Println("\nMismatches:")
		for _, m := range report.Mismatches {
			fmt.Printf("- %s\n", m)
		}
	}
	fmt.Println("---------------------------")
	return nil
}
