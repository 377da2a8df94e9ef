package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gallery-sync/core/reconcile"
	"gallery-sync/feature/gallery/reconciler"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunSync bool
	jsonSync   bool
	yesConfirm bool
)

// syncCmd runs one sync pass, or previews it with --dry-run.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the database with the gallery tree in storage",
	Long: `Lists the gallery tree, derives galleries, users and photos, and writes
the difference to the database.

Galleries whose folder disappeared from storage are deleted with their photos.
Deletes ask for confirmation unless --yes is given.

Examples:
  # Preview without writing
  sync --dry-run

  # Run a pass non-interactively and print the result as JSON
  sync --yes --json`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Plan only, write nothing")
	syncCmd.Flags().BoolVar(&jsonSync, "json", false, "Print the plan or result as JSON")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm gallery deletes (non-interactive)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := bootstrap(ctx, true, true)
	if err != nil {
		return err
	}
	l := rt.logger
	defer l.Sync()

	if err := rt.migrate(ctx); err != nil {
		return err
	}
	syncer := rt.syncer()

	l.Info("Planning sync...")
	preview, err := syncer.Plan(ctx)
	if err != nil {
		return fmt.Errorf("failed to plan sync: %w", err)
	}

	if dryRunSync {
		if jsonSync {
			return printJSON(preview)
		}
		printPlan(l, preview)
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if deletes := preview.Plan.Keys(reconciler.EntityGallery, reconcile.ActionDelete); len(deletes) > 0 {
		printPlan(l, preview)
		if !confirmDestructiveAction(len(deletes)) {
			l.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
	}

	res, err := syncer.RunAs(ctx, reconciler.TriggerManual)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	if jsonSync {
		return printJSON(res)
	}
	printResult(l, res)
	if !res.OK() {
		return fmt.Errorf("sync finished with %d failed items", len(res.Errors))
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPlan logs the per-entity summary and a sample of the actions.
func printPlan(l *zap.Logger, p *reconciler.Preview) {
	l.Info("Sync plan", zap.Int("listed", p.Listed), zap.Int("actions", len(p.Plan.Actions)))
	for _, s := range p.Plan.Summary {
		l.Info("Entity",
			zap.String("entity", s.Entity),
			zap.Int("target", s.Target),
			zap.Int("stored", s.Stored),
			zap.Int("creates", s.Creates),
			zap.Int("updates", s.Updates),
			zap.Int("deletes", s.Deletes),
			zap.Int("unchanged", s.Unchanged),
		)
	}

	maxShow := min(5, len(p.Plan.Actions))
	for _, a := range p.Plan.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(a.Type)),
			zap.String("entity", a.Entity),
			zap.String("key", a.Key),
			zap.String("reason", a.Reason),
		)
	}
	if len(p.Plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(p.Plan.Actions)-maxShow))
	}
	for _, w := range p.Warnings {
		l.Warn(w)
	}
}

func printResult(l *zap.Logger, r *reconciler.Result) {
	s := r.Stats
	l.Info("Sync report",
		zap.String("pass_id", r.PassID),
		zap.Int("processed", r.Processed),
		zap.Int("errors", len(r.Errors)),
		zap.Int("warnings", len(r.Warnings)),
		zap.Int("galleries_created", s.GalleriesCreated),
		zap.Int("galleries_deleted", s.GalleriesDeleted),
		zap.Int("users_created", s.UsersCreated),
		zap.Int("photos_created", s.PhotosCreated),
		zap.Int("photos_updated", s.PhotosUpdated),
		zap.Int64("duration_ms", s.DurationMillis),
	)
	for _, e := range r.Errors {
		l.Warn("Item failed", zap.String("error", e))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(deletes int) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  %d galleries and their photos will be deleted. Type 'yes' to confirm: ", deletes)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
