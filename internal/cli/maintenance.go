// filepath: internal/cli/maintenance.go
package cli

import (
	"context"
	"fmt"

	"voicejournal/internal/audit"
	"voicejournal/internal/diagnostics"
	"voicejournal/internal/housekeeping"
	"voicejournal/internal/initconfig"

	"github.com/spf13/cobra"
)

var maintenanceJSON bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check microphone permission, storage, database and audio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			report := a.workflow.PerformSystemHealthCheck(context.Background())
			if maintenanceJSON {
				if err := printJSON(report); err != nil {
					return err
				}
			} else {
				printHealth(report)
			}
			if !report.IsHealthy() {
				return fmt.Errorf("system is not healthy")
			}
			return nil
		})
	},
}

var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Compare journal entries with the recordings on disk",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			report, err := a.workflow.ValidateDataIntegrity(context.Background())
			if err != nil {
				return a.describeError(err, diagnostics.CategoryData, "integrity")
			}
			if maintenanceJSON {
				return printJSON(report)
			}
			printIntegrity(report)
			return nil
		})
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete orphaned recordings and unused tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			ctx := context.Background()
			report, err := housekeeping.RunOnce(ctx, housekeeping.Dependencies{
				Maintainer: a.workflow,
				Tags:       a.repo,
			})
			if err != nil {
				return a.describeError(err, diagnostics.CategoryStorage, "cleanup")
			}
			a.auditor.Log(ctx, audit.ActionCleanup, currentUser(), "media", map[string]interface{}{
				"files_deleted": report.Cleanup.FilesDeleted,
				"bytes_freed":   report.Cleanup.BytesFreed,
				"tags_removed":  report.TagsRemoved,
			})
			if maintenanceJSON {
				return printJSON(report)
			}
			fmt.Fprintln(stdout, report.Message)
			if report.Cleanup.FailedDeletes > 0 {
				fmt.Fprintf(stdout, "%d files could not be deleted.\n", report.Cleanup.FailedDeletes)
			}
			if report.Cleanup.EntriesWithMissingFiles > 0 {
				fmt.Fprintf(stdout, "%d entries reference missing recordings.\n", report.Cleanup.EntriesWithMissingFiles)
			}
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed <init-config.toml>",
	Short: "Create categories and tags listed in a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			res, err := initconfig.Run(context.Background(), a.repo, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "%d categories created, %d tags ensured.\n", res.CategoriesCreated, res.TagsEnsured)
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{healthCmd, integrityCmd, cleanupCmd} {
		c.Flags().BoolVar(&maintenanceJSON, "json", false, "Print the report as JSON")
		RootCmd.AddCommand(c)
	}
	RootCmd.AddCommand(seedCmd)
}
