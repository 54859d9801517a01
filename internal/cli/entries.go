// filepath: internal/cli/entries.go
package cli

import (
	"context"
	"fmt"

	"voicejournal/internal/audit"
	"voicejournal/internal/diagnostics"

	"github.com/spf13/cobra"
)

var (
	listJSON bool
	showJSON bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List journal entries, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			entries, err := a.repo.FetchAll(context.Background())
			if err != nil {
				return a.describeError(err, diagnostics.CategoryData, "list")
			}
			if listJSON {
				return printJSON(entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(stdout, "No entries yet. Record one with 'voicejournal record'.")
				return nil
			}
			return printEntries(entries)
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <entry-id>",
	Short: "Show an entry with its transcript and summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			e, err := a.repo.GetEntry(context.Background(), args[0])
			if err != nil {
				return a.describeError(err, diagnostics.CategoryData, "show "+args[0])
			}
			if showJSON {
				return printJSON(e)
			}
			printEntry(e)
			if e.CategoryID != "" {
				fmt.Fprintf(stdout, "  Category: %s\n", e.CategoryID)
			}
			if len(e.Tags) > 0 {
				names := make([]string, len(e.Tags))
				for i, t := range e.Tags {
					names[i] = t.Name
				}
				fmt.Fprintf(stdout, "  Tags:     %v\n", names)
			}
			if e.Summary != "" {
				fmt.Fprintf(stdout, "\nSummary:\n%s\n", e.Summary)
			}
			if e.Transcript != "" {
				fmt.Fprintf(stdout, "\nTranscript:\n%s\n", e.Transcript)
			}
			return nil
		})
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <entry-id> <title>",
	Short: "Change the title of an entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			if err := a.repo.SetTitle(context.Background(), args[0], args[1]); err != nil {
				return a.describeError(err, diagnostics.CategoryData, "rename "+args[0])
			}
			fmt.Fprintf(stdout, "Entry %s renamed.\n", args[0])
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <entry-id>",
	Aliases: []string{"rm"},
	Short:   "Delete an entry and its recording",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			ctx := context.Background()
			if err := a.workflow.DeleteEntry(ctx, args[0]); err != nil {
				return a.describeError(err, diagnostics.CategoryData, "delete "+args[0])
			}
			a.auditor.Log(ctx, audit.ActionEntryDelete, currentUser(), args[0], nil)
			fmt.Fprintf(stdout, "Entry %s deleted.\n", args[0])
			return nil
		})
	},
}

var enrichCmd = &cobra.Command{
	Use:   "enrich <entry-id>",
	Short: "Transcribe and summarize an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			ctx := context.Background()
			fmt.Fprintln(stdout, "Transcribing...")
			if err := a.workflow.EnrichEntry(ctx, args[0]); err != nil {
				return a.describeError(err, diagnostics.CategoryNetwork, "enrich "+args[0])
			}
			a.auditor.Log(ctx, audit.ActionEntryEnrich, currentUser(), args[0], nil)

			e, err := a.repo.GetEntry(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "\nSummary:\n%s\n", e.Summary)
			return nil
		})
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print entries as JSON")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the entry as JSON")

	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(renameCmd)
	RootCmd.AddCommand(deleteCmd)
	RootCmd.AddCommand(enrichCmd)
}
