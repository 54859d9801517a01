// filepath: internal/cli/tag.go
package cli

import (
	"context"
	"fmt"
	"strings"

	"voicejournal/internal/diagnostics"
	"voicejournal/internal/shared"

	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:     "tag",
	Aliases: []string{"tags"},
	Short:   "Manage entry tags",
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags with their usage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			stats, err := a.repo.GetTags(context.Background())
			if err != nil {
				return a.describeError(err, diagnostics.CategoryData, "tag list")
			}
			tw := newTable()
			fmt.Fprintln(tw, "TAG\tENTRIES")
			for _, s := range stats {
				fmt.Fprintf(tw, "%s\t%d\n", s.Tag.Name, s.EntryCount)
			}
			return tw.Flush()
		})
	},
}

var tagSetCmd = &cobra.Command{
	Use:   "set <entry-id> [tag,...]",
	Short: "Replace the tags of an entry; no tags clears them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			names := shared.ParseTagNames(strings.Join(args[1:], ","))
			tags, err := a.repo.SetEntryTags(context.Background(), args[0], names)
			if err != nil {
				return a.describeError(err, diagnostics.CategoryData, "tag set")
			}
			fmt.Fprintf(stdout, "Entry %s has %d tag(s).\n", args[0], len(tags))
			return nil
		})
	},
}

var tagCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove tags no entry uses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			n, err := a.repo.CleanupUnusedTags(context.Background())
			if err != nil {
				return a.describeError(err, diagnostics.CategoryData, "tag cleanup")
			}
			fmt.Fprintf(stdout, "%d unused tag(s) removed.\n", n)
			return nil
		})
	},
}

func init() {
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagSetCmd)
	tagCmd.AddCommand(tagCleanupCmd)
	RootCmd.AddCommand(tagCmd)
}
