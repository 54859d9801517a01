// filepath: internal/cli/search.go
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"voicejournal/internal/diagnostics"
	"voicejournal/internal/models"

	"github.com/spf13/cobra"
)

var (
	searchTag      string
	searchCategory string
	searchSince    time.Duration
	searchLimit    int
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Find entries by text, tag, category or age",
	Long: `Matches the text against entry titles, transcripts and summaries. Combine it with
--tag, --category and --since (e.g. --since 168h for the last week).`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			ctx := context.Background()
			q := models.EntryQuery{
				Text:  strings.Join(args, " "),
				Tag:   searchTag,
				Limit: searchLimit,
			}
			if searchSince > 0 {
				q.Since = time.Now().Add(-searchSince)
			}
			if searchCategory != "" {
				c, err := a.repo.GetCategoryByName(ctx, searchCategory)
				if err != nil {
					return a.describeError(err, diagnostics.CategoryData, "search")
				}
				q.CategoryID = c.ID
			}

			entries, err := a.repo.SearchEntries(ctx, q)
			if err != nil {
				return a.describeError(err, diagnostics.CategoryData, "search")
			}
			if searchJSON {
				return printJSON(entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(stdout, "No matching entries.")
				return nil
			}
			return printEntries(entries)
		})
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchTag, "tag", "", "Only entries carrying this tag")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "Only entries in this category")
	searchCmd.Flags().DurationVar(&searchSince, "since", 0, "Only entries newer than this")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 50, "Maximum number of entries")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print entries as JSON")
	RootCmd.AddCommand(searchCmd)
}
