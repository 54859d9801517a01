// filepath: internal/cli/category.go
package cli

import (
	"context"
	"fmt"

	"voicejournal/internal/diagnostics"

	"github.com/spf13/cobra"
)

var (
	categoryColor string
	categoryIcon  string
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories"},
	Short:   "Manage entry categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			cats, err := a.repo.GetCategories(context.Background())
			if err != nil {
				return a.describeError(err, diagnostics.CategoryData, "category list")
			}
			tw := newTable()
			fmt.Fprintln(tw, "ID\tNAME\tCOLOR\tICON\tCUSTOM")
			for _, c := range cats {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%v\n", c.ID, c.Name, c.Color, c.Icon, c.IsCustom)
			}
			return tw.Flush()
		})
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a custom category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			c, err := a.repo.CreateCategory(context.Background(), args[0], categoryColor, categoryIcon)
			if err != nil {
				return a.describeError(err, diagnostics.CategoryData, "category add")
			}
			fmt.Fprintf(stdout, "Category '%s' created (%s).\n", c.Name, c.ID)
			return nil
		})
	},
}

var categoryAssignCmd = &cobra.Command{
	Use:   "assign <entry-id> <category-name>",
	Short: "Put an entry in a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			ctx := context.Background()
			c, err := a.repo.GetCategoryByName(ctx, args[1])
			if err != nil {
				return a.describeError(err, diagnostics.CategoryData, "category assign")
			}
			if err := a.repo.AssignCategory(ctx, args[0], c.ID); err != nil {
				return a.describeError(err, diagnostics.CategoryData, "category assign")
			}
			fmt.Fprintf(stdout, "Entry %s is now in '%s'.\n", args[0], c.Name)
			return nil
		})
	},
}

var categoryStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count entries and recorded time per category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			stats, err := a.repo.GetCategoryStatistics(context.Background())
			if err != nil {
				return a.describeError(err, diagnostics.CategoryData, "category stats")
			}
			tw := newTable()
			fmt.Fprintln(tw, "CATEGORY\tENTRIES\tDURATION")
			for _, s := range stats {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Name, s.EntryCount, formatDuration(s.TotalDurationSec))
			}
			return tw.Flush()
		})
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <category-name>",
	Short: "Delete a custom category; its entries become uncategorized",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			ctx := context.Background()
			c, err := a.repo.GetCategoryByName(ctx, args[0])
			if err != nil {
				return a.describeError(err, diagnostics.CategoryData, "category delete")
			}
			if err := a.repo.DeleteCategory(ctx, c.ID); err != nil {
				return a.describeError(err, diagnostics.CategoryData, "category delete")
			}
			fmt.Fprintf(stdout, "Category '%s' deleted.\n", c.Name)
			return nil
		})
	},
}

func init() {
	categoryAddCmd.Flags().StringVar(&categoryColor, "color", "", "Hex color, e.g. #34C759")
	categoryAddCmd.Flags().StringVar(&categoryIcon, "icon", "", "Icon name")

	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryAssignCmd)
	categoryCmd.AddCommand(categoryStatsCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
	RootCmd.AddCommand(categoryCmd)
}
