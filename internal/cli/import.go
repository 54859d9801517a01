// filepath: internal/cli/import.go
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"voicejournal/internal/diagnostics"
	"voicejournal/internal/logging"

	"github.com/spf13/cobra"
)

var importTitle string

var importCmd = &cobra.Command{
	Use:   "import <audio-file>",
	Short: "Add an existing recording to the journal",
	Long: `Copies an audio file into the media root and saves it as a new entry, exactly as if it
had just been recorded. The file must use the configured recording format.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return runImport(a, args[0])
		})
	},
}

func init() {
	importCmd.Flags().StringVar(&importTitle, "title", "", "Title for the new entry")
	RootCmd.AddCommand(importCmd)
}

func runImport(a *app, src string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(src)), ".")
	if ext != a.media.Extension {
		return fmt.Errorf("only .%s files can be imported, got %q", a.media.Extension, filepath.Base(src))
	}

	f, err := os.Open(src)
	if err != nil {
		return a.describeError(err, diagnostics.CategoryStorage, "import "+src)
	}
	defer f.Close()

	path, n, err := a.media.Import(f)
	if err != nil {
		return a.describeError(err, diagnostics.CategoryStorage, "import "+src)
	}
	logging.Log.Debugf("Copied %d bytes from %s to %s", n, src, path)

	duration, err := a.tools.Duration(path)
	if err != nil {
		logging.Log.Warnf("Could not determine duration of %s: %v", src, err)
		duration = 0
	}

	ctx := context.Background()
	entry, err := a.workflow.CompleteRecordingWorkflow(ctx, path, duration)
	if err != nil {
		return a.describeError(err, diagnostics.CategoryData, "import "+src)
	}
	if importTitle != "" {
		if err := a.repo.SetTitle(ctx, entry.ID, importTitle); err != nil {
			return err
		}
		entry.Title = importTitle
	}

	fmt.Fprintln(stdout, "Imported.")
	printEntry(entry)
	if a.enricher.IsConfigured() && a.cfg.Enrichment.AutoEnrichEnabled() {
		awaitEnrichment(a, entry.ID)
	}
	return nil
}
