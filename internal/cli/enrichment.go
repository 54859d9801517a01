// filepath: internal/cli/enrichment.go
package cli

import (
	"context"
	"fmt"

	"voicejournal/internal/diagnostics"
	"voicejournal/internal/enrichment"

	"github.com/spf13/cobra"
)

var enrichmentCmd = &cobra.Command{
	Use:   "enrichment",
	Short: "Manage the transcription and summary service",
}

var enrichmentValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configured API key against the service",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := enrichment.NewClient(cfg.Enrichment, cfg.EnrichmentTimeout)
		return validateEnrichmentKey(context.Background(), client)
	},
}

type keyValidator interface {
	Validate(ctx context.Context) error
}

func validateEnrichmentKey(ctx context.Context, v keyValidator) error {
	if err := v.Validate(ctx); err != nil {
		c := diagnostics.Classify(err, diagnostics.CategoryNetwork)
		if len(c.Suggestions) > 0 {
			return fmt.Errorf("%s: %s (hint: %s)", c.Title, c.Message, c.Suggestions[0])
		}
		return fmt.Errorf("%s: %s", c.Title, c.Message)
	}
	fmt.Fprintln(stdout, "API key is valid.")
	return nil
}

func init() {
	enrichmentCmd.AddCommand(enrichmentValidateCmd)
	RootCmd.AddCommand(enrichmentCmd)
}
