// filepath: internal/cli/play.go
package cli

import (
	"context"
	"fmt"

	"voicejournal/internal/audio"
	"voicejournal/internal/diagnostics"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <entry-id>",
	Short: "Play back a journal entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return runPlay(cmd.Context(), a, args[0])
		})
	},
}

func init() {
	RootCmd.AddCommand(playCmd)
}

func runPlay(ctx context.Context, a *app, id string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sub := a.audio.Subscribe()
	defer sub.Close()

	if err := a.workflow.PlayEntry(ctx, id); err != nil {
		return a.describeError(err, diagnostics.CategoryPlayback, "play "+id)
	}
	fmt.Fprintln(stdout, "Playing... press Ctrl-C to stop.")

	sig, release := interrupted()
	defer release()

	for {
		select {
		case <-sig:
			if err := a.audio.StopPlayback(); err != nil {
				return a.describeError(err, diagnostics.CategoryPlayback, "play "+id)
			}
			fmt.Fprintln(stdout, "Stopped.")
			return nil
		case ev, ok := <-sub.Events():
			if !ok {
				return nil
			}
			switch ev.Kind {
			case audio.EventPlaybackFinished, audio.EventPlaybackStopped:
				fmt.Fprintln(stdout, "Done.")
				return nil
			case audio.EventPlaybackFailed:
				return a.describeError(ev.Err, diagnostics.CategoryPlayback, "play "+id)
			}
		}
	}
}
