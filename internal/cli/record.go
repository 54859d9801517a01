// filepath: internal/cli/record.go
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"voicejournal/internal/audio"
	"voicejournal/internal/audit"
	"voicejournal/internal/diagnostics"
	"voicejournal/internal/logging"
	"voicejournal/internal/workflow"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var recordDuration time.Duration

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a new journal entry from the microphone",
	Long: `Starts capturing from the default input device. Recording stops after --duration,
when Enter is pressed, or on Ctrl-C, and the entry is saved to the journal.
When stdin is not a terminal only --duration or a signal stops it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return runRecord(cmd.Context(), a)
		})
	},
}

func init() {
	recordCmd.Flags().DurationVar(&recordDuration, "duration", 0, "Stop automatically after this long (e.g. 90s). 0 waits for Enter.")
	RootCmd.AddCommand(recordCmd)
}

// ensurePermission asks once when the operator has never answered.
func ensurePermission(ctx context.Context, a *app) error {
	if a.audio.PermissionStatus() != audio.PermissionUndetermined {
		return nil
	}
	granted, err := a.audio.RequestPermission(ctx, audio.NewTerminalPrompter())
	if err != nil {
		return err
	}
	if granted {
		a.auditor.Log(ctx, audit.ActionPermission, currentUser(), "microphone", map[string]interface{}{"granted": true})
	}
	return nil
}

// enterPressed closes once a line is read from in. Without a terminal it
// returns nil, so only --duration or a signal stops the recording.
func enterPressed(in io.Reader, interactive bool) <-chan struct{} {
	if recordDuration > 0 {
		fmt.Fprintf(stdout, "Recording for %s... press Ctrl-C to stop early.\n", recordDuration)
		return nil
	}
	if !interactive {
		fmt.Fprintln(stdout, "Recording... stdin is not a terminal, send SIGINT or SIGTERM to stop.")
		return nil
	}
	fmt.Fprintln(stdout, "Recording... press Enter to stop.")
	enter := make(chan struct{})
	go func() {
		bufio.NewReader(in).ReadString('\n')
		close(enter)
	}()
	return enter
}

func waitForStop(sub *audio.Subscription) (failed error) {
	sig, release := interrupted()
	defer release()

	enter := enterPressed(os.Stdin, term.IsTerminal(int(os.Stdin.Fd())))

	var timeout <-chan time.Time
	if recordDuration > 0 {
		timer := time.NewTimer(recordDuration)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		select {
		case <-enter:
			return nil
		case <-sig:
			return nil
		case <-timeout:
			return nil
		case ev, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if ev.Kind == audio.EventRecordingFailed {
				return ev.Err
			}
		}
	}
}

func runRecord(ctx context.Context, a *app) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ensurePermission(ctx, a); err != nil {
		return a.describeError(err, diagnostics.CategoryPermissions, "record")
	}

	sub := a.audio.Subscribe()
	defer sub.Close()

	if err := a.workflow.StartRecordingWorkflow(ctx); err != nil {
		return a.describeError(err, diagnostics.CategoryRecording, "record")
	}
	a.auditor.Log(ctx, audit.ActionRecordingStart, currentUser(), a.audio.ActiveRecordingPath(), nil)

	if failed := waitForStop(sub); failed != nil {
		logging.Log.Warnf("Capture reported a failure: %v", failed)
	}

	entry, err := a.workflow.StopRecordingWorkflow(ctx)
	if err != nil {
		category := diagnostics.CategoryRecording
		if errors.Is(err, workflow.ErrCoreDataSaveFailed) {
			category = diagnostics.CategoryData
		}
		return a.describeError(err, category, "record")
	}
	a.auditor.Log(ctx, audit.ActionRecordingStop, currentUser(), entry.ID, map[string]interface{}{
		"duration_sec": entry.DurationSec,
	})

	fmt.Fprintln(stdout, "Saved.")
	printEntry(entry)

	if a.enricher.IsConfigured() && a.cfg.Enrichment.AutoEnrichEnabled() {
		awaitEnrichment(a, entry.ID)
	}
	return nil
}

// awaitEnrichment keeps the process alive until background enrichment of id
// reports back, since closing the app cancels it.
func awaitEnrichment(a *app, id string) {
	fmt.Fprintln(stdout, "Transcribing... press Ctrl-C to skip.")
	sig, release := interrupted()
	defer release()
	timer := time.NewTimer(2*a.cfg.EnrichmentTimeout + shutdownGrace)
	defer timer.Stop()

	for {
		select {
		case <-sig:
			return
		case <-timer.C:
			logging.Log.Warnf("Gave up waiting for enrichment of %s", id)
			return
		case n, ok := <-a.workflow.Notifications():
			if !ok {
				return
			}
			if n.EntryID != id {
				continue
			}
			switch n.Kind {
			case workflow.NotifyEnrichmentCompleted:
				fmt.Fprintln(stdout, "Transcript and summary saved.")
				return
			case workflow.NotifyEnrichmentFailed:
				fmt.Fprintln(os.Stderr, a.describeError(n.Err, diagnostics.CategoryNetwork, "enrich "+id))
				return
			}
		}
	}
}

func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "cli"
}
