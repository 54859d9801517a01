// filepath: internal/cli/output.go
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"voicejournal/internal/models"
)

var stdout io.Writer = os.Stdout

func printJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
}

func formatDuration(sec float64) string {
	d := time.Duration(sec * float64(time.Second)).Round(time.Second)
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", m, s)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

func printEntries(entries []models.Entry) error {
	tw := newTable()
	fmt.Fprintln(tw, "ID\tCREATED\tDURATION\tTITLE\tSUMMARY")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			formatDuration(e.DurationSec),
			e.Title,
			truncate(e.Summary, 48),
		)
	}
	return tw.Flush()
}

func printEntry(e *models.Entry) {
	fmt.Fprintf(stdout, "Entry %s\n", e.ID)
	fmt.Fprintf(stdout, "  Title:    %s\n", e.Title)
	fmt.Fprintf(stdout, "  Created:  %s\n", e.CreatedAt.Local().Format(time.RFC1123))
	fmt.Fprintf(stdout, "  Duration: %s\n", formatDuration(e.DurationSec))
	if e.HasMedia() {
		fmt.Fprintf(stdout, "  Media:    %s\n", e.MediaPath)
	}
}

func printHealth(r models.HealthReport) {
	status := "healthy"
	if !r.IsHealthy() {
		status = "UNHEALTHY"
	}
	fmt.Fprintf(stdout, "System is %s\n", status)
	tw := newTable()
	fmt.Fprintf(tw, "  microphone permission\t%v\n", r.PermissionGranted)
	fmt.Fprintf(tw, "  storage\t%v (%d MB free)\n", r.SufficientStorage, r.AvailableStorageMB)
	fmt.Fprintf(tw, "  database\t%v\n", r.PersistenceReachable)
	fmt.Fprintf(tw, "  audio\t%v\n", r.AudioReachable)
	fmt.Fprintf(tw, "  entries\t%d\n", r.TotalEntries)
	fmt.Fprintf(tw, "  media size\t%d MB\n", r.TotalMediaSizeMB)
	fmt.Fprintf(tw, "  orphaned files\t%d\n", r.OrphanedFiles)
	tw.Flush()
}

func printIntegrity(r models.IntegrityReport) {
	fmt.Fprintf(stdout, "Integrity score: %.0f%%\n", r.IntegrityScore()*100)
	tw := newTable()
	fmt.Fprintf(tw, "  entries\t%d (%d valid)\n", r.TotalEntries, r.ValidEntries)
	fmt.Fprintf(tw, "  missing media\t%d\n", r.EntriesWithMissingFiles)
	fmt.Fprintf(tw, "  without media\t%d\n", r.EntriesWithoutAudioPath)
	fmt.Fprintf(tw, "  media files\t%d\n", r.TotalAudioFiles)
	fmt.Fprintf(tw, "  orphaned files\t%d\n", r.OrphanedAudioFiles)
	tw.Flush()
	for _, id := range r.MissingFileEntryIDs {
		fmt.Fprintf(stdout, "  missing: %s\n", id)
	}
	for _, p := range r.OrphanedPaths {
		fmt.Fprintf(stdout, "  orphan:  %s\n", p)
	}
}

// interrupted is closed on SIGINT or SIGTERM. Call the returned func to release it.
func interrupted() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return ch, func() { signal.Stop(ch) }
}
