// filepath: internal/workflow/enrich.go
package workflow

import (
	"context"
	"fmt"
	"path/filepath"

	"voicejournal/internal/logging"
	"voicejournal/internal/metrics"
	"voicejournal/internal/models"
)

// claim marks an entry as being enriched. It returns false if it already is.
func (c *Coordinator) claim(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[id]; busy {
		return false
	}
	c.inflight[id] = struct{}{}
	return true
}

func (c *Coordinator) unclaim(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, id)
}

// enrichInBackground runs transcription and summarization detached from the
// caller. Failures are logged and queued as notifications only.
func (c *Coordinator) enrichInBackground(entry models.Entry) {
	c.mu.Lock()
	if c.stopping {
		c.mu.Unlock()
		return
	}
	if _, busy := c.inflight[entry.ID]; busy {
		c.mu.Unlock()
		return
	}
	c.inflight[entry.ID] = struct{}{}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		defer c.unclaim(entry.ID)

		if err := c.enrich(c.ctx, entry); err != nil {
			logging.Log.Errorf("Background enrichment of entry %s failed: %v", entry.ID, err)
			c.notify(Notification{
				Kind:    NotifyEnrichmentFailed,
				EntryID: entry.ID,
				Message: "Transcription failed",
				Err:     err,
			})
			return
		}
		c.notify(Notification{
			Kind:    NotifyEnrichmentCompleted,
			EntryID: entry.ID,
			Message: "Transcription completed",
		})
	}()
}

// EnrichEntry transcribes and summarizes an existing entry synchronously.
func (c *Coordinator) EnrichEntry(ctx context.Context, id string) error {
	if c.deps.Enricher == nil || !c.deps.Enricher.IsConfigured() {
		return newError(EnrichmentNotConfigured, nil)
	}
	entry, err := c.deps.Entries.GetEntry(ctx, id)
	if err != nil {
		return err
	}
	if !entry.HasMedia() {
		return newError(NoAudioFile, nil)
	}
	if !c.deps.Media.Exists(entry.MediaPath) {
		return newError(AudioFileNotFound, nil)
	}
	if !c.claim(id) {
		return newError(EnrichmentInProgress, nil)
	}
	defer c.unclaim(id)
	return c.enrich(ctx, *entry)
}

// enrich stores the transcript as soon as it is known so a failed summary
// does not lose it.
func (c *Coordinator) enrich(ctx context.Context, entry models.Entry) (err error) {
	defer func() { metrics.EnrichmentOutcomes.WithLabelValues(metrics.Outcome(err)).Inc() }()

	data, err := c.deps.Media.Load(entry.MediaPath)
	if err != nil {
		return fmt.Errorf("could not read audio: %w", err)
	}

	transcript, err := c.deps.Enricher.Transcribe(ctx, data, filepath.Base(entry.MediaPath))
	if err != nil {
		return fmt.Errorf("transcription: %w", err)
	}
	if err := c.deps.Entries.UpdateEntry(ctx, entry.ID, models.EntryUpdate{Transcript: &transcript}); err != nil {
		return fmt.Errorf("saving transcript: %w", err)
	}

	summary, err := c.deps.Enricher.Summarize(ctx, transcript)
	if err != nil {
		return fmt.Errorf("summarization: %w", err)
	}
	if err := c.deps.Entries.UpdateEntry(ctx, entry.ID, models.EntryUpdate{Summary: &summary}); err != nil {
		return fmt.Errorf("saving summary: %w", err)
	}

	logging.Log.Infof("Entry %s enriched (%d chars transcript)", entry.ID, len(transcript))
	return nil
}
