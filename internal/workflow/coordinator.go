// filepath: internal/workflow/coordinator.go
// Package workflow sequences recording, playback and maintenance over the
// media store, the audio controller, the entry store and the enrichment client.
package workflow

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"voicejournal/internal/logging"
	"voicejournal/internal/metrics"
	"voicejournal/internal/models"
	"voicejournal/internal/shared"
)

// DefaultMinFreeBytes is the storage warning threshold when none is configured.
const DefaultMinFreeBytes int64 = 10 * 1024 * 1024

// Dependencies are the collaborators the coordinator drives.
type Dependencies struct {
	Media    MediaStore
	Audio    AudioController
	Entries  EntryStore
	Enricher Enricher // optional
}

// Options tune the coordinator.
type Options struct {
	MinFreeBytes       int64
	DisableAutoEnrich  bool
	NotificationBuffer int
}

// Coordinator implements Service.
type Coordinator struct {
	deps Dependencies
	opts Options
	now  func() time.Time

	// Background enrichment lifetime.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	inflight  map[string]struct{}
	reserved  map[string]struct{}
	recording string
	notes     chan Notification
	stopping  bool
	closed    bool
}

var _ Service = (*Coordinator)(nil)

// New creates a coordinator. Media, Audio and Entries are required.
func New(deps Dependencies, opts Options) (*Coordinator, error) {
	if deps.Media == nil || deps.Audio == nil || deps.Entries == nil {
		return nil, errors.New("workflow: media, audio and entries dependencies are required")
	}
	if opts.MinFreeBytes <= 0 {
		opts.MinFreeBytes = DefaultMinFreeBytes
	}
	if opts.NotificationBuffer <= 0 {
		opts.NotificationBuffer = defaultNotificationBuffer
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		deps:     deps,
		opts:     opts,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		inflight: make(map[string]struct{}),
		reserved: make(map[string]struct{}),
		notes:    make(chan Notification, opts.NotificationBuffer),
	}, nil
}

// StartRecordingWorkflow checks permission, storage and the audio system, then
// starts capture into a fresh media path. Low storage only raises a notification.
func (c *Coordinator) StartRecordingWorkflow(ctx context.Context) (err error) {
	defer func() { metrics.WorkflowOutcomes.WithLabelValues("start_recording", metrics.Outcome(err)).Inc() }()

	if !c.deps.Audio.HasRecordPermission() {
		return newError(NoRecordPermission, nil)
	}

	free, ferr := c.deps.Media.AvailableFreeSpace()
	switch {
	case ferr != nil:
		logging.Log.Warnf("Could not determine free storage: %v", ferr)
	case free < c.opts.MinFreeBytes:
		mb := shared.BytesToMB(free)
		logging.Log.Warnf("Storage space low: %d MB available", mb)
		c.notify(Notification{
			Kind:        NotifyStorageLow,
			AvailableMB: mb,
			Message:     "Storage space is running low",
			Err:         newError(StorageSpaceLow, nil),
		})
	}

	if perr := c.deps.Audio.Probe(); perr != nil {
		return newError(AudioSystemUnavailable, perr)
	}

	path := c.deps.Media.NewMediaPath()
	if err := c.deps.Audio.StartRecording(ctx, path); err != nil {
		return err
	}
	c.holdRecording(path)
	logging.Log.Infof("Recording workflow started: %s", path)
	return nil
}

// CompleteRecordingWorkflow turns a finished capture into a verified entry.
func (c *Coordinator) CompleteRecordingWorkflow(ctx context.Context, mediaPath string, durationSec float64) (entry *models.Entry, err error) {
	defer func() { metrics.WorkflowOutcomes.WithLabelValues("complete_recording", metrics.Outcome(err)).Inc() }()

	if !c.deps.Media.Exists(mediaPath) {
		return nil, newError(AudioFileNotCreated, nil)
	}
	size, serr := c.deps.Media.Size(mediaPath)
	if serr != nil || size == 0 {
		return nil, newError(EmptyAudioFile, serr)
	}

	c.reserve(mediaPath)
	defer c.release(mediaPath)

	entry, cerr := c.deps.Entries.CreateEntry(ctx, mediaPath, durationSec)
	if cerr != nil {
		if ctx.Err() != nil {
			logging.Log.Warnf("Save of %s interrupted, keeping media file for retry: %v", mediaPath, cerr)
		} else {
			c.discardMedia(mediaPath)
		}
		return nil, newError(CoreDataSaveFailed, cerr)
	}

	if verr := c.verifyPersisted(ctx, entry.ID); verr != nil && ctx.Err() != nil {
		logging.Log.Warnf("Verification of entry %s interrupted, keeping it: %v", entry.ID, verr)
	} else if verr != nil {
		if derr := c.deps.Entries.DeleteEntry(ctx, entry.ID); derr != nil && !errors.Is(derr, shared.ErrNotFound) {
			logging.Log.Warnf("Could not roll back unverified entry %s: %v", entry.ID, derr)
		}
		c.discardMedia(mediaPath)
		return nil, newError(CoreDataSaveFailed, verr)
	}

	logging.Log.Infof("Entry %s created (%.1fs, %s)", entry.ID, durationSec, shared.FormatBytes(size))

	if c.deps.Enricher != nil && c.deps.Enricher.IsConfigured() && !c.opts.DisableAutoEnrich {
		c.enrichInBackground(*entry)
	}
	return entry, nil
}

func (c *Coordinator) verifyPersisted(ctx context.Context, id string) error {
	entries, err := c.deps.Entries.FetchAll(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.ID == id {
			return nil
		}
	}
	return errors.New("entry missing after save")
}

func (c *Coordinator) discardMedia(path string) {
	if !c.deps.Media.Delete(path) {
		logging.Log.Errorf("Could not remove media file %s after failed save", path)
	}
}

// StopRecordingWorkflow stops capture and completes the recording. Once
// capture has stopped the entry is saved even if ctx is cancelled.
func (c *Coordinator) StopRecordingWorkflow(ctx context.Context) (*models.Entry, error) {
	rec, err := c.deps.Audio.StopRecording(ctx)
	if err != nil {
		if rec.Path == "" {
			return nil, err
		}
		logging.Log.Warnf("Recording stopped with error, validating file anyway: %v", err)
	}
	defer c.release(c.takeRecording())
	return c.CompleteRecordingWorkflow(context.WithoutCancel(ctx), rec.Path, rec.DurationSec)
}

// holdRecording reserves the path of a new capture until it is stopped.
// A capture that failed on its own stays reserved until the next one starts.
func (c *Coordinator) holdRecording(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recording != "" {
		delete(c.reserved, c.recording)
	}
	c.recording = path
	c.reserved[path] = struct{}{}
}

func (c *Coordinator) takeRecording() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	path := c.recording
	c.recording = ""
	return path
}

// reserve keeps path out of orphan detection until released.
func (c *Coordinator) reserve(path string) {
	c.mu.Lock()
	c.reserved[path] = struct{}{}
	c.mu.Unlock()
}

func (c *Coordinator) release(path string) {
	if path == "" {
		return
	}
	c.mu.Lock()
	if path != c.recording {
		delete(c.reserved, path)
	}
	c.mu.Unlock()
}

func (c *Coordinator) reservedPaths() map[string]struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]struct{}, len(c.reserved))
	for p := range c.reserved {
		out[filepath.Clean(p)] = struct{}{}
	}
	return out
}

// StartPlaybackWorkflow validates the entry's media and starts playback.
func (c *Coordinator) StartPlaybackWorkflow(ctx context.Context, entry models.Entry) (err error) {
	defer func() { metrics.WorkflowOutcomes.WithLabelValues("start_playback", metrics.Outcome(err)).Inc() }()

	if !entry.HasMedia() {
		return newError(NoAudioFile, nil)
	}
	if !c.deps.Media.Exists(entry.MediaPath) {
		return newError(AudioFileNotFound, nil)
	}
	return c.deps.Audio.LoadAndPlay(ctx, entry.MediaPath)
}

// PlayEntry looks up an entry and plays it.
func (c *Coordinator) PlayEntry(ctx context.Context, id string) error {
	entry, err := c.deps.Entries.GetEntry(ctx, id)
	if err != nil {
		return err
	}
	return c.StartPlaybackWorkflow(ctx, *entry)
}

// DeleteEntry removes the entry and then its media file. A media file that
// cannot be removed is left for maintenance cleanup.
func (c *Coordinator) DeleteEntry(ctx context.Context, id string) (err error) {
	defer func() { metrics.WorkflowOutcomes.WithLabelValues("delete_entry", metrics.Outcome(err)).Inc() }()

	entry, err := c.deps.Entries.GetEntry(ctx, id)
	if err != nil {
		return err
	}
	if err := c.deps.Entries.DeleteEntry(ctx, id); err != nil {
		return err
	}
	if entry.HasMedia() && !c.deps.Media.Delete(entry.MediaPath) {
		logging.Log.Warnf("Entry %s deleted but media file %s could not be removed", id, entry.MediaPath)
	}
	return nil
}

// Shutdown cancels background enrichment, waits for it and closes the notification queue.
func (c *Coordinator) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	c.stopping = true
	c.mu.Unlock()
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.notes)
	}
	c.mu.Unlock()
	return err
}
