// filepath: internal/audio/controller.go
// Package audio owns the single recording slot and the single playback slot.
package audio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"voicejournal/internal/logging"
	"voicejournal/internal/models"
)

// Status is a point-in-time view of the controller.
type Status struct {
	Recording     string `json:"recording"`
	RecordingPath string `json:"recording_path,omitempty"`
	Playback      string `json:"playback"`
	PlaybackPath  string `json:"playback_path,omitempty"`
	SessionActive bool   `json:"session_active"`
}

// Controller serializes access to the audio backend.
type Controller struct {
	backend Backend
	perms   PermissionStore
	events  broker
	now     func() time.Time

	mu sync.Mutex

	recState   RecordingState
	recPath    string
	recStarted time.Time
	recProc    Process

	playState PlaybackState
	playPath  string
	playProc  Process
	playGen   uint64

	sessionRefs int
}

func NewController(backend Backend, perms PermissionStore) *Controller {
	if perms == nil {
		perms = NewMemoryPermissionStore(PermissionUndetermined)
	}
	return &Controller{backend: backend, perms: perms, now: time.Now}
}

// Subscribe registers for lifecycle events.
func (c *Controller) Subscribe() *Subscription { return c.events.subscribe() }

func (c *Controller) publish(kind EventKind, path string, dur float64, err error) {
	c.events.publish(Event{Kind: kind, Path: path, DurationSec: dur, Err: err, At: c.now()})
}

// --- Permission ---

func (c *Controller) HasRecordPermission() bool {
	return c.perms.Status() == PermissionGranted
}

func (c *Controller) PermissionStatus() PermissionStatus {
	return c.perms.Status()
}

// RequestPermission returns the stored decision, asking the prompter only
// when none has been made yet. A prompter error counts as a denial and is not persisted.
func (c *Controller) RequestPermission(ctx context.Context, prompter Prompter) (bool, error) {
	switch c.perms.Status() {
	case PermissionGranted:
		return true, nil
	case PermissionDenied:
		return false, nil
	}
	if prompter == nil {
		return false, nil
	}
	granted, err := prompter.Confirm(ctx, "Allow voicejournal to record from the microphone?")
	if err != nil {
		logging.Log.Warnf("Microphone permission prompt failed: %v", err)
		return false, nil
	}
	if err := c.perms.Set(granted); err != nil {
		return granted, fmt.Errorf("could not persist permission: %w", err)
	}
	logging.Log.Infof("Microphone permission %s", map[bool]string{true: "granted", false: "denied"}[granted])
	return granted, nil
}

// --- Session ---

// Probe checks that capture is possible without activating anything.
func (c *Controller) Probe() error {
	return c.backend.CaptureAvailable()
}

// ActivateSession takes a reference on the audio session.
func (c *Controller) ActivateSession() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activateLocked()
}

func (c *Controller) activateLocked() error {
	if c.sessionRefs == 0 {
		capErr := c.backend.CaptureAvailable()
		playErr := c.backend.PlaybackAvailable()
		if capErr != nil && playErr != nil {
			return errors.Join(capErr, playErr)
		}
		logging.Log.Debug("Audio session activated")
	}
	c.sessionRefs++
	return nil
}

// DeactivateSession releases a reference taken by ActivateSession.
func (c *Controller) DeactivateSession() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deactivateLocked()
}

func (c *Controller) deactivateLocked() error {
	if c.sessionRefs == 0 {
		return ErrSessionInactive
	}
	c.sessionRefs--
	if c.sessionRefs == 0 {
		logging.Log.Debug("Audio session deactivated")
	}
	return nil
}

// --- Recording ---

// StartRecording begins capture into outputPath.
func (c *Controller) StartRecording(ctx context.Context, outputPath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !canRecord(c.recState, Recording) {
		return &TransitionError{Machine: "recording", From: c.recState.String(), Op: "start recording"}
	}
	if !c.HasRecordPermission() {
		return ErrPermissionDenied
	}
	if err := c.backend.CaptureAvailable(); err != nil {
		return err
	}
	if err := c.activateLocked(); err != nil {
		return err
	}

	proc, err := c.backend.StartCapture(ctx, outputPath)
	if err != nil {
		_ = c.deactivateLocked()
		wrapped := fmt.Errorf("%w: %v", ErrRecordStartFailed, err)
		c.publish(EventRecordingFailed, outputPath, 0, wrapped)
		return wrapped
	}

	c.recState = Recording
	c.recPath = outputPath
	c.recStarted = c.now()
	c.recProc = proc
	logging.Log.Infof("Recording started: %s", outputPath)
	c.publish(EventRecordingStarted, outputPath, 0, nil)

	go c.watchRecording(proc, outputPath)
	return nil
}

// watchRecording resets the slot when capture exits without being stopped.
func (c *Controller) watchRecording(proc Process, path string) {
	err := proc.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recProc != proc || c.recState != Recording {
		return
	}
	if err == nil {
		err = errors.New("capture process exited")
	}
	failure := fmt.Errorf("%w: %v", ErrRecordingFailed, err)
	logging.Log.Errorf("Recording of %s ended unexpectedly: %v", path, err)

	c.recState = RecordingIdle
	c.recPath = ""
	c.recProc = nil
	_ = c.deactivateLocked()
	c.publish(EventRecordingFailed, path, 0, failure)
}

// StopRecording finalizes the capture and returns its path and duration.
func (c *Controller) StopRecording(ctx context.Context) (models.Recording, error) {
	c.mu.Lock()
	if !canRecord(c.recState, RecordingStopping) {
		state := c.recState
		c.mu.Unlock()
		return models.Recording{}, &TransitionError{Machine: "recording", From: state.String(), Op: "stop recording"}
	}
	c.recState = RecordingStopping
	proc, path, started := c.recProc, c.recPath, c.recStarted
	c.mu.Unlock()

	stopErr := proc.Stop()
	elapsed := c.now().Sub(started).Seconds()

	c.mu.Lock()
	c.recState = RecordingIdle
	c.recPath = ""
	c.recProc = nil
	_ = c.deactivateLocked()
	c.mu.Unlock()

	dur, err := c.backend.Duration(path)
	if err != nil {
		logging.Log.Debugf("Could not read duration of %s, using wall clock: %v", path, err)
		dur = elapsed
	}
	if dur < 0 {
		dur = 0
	}
	rec := models.Recording{Path: path, DurationSec: dur}

	if stopErr != nil {
		failure := fmt.Errorf("%w: %v", ErrRecordingFailed, stopErr)
		c.publish(EventRecordingFailed, path, dur, failure)
		return rec, failure
	}
	logging.Log.Infof("Recording stopped: %s (%.1fs)", path, dur)
	c.publish(EventRecordingStopped, path, dur, nil)
	return rec, nil
}

// ActiveRecordingPath returns the file being captured, or "".
func (c *Controller) ActiveRecordingPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recState == RecordingIdle {
		return ""
	}
	return c.recPath
}

func (c *Controller) RecordingState() RecordingState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recState
}

// --- Playback ---

// LoadAndPlay validates path and starts playing it.
func (c *Controller) LoadAndPlay(ctx context.Context, path string) error {
	c.mu.Lock()
	if !canPlay(c.playState, PlaybackLoading) {
		state := c.playState
		c.mu.Unlock()
		return &TransitionError{Machine: "playback", From: state.String(), Op: "load"}
	}
	c.playState = PlaybackLoading
	c.playPath = path
	c.mu.Unlock()

	fail := func(err error) error {
		c.mu.Lock()
		c.playState = PlaybackIdle
		c.playPath = ""
		c.mu.Unlock()
		c.publish(EventPlaybackFailed, path, 0, err)
		return err
	}

	if err := c.backend.Validate(path); err != nil {
		return fail(err)
	}
	if err := c.backend.PlaybackAvailable(); err != nil {
		return fail(err)
	}

	c.mu.Lock()
	if err := c.activateLocked(); err != nil {
		c.mu.Unlock()
		return fail(err)
	}
	proc, err := c.backend.StartPlayback(ctx, path)
	if err != nil {
		_ = c.deactivateLocked()
		c.mu.Unlock()
		return fail(fmt.Errorf("%w: %v", ErrPlayFailed, err))
	}
	c.playState = PlaybackPlaying
	c.playProc = proc
	c.playGen++
	gen := c.playGen
	c.mu.Unlock()

	logging.Log.Infof("Playback started: %s", path)
	c.publish(EventPlaybackStarted, path, 0, nil)
	go c.watchPlayback(proc, path, gen)
	return nil
}

// watchPlayback handles the natural end of playback.
func (c *Controller) watchPlayback(proc Process, path string, gen uint64) {
	err := proc.Wait()

	c.mu.Lock()
	if c.playGen != gen || (c.playState != PlaybackPlaying && c.playState != PlaybackPaused) {
		c.mu.Unlock()
		return
	}
	c.playState = PlaybackIdle
	c.playPath = ""
	c.playProc = nil
	_ = c.deactivateLocked()
	c.mu.Unlock()

	if err != nil {
		failure := fmt.Errorf("%w: %v", ErrPlaybackFailed, err)
		logging.Log.Errorf("Playback of %s failed: %v", path, err)
		c.publish(EventPlaybackFailed, path, 0, failure)
		return
	}
	logging.Log.Debugf("Playback finished: %s", path)
	c.publish(EventPlaybackFinished, path, 0, nil)
}

func (c *Controller) PausePlayback() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playState != PlaybackPlaying {
		return &TransitionError{Machine: "playback", From: c.playState.String(), Op: "pause"}
	}
	if err := c.playProc.Pause(); err != nil {
		return fmt.Errorf("could not pause playback: %w", err)
	}
	c.playState = PlaybackPaused
	c.publish(EventPlaybackPaused, c.playPath, 0, nil)
	return nil
}

func (c *Controller) ResumePlayback() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playState != PlaybackPaused {
		return &TransitionError{Machine: "playback", From: c.playState.String(), Op: "resume"}
	}
	if err := c.playProc.Resume(); err != nil {
		return fmt.Errorf("could not resume playback: %w", err)
	}
	c.playState = PlaybackPlaying
	c.publish(EventPlaybackResumed, c.playPath, 0, nil)
	return nil
}

// StopPlayback ends playback and returns the slot to idle.
func (c *Controller) StopPlayback() error {
	c.mu.Lock()
	if !canPlay(c.playState, PlaybackStopped) {
		state := c.playState
		c.mu.Unlock()
		return &TransitionError{Machine: "playback", From: state.String(), Op: "stop"}
	}
	c.playState = PlaybackStopped
	c.playGen++
	proc, path := c.playProc, c.playPath
	c.mu.Unlock()

	err := proc.Stop()

	c.mu.Lock()
	c.playState = PlaybackIdle
	c.playPath = ""
	c.playProc = nil
	_ = c.deactivateLocked()
	c.mu.Unlock()

	c.publish(EventPlaybackStopped, path, 0, nil)
	if err != nil {
		return fmt.Errorf("could not stop playback: %w", err)
	}
	return nil
}

func (c *Controller) PlaybackState() PlaybackState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playState
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		Recording:     c.recState.String(),
		RecordingPath: c.recPath,
		Playback:      c.playState.String(),
		PlaybackPath:  c.playPath,
		SessionActive: c.sessionRefs > 0,
	}
}

// Close stops any active recording or playback and drops all subscribers.
func (c *Controller) Close(ctx context.Context) error {
	var errs []error
	if c.RecordingState() == Recording {
		if _, err := c.StopRecording(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	switch c.PlaybackState() {
	case PlaybackPlaying, PlaybackPaused:
		if err := c.StopPlayback(); err != nil {
			errs = append(errs, err)
		}
	}
	c.events.closeAll()
	return errors.Join(errs...)
}
