// filepath: internal/audio/state.go
package audio

import (
	"errors"
	"fmt"
)

// RecordingState is the state of the single recording slot.
type RecordingState int

const (
	RecordingIdle RecordingState = iota
	Recording
	RecordingStopping
)

func (s RecordingState) String() string {
	switch s {
	case RecordingIdle:
		return "IDLE"
	case Recording:
		return "RECORDING"
	case RecordingStopping:
		return "STOPPING"
	}
	return fmt.Sprintf("RecordingState(%d)", int(s))
}

// PlaybackState is the state of the single playback slot.
type PlaybackState int

const (
	PlaybackIdle PlaybackState = iota
	PlaybackLoading
	PlaybackPlaying
	PlaybackPaused
	PlaybackStopped
)

func (s PlaybackState) String() string {
	switch s {
	case PlaybackIdle:
		return "IDLE"
	case PlaybackLoading:
		return "LOADING"
	case PlaybackPlaying:
		return "PLAYING"
	case PlaybackPaused:
		return "PAUSED"
	case PlaybackStopped:
		return "STOPPED"
	}
	return fmt.Sprintf("PlaybackState(%d)", int(s))
}

// ErrIllegalTransition matches every TransitionError.
var ErrIllegalTransition = errors.New("illegal state transition")

// TransitionError reports an operation that is not allowed in the current state.
type TransitionError struct {
	Machine string // "recording" or "playback"
	From    string
	Op      string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s while %s", e.Machine, e.Op, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }

// Allowed recording transitions.
var recordingTransitions = map[RecordingState][]RecordingState{
	RecordingIdle:     {Recording},
	Recording:         {RecordingStopping, RecordingIdle},
	RecordingStopping: {RecordingIdle},
}

// Allowed playback transitions.
var playbackTransitions = map[PlaybackState][]PlaybackState{
	PlaybackIdle:    {PlaybackLoading},
	PlaybackLoading: {PlaybackPlaying, PlaybackIdle},
	PlaybackPlaying: {PlaybackPaused, PlaybackStopped, PlaybackIdle},
	PlaybackPaused:  {PlaybackPlaying, PlaybackStopped, PlaybackIdle},
	PlaybackStopped: {PlaybackIdle},
}

func canRecord(from, to RecordingState) bool {
	for _, s := range recordingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func canPlay(from, to PlaybackState) bool {
	for _, s := range playbackTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
