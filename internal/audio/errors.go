// filepath: internal/audio/errors.go
package audio

import "errors"

// Errors raised by the controller and its backend.
var (
	ErrPermissionDenied   = errors.New("microphone permission denied")
	ErrBackendUnavailable = errors.New("audio system unavailable")
	ErrSessionInactive    = errors.New("audio session is not active")

	ErrRecordStartFailed = errors.New("failed to start recording")
	ErrRecordingFailed   = errors.New("recording failed")

	ErrFileNotFound   = errors.New("audio file not found")
	ErrLoadFailed     = errors.New("failed to load audio file")
	ErrPlayFailed     = errors.New("failed to start playback")
	ErrPlaybackFailed = errors.New("playback failed")
	ErrDecode         = errors.New("audio decoding error")

	ErrNotSupported = errors.New("operation not supported on this platform")
)
