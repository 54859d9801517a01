// filepath: internal/audio/backend.go
package audio

import "context"

// Process is a running capture or playback.
type Process interface {
	// Stop ends the process gracefully and waits for it to exit.
	Stop() error
	// Wait blocks until the process exits on its own or is stopped.
	Wait() error
	Pause() error
	Resume() error
}

// Backend starts the platform audio processes.
type Backend interface {
	CaptureAvailable() error
	PlaybackAvailable() error
	StartCapture(ctx context.Context, outputPath string) (Process, error)
	StartPlayback(ctx context.Context, path string) (Process, error)
	// Validate checks that path holds decodable audio.
	Validate(path string) error
	Duration(path string) (float64, error)
}
