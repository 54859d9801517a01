// filepath: internal/audio/exec_backend.go
package audio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"voicejournal/internal/config"
	"voicejournal/internal/logging"
	"voicejournal/internal/media"
)

// ExecBackend records with ffmpeg and plays through an external player.
type ExecBackend struct {
	Tools       media.Toolchain
	InputFormat string
	Device      string
	SampleRate  int
	Channels    int
}

// NewExecBackend builds a backend from the audio config section.
func NewExecBackend(tools media.Toolchain, cfg config.AudioConfig) *ExecBackend {
	b := &ExecBackend{
		Tools:       tools,
		InputFormat: cfg.InputFormat,
		Device:      cfg.Device,
		SampleRate:  cfg.SampleRate,
		Channels:    cfg.Channels,
	}
	if b.InputFormat == "" || b.Device == "" {
		format, device := defaultInput()
		if b.InputFormat == "" {
			b.InputFormat = format
		}
		if b.Device == "" {
			b.Device = device
		}
	}
	if b.SampleRate <= 0 {
		b.SampleRate = 44100
	}
	if b.Channels <= 0 {
		b.Channels = 1
	}
	return b
}

func defaultInput() (string, string) {
	switch runtime.GOOS {
	case "darwin":
		return "avfoundation", ":0"
	case "windows":
		return "dshow", "audio=default"
	}
	return "pulse", "default"
}

func (b *ExecBackend) CaptureAvailable() error {
	if !b.Tools.CanRecord() {
		return fmt.Errorf("%w: ffmpeg not found", ErrBackendUnavailable)
	}
	return nil
}

func (b *ExecBackend) PlaybackAvailable() error {
	if !b.Tools.CanPlay() {
		return fmt.Errorf("%w: no audio player found", ErrBackendUnavailable)
	}
	return nil
}

func (b *ExecBackend) captureArgs(outputPath string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", b.InputFormat,
		"-i", b.Device,
		"-ac", strconv.Itoa(b.Channels),
		"-ar", strconv.Itoa(b.SampleRate),
		outputPath,
	}
}

func (b *ExecBackend) StartCapture(ctx context.Context, outputPath string) (Process, error) {
	if err := b.CaptureAvailable(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, fmt.Errorf("could not create recording directory: %w", err)
	}
	// The process must outlive the request that started it.
	cmd := exec.Command(b.Tools.FFmpeg, b.captureArgs(outputPath)...)
	logging.Log.Debugf("Starting capture: %s", strings.Join(cmd.Args, " "))

	// ffmpeg finalizes the WAV header when it reads "q".
	p, err := startProcess(cmd, "q")
	if err != nil {
		return nil, fmt.Errorf("could not start ffmpeg: %w", err)
	}
	return p, nil
}

// playerArgs returns the arguments for a known player.
func playerArgs(name, path string) []string {
	switch name {
	case "ffplay":
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}
	case "mpv":
		return []string{"--no-video", "--really-quiet", path}
	case "vlc", "cvlc":
		return []string{"--intf", "dummy", "--play-and-exit", path}
	case "aplay":
		return []string{"-q", path}
	}
	return []string{path}
}

func (b *ExecBackend) StartPlayback(ctx context.Context, path string) (Process, error) {
	if err := b.PlaybackAvailable(); err != nil {
		return nil, err
	}
	cmd := exec.Command(b.Tools.Player, playerArgs(b.Tools.PlayerName, path)...)
	logging.Log.Debugf("Starting playback: %s", strings.Join(cmd.Args, " "))

	p, err := startProcess(cmd, "")
	if err != nil {
		return nil, fmt.Errorf("could not start %s: %w", b.Tools.PlayerName, err)
	}
	return p, nil
}

func (b *ExecBackend) Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrFileNotFound
		}
		return fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return fmt.Errorf("%w: file is empty", ErrLoadFailed)
	}
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLoadFailed, err)
		}
		defer f.Close()
		if _, err := media.WAVDuration(f); err != nil {
			return fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}
	return nil
}

func (b *ExecBackend) Duration(path string) (float64, error) {
	return b.Tools.Duration(path)
}

var _ Backend = (*ExecBackend)(nil)
