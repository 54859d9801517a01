// filepath: internal/media/inspect.go
package media

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"voicejournal/internal/logging"

	"github.com/dhowden/tag"
	"github.com/go-audio/wav"
)

// WAVDuration decodes the header of a WAV file and returns its length in seconds.
func WAVDuration(r io.ReadSeeker) (float64, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return 0, fmt.Errorf("not a valid WAV file")
	}
	d, err := decoder.Duration()
	if err != nil {
		return 0, fmt.Errorf("could not read WAV duration: %w", err)
	}
	return d.Seconds(), nil
}

// Duration returns the length of the recording at path. WAV files are decoded
// directly; other containers need ffprobe.
func (t Toolchain) Duration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if d, err := WAVDuration(f); err == nil {
		return d, nil
	}
	if t.FFprobe == "" {
		return 0, fmt.Errorf("cannot determine duration of %s: not WAV and ffprobe is not available", filepath.Base(path))
	}
	return t.probeDuration(path)
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func (t Toolchain) probeDuration(path string) (float64, error) {
	cmd := exec.Command(t.FFprobe, "-v", "quiet", "-print_format", "json", "-show_format", "-i", path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logging.Log.Errorf("ffprobe execution failed: %v\nffprobe output:\n%s", err, stderr.String())
		return 0, fmt.Errorf("ffprobe error: %w", err)
	}

	var out ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe JSON: %w", err)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(out.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe returned no duration: %w", err)
	}
	return d, nil
}

// ContentType sniffs the container of an audio payload. The file name is
// only consulted when the bytes are not recognized.
func ContentType(data []byte, filename string) string {
	r := bytes.NewReader(data)
	if _, fileType, err := tag.Identify(r); err == nil {
		switch fileType {
		case tag.M4A, tag.M4B, tag.M4P, tag.ALAC:
			return "audio/m4a"
		case tag.MP3:
			return "audio/mpeg"
		case tag.FLAC:
			return "audio/flac"
		case tag.OGG:
			return "audio/ogg"
		}
	}

	if _, err := r.Seek(0, io.SeekStart); err == nil && wav.NewDecoder(r).IsValidFile() {
		return "audio/wav"
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return "audio/wav"
	case ".m4a", ".mp4":
		return "audio/m4a"
	case ".mp3":
		return "audio/mpeg"
	case ".ogg", ".oga":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	}
	return "application/octet-stream"
}
