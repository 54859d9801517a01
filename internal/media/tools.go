// filepath: internal/media/tools.go
// Package media locates the external audio tools and inspects recorded files.
package media

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"voicejournal/internal/logging"
)

// PreferredPlayers is the lookup order used when no player is configured.
var PreferredPlayers = []string{"ffplay", "mpv", "vlc", "aplay"}

// Toolchain holds the resolved paths of the external executables.
// Empty fields mean the tool is not available.
type Toolchain struct {
	FFmpeg     string
	FFprobe    string
	Player     string
	PlayerName string
}

// Discover resolves ffmpeg, ffprobe and a playback program. Configured paths
// win when they exist; otherwise the system PATH is searched.
func Discover(ffmpegConfigured, playerConfigured string) Toolchain {
	var tc Toolchain

	tc.FFmpeg = resolve("ffmpeg", ffmpegConfigured)
	if tc.FFmpeg == "" {
		logging.Log.Warn("---------------------------------------------------------")
		logging.Log.Warn("FFmpeg executable not found in configured path or system PATH.")
		logging.Log.Warn("Recording will be UNAVAILABLE.")
		logging.Log.Warn("---------------------------------------------------------")
	} else {
		probe := strings.Replace(tc.FFmpeg, "ffmpeg", "ffprobe", 1)
		if _, err := os.Stat(probe); err == nil {
			tc.FFprobe = probe
		} else if p, err := exec.LookPath("ffprobe"); err == nil {
			tc.FFprobe = p
		}
	}

	if playerConfigured != "" {
		if _, err := os.Stat(playerConfigured); err == nil {
			tc.Player = playerConfigured
			tc.PlayerName = strings.TrimSuffix(filepath.Base(playerConfigured), filepath.Ext(playerConfigured))
		} else {
			logging.Log.Warnf("Configured player_path '%s' not found, falling back to system PATH.", playerConfigured)
		}
	}
	if tc.Player == "" {
		for _, name := range PreferredPlayers {
			if p, err := exec.LookPath(name); err == nil {
				tc.Player, tc.PlayerName = p, name
				break
			}
		}
	}
	if tc.Player == "" {
		logging.Log.Warnf("No audio player found (tried: %s). Playback will be UNAVAILABLE.", strings.Join(PreferredPlayers, ", "))
	} else {
		logging.Log.Infof("Using audio player: %s", tc.Player)
	}

	return tc
}

func resolve(name, configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			logging.Log.Infof("Using configured %s path: %s", name, configured)
			return configured
		}
		logging.Log.Warnf("Configured %s path '%s' not found, falling back to system PATH.", name, configured)
	}
	p, err := exec.LookPath(name)
	if err != nil {
		return ""
	}
	logging.Log.Infof("%s found in PATH: %s", name, p)
	return p
}

// CanRecord reports whether capture is possible.
func (t Toolchain) CanRecord() bool { return t.FFmpeg != "" }

// CanPlay reports whether playback is possible.
func (t Toolchain) CanPlay() bool { return t.Player != "" }
