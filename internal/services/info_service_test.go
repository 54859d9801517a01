// filepath: internal/services/info_service_test.go
package services

import (
	"testing"
	"time"

	"voicejournal/internal/media"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc := NewInfoService("1.0.0", start, media.Toolchain{FFmpeg: "/usr/bin/ffmpeg"}, true)

	info := svc.GetInfo()
	assert.Equal(t, ServiceName, info.ServiceName)
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, start, info.UptimeSince)
	assert.True(t, info.FFmpegAvailable)
	assert.False(t, info.PlayerAvailable)
	assert.True(t, info.EnrichmentConfigured)
}
