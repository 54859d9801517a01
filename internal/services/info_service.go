// filepath: internal/services/info_service.go
package services

import (
	"time"

	"voicejournal/internal/media"
	"voicejournal/internal/models"
)

// ServiceName is reported by the info endpoint.
const ServiceName = "Voice Journal"

var _ InfoService = (*infoService)(nil)

type infoService struct {
	Version    string
	StartTime  time.Time
	Tools      media.Toolchain
	Enrichment bool
}

// NewInfoService creates a new InfoService.
func NewInfoService(version string, startTime time.Time, tools media.Toolchain, enrichmentConfigured bool) *infoService {
	return &infoService{
		Version:    version,
		StartTime:  startTime,
		Tools:      tools,
		Enrichment: enrichmentConfigured,
	}
}

// GetInfo retrieves the application information.
func (s *infoService) GetInfo() models.Info {
	return models.Info{
		ServiceName:          ServiceName,
		Version:              s.Version,
		UptimeSince:          s.StartTime,
		FFmpegAvailable:      s.Tools.CanRecord(),
		PlayerAvailable:      s.Tools.CanPlay(),
		EnrichmentConfigured: s.Enrichment,
	}
}
