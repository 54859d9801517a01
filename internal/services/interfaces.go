// filepath: internal/services/interfaces.go
package services

import (
	"context"

	"voicejournal/internal/audio"
	"voicejournal/internal/housekeeping"
	"voicejournal/internal/models"
)

// Auditor defines the interface for recording security-relevant events.
type Auditor interface {
	// Log records an event.
	// action: what happened (e.g., "entry.delete", "recording.start")
	// actor: who did it (API username or "cli")
	// resource: what was affected (e.g., "entry:01H...")
	// details: structured metadata about the event
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}

// InfoService defines the interface for the info service.
type InfoService interface {
	GetInfo() models.Info
}

// EntryService is the read side of the journal used by the API.
type EntryService interface {
	FetchAll(ctx context.Context) ([]models.Entry, error)
	GetEntry(ctx context.Context, id string) (*models.Entry, error)
	SearchEntries(ctx context.Context, q models.EntryQuery) ([]models.Entry, error)
}

// PlaybackService controls the playback that a workflow started.
type PlaybackService interface {
	PausePlayback() error
	ResumePlayback() error
	StopPlayback() error
	Status() audio.Status
}

// HousekeepingService defines the interface for the housekeeping service.
type HousekeepingService interface {
	Start()
	Stop()
	Trigger() (*housekeeping.Report, error)
}

var (
	_ PlaybackService     = (*audio.Controller)(nil)
	_ HousekeepingService = (*housekeeping.Service)(nil)
)
