// filepath: internal/workflow/interfaces.go
package workflow

import (
	"context"

	"voicejournal/internal/models"
)

// MediaStore is the storage/media accessor.
type MediaStore interface {
	NewMediaPath() string
	Exists(path string) bool
	Size(path string) (int64, error)
	Delete(path string) bool
	ListAll() ([]string, error)
	TotalSize() (int64, error)
	AvailableFreeSpace() (int64, error)
	Load(path string) ([]byte, error)
}

// AudioController is the audio session controller.
type AudioController interface {
	HasRecordPermission() bool
	Probe() error
	StartRecording(ctx context.Context, outputPath string) error
	StopRecording(ctx context.Context) (models.Recording, error)
	LoadAndPlay(ctx context.Context, path string) error
	ActiveRecordingPath() string
}

// EntryStore is the persistence accessor.
type EntryStore interface {
	CreateEntry(ctx context.Context, mediaPath string, durationSec float64) (*models.Entry, error)
	GetEntry(ctx context.Context, id string) (*models.Entry, error)
	FetchAll(ctx context.Context) ([]models.Entry, error)
	UpdateEntry(ctx context.Context, id string, update models.EntryUpdate) error
	DeleteEntry(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// Enricher is the transcription/summarization client.
type Enricher interface {
	IsConfigured() bool
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
	Summarize(ctx context.Context, text string) (string, error)
}

// Service is the coordinator as seen by the CLI and the HTTP API.
type Service interface {
	StartRecordingWorkflow(ctx context.Context) error
	CompleteRecordingWorkflow(ctx context.Context, mediaPath string, durationSec float64) (*models.Entry, error)
	StopRecordingWorkflow(ctx context.Context) (*models.Entry, error)
	StartPlaybackWorkflow(ctx context.Context, entry models.Entry) error
	PlayEntry(ctx context.Context, id string) error
	PerformSystemHealthCheck(ctx context.Context) models.HealthReport
	ValidateDataIntegrity(ctx context.Context) (models.IntegrityReport, error)
	PerformMaintenanceCleanup(ctx context.Context) (models.CleanupReport, error)
	EnrichEntry(ctx context.Context, id string) error
	DeleteEntry(ctx context.Context, id string) error
	Notifications() <-chan Notification
}
