// filepath: internal/housekeeping/tasks.go
package housekeeping

import (
	"context"
	"fmt"

	"voicejournal/internal/logging"
	"voicejournal/internal/models"
	"voicejournal/internal/shared"
)

// Dependencies defines the required services for the housekeeping tasks.
type Dependencies struct {
	Maintainer Maintainer
	Tags       TagStore // optional
}

// Report summarizes one housekeeping run.
type Report struct {
	Cleanup     models.CleanupReport `json:"cleanup"`
	TagsRemoved int                  `json:"tags_removed"`
	Message     string               `json:"message"`
}

// RunOnce removes orphaned media files and unused tags.
func RunOnce(ctx context.Context, deps Dependencies) (*Report, error) {
	cleanup, err := deps.Maintainer.PerformMaintenanceCleanup(ctx)
	if err != nil {
		return nil, fmt.Errorf("maintenance cleanup failed: %w", err)
	}
	report := &Report{Cleanup: cleanup}

	if deps.Tags != nil {
		removed, err := deps.Tags.CleanupUnusedTags(ctx)
		if err != nil {
			logging.Log.Errorf("Housekeeping tag cleanup failed: %v", err)
		}
		report.TagsRemoved = removed
	}

	report.Message = fmt.Sprintf("Housekeeping complete. %d orphaned files deleted, freeing %s; %d unused tags removed.",
		cleanup.FilesDeleted, shared.FormatBytes(cleanup.BytesFreed), report.TagsRemoved)
	return report, nil
}
