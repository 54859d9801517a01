// filepath: internal/housekeeping/interfaces.go
package housekeeping

import (
	"context"

	"voicejournal/internal/models"
)

// Maintainer is the part of the workflow coordinator housekeeping drives.
type Maintainer interface {
	PerformMaintenanceCleanup(ctx context.Context) (models.CleanupReport, error)
}

// TagStore removes tags no entry uses any more.
type TagStore interface {
	CleanupUnusedTags(ctx context.Context) (int, error)
}
