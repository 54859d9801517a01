// filepath: internal/workflow/maintenance.go
package workflow

import (
	"context"
	"fmt"
	"path/filepath"

	"voicejournal/internal/logging"
	"voicejournal/internal/metrics"
	"voicejournal/internal/models"
	"voicejournal/internal/shared"
)

// PerformSystemHealthCheck probes every collaborator read-only.
func (c *Coordinator) PerformSystemHealthCheck(ctx context.Context) models.HealthReport {
	report := models.HealthReport{
		PermissionGranted: c.deps.Audio.HasRecordPermission(),
		AudioReachable:    c.deps.Audio.Probe() == nil,
		CheckedAt:         c.now(),
	}

	if free, err := c.deps.Media.AvailableFreeSpace(); err != nil {
		logging.Log.Warnf("Health check: could not read free space: %v", err)
	} else {
		report.AvailableStorageMB = shared.BytesToMB(free)
		report.SufficientStorage = free >= c.opts.MinFreeBytes
		metrics.StorageAvailableBytes.Set(float64(free))
	}

	if err := c.deps.Entries.Ping(ctx); err != nil {
		logging.Log.Warnf("Health check: persistence unreachable: %v", err)
	} else {
		report.PersistenceReachable = true
		if n, err := c.deps.Entries.Count(ctx); err == nil {
			report.TotalEntries = n
		}
	}

	if total, err := c.deps.Media.TotalSize(); err != nil {
		logging.Log.Warnf("Health check: could not size media: %v", err)
	} else {
		report.TotalMediaSizeMB = shared.BytesToMB(total)
	}

	files, err := c.deps.Media.ListAll()
	if err != nil {
		logging.Log.Warnf("Health check: could not list media: %v", err)
		return report
	}

	if report.PersistenceReachable {
		if scan, err := c.scan(ctx, files); err == nil {
			report.OrphanedFiles = len(scan.orphans)
		}
	}
	return report
}

type scanResult struct {
	report  models.IntegrityReport
	orphans []string
}

// scan compares one read of all entries with one listing of the media root.
// The two reads are not atomic with each other: an entry created between
// them can show up as an orphan. The file being recorded and any file still
// waiting for its entry are always skipped.
func (c *Coordinator) scan(ctx context.Context, files []string) (scanResult, error) {
	entries, err := c.deps.Entries.FetchAll(ctx)
	if err != nil {
		return scanResult{}, fmt.Errorf("could not fetch entries: %w", err)
	}

	onDisk := make(map[string]struct{}, len(files))
	for _, f := range files {
		onDisk[filepath.Clean(f)] = struct{}{}
	}

	res := scanResult{report: models.IntegrityReport{
		TotalEntries:        len(entries),
		TotalAudioFiles:     len(files),
		MissingFileEntryIDs: []string{},
		OrphanedPaths:       []string{},
		CheckedAt:           c.now(),
	}}

	referenced := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if !e.HasMedia() {
			res.report.EntriesWithoutAudioPath++
			continue
		}
		p := filepath.Clean(e.MediaPath)
		referenced[p] = struct{}{}

		if _, ok := onDisk[p]; ok || c.deps.Media.Exists(p) {
			res.report.ValidEntries++
		} else {
			res.report.EntriesWithMissingFiles++
			res.report.MissingFileEntryIDs = append(res.report.MissingFileEntryIDs, e.ID)
		}
	}

	skip := c.reservedPaths()
	if active := c.deps.Audio.ActiveRecordingPath(); active != "" {
		skip[filepath.Clean(active)] = struct{}{}
	}
	for _, f := range files {
		p := filepath.Clean(f)
		if _, ok := referenced[p]; ok {
			continue
		}
		if _, ok := skip[p]; ok {
			continue
		}
		res.orphans = append(res.orphans, f)
	}
	res.report.OrphanedAudioFiles = len(res.orphans)
	res.report.OrphanedPaths = append(res.report.OrphanedPaths, res.orphans...)
	return res, nil
}

// ValidateDataIntegrity classifies every entry and counts orphaned files.
func (c *Coordinator) ValidateDataIntegrity(ctx context.Context) (models.IntegrityReport, error) {
	files, err := c.deps.Media.ListAll()
	if err != nil {
		return models.IntegrityReport{}, fmt.Errorf("could not list media: %w", err)
	}
	res, err := c.scan(ctx, files)
	if err != nil {
		return models.IntegrityReport{}, err
	}
	r := res.report
	logging.Log.Infof("Integrity check: %d entries, %d valid, %d missing files, %d without audio, %d orphaned files",
		r.TotalEntries, r.ValidEntries, r.EntriesWithMissingFiles, r.EntriesWithoutAudioPath, r.OrphanedAudioFiles)
	return r, nil
}

// PerformMaintenanceCleanup deletes every media file no entry references.
// Running it again without intervening writes deletes nothing.
func (c *Coordinator) PerformMaintenanceCleanup(ctx context.Context) (report models.CleanupReport, err error) {
	defer func() { metrics.WorkflowOutcomes.WithLabelValues("maintenance_cleanup", metrics.Outcome(err)).Inc() }()

	files, err := c.deps.Media.ListAll()
	if err != nil {
		return report, fmt.Errorf("could not list media: %w", err)
	}
	res, err := c.scan(ctx, files)
	if err != nil {
		return report, err
	}

	report.OrphansFound = len(res.orphans)
	report.EntriesWithMissingFiles = res.report.EntriesWithMissingFiles
	for _, id := range res.report.MissingFileEntryIDs {
		logging.Log.Warnf("Entry %s references a missing media file", id)
	}

	for _, p := range res.orphans {
		size, _ := c.deps.Media.Size(p)
		if !c.deps.Media.Delete(p) {
			report.FailedDeletes++
			continue
		}
		report.FilesDeleted++
		report.BytesFreed += size
		logging.Log.Debugf("Removed orphaned media file %s", p)
	}
	metrics.OrphansDeleted.Add(float64(report.FilesDeleted))

	report.Message = cleanupMessage(report)
	logging.Log.Info(report.Message)
	return report, nil
}

func cleanupMessage(r models.CleanupReport) string {
	if r.OrphansFound == 0 {
		return "Maintenance cleanup: no orphaned files found"
	}
	msg := fmt.Sprintf("Maintenance cleanup: removed %d of %d orphaned file(s), freed %s",
		r.FilesDeleted, r.OrphansFound, shared.FormatBytes(r.BytesFreed))
	if r.FailedDeletes > 0 {
		msg += fmt.Sprintf(", %d could not be deleted", r.FailedDeletes)
	}
	return msg
}
