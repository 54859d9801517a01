// filepath: internal/models/models.go
// Package models contains the core data structures for the application.
package models

import (
	"encoding/json"
	"time"
)

// DefaultEntryTitle is given to every entry created from a recording.
const DefaultEntryTitle = "Voice Entry"

// Info represents general information about the service.
type Info struct {
	ServiceName          string    `json:"service_name"`
	Version              string    `json:"version"`
	UptimeSince          time.Time `json:"uptime_since"`
	FFmpegAvailable      bool      `json:"ffmpeg"`
	PlayerAvailable      bool      `json:"player"`
	EnrichmentConfigured bool      `json:"enrichment"`
}

// Entry is a persisted voice-journal record.
// An empty MediaPath means the entry has no media reference.
type Entry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	MediaPath   string    `json:"media_path,omitempty"`
	DurationSec float64   `json:"duration_sec"`
	CreatedAt   time.Time `json:"created_at"`
	Transcript  string    `json:"transcript,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	CategoryID  string    `json:"category_id,omitempty"`
	Tags        []Tag     `json:"tags,omitempty"`
}

// HasMedia reports whether the entry references a media resource.
func (e Entry) HasMedia() bool {
	return e.MediaPath != ""
}

// EntryUpdate carries the enrichment fields. Nil fields are left untouched.
type EntryUpdate struct {
	Transcript *string `json:"transcript,omitempty"`
	Summary    *string `json:"summary,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u EntryUpdate) IsEmpty() bool {
	return u.Transcript == nil && u.Summary == nil
}

// EntryQuery narrows an entry listing. Zero fields do not filter.
type EntryQuery struct {
	Text       string    `json:"q,omitempty"` // matched against title, transcript and summary
	CategoryID string    `json:"category_id,omitempty"`
	Tag        string    `json:"tag,omitempty"`
	Since      time.Time `json:"since,omitempty"`
	Until      time.Time `json:"until,omitempty"`
	Order      string    `json:"order,omitempty"` // "asc" or "desc" (default)
	Limit      int       `json:"limit,omitempty"`
	Offset     int       `json:"offset,omitempty"`
}

// Recording is what the audio controller reports once capture has stopped.
type Recording struct {
	Path        string  `json:"path"`
	DurationSec float64 `json:"duration_sec"`
}

// Category groups entries. Predefined categories are seeded by migration.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	IsCustom bool   `json:"is_custom"`
}

// CategoryStats summarizes the entries assigned to a category.
// A nil Category is the "Uncategorized" bucket.
type CategoryStats struct {
	Category         *Category `json:"category,omitempty"`
	Name             string    `json:"name"`
	EntryCount       int       `json:"entry_count"`
	TotalDurationSec float64   `json:"total_duration_sec"`
}

// Tag is a free-form label attached to entries.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TagStats counts how many entries carry a tag.
type TagStats struct {
	Tag        Tag `json:"tag"`
	EntryCount int `json:"entry_count"`
}

// HealthReport is a point-in-time snapshot of subsystem reachability.
type HealthReport struct {
	PermissionGranted    bool      `json:"permission_granted"`
	SufficientStorage    bool      `json:"sufficient_storage"`
	AvailableStorageMB   int64     `json:"available_storage_mb"`
	PersistenceReachable bool      `json:"persistence_reachable"`
	AudioReachable       bool      `json:"audio_reachable"`
	OrphanedFiles        int       `json:"orphaned_files"`
	TotalEntries         int       `json:"total_entries"`
	TotalMediaSizeMB     int64     `json:"total_media_size_mb"`
	CheckedAt            time.Time `json:"checked_at"`
}

// IsHealthy is true only when permission, storage, persistence and audio all hold.
// Orphaned files are advisory and do not affect it.
func (r HealthReport) IsHealthy() bool {
	return r.PermissionGranted && r.SufficientStorage && r.PersistenceReachable && r.AudioReachable
}

// MarshalJSON adds the derived is_healthy flag.
func (r HealthReport) MarshalJSON() ([]byte, error) {
	type plain HealthReport
	return json.Marshal(struct {
		plain
		IsHealthy bool `json:"is_healthy"`
	}{plain(r), r.IsHealthy()})
}

// IntegrityReport is a point-in-time consistency audit between entries and storage.
type IntegrityReport struct {
	TotalEntries            int       `json:"total_entries"`
	ValidEntries            int       `json:"valid_entries"`
	EntriesWithMissingFiles int       `json:"entries_with_missing_files"`
	EntriesWithoutAudioPath int       `json:"entries_without_audio_path"`
	TotalAudioFiles         int       `json:"total_audio_files"`
	OrphanedAudioFiles      int       `json:"orphaned_audio_files"`
	MissingFileEntryIDs     []string  `json:"missing_file_entry_ids,omitempty"`
	OrphanedPaths           []string  `json:"orphaned_paths,omitempty"`
	CheckedAt               time.Time `json:"checked_at"`
}

// IntegrityScore is ValidEntries / TotalEntries, or 1.0 when there are no entries.
func (r IntegrityReport) IntegrityScore() float64 {
	if r.TotalEntries <= 0 {
		return 1.0
	}
	score := float64(r.ValidEntries) / float64(r.TotalEntries)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// MarshalJSON adds the derived integrity_score.
func (r IntegrityReport) MarshalJSON() ([]byte, error) {
	type plain IntegrityReport
	return json.Marshal(struct {
		plain
		IntegrityScore float64 `json:"integrity_score"`
	}{plain(r), r.IntegrityScore()})
}

// CleanupReport summarizes a maintenance cleanup run.
type CleanupReport struct {
	OrphansFound            int    `json:"orphans_found"`
	FilesDeleted            int    `json:"files_deleted"`
	BytesFreed              int64  `json:"bytes_freed"`
	FailedDeletes           int    `json:"failed_deletes"`
	EntriesWithMissingFiles int    `json:"entries_with_missing_files"`
	Message                 string `json:"message"`
}
