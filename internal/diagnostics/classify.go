// filepath: internal/diagnostics/classify.go
package diagnostics

import (
	"context"
	"errors"
	"fmt"

	"voicejournal/internal/audio"
	"voicejournal/internal/enrichment"
	"voicejournal/internal/shared"
	"voicejournal/internal/storage"
	"voicejournal/internal/workflow"
)

type rule struct {
	category Category
	severity Severity
	title    string
	actions  []Action
}

var workflowRules = map[workflow.Kind]rule{
	workflow.NoRecordPermission:      {CategoryPermissions, SeverityHigh, "Microphone Permission Required", []Action{ActionOpenSettings, ActionDismiss}},
	workflow.AudioSystemUnavailable:  {CategoryRecording, SeverityHigh, "Audio System Unavailable", []Action{ActionRetry, ActionDismiss}},
	workflow.AudioFileNotCreated:     {CategoryRecording, SeverityHigh, "Recording Error", []Action{ActionRetry, ActionDismiss}},
	workflow.EmptyAudioFile:          {CategoryRecording, SeverityMedium, "Recording Error", []Action{ActionRetry, ActionDismiss}},
	workflow.CoreDataSaveFailed:      {CategoryData, SeverityHigh, "Failed to Save Entry", []Action{ActionRetry, ActionDismiss}},
	workflow.NoAudioFile:             {CategoryPlayback, SeverityLow, "No Audio File", []Action{ActionDismiss}},
	workflow.AudioFileNotFound:       {CategoryPlayback, SeverityMedium, "Audio File Missing", []Action{ActionDismiss}},
	workflow.StorageSpaceLow:         {CategoryStorage, SeverityMedium, "Storage Space Low", []Action{ActionManageStorage, ActionDismiss}},
	workflow.EnrichmentNotConfigured: {CategoryNetwork, SeverityLow, "Transcription Not Configured", []Action{ActionOpenSettings, ActionDismiss}},
	workflow.EnrichmentInProgress:    {CategoryNetwork, SeverityLow, "Transcription In Progress", []Action{ActionDismiss}},
}

// Collaborator errors, checked in order with errors.Is.
var sentinelRules = []struct {
	err error
	rule
}{
	{audio.ErrPermissionDenied, rule{CategoryPermissions, SeverityHigh, "Microphone Permission Required", []Action{ActionOpenSettings, ActionDismiss}}},
	{audio.ErrBackendUnavailable, rule{CategoryRecording, SeverityHigh, "Audio System Unavailable", []Action{ActionRetry, ActionDismiss}}},
	{audio.ErrRecordStartFailed, rule{CategoryRecording, SeverityHigh, "Recording Error", []Action{ActionRetry, ActionDismiss}}},
	{audio.ErrRecordingFailed, rule{CategoryRecording, SeverityHigh, "Recording Error", []Action{ActionRetry, ActionDismiss}}},
	{audio.ErrFileNotFound, rule{CategoryPlayback, SeverityMedium, "Audio File Missing", []Action{ActionDismiss}}},
	{audio.ErrLoadFailed, rule{CategoryPlayback, SeverityMedium, "Playback Error", []Action{ActionRetry, ActionDismiss}}},
	{audio.ErrDecode, rule{CategoryPlayback, SeverityMedium, "Audio File Damaged", []Action{ActionDismiss}}},
	{audio.ErrPlayFailed, rule{CategoryPlayback, SeverityLow, "Playback Error", []Action{ActionRetry, ActionDismiss}}},
	{audio.ErrPlaybackFailed, rule{CategoryPlayback, SeverityLow, "Playback Error", []Action{ActionRetry, ActionDismiss}}},
	{audio.ErrIllegalTransition, rule{CategorySystem, SeverityLow, "Operation Not Allowed", []Action{ActionDismiss}}},
	{audio.ErrNotSupported, rule{CategorySystem, SeverityLow, "Not Supported", []Action{ActionDismiss}}},

	{enrichment.ErrNoAPIKey, rule{CategoryNetwork, SeverityLow, "Transcription Not Configured", []Action{ActionOpenSettings, ActionDismiss}}},
	{enrichment.ErrInvalidAPIKey, rule{CategoryNetwork, SeverityMedium, "Invalid API Key", []Action{ActionOpenSettings, ActionDismiss}}},
	{enrichment.ErrInvalidKeyFormat, rule{CategoryNetwork, SeverityMedium, "Invalid API Key", []Action{ActionOpenSettings, ActionDismiss}}},
	{enrichment.ErrNetwork, rule{CategoryNetwork, SeverityMedium, "Network Error", []Action{ActionRetry, ActionDismiss}}},
	{enrichment.ErrNoResponse, rule{CategoryNetwork, SeverityLow, "No Response", []Action{ActionRetry, ActionDismiss}}},

	{storage.ErrOutsideRoot, rule{CategoryStorage, SeverityCritical, "Invalid Media Path", []Action{ActionContactSupport, ActionDismiss}}},
	{shared.ErrNotFound, rule{CategoryData, SeverityLow, "Entry Not Found", []Action{ActionDismiss}}},
	{shared.ErrInvalidFilter, rule{CategoryData, SeverityLow, "Invalid Filter", []Action{ActionDismiss}}},
	{context.DeadlineExceeded, rule{CategorySystem, SeverityMedium, "Operation Timed Out", []Action{ActionRetry, ActionDismiss}}},
	{context.Canceled, rule{CategorySystem, SeverityLow, "Operation Cancelled", []Action{ActionDismiss}}},
}

var fallback = rule{CategorySystem, SeverityMedium, "Unexpected Error", []Action{ActionRetry, ActionDismiss}}

// Classify maps err to a severity and recovery actions. category is the area
// the caller was working in; an empty category is inferred from the error.
// It never panics, nil included.
func Classify(err error, category Category) Classification {
	r, msg, known := match(err)
	if !known {
		if category == "" {
			category = CategorySystem
		}
		return Classification{
			Category:    category,
			Severity:    fallback.severity,
			Title:       fallback.title,
			Message:     fmt.Sprintf("An error occurred in %s: %s", category, describe(err)),
			Actions:     append([]Action(nil), fallback.actions...),
			Suggestions: Suggestions(category),
		}
	}
	if category == "" {
		category = r.category
	}
	return Classification{
		Category:    category,
		Severity:    r.severity,
		Title:       r.title,
		Message:     msg,
		Actions:     append([]Action(nil), r.actions...),
		Suggestions: Suggestions(category),
	}
}

func match(err error) (rule, string, bool) {
	if err == nil {
		return rule{}, "", false
	}

	var wfErr *workflow.Error
	if errors.As(err, &wfErr) {
		if r, ok := workflowRules[wfErr.Kind]; ok {
			return r, wfErr.Kind.Message(), true
		}
	}

	var apiErr *enrichment.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsQuota() {
			return rule{CategoryNetwork, SeverityMedium, "Usage Limit Reached", []Action{ActionRetry, ActionDismiss}}, apiErr.Message, true
		}
		return rule{CategoryNetwork, SeverityMedium, "Service Error", []Action{ActionRetry, ActionDismiss}}, apiErr.Message, true
	}

	for _, s := range sentinelRules {
		if errors.Is(err, s.err) {
			return s.rule, err.Error(), true
		}
	}
	return rule{}, "", false
}

func describe(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
