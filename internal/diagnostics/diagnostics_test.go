// filepath: internal/diagnostics/diagnostics_test.go
package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"voicejournal/internal/audio"
	"voicejournal/internal/enrichment"
	"voicejournal/internal/shared"
	"voicejournal/internal/storage"
	"voicejournal/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityOrder(t *testing.T) {
	assert.Less(t, SeverityLow, SeverityMedium)
	assert.Less(t, SeverityMedium, SeverityHigh)
	assert.Less(t, SeverityHigh, SeverityCritical)

	var s Severity
	require.NoError(t, s.UnmarshalText([]byte("HIGH")))
	assert.Equal(t, SeverityHigh, s)
	assert.Error(t, s.UnmarshalText([]byte("meh")))
}

func TestClassify_WorkflowKinds(t *testing.T) {
	cases := []struct {
		kind     workflow.Kind
		severity Severity
		title    string
		first    Action
	}{
		{workflow.NoRecordPermission, SeverityHigh, "Microphone Permission Required", ActionOpenSettings},
		{workflow.AudioSystemUnavailable, SeverityHigh, "Audio System Unavailable", ActionRetry},
		{workflow.AudioFileNotCreated, SeverityHigh, "Recording Error", ActionRetry},
		{workflow.EmptyAudioFile, SeverityMedium, "Recording Error", ActionRetry},
		{workflow.CoreDataSaveFailed, SeverityHigh, "Failed to Save Entry", ActionRetry},
		{workflow.NoAudioFile, SeverityLow, "No Audio File", ActionDismiss},
		{workflow.AudioFileNotFound, SeverityMedium, "Audio File Missing", ActionDismiss},
		{workflow.StorageSpaceLow, SeverityMedium, "Storage Space Low", ActionManageStorage},
		{workflow.EnrichmentNotConfigured, SeverityLow, "Transcription Not Configured", ActionOpenSettings},
		{workflow.EnrichmentInProgress, SeverityLow, "Transcription In Progress", ActionDismiss},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &workflow.Error{Kind: tc.kind, Err: errors.New("cause")})
			c := Classify(err, "")
			assert.Equal(t, tc.severity, c.Severity)
			assert.Equal(t, tc.title, c.Title)
			require.NotEmpty(t, c.Actions)
			assert.Equal(t, tc.first, c.Actions[0])
			assert.Equal(t, tc.kind.Message(), c.Message)
			assert.NotEmpty(t, c.Suggestions)
		})
	}
}

func TestClassify_EveryKindIsMapped(t *testing.T) {
	for kind := workflow.NoRecordPermission; kind <= workflow.EnrichmentInProgress; kind++ {
		c := Classify(&workflow.Error{Kind: kind}, CategorySystem)
		assert.NotEqual(t, "Unexpected Error", c.Title, kind.String())
	}
}

func TestClassify_CollaboratorErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		category Category
		severity Severity
	}{
		{"decode", fmt.Errorf("%w: bad header", audio.ErrDecode), CategoryPlayback, SeverityMedium},
		{"file not found", audio.ErrFileNotFound, CategoryPlayback, SeverityMedium},
		{"play failed", audio.ErrPlayFailed, CategoryPlayback, SeverityLow},
		{"record start", audio.ErrRecordStartFailed, CategoryRecording, SeverityHigh},
		{"illegal transition", &audio.TransitionError{Machine: "playback", From: "IDLE", Op: "pause"}, CategorySystem, SeverityLow},
		{"no key", enrichment.ErrNoAPIKey, CategoryNetwork, SeverityLow},
		{"invalid key", enrichment.ErrInvalidAPIKey, CategoryNetwork, SeverityMedium},
		{"network", fmt.Errorf("transcription: %w", enrichment.ErrNetwork), CategoryNetwork, SeverityMedium},
		{"no response", enrichment.ErrNoResponse, CategoryNetwork, SeverityLow},
		{"not found", shared.ErrNotFound, CategoryData, SeverityLow},
		{"outside root", storage.ErrOutsideRoot, CategoryStorage, SeverityCritical},
		{"timeout", context.DeadlineExceeded, CategorySystem, SeverityMedium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Classify(tc.err, "")
			assert.Equal(t, tc.category, c.Category)
			assert.Equal(t, tc.severity, c.Severity)
			assert.NotEqual(t, "Unexpected Error", c.Title)
		})
	}
}

func TestClassify_APIError(t *testing.T) {
	quota := Classify(&enrichment.APIError{Status: 429, Message: "quota exceeded"}, "")
	assert.Equal(t, "Usage Limit Reached", quota.Title)
	assert.Equal(t, "quota exceeded", quota.Message)

	other := Classify(fmt.Errorf("summarization: %w", &enrichment.APIError{Status: 500, Message: "HTTP 500"}), CategoryNetwork)
	assert.Equal(t, "Service Error", other.Title)
	assert.Equal(t, SeverityMedium, other.Severity)
}

func TestClassify_Fallback(t *testing.T) {
	c := Classify(errors.New("boom"), CategoryData)
	assert.Equal(t, "Unexpected Error", c.Title)
	assert.Equal(t, SeverityMedium, c.Severity)
	assert.Equal(t, []Action{ActionRetry, ActionDismiss}, c.Actions)
	assert.Equal(t, "An error occurred in data: boom", c.Message)

	assert.NotPanics(t, func() {
		n := Classify(nil, "")
		assert.Equal(t, SeverityMedium, n.Severity)
		assert.Equal(t, CategorySystem, n.Category)
	})
}

func TestClassify_ExplicitCategoryWins(t *testing.T) {
	c := Classify(audio.ErrFileNotFound, CategoryData)
	assert.Equal(t, CategoryData, c.Category)
	assert.Equal(t, SeverityMedium, c.Severity)
}

func TestClassify_ActionsAreCopies(t *testing.T) {
	c := Classify(errors.New("x"), "")
	c.Actions[0] = ActionContactSupport
	assert.Equal(t, ActionRetry, Classify(errors.New("x"), "").Actions[0])
}

func TestJournal(t *testing.T) {
	j := NewJournal(3)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	j.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for i := 0; i < 5; i++ {
		j.Record(fmt.Errorf("failure %d", i), CategorySystem, "test")
	}
	assert.Equal(t, 3, j.Len(), "bounded to capacity")

	recent := j.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "failure 4", recent[0].Error)
	assert.Equal(t, "failure 3", recent[1].Error)

	c := j.Record(&workflow.Error{Kind: workflow.StorageSpaceLow}, "", "start recording")
	assert.Equal(t, CategoryStorage, c.Category)

	report := j.Report()
	assert.Contains(t, report, "Voice Journal Diagnostic Report")
	assert.Contains(t, report, "Total errors recorded: 3")
	assert.Contains(t, report, "MEDIUM storage - Storage Space Low")
	assert.Contains(t, report, "(start recording)")
	assert.NotContains(t, report, "failure 2")

	assert.Contains(t, NewJournal(0).Report(), "No errors recorded.")
}

func TestJournal_ReportShowsTen(t *testing.T) {
	j := NewJournal(0)
	for i := 0; i < 25; i++ {
		j.Record(fmt.Errorf("e%02d", i), CategorySystem, "")
	}
	report := j.Report()
	assert.Contains(t, report, "Total errors recorded: 25")
	assert.Contains(t, report, "last 10")
	assert.Contains(t, report, "e24")
	assert.NotContains(t, report, "e14")
}
