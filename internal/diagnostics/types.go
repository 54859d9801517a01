// filepath: internal/diagnostics/types.go
// Package diagnostics maps errors to a severity and recovery actions and keeps
// a bounded journal of what went wrong.
package diagnostics

import (
	"fmt"
	"strings"
)

// Category is the area of the application an error came from.
type Category string

const (
	CategoryRecording   Category = "recording"
	CategoryPlayback    Category = "playback"
	CategoryStorage     Category = "storage"
	CategoryPermissions Category = "permissions"
	CategoryNetwork     Category = "network"
	CategoryData        Category = "data"
	CategorySystem      Category = "system"
)

// Severity is totally ordered: Low < Medium < High < Critical.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Severity) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "low":
		*s = SeverityLow
	case "medium":
		*s = SeverityMedium
	case "high":
		*s = SeverityHigh
	case "critical":
		*s = SeverityCritical
	default:
		return fmt.Errorf("unknown severity %q", string(b))
	}
	return nil
}

// Action is a recovery step offered to the user.
type Action string

const (
	ActionRetry          Action = "retry"
	ActionOpenSettings   Action = "open-settings"
	ActionManageStorage  Action = "manage-storage"
	ActionDismiss        Action = "dismiss"
	ActionContactSupport Action = "contact-support"
)

// Classification is the result of Classify.
type Classification struct {
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Message     string   `json:"message"`
	Actions     []Action `json:"actions"`
	Suggestions []string `json:"suggestions,omitempty"`
}

var suggestions = map[Category][]string{
	CategoryRecording: {
		"Check that a microphone is connected",
		"Make sure no other application is using the microphone",
	},
	CategoryPlayback: {
		"Check that the audio file has not been moved or deleted",
		"Try playing another entry",
	},
	CategoryStorage: {
		"Delete entries you no longer need",
		"Run maintenance cleanup to remove orphaned files",
	},
	CategoryPermissions: {
		"Grant microphone access with 'voicejournal permission grant'",
	},
	CategoryNetwork: {
		"Check your internet connection",
		"Verify the API key in the [enrichment] section of the configuration",
	},
	CategoryData: {
		"Run 'voicejournal integrity' to check the journal",
		"Restart the application",
	},
	CategorySystem: {
		"Restart the application",
		"Check the logs for details",
	},
}

// Suggestions returns the recovery hints for a category.
func Suggestions(c Category) []string {
	s := suggestions[c]
	out := make([]string, len(s))
	copy(out, s)
	return out
}
