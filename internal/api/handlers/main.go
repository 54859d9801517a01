// filepath: internal/api/handlers/main.go
package handlers

import (
	"time"

	"voicejournal/internal/config"
	"voicejournal/internal/diagnostics"
	"voicejournal/internal/services"
	"voicejournal/internal/workflow"
)

// Handlers holds the shared dependencies of the API handlers.
type Handlers struct {
	Info         services.InfoService
	Workflow     workflow.Service
	Entries      services.EntryService
	Playback     services.PlaybackService
	Housekeeping services.HousekeepingService
	Journal      *diagnostics.Journal
	Auditor      services.Auditor

	Cfg       *config.Config
	Version   string
	StartTime time.Time
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(
	info services.InfoService,
	wf workflow.Service,
	entries services.EntryService,
	playback services.PlaybackService,
	housekeeping services.HousekeepingService,
	journal *diagnostics.Journal,
	auditor services.Auditor,
	cfg *config.Config,
) *Handlers {
	if journal == nil {
		journal = diagnostics.NewJournal(0)
	}
	h := &Handlers{
		Info:         info,
		Workflow:     wf,
		Entries:      entries,
		Playback:     playback,
		Housekeeping: housekeeping,
		Journal:      journal,
		Auditor:      auditor,
		Cfg:          cfg,
	}
	if info != nil {
		h.Version = info.GetInfo().Version
		h.StartTime = info.GetInfo().UptimeSince
	}
	return h
}
