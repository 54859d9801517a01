// filepath: internal/cli/app.go
package cli

import (
	"context"
	"fmt"
	"time"

	"voicejournal/internal/audio"
	"voicejournal/internal/audit"
	"voicejournal/internal/config"
	"voicejournal/internal/diagnostics"
	"voicejournal/internal/enrichment"
	"voicejournal/internal/logging"
	"voicejournal/internal/media"
	"voicejournal/internal/repository"
	"voicejournal/internal/storage"
	"voicejournal/internal/workflow"
)

// shutdownGrace bounds how long closing waits on top of one enrichment request.
const shutdownGrace = 5 * time.Second

// app is the fully wired journal used by the commands.
type app struct {
	cfg      *config.Config
	tools    media.Toolchain
	media    *storage.MediaStore
	repo     *repository.Repository
	audio    *audio.Controller
	enricher *enrichment.Client
	workflow *workflow.Coordinator
	journal  *diagnostics.Journal
	auditor  *audit.LoggerAuditor
}

// openRepository connects to the database and makes sure the schema is current.
func openRepository(c *config.Config) (*repository.Repository, error) {
	repo, err := repository.NewRepository(c)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	// --- Conditional Auto-migrate on startup ---
	if err := repo.EnsureSchemaBootstrapped(); err != nil {
		logging.Log.Errorf("Failed to bootstrap database: %v", err)
		repo.Close()
		return nil, err
	}
	if err := repo.ValidateSchema(); err != nil {
		logging.Log.Error("---------------------------------------------------------------")
		logging.Log.Errorf("CRITICAL DATABASE ERROR: %v", err)
		logging.Log.Error("---------------------------------------------------------------")
		repo.Close()
		return nil, err
	}
	return repo, nil
}

// newApp wires every collaborator from the loaded configuration.
func newApp(c *config.Config) (*app, error) {
	tools := media.Discover(c.Audio.FFmpegPath, c.Audio.PlayerPath)

	store, err := storage.NewMediaStore(c.Storage.MediaRoot, c.Storage.Extension)
	if err != nil {
		return nil, err
	}

	repo, err := openRepository(c)
	if err != nil {
		return nil, err
	}

	controller := audio.NewController(
		audio.NewExecBackend(tools, c.Audio),
		audio.NewFilePermissionStore(c.Audio.PermissionFile),
	)
	client := enrichment.NewClient(c.Enrichment, c.EnrichmentTimeout)

	coordinator, err := workflow.New(workflow.Dependencies{
		Media:    store,
		Audio:    controller,
		Entries:  repo,
		Enricher: client,
	}, workflow.Options{
		MinFreeBytes:      c.MinFreeSpaceBytes,
		DisableAutoEnrich: !c.Enrichment.AutoEnrichEnabled(),
	})
	if err != nil {
		repo.Close()
		return nil, err
	}

	return &app{
		cfg:      c,
		tools:    tools,
		media:    store,
		repo:     repo,
		audio:    controller,
		enricher: client,
		workflow: coordinator,
		journal:  diagnostics.NewJournal(diagnostics.DefaultJournalCapacity),
		auditor:  audit.NewLoggerAuditor(c.Logging.AuditEnabled),
	}, nil
}

// Close stops audio, waits for background enrichment and closes the database.
func (a *app) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.EnrichmentTimeout+shutdownGrace)
	defer cancel()

	if err := a.audio.Close(ctx); err != nil {
		logging.Log.Warnf("Audio shutdown: %v", err)
	}
	if err := a.workflow.Shutdown(ctx); err != nil {
		logging.Log.Warnf("Background enrichment did not finish: %v", err)
	}
	if err := a.repo.Close(); err != nil {
		logging.Log.Warnf("Closing database: %v", err)
	}
}

// withApp runs fn with a wired app and closes it afterwards.
func withApp(fn func(a *app) error) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// describeError adds the classifier's title and first hint to a failed command.
func (a *app) describeError(err error, category diagnostics.Category, where string) error {
	c := a.journal.Record(err, category, where)
	if len(c.Suggestions) > 0 {
		return fmt.Errorf("%s: %s (hint: %s)", c.Title, c.Message, c.Suggestions[0])
	}
	return fmt.Errorf("%s: %s", c.Title, c.Message)
}
