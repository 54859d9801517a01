// filepath: internal/cli/server.go
package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voicejournal/internal/api"
	"voicejournal/internal/api/handlers"
	"voicejournal/internal/audio"
	"voicejournal/internal/config"
	"voicejournal/internal/diagnostics"
	"voicejournal/internal/housekeeping"
	"voicejournal/internal/initconfig"
	"voicejournal/internal/logging"
	"voicejournal/internal/services"
	"voicejournal/internal/services/auth"
	"voicejournal/internal/workflow"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves the JSON API, runs background housekeeping and records background failures in the diagnostics journal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&host, "host", "", "Interface for the HTTP server. (Env: VJ_HOST)")
	serveCmd.Flags().IntVar(&port, "port", 0, "Port for the HTTP server. (Env: VJ_PORT)")
	serveCmd.Flags().StringVar(&password, "password", "", "Password for the API user; stored as a bcrypt hash. (Env: VJ_PASSWORD)")
	serveCmd.Flags().StringVar(&initConfig, "init_config", "", "Path to a TOML file seeding categories and tags. (Env: VJ_INIT_CONFIG)")
	RootCmd.AddCommand(serveCmd)
}

// ensureAPICredentials hashes a provided password into the config, or
// generates one when the API would otherwise listen unprotected on the network.
func ensureAPICredentials(c *config.Config, path string) error {
	plain := c.Password
	if plain == "" && c.Server.PasswordHash == "" && !isLoopback(c.Server.Host) {
		logging.Log.Info("Generating new random API password...")
		secret, err := auth.GenerateSecret()
		if err != nil {
			return fmt.Errorf("failed to generate API password: %w", err)
		}
		plain = secret
		logging.Log.Warnf("API user '%s' password: %s (shown once)", c.Server.Username, secret)
	}
	if plain == "" {
		if c.Server.PasswordHash == "" {
			logging.Log.Warn("API authentication is disabled (loopback only, no password configured).")
		}
		return nil
	}

	hash, err := auth.HashPassword(plain)
	if err != nil {
		return fmt.Errorf("failed to hash API password: %w", err)
	}
	c.Server.PasswordHash = hash
	if err := config.SaveConfig(path, c); err != nil {
		logging.Log.Warnf("Failed to save API password hash to %s: %v", path, err)
	} else {
		logging.Log.Infof("API password hash saved to %s.", path)
	}
	return nil
}

func isLoopback(h string) bool {
	if h == "localhost" {
		return true
	}
	ip := net.ParseIP(h)
	return ip != nil && ip.IsLoopback()
}

// drainNotifications records background failures until the queue is closed.
func drainNotifications(notes <-chan workflow.Notification, journal *diagnostics.Journal) {
	for n := range notes {
		switch n.Kind {
		case workflow.NotifyEnrichmentFailed:
			journal.Record(n.Err, diagnostics.CategoryNetwork, "background enrichment of "+n.EntryID)
		case workflow.NotifyStorageLow:
			journal.Record(n.Err, diagnostics.CategoryStorage, n.Message)
		default:
			logging.Log.Infof("Notification: %s", n.Message)
		}
	}
}

// drainAudioEvents records capture and playback failures reported by the controller.
func drainAudioEvents(sub *audio.Subscription, journal *diagnostics.Journal) {
	for ev := range sub.Events() {
		switch ev.Kind {
		case audio.EventRecordingFailed:
			journal.Record(ev.Err, diagnostics.CategoryRecording, ev.Path)
		case audio.EventPlaybackFailed:
			journal.Record(ev.Err, diagnostics.CategoryPlayback, ev.Path)
		}
	}
}

// runServer contains the logic to start the HTTP server with graceful shutdown.
func runServer() error {
	if err := ensureAPICredentials(cfg, cfgFile); err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if initConfig != "" {
		logging.Log.Infof("Found init_config, running initialization from: %s", initConfig)
		if _, err := initconfig.Run(context.Background(), a.repo, initConfig); err != nil {
			logging.Log.Warnf("Initialization from %s incomplete: %v", initConfig, err)
		}
	}

	go drainNotifications(a.workflow.Notifications(), a.journal)
	sub := a.audio.Subscribe()
	defer sub.Close()
	go drainAudioEvents(sub, a.journal)

	housekeepingService := housekeeping.NewService(housekeeping.Dependencies{
		Maintainer: a.workflow,
		Tags:       a.repo,
	}, cfg.HousekeepingInterval)
	housekeepingService.Start()
	// No defer stop here, we stop explicitly during graceful shutdown

	infoService := services.NewInfoService(Version, StartTime, a.tools, a.enricher.IsConfigured())
	h := handlers.NewHandlers(
		infoService,
		a.workflow,
		a.repo,
		a.audio,
		housekeepingService,
		a.journal,
		a.auditor,
		cfg,
	)
	authMiddleware := auth.NewMiddleware(cfg.Server.Username, cfg.Server.PasswordHash)
	r := api.SetupRouter(h, authMiddleware)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Graceful Shutdown Setup ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logging.Log.Infof("Server starting on %s (auth: %v)", serverAddr, authMiddleware.Enabled())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		housekeepingService.Stop()
		return fmt.Errorf("server failed to start: %w", err)
	}
	logging.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	housekeepingService.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logging.Log.Info("Server exiting")
	return nil
}
