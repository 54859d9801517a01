// filepath: internal/cli/output_test.go
package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"voicejournal/internal/audio"
	"voicejournal/internal/config"
	"voicejournal/internal/diagnostics"
	"voicejournal/internal/models"
	"voicejournal/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := stdout
	stdout = buf
	t.Cleanup(func() { stdout = prev })
	return buf
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", formatDuration(0))
	assert.Equal(t, "0:05", formatDuration(5.4))
	assert.Equal(t, "1:30", formatDuration(90))
	assert.Equal(t, "61:01", formatDuration(3661))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a b c", truncate("a\n b\tc", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestPrintEntries(t *testing.T) {
	buf := captureOutput(t)
	err := printEntries([]models.Entry{
		{ID: "01A", Title: "Voice Entry", DurationSec: 65, CreatedAt: time.Now(), Summary: "Planned the week"},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "01A")
	assert.Contains(t, out, "1:05")
	assert.Contains(t, out, "Planned the week")
}

func TestPrintHealth(t *testing.T) {
	buf := captureOutput(t)
	printHealth(models.HealthReport{PermissionGranted: true, SufficientStorage: true, PersistenceReachable: true})
	assert.Contains(t, buf.String(), "UNHEALTHY")

	buf.Reset()
	printHealth(models.HealthReport{PermissionGranted: true, SufficientStorage: true, PersistenceReachable: true, AudioReachable: true})
	assert.Contains(t, buf.String(), "System is healthy")
}

func TestPrintIntegrity(t *testing.T) {
	buf := captureOutput(t)
	printIntegrity(models.IntegrityReport{
		TotalEntries:        4,
		ValidEntries:        3,
		MissingFileEntryIDs: []string{"gone"},
		OrphanedPaths:       []string{"/m/x.wav"},
	})
	out := buf.String()
	assert.Contains(t, out, "Integrity score: 75%")
	assert.Contains(t, out, "missing: gone")
	assert.Contains(t, out, "orphan:  /m/x.wav")
}

func TestIsLoopback(t *testing.T) {
	assert.True(t, isLoopback("127.0.0.1"))
	assert.True(t, isLoopback("::1"))
	assert.True(t, isLoopback("localhost"))
	assert.False(t, isLoopback("0.0.0.0"))
	assert.False(t, isLoopback("192.168.1.10"))
}

func TestEnsureAPICredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	t.Run("Loopback without password stays open", func(t *testing.T) {
		c := &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Username: "admin"}}
		require.NoError(t, ensureAPICredentials(c, path))
		assert.Empty(t, c.Server.PasswordHash)
	})

	t.Run("Explicit password is hashed and saved", func(t *testing.T) {
		c := &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Username: "admin"}, Password: "s3cret"}
		require.NoError(t, ensureAPICredentials(c, path))
		require.NotEmpty(t, c.Server.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(c.Server.PasswordHash), []byte("s3cret")))

		saved, err := config.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, c.Server.PasswordHash, saved.Server.PasswordHash)
	})

	t.Run("Network host gets a generated password", func(t *testing.T) {
		c := &config.Config{Server: config.ServerConfig{Host: "0.0.0.0", Username: "admin"}}
		require.NoError(t, ensureAPICredentials(c, path))
		assert.NotEmpty(t, c.Server.PasswordHash)
	})

	t.Run("Existing hash is kept", func(t *testing.T) {
		c := &config.Config{Server: config.ServerConfig{Host: "0.0.0.0", PasswordHash: "$2a$10$existing"}}
		require.NoError(t, ensureAPICredentials(c, path))
		assert.Equal(t, "$2a$10$existing", c.Server.PasswordHash)
	})
}

func TestDrainNotifications(t *testing.T) {
	journal := diagnostics.NewJournal(10)
	notes := make(chan workflow.Notification, 3)
	notes <- workflow.Notification{Kind: workflow.NotifyStorageLow, Message: "Storage space is running low", Err: workflow.ErrStorageSpaceLow}
	notes <- workflow.Notification{Kind: workflow.NotifyEnrichmentCompleted, EntryID: "a"}
	notes <- workflow.Notification{Kind: workflow.NotifyEnrichmentFailed, EntryID: "b", Err: errors.New("timeout")}
	close(notes)

	drainNotifications(notes, journal)

	recent := journal.Recent(0)
	require.Len(t, recent, 2)
	assert.Equal(t, diagnostics.CategoryNetwork, recent[0].Classification.Category)
	assert.Equal(t, diagnostics.CategoryStorage, recent[1].Classification.Category)
}

func TestDrainAudioEvents(t *testing.T) {
	journal := diagnostics.NewJournal(10)
	controller := audio.NewController(nil, audio.NewMemoryPermissionStore(audio.PermissionGranted))
	sub := controller.Subscribe()

	done := make(chan struct{})
	go func() {
		drainAudioEvents(sub, journal)
		close(done)
	}()
	sub.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("drain did not stop after the subscription closed")
	}
	assert.Equal(t, 0, journal.Len())
}
