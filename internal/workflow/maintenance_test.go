// filepath: internal/workflow/maintenance_test.go
package workflow_test

import (
	"context"
	"errors"
	"testing"

	"voicejournal/internal/models"
	"voicejournal/internal/workflow"
	"voicejournal/internal/workflow/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrity_TwoOrphansAreCleanedOnce(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()

	env.writeMedia(t, 10)
	env.writeMedia(t, 20)

	report, err := env.coord.ValidateDataIntegrity(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.OrphanedAudioFiles)
	assert.Equal(t, 2, report.TotalAudioFiles)
	assert.Equal(t, 1.0, report.IntegrityScore(), "no entries scores 1.0")

	first, err := env.coord.PerformMaintenanceCleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, first.OrphansFound)
	assert.Equal(t, 2, first.FilesDeleted)
	assert.Equal(t, int64(30), first.BytesFreed)

	second, err := env.coord.PerformMaintenanceCleanup(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.FilesDeleted)
	assert.Zero(t, second.OrphansFound)

	paths, err := env.store.ListAll()
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestIntegrity_ClassifiesEveryEntry(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()

	valid, err := env.coord.CompleteRecordingWorkflow(ctx, env.writeMedia(t, 100), 1)
	require.NoError(t, err)

	gonePath := env.writeMedia(t, 100)
	gone, err := env.coord.CompleteRecordingWorkflow(ctx, gonePath, 1)
	require.NoError(t, err)
	require.True(t, env.store.Delete(gonePath))

	_, err = env.repo.CreateEntry(ctx, "", 0)
	require.NoError(t, err)

	orphan := env.writeMedia(t, 5)

	report, err := env.coord.ValidateDataIntegrity(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalEntries)
	assert.Equal(t, 1, report.ValidEntries)
	assert.Equal(t, 1, report.EntriesWithMissingFiles)
	assert.Equal(t, 1, report.EntriesWithoutAudioPath)
	assert.Equal(t, report.TotalEntries, report.ValidEntries+report.EntriesWithMissingFiles+report.EntriesWithoutAudioPath)
	assert.Equal(t, []string{gone.ID}, report.MissingFileEntryIDs)
	assert.Equal(t, []string{orphan}, report.OrphanedPaths)
	assert.InDelta(t, 1.0/3.0, report.IntegrityScore(), 1e-9)

	cleanup, err := env.coord.PerformMaintenanceCleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cleanup.FilesDeleted)
	assert.Equal(t, 1, cleanup.EntriesWithMissingFiles)
	assert.True(t, env.store.Exists(valid.MediaPath), "referenced media survives cleanup")
}

func TestCleanup_SkipsActiveRecording(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()

	recording := env.writeMedia(t, 64)
	env.audio.ExpectedCalls = nil
	env.audio.On("ActiveRecordingPath").Return(recording)

	report, err := env.coord.ValidateDataIntegrity(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.OrphanedAudioFiles)

	cleanup, err := env.coord.PerformMaintenanceCleanup(ctx)
	require.NoError(t, err)
	assert.Zero(t, cleanup.FilesDeleted)
	assert.True(t, env.store.Exists(recording))
}

func TestCleanup_CountsFailedDeletes(t *testing.T) {
	media := new(mocks.MockMediaStore)
	media.On("ListAll").Return([]string{"/m/a.wav"}, nil)
	media.On("Size", "/m/a.wav").Return(int64(10), nil)
	media.On("Delete", "/m/a.wav").Return(false)

	entries := new(mocks.MockEntryStore)
	entries.On("FetchAll", context.Background()).Return([]models.Entry{}, nil)

	audioCtl := new(mocks.MockAudioController)
	audioCtl.On("ActiveRecordingPath").Return("")

	c, err := workflow.New(workflow.Dependencies{Media: media, Audio: audioCtl, Entries: entries}, workflow.Options{})
	require.NoError(t, err)

	report, err := c.PerformMaintenanceCleanup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.OrphansFound)
	assert.Equal(t, 1, report.FailedDeletes)
	assert.Zero(t, report.BytesFreed)
	assert.Contains(t, report.Message, "could not be deleted")
}

func TestIntegrity_FetchFailure(t *testing.T) {
	media := new(mocks.MockMediaStore)
	media.On("ListAll").Return([]string{}, nil)
	entries := new(mocks.MockEntryStore)
	entries.On("FetchAll", context.Background()).Return(nil, errors.New("disk I/O error"))

	c, err := workflow.New(workflow.Dependencies{Media: media, Audio: new(mocks.MockAudioController), Entries: entries}, workflow.Options{})
	require.NoError(t, err)

	_, err = c.ValidateDataIntegrity(context.Background())
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	const mb = int64(1024 * 1024)
	cases := []struct {
		name       string
		permission bool
		free       int64
		pingErr    error
		probeErr   error
		healthy    bool
	}{
		{"All good", true, 500 * mb, nil, nil, true},
		{"No permission", false, 500 * mb, nil, nil, false},
		{"Low storage", true, 2 * mb, nil, nil, false},
		{"Persistence down", true, 500 * mb, errors.New("closed"), nil, false},
		{"Audio down", true, 500 * mb, nil, errors.New("no ffmpeg"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			media := new(mocks.MockMediaStore)
			media.On("AvailableFreeSpace").Return(tc.free, nil)
			media.On("ListAll").Return([]string{"/m/orphan.wav"}, nil)
			media.On("TotalSize").Return(3*mb, nil)

			entries := new(mocks.MockEntryStore)
			entries.On("Ping", ctx).Return(tc.pingErr)
			entries.On("Count", ctx).Return(0, nil)
			entries.On("FetchAll", ctx).Return([]models.Entry{}, nil)

			audioCtl := new(mocks.MockAudioController)
			audioCtl.On("HasRecordPermission").Return(tc.permission)
			audioCtl.On("Probe").Return(tc.probeErr)
			audioCtl.On("ActiveRecordingPath").Return("")

			c, err := workflow.New(workflow.Dependencies{Media: media, Audio: audioCtl, Entries: entries}, workflow.Options{})
			require.NoError(t, err)

			report := c.PerformSystemHealthCheck(ctx)
			assert.Equal(t, tc.healthy, report.IsHealthy())
			assert.Equal(t, tc.free/mb, report.AvailableStorageMB)
			assert.Equal(t, int64(3), report.TotalMediaSizeMB)
			if tc.pingErr == nil {
				assert.Equal(t, 1, report.OrphanedFiles, "orphans are advisory")
			} else {
				assert.Zero(t, report.OrphanedFiles)
				entries.AssertNotCalled(t, "FetchAll", ctx)
			}
		})
	}
}
