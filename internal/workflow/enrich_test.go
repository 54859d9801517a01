// filepath: internal/workflow/enrich_test.go
package workflow_test

import (
	"context"
	"errors"
	"testing"

	"voicejournal/internal/enrichment"
	"voicejournal/internal/workflow"
	"voicejournal/internal/workflow/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBackgroundEnrichment(t *testing.T) {
	enricher := new(mocks.MockEnricher)
	enricher.On("IsConfigured").Return(true)
	enricher.On("Transcribe", mock.Anything, mock.Anything, mock.AnythingOfType("string")).Return("walked the dog", nil)
	enricher.On("Summarize", mock.Anything, "walked the dog").Return("Dog walk.", nil)

	env := newEnv(t, enricher)
	ctx := context.Background()

	entry, err := env.coord.CompleteRecordingWorkflow(ctx, env.writeMedia(t, 512), 2)
	require.NoError(t, err)

	n := waitNotification(t, env.coord, workflow.NotifyEnrichmentCompleted)
	assert.Equal(t, entry.ID, n.EntryID)

	got, err := env.repo.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "walked the dog", got.Transcript)
	assert.Equal(t, "Dog walk.", got.Summary)
	assert.Equal(t, entry.MediaPath, got.MediaPath)
}

func TestBackgroundEnrichmentFailureDoesNotFailRecording(t *testing.T) {
	enricher := new(mocks.MockEnricher)
	enricher.On("IsConfigured").Return(true)
	enricher.On("Transcribe", mock.Anything, mock.Anything, mock.Anything).Return("", enrichment.ErrInvalidAPIKey)

	env := newEnv(t, enricher)
	ctx := context.Background()

	entry, err := env.coord.CompleteRecordingWorkflow(ctx, env.writeMedia(t, 512), 2)
	require.NoError(t, err)
	require.NotNil(t, entry)

	n := waitNotification(t, env.coord, workflow.NotifyEnrichmentFailed)
	assert.ErrorIs(t, n.Err, enrichment.ErrInvalidAPIKey)

	got, err := env.repo.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Transcript)
}

func TestSummaryFailureKeepsTranscript(t *testing.T) {
	enricher := new(mocks.MockEnricher)
	enricher.On("IsConfigured").Return(true)
	enricher.On("Transcribe", mock.Anything, mock.Anything, mock.Anything).Return("hello", nil)
	enricher.On("Summarize", mock.Anything, "hello").Return("", &enrichment.APIError{Status: 429, Message: "quota"})

	env := newEnv(t, enricher)
	ctx := context.Background()

	entry, err := env.coord.CompleteRecordingWorkflow(ctx, env.writeMedia(t, 512), 2)
	require.NoError(t, err)
	waitNotification(t, env.coord, workflow.NotifyEnrichmentFailed)

	got, err := env.repo.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Transcript)
	assert.Empty(t, got.Summary)
}

func TestEnrichEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("Not configured", func(t *testing.T) {
		env := newEnv(t, nil)
		assert.ErrorIs(t, env.coord.EnrichEntry(ctx, "any"), workflow.ErrEnrichmentNotConfigured)
	})

	t.Run("Entry without audio", func(t *testing.T) {
		enricher := new(mocks.MockEnricher)
		enricher.On("IsConfigured").Return(true)
		env := newEnv(t, enricher)

		e, err := env.repo.CreateEntry(ctx, "", 0)
		require.NoError(t, err)
		assert.ErrorIs(t, env.coord.EnrichEntry(ctx, e.ID), workflow.ErrNoAudioFile)

		gone, err := env.repo.CreateEntry(ctx, env.store.NewMediaPath(), 1)
		require.NoError(t, err)
		assert.ErrorIs(t, env.coord.EnrichEntry(ctx, gone.ID), workflow.ErrAudioFileNotFound)
	})

	t.Run("Concurrent enrichment of one entry is rejected", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})

		enricher := new(mocks.MockEnricher)
		enricher.On("IsConfigured").Return(true)
		enricher.On("Transcribe", mock.Anything, mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).Return("text", nil).Once()
		enricher.On("Summarize", mock.Anything, "text").Return("sum", nil)

		env := newEnv(t, enricher)
		e, err := env.repo.CreateEntry(ctx, env.writeMedia(t, 100), 1)
		require.NoError(t, err)

		done := make(chan error, 1)
		go func() { done <- env.coord.EnrichEntry(ctx, e.ID) }()
		<-started

		assert.ErrorIs(t, env.coord.EnrichEntry(ctx, e.ID), workflow.ErrEnrichmentInProgress)
		close(release)
		require.NoError(t, <-done)

		got, err := env.repo.GetEntry(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, "sum", got.Summary)
	})

	t.Run("Client errors pass through", func(t *testing.T) {
		enricher := new(mocks.MockEnricher)
		enricher.On("IsConfigured").Return(true)
		enricher.On("Transcribe", mock.Anything, mock.Anything, mock.Anything).Return("", enrichment.ErrNetwork)
		env := newEnv(t, enricher)

		e, err := env.repo.CreateEntry(ctx, env.writeMedia(t, 100), 1)
		require.NoError(t, err)
		err = env.coord.EnrichEntry(ctx, e.ID)
		assert.True(t, errors.Is(err, enrichment.ErrNetwork))
	})
}

func TestAutoEnrichDisabled(t *testing.T) {
	enricher := new(mocks.MockEnricher)
	enricher.On("IsConfigured").Return(true)

	env := newEnv(t, enricher)
	c, err := workflow.New(workflow.Dependencies{
		Media: env.store, Audio: env.audio, Entries: env.repo, Enricher: enricher,
	}, workflow.Options{DisableAutoEnrich: true})
	require.NoError(t, err)

	_, err = c.CompleteRecordingWorkflow(context.Background(), env.writeMedia(t, 100), 1)
	require.NoError(t, err)
	require.NoError(t, c.Shutdown(context.Background()))
	enricher.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything, mock.Anything)
}
