// filepath: internal/api/handlers/playback_handler_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"voicejournal/internal/audio"
	"voicejournal/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlayEntry(t *testing.T) {
	t.Run("Started", func(t *testing.T) {
		env := setupHandlers(t)
		env.wf.On("PlayEntry", mock.Anything, "e1").Return(nil).Once()
		env.playback.On("Status").Return(audio.Status{Recording: "IDLE", Playback: "PLAYING", PlaybackPath: "/m/a.wav"})

		rr := httptest.NewRecorder()
		env.h.PlayEntry(rr, httptest.NewRequest("POST", "/api/playback?id=e1", nil))

		assert.Equal(t, http.StatusAccepted, rr.Code)
		var st audio.Status
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &st))
		assert.Equal(t, "PLAYING", st.Playback)
	})

	t.Run("No audio file", func(t *testing.T) {
		env := setupHandlers(t)
		env.wf.On("PlayEntry", mock.Anything, "e2").Return(workflow.ErrNoAudioFile).Once()

		rr := httptest.NewRecorder()
		env.h.PlayEntry(rr, httptest.NewRequest("POST", "/api/playback?id=e2", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Equal(t, "low", decodeError(t, rr).Severity)
	})

	t.Run("File missing", func(t *testing.T) {
		env := setupHandlers(t)
		env.wf.On("PlayEntry", mock.Anything, "e3").Return(workflow.ErrAudioFileNotFound).Once()

		rr := httptest.NewRecorder()
		env.h.PlayEntry(rr, httptest.NewRequest("POST", "/api/playback?id=e3", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestPlaybackControl(t *testing.T) {
	env := setupHandlers(t)
	env.playback.On("PausePlayback").Return(nil).Once()
	env.playback.On("ResumePlayback").Return(&audio.TransitionError{Machine: "playback", From: "IDLE", Op: "resume"}).Once()
	env.playback.On("StopPlayback").Return(nil).Once()
	env.playback.On("Status").Return(idleStatus())

	rr := httptest.NewRecorder()
	env.h.PausePlayback(rr, httptest.NewRequest("POST", "/api/playback/pause", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	env.h.ResumePlayback(rr, httptest.NewRequest("POST", "/api/playback/resume", nil))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "Operation Not Allowed", decodeError(t, rr).Title)

	rr = httptest.NewRecorder()
	env.h.StopPlayback(rr, httptest.NewRequest("POST", "/api/playback/stop", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	env.h.GetAudioStatus(rr, httptest.NewRequest("GET", "/api/audio/status", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	env.playback.AssertExpectations(t)
}
