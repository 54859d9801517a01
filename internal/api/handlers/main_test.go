// filepath: internal/api/handlers/main_test.go
package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"voicejournal/internal/audio"
	"voicejournal/internal/diagnostics"
	"voicejournal/internal/models"
	svcmocks "voicejournal/internal/services/mocks"
	wfmocks "voicejournal/internal/workflow/mocks"

	"github.com/stretchr/testify/require"
)

// testEnv bundles the handlers with the mocks behind them.
type testEnv struct {
	h        *Handlers
	wf       *wfmocks.MockService
	entries  *svcmocks.MockEntryService
	playback *svcmocks.MockPlaybackService
	hk       *svcmocks.MockHousekeepingService
	auditor  *svcmocks.MockAuditor
	info     *svcmocks.MockInfoService
}

func setupHandlers(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		wf:       new(wfmocks.MockService),
		entries:  new(svcmocks.MockEntryService),
		playback: new(svcmocks.MockPlaybackService),
		hk:       new(svcmocks.MockHousekeepingService),
		auditor:  new(svcmocks.MockAuditor),
		info:     new(svcmocks.MockInfoService),
	}
	env.info.On("GetInfo").Return(models.Info{Version: "test", UptimeSince: time.Now()})

	env.h = NewHandlers(
		env.info,
		env.wf,
		env.entries,
		env.playback,
		env.hk,
		diagnostics.NewJournal(10),
		env.auditor,
		nil,
	)
	return env
}

func idleStatus() audio.Status {
	return audio.Status{Recording: "IDLE", Playback: "IDLE"}
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}
