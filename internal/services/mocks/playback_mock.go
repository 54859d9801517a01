// filepath: internal/services/mocks/playback_mock.go
package mocks

import (
	"voicejournal/internal/audio"
	"voicejournal/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockPlaybackService is a mock implementation of services.PlaybackService
type MockPlaybackService struct {
	mock.Mock
}

var _ services.PlaybackService = (*MockPlaybackService)(nil)

func (m *MockPlaybackService) PausePlayback() error {
	return m.Called().Error(0)
}

func (m *MockPlaybackService) ResumePlayback() error {
	return m.Called().Error(0)
}

func (m *MockPlaybackService) StopPlayback() error {
	return m.Called().Error(0)
}

func (m *MockPlaybackService) Status() audio.Status {
	return m.Called().Get(0).(audio.Status)
}
