// filepath: internal/workflow/mocks/collaborators_mock.go
package mocks

import (
	"context"

	"voicejournal/internal/models"
	"voicejournal/internal/workflow"

	"github.com/stretchr/testify/mock"
)

// MockMediaStore is a mock implementation of workflow.MediaStore
type MockMediaStore struct {
	mock.Mock
}

var _ workflow.MediaStore = (*MockMediaStore)(nil)

func (m *MockMediaStore) NewMediaPath() string {
	return m.Called().String(0)
}

func (m *MockMediaStore) Exists(path string) bool {
	return m.Called(path).Bool(0)
}

func (m *MockMediaStore) Size(path string) (int64, error) {
	args := m.Called(path)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMediaStore) Delete(path string) bool {
	return m.Called(path).Bool(0)
}

func (m *MockMediaStore) ListAll() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMediaStore) TotalSize() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMediaStore) AvailableFreeSpace() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMediaStore) Load(path string) ([]byte, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockAudioController is a mock implementation of workflow.AudioController
type MockAudioController struct {
	mock.Mock
}

var _ workflow.AudioController = (*MockAudioController)(nil)

func (m *MockAudioController) HasRecordPermission() bool {
	return m.Called().Bool(0)
}

func (m *MockAudioController) Probe() error {
	return m.Called().Error(0)
}

func (m *MockAudioController) StartRecording(ctx context.Context, outputPath string) error {
	return m.Called(ctx, outputPath).Error(0)
}

func (m *MockAudioController) StopRecording(ctx context.Context) (models.Recording, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Recording), args.Error(1)
}

func (m *MockAudioController) LoadAndPlay(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *MockAudioController) ActiveRecordingPath() string {
	return m.Called().String(0)
}

// MockEntryStore is a mock implementation of workflow.EntryStore
type MockEntryStore struct {
	mock.Mock
}

var _ workflow.EntryStore = (*MockEntryStore)(nil)

func (m *MockEntryStore) CreateEntry(ctx context.Context, mediaPath string, durationSec float64) (*models.Entry, error) {
	args := m.Called(ctx, mediaPath, durationSec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entry), args.Error(1)
}

func (m *MockEntryStore) GetEntry(ctx context.Context, id string) (*models.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entry), args.Error(1)
}

func (m *MockEntryStore) FetchAll(ctx context.Context) ([]models.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Entry), args.Error(1)
}

func (m *MockEntryStore) UpdateEntry(ctx context.Context, id string, update models.EntryUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockEntryStore) DeleteEntry(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEntryStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockEntryStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockEnricher is a mock implementation of workflow.Enricher
type MockEnricher struct {
	mock.Mock
}

var _ workflow.Enricher = (*MockEnricher)(nil)

func (m *MockEnricher) IsConfigured() bool {
	return m.Called().Bool(0)
}

func (m *MockEnricher) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	args := m.Called(ctx, audio, filename)
	return args.String(0), args.Error(1)
}

func (m *MockEnricher) Summarize(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}
