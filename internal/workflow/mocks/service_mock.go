// filepath: internal/workflow/mocks/service_mock.go
package mocks

import (
	"context"

	"voicejournal/internal/models"
	"voicejournal/internal/workflow"

	"github.com/stretchr/testify/mock"
)

// MockService is a mock implementation of workflow.Service
type MockService struct {
	mock.Mock
}

var _ workflow.Service = (*MockService)(nil)

func (m *MockService) StartRecordingWorkflow(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockService) CompleteRecordingWorkflow(ctx context.Context, mediaPath string, durationSec float64) (*models.Entry, error) {
	args := m.Called(ctx, mediaPath, durationSec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entry), args.Error(1)
}

func (m *MockService) StopRecordingWorkflow(ctx context.Context) (*models.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entry), args.Error(1)
}

func (m *MockService) StartPlaybackWorkflow(ctx context.Context, entry models.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockService) PlayEntry(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockService) PerformSystemHealthCheck(ctx context.Context) models.HealthReport {
	return m.Called(ctx).Get(0).(models.HealthReport)
}

func (m *MockService) ValidateDataIntegrity(ctx context.Context) (models.IntegrityReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.IntegrityReport), args.Error(1)
}

func (m *MockService) PerformMaintenanceCleanup(ctx context.Context) (models.CleanupReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.CleanupReport), args.Error(1)
}

func (m *MockService) EnrichEntry(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockService) DeleteEntry(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockService) Notifications() <-chan workflow.Notification {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(<-chan workflow.Notification)
}
