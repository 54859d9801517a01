// filepath: internal/services/mocks/entry_mock.go
package mocks

import (
	"context"

	"voicejournal/internal/models"
	"voicejournal/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockEntryService is a mock implementation of services.EntryService
type MockEntryService struct {
	mock.Mock
}

var _ services.EntryService = (*MockEntryService)(nil)

func (m *MockEntryService) FetchAll(ctx context.Context) ([]models.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Entry), args.Error(1)
}

func (m *MockEntryService) GetEntry(ctx context.Context, id string) (*models.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entry), args.Error(1)
}

func (m *MockEntryService) SearchEntries(ctx context.Context, q models.EntryQuery) ([]models.Entry, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Entry), args.Error(1)
}
