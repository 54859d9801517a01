// filepath: internal/initconfig/init_test.go
package initconfig

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"voicejournal/internal/models"
	"voicejournal/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

var _ Store = (*MockStore)(nil)

func (m *MockStore) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockStore) CreateCategory(ctx context.Context, name, color, icon string) (*models.Category, error) {
	args := m.Called(ctx, name, color, icon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockStore) CreateOrFetchTags(ctx context.Context, names []string) ([]models.Tag, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

func writeInit(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "init.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun(t *testing.T) {
	path := writeInit(t, `
tags = ["Gratitude", "gratitude", "health"]

[[category]]
name = "Travel"
color = "#00AAFF"
icon = "airplane"

[[category]]
name = "Work"

[[category]]
name = "  "

[[category]]
name = "Broken"
`)
	store := new(MockStore)
	store.On("GetCategoryByName", mock.Anything, "Travel").Return(nil, shared.ErrNotFound)
	store.On("CreateCategory", mock.Anything, "Travel", "#00AAFF", "airplane").Return(&models.Category{ID: "c1", Name: "Travel", IsCustom: true}, nil)
	store.On("GetCategoryByName", mock.Anything, "Work").Return(&models.Category{ID: "work", Name: "Work"}, nil)
	store.On("GetCategoryByName", mock.Anything, "Broken").Return(nil, errors.New("database is locked"))
	store.On("CreateOrFetchTags", mock.Anything, []string{"gratitude", "health"}).Return([]models.Tag{{Name: "gratitude"}, {Name: "health"}}, nil)

	res, err := Run(context.Background(), store, path)
	require.NoError(t, err)
	assert.Equal(t, 1, res.CategoriesCreated)
	assert.Equal(t, 2, res.TagsEnsured)
	store.AssertNotCalled(t, "CreateCategory", mock.Anything, "Work", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "CreateCategory", mock.Anything, "Broken", mock.Anything, mock.Anything)
}

func TestRun_InvalidFile(t *testing.T) {
	path := writeInit(t, "this is = = not toml")
	_, err := Run(context.Background(), new(MockStore), path)
	assert.Error(t, err)

	_, err = Run(context.Background(), new(MockStore), filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
