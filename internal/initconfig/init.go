// filepath: internal/initconfig/init.go
// Package initconfig seeds custom categories and tags from a TOML file.
package initconfig

import (
	"context"
	"errors"

	"voicejournal/internal/logging"
	"voicejournal/internal/models"
	"voicejournal/internal/shared"

	"github.com/BurntSushi/toml"
)

// Store is the part of the repository the initialization needs.
type Store interface {
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	CreateCategory(ctx context.Context, name, color, icon string) (*models.Category, error)
	CreateOrFetchTags(ctx context.Context, names []string) ([]models.Tag, error)
}

// Result counts what Run created.
type Result struct {
	CategoriesCreated int
	TagsEnsured       int
}

// Run executes the one-time initialization from the config file. Existing
// categories are left alone, so running it twice is harmless.
func Run(ctx context.Context, store Store, configPath string) (Result, error) {
	logging.Log.Infof("Initialization config file found at: %s. Processing...", configPath)

	var config InitConfig
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		logging.Log.Errorf("Failed to parse TOML init config file '%s': %v", configPath, err)
		return Result{}, err
	}

	logging.Log.Infof("Found %d category(s) and %d tag(s) in init config.", len(config.Categories), len(config.Tags))

	res := Result{CategoriesCreated: processCategories(ctx, store, config.Categories)}

	if names := shared.UniqueTagNames(config.Tags); len(names) > 0 {
		tags, err := store.CreateOrFetchTags(ctx, names)
		if err != nil {
			logging.Log.Errorf("Failed to create tags from init config: %v", err)
			return res, err
		}
		res.TagsEnsured = len(tags)
	}
	return res, nil
}

// processCategories creates the categories that do not exist yet.
func processCategories(ctx context.Context, store Store, categories []InitCategory) int {
	created := 0
	for _, c := range categories {
		if !shared.ValidCategoryName(c.Name) {
			logging.Log.Warnf("Skipping category with invalid name '%s'.", c.Name)
			continue
		}

		_, err := store.GetCategoryByName(ctx, c.Name)
		if err == nil {
			logging.Log.Infof("Skipping category: '%s' already exists.", c.Name)
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			logging.Log.Errorf("Failed to check if category '%s' exists: %v", c.Name, err)
			continue
		}

		if _, err := store.CreateCategory(ctx, c.Name, c.Color, c.Icon); err != nil {
			logging.Log.Errorf("Failed to create category '%s': %v", c.Name, err)
			continue
		}
		logging.Log.Infof("Successfully created category: '%s'", c.Name)
		created++
	}
	return created
}
