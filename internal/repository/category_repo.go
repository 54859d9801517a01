// filepath: internal/repository/category_repo.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"voicejournal/internal/models"
	"voicejournal/internal/shared"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const categoryCachePrefix = "category:"

var categoryColumns = []string{"id", "name", "color", "icon", "is_custom"}

func scanCategory(row rowScanner) (models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &c.IsCustom)
	return c, err
}

// GetCategories lists predefined categories first, then custom ones by name.
func (s *Repository) GetCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.Builder.
		Select(categoryColumns...).
		From("categories").
		OrderBy("is_custom", "name").
		RunWith(s.DB).
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategoryByName looks a category up case-insensitively. Hits are cached.
func (s *Repository) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	key := categoryCachePrefix + strings.ToLower(strings.TrimSpace(name))
	if cached, found := s.Cache.Get(key); found {
		c := cached.(models.Category)
		return &c, nil
	}

	query, args, err := s.Builder.
		Select(categoryColumns...).
		From("categories").
		Where("lower(name) = lower(?)", strings.TrimSpace(name)).
		ToSql()
	if err != nil {
		return nil, err
	}
	c, err := scanCategory(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.Cache.Set(key, c, cache.DefaultExpiration)
	return &c, nil
}

// CreateCategory adds a custom category.
func (s *Repository) CreateCategory(ctx context.Context, name, color, icon string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if !shared.ValidCategoryName(name) {
		return nil, shared.ErrInvalidName
	}
	if color == "" {
		color = "#8E8E93"
	}
	if icon == "" {
		icon = "folder.fill"
	}

	c := models.Category{ID: uuid.NewString(), Name: name, Color: color, Icon: icon, IsCustom: true}
	_, err := s.Builder.
		Insert("categories").
		Columns(categoryColumns...).
		Values(c.ID, c.Name, c.Color, c.Icon, c.IsCustom).
		RunWith(s.DB).
		ExecContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create category %q: %w", name, err)
	}
	return &c, nil
}

// DeleteCategory removes a custom category. Entries in it become uncategorized.
func (s *Repository) DeleteCategory(ctx context.Context, id string) error {
	query, args, err := s.Builder.Select(categoryColumns...).From("categories").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	c, err := scanCategory(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if !c.IsCustom {
		return shared.ErrPredefinedCategory
	}

	if _, err := s.Builder.Delete("categories").Where(squirrel.Eq{"id": id}).RunWith(s.DB).ExecContext(ctx); err != nil {
		return err
	}
	s.Cache.Delete(categoryCachePrefix + strings.ToLower(c.Name))
	return nil
}

// GetCategoryStatistics counts entries and total duration per category,
// with a trailing "Uncategorized" bucket when any entry has no category.
func (s *Repository) GetCategoryStatistics(ctx context.Context) ([]models.CategoryStats, error) {
	categories, err := s.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.Builder.
		Select("COALESCE(category_id, '')", "COUNT(*)", "COALESCE(SUM(duration_sec), 0)").
		From("entries").
		GroupBy("category_id").
		RunWith(s.DB).
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type agg struct {
		count    int
		duration float64
	}
	byID := make(map[string]agg)
	for rows.Next() {
		var id string
		var a agg
		if err := rows.Scan(&id, &a.count, &a.duration); err != nil {
			return nil, err
		}
		byID[id] = a
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats := make([]models.CategoryStats, 0, len(categories)+1)
	for i := range categories {
		c := categories[i]
		a := byID[c.ID]
		stats = append(stats, models.CategoryStats{Category: &c, Name: c.Name, EntryCount: a.count, TotalDurationSec: a.duration})
	}
	if a, ok := byID[""]; ok && a.count > 0 {
		stats = append(stats, models.CategoryStats{Name: "Uncategorized", EntryCount: a.count, TotalDurationSec: a.duration})
	}
	return stats, nil
}
