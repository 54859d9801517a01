// filepath: internal/repository/tag_repo.go
package repository

import (
	"context"
	"fmt"
	"time"

	"voicejournal/internal/models"
	"voicejournal/internal/shared"

	"github.com/Masterminds/squirrel"
)

// CreateOrFetchTags returns one tag per unique normalized name, creating missing ones.
func (s *Repository) CreateOrFetchTags(ctx context.Context, names []string) ([]models.Tag, error) {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	tags := make([]models.Tag, 0, len(names))
	for _, name := range shared.UniqueTagNames(names) {
		t, err := tx.fetchOrCreateTagInTx(name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, tx.Commit()
}

// SetEntryTags replaces the tags of an entry with the given names.
func (s *Repository) SetEntryTags(ctx context.Context, entryID string, names []string) ([]models.Tag, error) {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists int
	query, args, err := s.Builder.Select("COUNT(*)").From("entries").Where(squirrel.Eq{"id": entryID}).ToSql()
	if err != nil {
		return nil, err
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	tags := make([]models.Tag, 0, len(names))
	for _, name := range shared.UniqueTagNames(names) {
		t, err := tx.fetchOrCreateTagInTx(name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := tx.replaceEntryTagsInTx(entryID, tags); err != nil {
		return nil, fmt.Errorf("failed to link tags: %w", err)
	}
	return tags, tx.Commit()
}

// GetTags lists all tags with their usage counts, most used first.
func (s *Repository) GetTags(ctx context.Context) ([]models.TagStats, error) {
	rows, err := s.Builder.
		Select("t.id", "t.name", "t.color", "t.created_at", "COUNT(et.entry_id) AS uses").
		From("tags t").
		LeftJoin("entry_tags et ON et.tag_id = t.id").
		GroupBy("t.id").
		OrderBy("uses DESC", "t.name").
		RunWith(s.DB).
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]models.TagStats, 0)
	for rows.Next() {
		var ts models.TagStats
		var created int64
		if err := rows.Scan(&ts.Tag.ID, &ts.Tag.Name, &ts.Tag.Color, &created, &ts.EntryCount); err != nil {
			return nil, err
		}
		ts.Tag.CreatedAt = time.UnixMilli(created).UTC()
		stats = append(stats, ts)
	}
	return stats, rows.Err()
}

// CleanupUnusedTags deletes tags no entry refers to and returns how many were removed.
func (s *Repository) CleanupUnusedTags(ctx context.Context) (int, error) {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM tags WHERE id NOT IN (SELECT DISTINCT tag_id FROM entry_tags)")
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
