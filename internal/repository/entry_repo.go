// filepath: internal/repository/entry_repo.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"voicejournal/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/oklog/ulid/v2"
)

var entryColumns = []string{"id", "title", "media_path", "duration_sec", "created_at", "transcript", "summary", "category_id"}

// CreateEntry inserts a new entry referencing mediaPath.
func (s *Repository) CreateEntry(ctx context.Context, mediaPath string, durationSec float64) (*models.Entry, error) {
	if durationSec < 0 {
		return nil, fmt.Errorf("duration must not be negative: %v", durationSec)
	}

	entry := &models.Entry{
		ID:          ulid.Make().String(),
		Title:       models.DefaultEntryTitle,
		MediaPath:   mediaPath,
		DurationSec: durationSec,
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}

	_, err := s.Builder.
		Insert("entries").
		Columns("id", "title", "media_path", "duration_sec", "created_at").
		Values(entry.ID, entry.Title, nullString(entry.MediaPath), entry.DurationSec, entry.CreatedAt.UnixMilli()).
		RunWith(s.DB).
		ExecContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to insert entry: %w", err)
	}
	return entry, nil
}

// GetEntry retrieves a single entry by ID, including its tags.
func (s *Repository) GetEntry(ctx context.Context, id string) (*models.Entry, error) {
	query, args, err := s.Builder.Select(entryColumns...).From("entries").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	entry, err := scanEntry(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	tags, err := s.tagsByEntry(ctx, squirrel.Eq{"et.entry_id": id})
	if err != nil {
		return nil, err
	}
	entry.Tags = tags[id]
	return &entry, nil
}

// FetchAll returns every entry, newest first, with tags attached.
// The entries and their tags are read inside one transaction so the
// result is a consistent snapshot.
func (s *Repository) FetchAll(ctx context.Context) ([]models.Entry, error) {
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := s.Builder.
		Select(entryColumns...).
		From("entries").
		OrderBy("created_at DESC", "id DESC").
		RunWith(tx).
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	tags, err := s.tagsByEntryWith(ctx, tx, nil)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Tags = tags[entries[i].ID]
	}

	return entries, tx.Commit()
}

// UpdateEntry applies enrichment fields. The media reference is never touched.
func (s *Repository) UpdateEntry(ctx context.Context, id string, update models.EntryUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	q := s.Builder.Update("entries").Where(squirrel.Eq{"id": id})
	if update.Transcript != nil {
		q = q.Set("transcript", *update.Transcript)
	}
	if update.Summary != nil {
		q = q.Set("summary", *update.Summary)
	}

	res, err := q.RunWith(s.DB).ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", id, err)
	}
	return expectOneRow(res)
}

// SetTitle renames an entry.
func (s *Repository) SetTitle(ctx context.Context, id, title string) error {
	res, err := s.Builder.Update("entries").Set("title", title).Where(squirrel.Eq{"id": id}).RunWith(s.DB).ExecContext(ctx)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// DeleteEntry removes the entry row. Its tag links are removed by cascade.
func (s *Repository) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.Builder.Delete("entries").Where(squirrel.Eq{"id": id}).RunWith(s.DB).ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", id, err)
	}
	return expectOneRow(res)
}

// Count returns the number of entries.
func (s *Repository) Count(ctx context.Context) (int, error) {
	var n int
	query, args, err := s.Builder.Select("COUNT(*)").From("entries").ToSql()
	if err != nil {
		return 0, err
	}
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// AssignCategory links an entry to a category. An empty categoryID clears it.
func (s *Repository) AssignCategory(ctx context.Context, entryID, categoryID string) error {
	res, err := s.Builder.
		Update("entries").
		Set("category_id", nullString(categoryID)).
		Where(squirrel.Eq{"id": entryID}).
		RunWith(s.DB).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to assign category: %w", err)
	}
	return expectOneRow(res)
}
