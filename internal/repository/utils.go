// filepath: internal/repository/utils.go
package repository

import (
	"context"
	"database/sql"
	"time"

	"voicejournal/internal/models"

	"github.com/Masterminds/squirrel"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanEntry scans the columns listed in entryColumns.
func scanEntry(row rowScanner) (models.Entry, error) {
	var (
		e          models.Entry
		mediaPath  sql.NullString
		transcript sql.NullString
		summary    sql.NullString
		categoryID sql.NullString
		createdAt  int64
	)
	if err := row.Scan(&e.ID, &e.Title, &mediaPath, &e.DurationSec, &createdAt, &transcript, &summary, &categoryID); err != nil {
		return e, err
	}
	e.MediaPath = mediaPath.String
	e.Transcript = transcript.String
	e.Summary = summary.String
	e.CategoryID = categoryID.String
	e.CreatedAt = time.UnixMilli(createdAt).UTC()
	return e, nil
}

// nullString maps "" to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// tagsByEntry loads tags grouped by entry ID.
func (s *Repository) tagsByEntry(ctx context.Context, where squirrel.Sqlizer) (map[string][]models.Tag, error) {
	return s.tagsByEntryWith(ctx, s.DB, where)
}

func (s *Repository) tagsByEntryWith(ctx context.Context, runner squirrel.BaseRunner, where squirrel.Sqlizer) (map[string][]models.Tag, error) {
	q := s.Builder.
		Select("et.entry_id", "t.id", "t.name", "t.color", "t.created_at").
		From("entry_tags et").
		Join("tags t ON t.id = et.tag_id").
		OrderBy("t.name")
	if where != nil {
		q = q.Where(where)
	}

	rows, err := q.RunWith(runner).QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]models.Tag)
	for rows.Next() {
		var entryID string
		var t models.Tag
		var created int64
		if err := rows.Scan(&entryID, &t.ID, &t.Name, &t.Color, &created); err != nil {
			return nil, err
		}
		t.CreatedAt = time.UnixMilli(created).UTC()
		out[entryID] = append(out[entryID], t)
	}
	return out, rows.Err()
}
