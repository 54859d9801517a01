// filepath: internal/repository/query_repo.go
package repository

import (
	"context"
	"fmt"
	"strings"

	"voicejournal/internal/logging"
	"voicejournal/internal/models"
	"voicejournal/internal/shared"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
)

// ErrInvalidFilter is returned for queries that cannot be turned into SQL.
const ErrInvalidFilter = shared.ErrInvalidFilter

// MaxQueryLimit caps the page size of SearchEntries.
const MaxQueryLimit = 500

// SearchEntries returns entries matching q, newest first unless q.Order is "asc".
// A zero Limit means MaxQueryLimit.
func (s *Repository) SearchEntries(ctx context.Context, q models.EntryQuery) ([]models.Entry, error) {
	builder, err := s.buildEntryQuery(q)
	if err != nil {
		return nil, err
	}

	if logging.Log.IsLevelEnabled(logrus.DebugLevel) {
		query, args, _ := builder.ToSql()
		logging.Log.Debugf("Generated SQL for SearchEntries: %s", query)
		logging.Log.Debugf("Arguments: %v", args)
	}

	rows, err := builder.RunWith(s.DB).QueryContext(ctx)
	if err != nil {
		logging.Log.Errorf("Error executing SearchEntries query: %v", err)
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.Entry, 0)
	ids := make([]string, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			logging.Log.Errorf("Error scanning entry row: %v", err)
			return nil, err
		}
		entries = append(entries, entry)
		ids = append(ids, entry.ID)
	}
	if err = rows.Err(); err != nil {
		logging.Log.Errorf("Error during rows iteration: %v", err)
		return nil, err
	}
	rows.Close()

	if len(ids) == 0 {
		return entries, nil
	}
	tags, err := s.tagsByEntry(ctx, squirrel.Eq{"et.entry_id": ids})
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Tags = tags[entries[i].ID]
	}
	return entries, nil
}

// buildEntryQuery turns the filter into a parameterized SELECT.
func (s *Repository) buildEntryQuery(q models.EntryQuery) (squirrel.SelectBuilder, error) {
	b := s.Builder.Select(entryColumns...).From("entries")

	if text := strings.TrimSpace(q.Text); text != "" {
		like := "%" + escapeLike(text) + "%"
		b = b.Where(squirrel.Or{
			squirrel.Expr(`title LIKE ? ESCAPE '\'`, like),
			squirrel.Expr(`transcript LIKE ? ESCAPE '\'`, like),
			squirrel.Expr(`summary LIKE ? ESCAPE '\'`, like),
		})
	}
	if q.CategoryID != "" {
		b = b.Where(squirrel.Eq{"category_id": q.CategoryID})
	}
	if tag := shared.NormalizeTagName(q.Tag); tag != "" {
		b = b.Where(`id IN (SELECT et.entry_id FROM entry_tags et JOIN tags t ON t.id = et.tag_id WHERE t.name = ?)`, tag)
	} else if strings.TrimSpace(q.Tag) != "" {
		return b, fmt.Errorf("%w: invalid tag: %q", ErrInvalidFilter, q.Tag)
	}
	if !q.Since.IsZero() {
		b = b.Where(squirrel.GtOrEq{"created_at": q.Since.UnixMilli()})
	}
	if !q.Until.IsZero() {
		b = b.Where(squirrel.LtOrEq{"created_at": q.Until.UnixMilli()})
	}
	if !q.Since.IsZero() && !q.Until.IsZero() && q.Until.Before(q.Since) {
		return b, fmt.Errorf("%w: until is before since", ErrInvalidFilter)
	}

	switch strings.ToLower(q.Order) {
	case "", "desc":
		b = b.OrderBy("created_at DESC", "id DESC")
	case "asc":
		b = b.OrderBy("created_at ASC", "id ASC")
	default:
		return b, fmt.Errorf("%w: invalid order: %s", ErrInvalidFilter, q.Order)
	}

	if q.Limit < 0 || q.Offset < 0 {
		return b, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidFilter)
	}
	limit := q.Limit
	if limit == 0 || limit > MaxQueryLimit {
		limit = MaxQueryLimit
	}
	return b.Limit(uint64(limit)).Offset(uint64(q.Offset)), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
