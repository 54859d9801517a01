// filepath: internal/repository/dbtx.go
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"voicejournal/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// Tx is a wrapper around *sql.Tx that provides transactional database operations.
type Tx struct {
	*sql.Tx
	builder squirrel.StatementBuilderType
}

// fetchOrCreateTagInTx returns the tag with the given normalized name, creating it if needed.
func (tx *Tx) fetchOrCreateTagInTx(name string) (models.Tag, error) {
	var tag models.Tag
	var created int64

	query, args, err := tx.builder.
		Select("id", "name", "color", "created_at").
		From("tags").
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return tag, err
	}

	err = tx.QueryRow(query, args...).Scan(&tag.ID, &tag.Name, &tag.Color, &created)
	if err == nil {
		tag.CreatedAt = time.UnixMilli(created).UTC()
		return tag, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return tag, err
	}

	tag = models.Tag{ID: uuid.NewString(), Name: name, CreatedAt: time.Now().UTC()}
	_, err = tx.builder.
		Insert("tags").
		Columns("id", "name", "color", "created_at").
		Values(tag.ID, tag.Name, tag.Color, tag.CreatedAt.UnixMilli()).
		RunWith(tx.Tx).
		Exec()
	if err != nil {
		return tag, fmt.Errorf("failed to create tag %q: %w", name, err)
	}
	return tag, nil
}

// replaceEntryTagsInTx sets the exact tag set of an entry.
func (tx *Tx) replaceEntryTagsInTx(entryID string, tags []models.Tag) error {
	if _, err := tx.builder.Delete("entry_tags").Where(squirrel.Eq{"entry_id": entryID}).RunWith(tx.Tx).Exec(); err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}
	insert := tx.builder.Insert("entry_tags").Columns("entry_id", "tag_id")
	for _, t := range tags {
		insert = insert.Values(entryID, t.ID)
	}
	_, err := insert.RunWith(tx.Tx).Exec()
	return err
}
