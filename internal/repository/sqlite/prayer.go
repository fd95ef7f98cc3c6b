package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/akhalil/essam-memorial/internal/apperror"
	"github.com/akhalil/essam-memorial/internal/model"
	"github.com/akhalil/essam-memorial/internal/repository"
)

var _ repository.PrayerRepository = (*DB)(nil)

// Create inserts a new prayer, assigning its id and creation instant.
func (db *DB) Create(ctx context.Context, prayer *model.Prayer) error {
	prayer.ID = xid.New().String()
	prayer.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO prayers (id, text, name, created_at)
		 VALUES (?, ?, ?, ?)`,
		prayer.ID,
		prayer.Text,
		nullableName(prayer.Name),
		prayer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating prayer: %w", err)
	}

	return nil
}

// List returns prayers ordered newest first, capped by opts.
func (db *DB) List(ctx context.Context, opts repository.ListOptions) ([]model.Prayer, error) {
	limit := opts.Clamp()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, text, name, created_at
		 FROM prayers
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing prayers: %w", err)
	}
	defer rows.Close()

	prayers := make([]model.Prayer, 0)
	for rows.Next() {
		var p model.Prayer
		var name sql.NullString
		if err := rows.Scan(&p.ID, &p.Text, &name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning prayer row: %w", err)
		}
		p.Name = name.String
		prayers = append(prayers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating prayers: %w", err)
	}

	return prayers, nil
}

// Delete removes the prayer with the given id. Returns ErrNotFound when
// no row matched.
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM prayers WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting prayer %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("Prayer", id)
	}

	return nil
}

// nullableName maps the empty display name to NULL so anonymous prayers
// are stored the same way both backends read them back.
func nullableName(name string) sql.NullString {
	return sql.NullString{String: name, Valid: name != ""}
}
