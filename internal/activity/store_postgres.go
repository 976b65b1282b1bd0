// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joelnust/namsa/internal/platform/database/schema"
	"github.com/joelnust/namsa/internal/platform/dberr"
	"github.com/joelnust/namsa/internal/profile"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
Insert stores one activity entry.

Parameters:
  - context: context.Context
  - entry: *Entry

Returns:
  - error: Database execution errors
*/
func (repository *PostgresRepository) Insert(context context.Context, entry *Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		schema.PortalActivity.Table,
		schema.PortalActivity.ID, schema.PortalActivity.UserID, schema.PortalActivity.Action,
		schema.PortalActivity.Category, schema.PortalActivity.Success, schema.PortalActivity.Message,
		schema.PortalActivity.RequestID, schema.PortalActivity.CreatedAt,
	)

	_, err := repository.db.Exec(context, query,
		entry.ID, entry.UserID, string(entry.Action), string(entry.Category),
		entry.Success, entry.Message, entry.RequestID, entry.CreatedAt,
	)
	return dberr.Wrap(err, "Activity entry")
}

/*
ListByUser returns one page of a user's entries.

  - Window Function: COUNT(*) OVER() carries the total in every row so a
    single round trip serves both the page and its metadata.

Parameters:
  - context: context.Context
  - userID: string
  - limit: int
  - offset: int

Returns:
  - []*Entry: Hydrated entries, newest first
  - int: Total entries of the user
  - error: Database retrieval errors
*/
func (repository *PostgresRepository) ListByUser(context context.Context, userID string, limit, offset int) ([]*Entry, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s,
			COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.PortalActivity.ID, schema.PortalActivity.UserID, schema.PortalActivity.Action,
		schema.PortalActivity.Category, schema.PortalActivity.Success, schema.PortalActivity.Message,
		schema.PortalActivity.RequestID, schema.PortalActivity.CreatedAt,
		schema.PortalActivity.Table,
		schema.PortalActivity.UserID,
		schema.PortalActivity.CreatedAt,
		schema.PortalActivity.ID,
	)

	rows, err := repository.db.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Activity trail")
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	total := 0
	for rows.Next() {
		entry := &Entry{}
		var action, category string
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &action, &category,
			&entry.Success, &entry.Message, &entry.RequestID, &entry.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Activity entry")
		}
		entry.Action = Action(action)
		entry.Category = profile.Category(category)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Activity trail")
	}

	return entries, total, nil
}
