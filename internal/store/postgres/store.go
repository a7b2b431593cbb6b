// Package postgres persists documents in a single JSONB table. Records are
// schemaless on the database side; all shape knowledge lives in the record
// codec.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finwise/internal/ledger"
	"github.com/MrJamesThe3rd/finwise/internal/record"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) List(ctx context.Context, collection, ownerID string) ([]record.Document, error) {
	query := `
		SELECT id, owner_id, body
		FROM documents
		WHERE collection = $1 AND owner_id = $2
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, collection, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []record.Document

	for rows.Next() {
		var (
			id  uuid.UUID
			doc record.Document
		)

		if err := rows.Scan(&id, &doc.OwnerID, &doc.Body); err != nil {
			return nil, fmt.Errorf("scanning %s document: %w", collection, err)
		}

		doc.ID = id.String()
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}

	return docs, nil
}

func (s *Store) Append(ctx context.Context, collection string, doc record.Document) (string, error) {
	query := `
		INSERT INTO documents (collection, owner_id, body, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`

	var id uuid.UUID

	err := s.db.QueryRowContext(ctx, query, collection, doc.OwnerID, doc.Body).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("appending to %s: %w", collection, err)
	}

	return id.String(), nil
}

func (s *Store) Update(ctx context.Context, collection, id string, doc record.Document) error {
	query := `
		UPDATE documents
		SET body = $1, updated_at = NOW()
		WHERE collection = $2 AND id = $3
	`

	res, err := s.db.ExecContext(ctx, query, doc.Body, collection, id)
	if err != nil {
		return fmt.Errorf("updating %s document: %w", collection, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating %s document: %w", collection, err)
	}

	if affected == 0 {
		return ledger.ErrNotFound
	}

	return nil
}
