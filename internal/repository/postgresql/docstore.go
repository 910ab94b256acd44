package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/securefront/workforce-backend-go/internal/pkg/apperror"
	"github.com/securefront/workforce-backend-go/internal/pkg/database"
	"github.com/securefront/workforce-backend-go/internal/pkg/docstore"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		collection TEXT        NOT NULL,
		id         TEXT        NOT NULL,
		body       JSONB       NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (collection, id)
	)`,
	`CREATE INDEX IF NOT EXISTS documents_body_idx ON documents USING GIN (body jsonb_path_ops)`,
}

// DocumentStore keeps every collection in one JSONB table keyed by
// (collection, id).
type DocumentStore struct {
	db *database.DB
}

func NewDocumentStore(db *database.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// EnsureSchema creates the documents table and its index.
func (s *DocumentStore) EnsureSchema(ctx context.Context) error {
	return WithTransaction(ctx, s.db, "ensure schema", func(tx pgx.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
		}
		return nil
	})
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	var raw []byte
	err := s.db.QueryRow(ctx,
		`SELECT body FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, docstore.ErrNotFound
		}
		return nil, apperror.Storage("get "+collection, err)
	}
	return unmarshalBody(raw)
}

func (s *DocumentStore) Put(ctx context.Context, collection string, doc docstore.Document) (docstore.Document, error) {
	stored, err := docstore.PrepareInsert(doc)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3::jsonb)`,
		collection, stored.ID(), string(body),
	)
	if err != nil {
		return nil, apperror.Storage("put "+collection, err)
	}
	return stored, nil
}

func (s *DocumentStore) Update(ctx context.Context, collection, id string, partial docstore.Document) (docstore.Document, error) {
	changes, err := docstore.PrepareUpdate(partial)
	if err != nil {
		return nil, err
	}
	patch, err := json.Marshal(changes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	// jsonb || merges top-level keys in a single row-locked statement.
	var raw []byte
	err = s.db.QueryRow(ctx,
		`UPDATE documents
		    SET body = body || $3::jsonb, updated_at = now()
		  WHERE collection = $1 AND id = $2
		RETURNING body`,
		collection, id, string(patch),
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, docstore.ErrNotFound
		}
		return nil, apperror.Storage("update "+collection, err)
	}
	return unmarshalBody(raw)
}

func (s *DocumentStore) QueryByField(ctx context.Context, collection, field string, value any) ([]docstore.Document, error) {
	filter, err := json.Marshal(map[string]any{field: value})
	if err != nil {
		return nil, fmt.Errorf("failed to encode filter: %w", err)
	}
	return s.query(ctx, "query "+collection,
		`SELECT body FROM documents WHERE collection = $1 AND body @> $2::jsonb ORDER BY id`,
		collection, string(filter),
	)
}

func (s *DocumentStore) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	return s.query(ctx, "list "+collection,
		`SELECT body FROM documents WHERE collection = $1 ORDER BY id`,
		collection,
	)
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	if err != nil {
		return apperror.Storage("delete "+collection, err)
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *DocumentStore) query(ctx context.Context, op, sql string, args ...any) ([]docstore.Document, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.Storage(op, err)
	}
	defer rows.Close()

	var docs []docstore.Document
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, apperror.Storage(op, err)
		}
		doc, err := unmarshalBody(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage(op, err)
	}
	return docs, nil
}

func unmarshalBody(raw []byte) (docstore.Document, error) {
	doc := docstore.Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, nil
}
