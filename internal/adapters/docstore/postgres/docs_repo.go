package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"vet-agenda/internal/docstore"
)

// DocsRepo persiste los documentos en una tabla única con payload JSONB:
//
//	CREATE TABLE documents (
//	    account_id TEXT NOT NULL,
//	    collection TEXT NOT NULL,
//	    id         TEXT NOT NULL,
//	    fields     JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL,
//	    PRIMARY KEY (account_id, collection, id)
//	);
type DocsRepo struct {
	db *sql.DB
}

func NewDocsRepo(db *sql.DB) *DocsRepo {
	return &DocsRepo{db: db}
}

func (r *DocsRepo) List(ctx context.Context, scope docstore.Scope) ([]docstore.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, fields, created_at, updated_at
		FROM documents
		WHERE account_id = $1 AND collection = $2
	`, scope.AccountID, scope.Collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]docstore.Document, 0)
	for rows.Next() {
		var d docstore.Document
		var raw []byte
		if err := rows.Scan(&d.ID, &raw, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &d.Fields); err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, rows.Err()
}

func (r *DocsRepo) Get(ctx context.Context, scope docstore.Scope, id string) (docstore.Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return docstore.Document{}, docstore.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, fields, created_at, updated_at
		FROM documents
		WHERE account_id = $1 AND collection = $2 AND id = $3
	`, scope.AccountID, scope.Collection, id)

	var d docstore.Document
	var raw []byte
	if err := row.Scan(&d.ID, &raw, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return docstore.Document{}, docstore.ErrNotFound
		}
		return docstore.Document{}, err
	}
	if err := json.Unmarshal(raw, &d.Fields); err != nil {
		return docstore.Document{}, err
	}

	return d, nil
}

func (r *DocsRepo) Create(ctx context.Context, scope docstore.Scope, d docstore.Document) error {
	raw, err := json.Marshal(d.Fields)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO documents (account_id, collection, id, fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		scope.AccountID,
		scope.Collection,
		d.ID,
		raw,
		d.CreatedAt,
		d.UpdatedAt,
	)
	return err
}

func (r *DocsRepo) Update(ctx context.Context, scope docstore.Scope, d docstore.Document) error {
	raw, err := json.Marshal(d.Fields)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE documents
		SET fields = $4, updated_at = $5
		WHERE account_id = $1 AND collection = $2 AND id = $3
	`,
		scope.AccountID,
		scope.Collection,
		d.ID,
		raw,
		d.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (r *DocsRepo) Delete(ctx context.Context, scope docstore.Scope, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM documents
		WHERE account_id = $1 AND collection = $2 AND id = $3
	`, scope.AccountID, scope.Collection, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return docstore.ErrNotFound
	}
	return nil
}
