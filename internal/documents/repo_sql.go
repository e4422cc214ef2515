package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ats-backend/internal/shared/storage/db"
)

// SQLRepo implements DocumentsRepo on database/sql. Driver selects the
// placeholder style (Postgres via pgx or SQLite).
type SQLRepo struct {
	DB     *sql.DB
	Driver string
}

const selectCurrentQuery = `
SELECT id, user_id, file_name, mime_type, size_bytes, storage_key, extracted_key, extracted_chars, created_at
FROM documents
WHERE user_id = $1`

const upsertCurrentQuery = `
INSERT INTO documents (
    id,
    user_id,
    file_name,
    mime_type,
    size_bytes,
    storage_key,
    extracted_key,
    extracted_chars,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (user_id) DO UPDATE SET
    id = EXCLUDED.id,
    file_name = EXCLUDED.file_name,
    mime_type = EXCLUDED.mime_type,
    size_bytes = EXCLUDED.size_bytes,
    storage_key = EXCLUDED.storage_key,
    extracted_key = EXCLUDED.extracted_key,
    extracted_chars = EXCLUDED.extracted_chars,
    created_at = EXCLUDED.created_at`

// ReplaceCurrent swaps the user's current document inside one transaction.
// The previous row is read first (locked on Postgres) and the new one is
// upserted on user_id, so concurrent uploads from one user never hit the
// unique index. If two first uploads race, the loser's row is overwritten
// and neither call reports a previous document.
func (r *SQLRepo) ReplaceCurrent(ctx context.Context, doc Document) (*Document, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin replace document: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	selectQuery := selectCurrentQuery
	if r.Driver == db.DriverPostgres {
		selectQuery += "\nFOR UPDATE"
	}

	var previous *Document
	prev, err := scanDocument(tx.QueryRowContext(ctx, r.q(selectQuery), doc.UserID))
	switch {
	case err == nil:
		previous = &prev
	case errors.Is(err, ErrNotFound):
	default:
		return nil, fmt.Errorf("load previous document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, r.q(upsertCurrentQuery),
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.MimeType,
		doc.SizeBytes,
		doc.StorageKey,
		doc.ExtractedKey,
		doc.ExtractedChars,
		doc.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("upsert document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit replace document: %w", err)
	}
	return previous, nil
}

// GetCurrentByUser returns the current document for a user.
func (r *SQLRepo) GetCurrentByUser(ctx context.Context, userID string) (Document, error) {
	return scanDocument(r.DB.QueryRowContext(ctx, r.q(selectCurrentQuery), userID))
}

// Ping checks database connectivity.
func (r *SQLRepo) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

func (r *SQLRepo) q(query string) string {
	return db.Rebind(r.Driver, query)
}

func scanDocument(row *sql.Row) (Document, error) {
	var doc Document
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.StorageKey,
		&doc.ExtractedKey,
		&doc.ExtractedChars,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

var _ DocumentsRepo = (*SQLRepo)(nil)
