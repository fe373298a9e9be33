// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/folio/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for preferences and the message journal.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			body TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// GetPreference returns the stored value for key. The boolean is false when
// the key has never been written.
func (s *Store) GetPreference(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetPreference stores value under key, replacing any previous value.
func (s *Store) SetPreference(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// InsertMessage journals a completed contact submission.
func (s *Store) InsertMessage(ctx context.Context, rec model.MessageRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("message id is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, created_at, name, email, body, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		rec.Name,
		rec.Email,
		rec.Body,
		string(rec.Status),
		rec.Error,
	)
	return err
}

// ListMessages returns journaled messages oldest first. Last limits the
// result to the most recent N rows.
func (s *Store) ListMessages(ctx context.Context, filter model.MessageFilter) ([]model.MessageRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}
	limit := ""
	if filter.Last > 0 {
		limit = "LIMIT ?"
		args = append(args, filter.Last)
	}
	query := fmt.Sprintf(`SELECT id, created_at, name, email, body, status, error FROM (
		SELECT rowid AS seq, * FROM messages
		WHERE %s
		ORDER BY created_at DESC, rowid DESC
		%s
	) ORDER BY created_at ASC, seq ASC`, strings.Join(clauses, " AND "), limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.MessageRecord
	for rows.Next() {
		var rec model.MessageRecord
		var createdAt, status string
		if err := rows.Scan(&rec.ID, &createdAt, &rec.Name, &rec.Email, &rec.Body, &status, &rec.Error); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = parsed
		rec.Status = model.MessageStatus(status)
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
