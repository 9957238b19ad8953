// Package history keeps a local SQLite log of archive tool invocations.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded invocation.
type Entry struct {
	ID        int64
	Op        string
	Source    string
	Target    string
	Argv      []string
	Status    string
	ExitCode  int
	Detail    string
	Timestamp time.Time
}

// Store wraps a SQLite database of invocations.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path with WAL mode.
// Use ":memory:" for in-memory databases in tests.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db %s: %w", dbPath, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// SQLite handles one writer at a time
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records an invocation and sets e.ID.
func (s *Store) Append(ctx context.Context, e *Entry) error {
	argv, err := json.Marshal(e.Argv)
	if err != nil {
		return fmt.Errorf("marshaling argv: %w", err)
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO invocations (op, source, target, argv, status, exit_code, detail, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Op, e.Source, nullString(e.Target), string(argv),
		e.Status, e.ExitCode, nullString(e.Detail), e.Timestamp.Unix(),
	)
	if err != nil {
		return fmt.Errorf("appending history: %w", err)
	}
	e.ID, _ = result.LastInsertId()
	return nil
}

// List returns up to limit entries, newest first. A limit of zero or less
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]*Entry, error) {
	query := `SELECT id, op, source, target, argv, status, exit_code, detail, timestamp
		 FROM invocations ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		var target, detail sql.NullString
		var argv string
		var ts int64
		if err := rows.Scan(&e.ID, &e.Op, &e.Source, &target, &argv, &e.Status, &e.ExitCode, &detail, &ts); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(argv), &e.Argv); err != nil {
			return nil, fmt.Errorf("unmarshaling argv: %w", err)
		}
		e.Target = target.String
		e.Detail = detail.String
		e.Timestamp = time.Unix(ts, 0)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Clear removes every entry and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM invocations`)
	if err != nil {
		return 0, fmt.Errorf("clearing history: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
