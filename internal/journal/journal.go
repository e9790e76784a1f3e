package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// InMemory is the path for a journal that dies with the process.
const InMemory = ":memory:"

// Journal is an append-only SQLite event log of session activity.
type Journal struct {
	db *sql.DB

	// seq orders events within one journal. Monotonic counter, never
	// wall-clock: rows must sort deterministically even when written
	// within the same second.
	mu  sync.Mutex
	seq int64
}

// Event is one journal row.
type Event struct {
	Seq        int64  `json:"seq"`
	SessionID  string `json:"session_id"`
	Kind       string `json:"kind"` // "scan" | "accept" | "reject"
	Generation string `json:"generation,omitempty"`
	TokenText  string `json:"token_text,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Mismatches int    `json:"mismatches,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// Open creates or opens a journal database at the given path.
// Use InMemory for a journal scoped to the process lifetime.
//
// The database is configured with a single connection (SQLite allows one
// writer at a time) and a busy timeout for lock contention. Idempotent:
// safe to call on an existing journal file.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	j := &Journal{db: db}
	if err := j.loadSeq(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// loadSeq resumes the counter from an existing journal file.
func (j *Journal) loadSeq() error {
	var max sql.NullInt64
	if err := j.db.QueryRow("SELECT MAX(seq) FROM events").Scan(&max); err != nil {
		return fmt.Errorf("failed to read journal sequence: %w", err)
	}
	if max.Valid {
		j.seq = max.Int64
	}
	return nil
}

// Close closes the journal database.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

func (j *Journal) nextSeq() int64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.seq++
	return j.seq
}

// RecordScan appends a scan event. Implements session.Recorder.
func (j *Journal) RecordScan(ctx context.Context, sessionID, generation string, mismatches int) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO events (session_id, seq, kind, generation, mismatches)
		 VALUES (?, ?, 'scan', ?, ?)`,
		sessionID, j.nextSeq(), generation, mismatches)
	if err != nil {
		return fmt.Errorf("failed to record scan: %w", err)
	}
	return nil
}

// RecordResolution appends an accept or reject event.
// Implements session.Recorder.
func (j *Journal) RecordResolution(ctx context.Context, sessionID, kind, tokenText, suggestion string) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO events (session_id, seq, kind, token_text, suggestion)
		 VALUES (?, ?, ?, ?, ?)`,
		sessionID, j.nextSeq(), kind, tokenText, suggestion)
	if err != nil {
		return fmt.Errorf("failed to record resolution: %w", err)
	}
	return nil
}

// Events returns all events for a session in sequence order.
// An empty sessionID returns every event in the journal.
func (j *Journal) Events(ctx context.Context, sessionID string) ([]Event, error) {
	query := `SELECT seq, session_id, kind, generation, token_text, suggestion, mismatches, created_at
	          FROM events`
	args := []any{}
	if sessionID != "" {
		query += " WHERE session_id = ?"
		args = append(args, sessionID)
	}
	query += " ORDER BY seq"

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Seq, &e.SessionID, &e.Kind, &e.Generation,
			&e.TokenText, &e.Suggestion, &e.Mismatches, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
