package infrastructure

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SearchLog persists one event per search request.
type SearchLog interface {
	Initialize() error
	Record(event SearchEvent) error
	Recent(limit int) ([]SearchEvent, error)
	Close() error
}

// SearchEvent is a stored search request
type SearchEvent struct {
	ID        int64
	Timestamp time.Time
	RequestID string
	Query     string
	Outcome   string
	Label     string
	Scanned   int
	Duration  time.Duration
	ErrorMsg  string
}

// SQLiteSearchLog implements SearchLog on SQLite
type SQLiteSearchLog struct {
	db *sql.DB
}

// OpenSearchLog opens (creating if needed) the database at dbPath and
// ensures the schema exists.
func OpenSearchLog(dbPath string) (*SQLiteSearchLog, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite serializes writers anyway
	db.SetMaxOpenConns(1)

	l := &SQLiteSearchLog{db: db}
	if err := l.Initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return l, nil
}

// Initialize sets up database tables
func (l *SQLiteSearchLog) Initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS search_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		request_id TEXT NOT NULL,
		query TEXT NOT NULL,
		outcome TEXT NOT NULL,
		label TEXT,
		scanned INTEGER NOT NULL DEFAULT 0,
		duration_us INTEGER NOT NULL DEFAULT 0,
		error_msg TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_search_timestamp ON search_events(timestamp);
	CREATE INDEX IF NOT EXISTS idx_search_outcome ON search_events(outcome);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Record stores a search event. A zero Timestamp is replaced by now.
func (l *SQLiteSearchLog) Record(event SearchEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	query := `
		INSERT INTO search_events (timestamp, request_id, query, outcome, label, scanned, duration_us, error_msg)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := l.db.Exec(query,
		event.Timestamp.UTC(),
		event.RequestID,
		event.Query,
		event.Outcome,
		event.Label,
		event.Scanned,
		event.Duration.Microseconds(),
		event.ErrorMsg,
	)
	if err != nil {
		return fmt.Errorf("failed to record search event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (l *SQLiteSearchLog) Recent(limit int) ([]SearchEvent, error) {
	query := `
		SELECT id, timestamp, request_id, query, outcome, label, scanned, duration_us, error_msg
		FROM search_events
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := l.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []SearchEvent
	for rows.Next() {
		var (
			e          SearchEvent
			label      sql.NullString
			errMsg     sql.NullString
			durationUS int64
		)
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.RequestID, &e.Query, &e.Outcome, &label, &e.Scanned, &durationUS, &errMsg); err != nil {
			return nil, err
		}
		e.Label = label.String
		e.ErrorMsg = errMsg.String
		e.Duration = time.Duration(durationUS) * time.Microsecond
		events = append(events, e)
	}

	return events, rows.Err()
}

func (l *SQLiteSearchLog) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}
