package memory

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists events to SQLite and mirrors them into daily
// markdown logs. The summary combines the curated MEMORY.md file with
// the most recent events.
//
// Layout under the memory directory:
//
//	MEMORY.md            curated long-term facts and preferences
//	logs/YYYY-MM-DD.md   append-only daily event log
//	memory.db            structured entries
type SQLiteStore struct {
	db  *sql.DB
	dir string
	now func() time.Time
}

// recentEventLimit caps how many stored events feed the summary.
const recentEventLimit = 10

// Open opens (creating if needed) the memory store rooted at dir.
func Open(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return nil, fmt.Errorf("creating memory directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, "memory.db"))
	if err != nil {
		return nil, fmt.Errorf("opening memory database: %w", err)
	}

	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS memory_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		type TEXT NOT NULL,
		content TEXT NOT NULL,
		importance INTEGER NOT NULL DEFAULT 5
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating memory tables: %w", err)
	}

	return &SQLiteStore{db: db, dir: dir, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// WriteEvent inserts one structured entry and appends a line to today's
// daily log. Importance is clamped to 1..10.
func (s *SQLiteStore) WriteEvent(ctx context.Context, content string, typ EventType, importance int) error {
	if !typ.Valid() {
		return fmt.Errorf("invalid event type %q", typ)
	}
	if importance < 1 {
		importance = 1
	} else if importance > 10 {
		importance = 10
	}

	now := s.now().UTC()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO memory_entries (created_at, type, content, importance) VALUES (?, ?, ?, ?)`,
		now.Format(time.RFC3339), string(typ), content, importance,
	); err != nil {
		return fmt.Errorf("inserting memory entry: %w", err)
	}

	if err := s.appendDailyLog(now, typ, content); err != nil {
		return fmt.Errorf("appending daily log: %w", err)
	}
	return nil
}

func (s *SQLiteStore) appendDailyLog(now time.Time, typ EventType, content string) error {
	path := filepath.Join(s.dir, "logs", now.Format("2006-01-02")+".md")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	line := fmt.Sprintf("- %s [%s] %s\n", now.Format("15:04"), typ, content)
	_, err = f.WriteString(line)
	return err
}

// ReadSummary composes the curated MEMORY.md content (markdown stripped
// to plain text) with the most recent stored events. A missing
// MEMORY.md or empty database is not an error; the summary degrades to
// whatever is available.
func (s *SQLiteStore) ReadSummary(ctx context.Context) (string, error) {
	var sections []string

	if curated := s.readCurated(); curated != "" {
		sections = append(sections, curated)
	}

	recent, err := s.readRecent(ctx)
	if err != nil {
		return "", err
	}
	if recent != "" {
		sections = append(sections, "Recent events:\n"+recent)
	}

	return strings.Join(sections, "\n\n"), nil
}

func (s *SQLiteStore) readCurated() string {
	source, err := os.ReadFile(filepath.Join(s.dir, "MEMORY.md"))
	if err != nil {
		return ""
	}
	return ExtractText(source)
}

func (s *SQLiteStore) readRecent(ctx context.Context) (string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT created_at, type, content FROM memory_entries ORDER BY id DESC LIMIT ?`, recentEventLimit)
	if err != nil {
		return "", fmt.Errorf("querying recent entries: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var lines []string
	for rows.Next() {
		var createdAt, typ, content string
		if err := rows.Scan(&createdAt, &typ, &content); err != nil {
			return "", fmt.Errorf("scanning memory entry: %w", err)
		}
		lines = append(lines, fmt.Sprintf("- %s [%s] %s", createdAt, typ, content))
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}
