package gateway

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Message statuses as persisted in the inbox.
const (
	MessagePending = "pending"
	MessageRunning = "running"
	MessageDone    = "done"
	MessageFailed  = "failed"
)

// Message is one inbound task request recorded in the inbox.
type Message struct {
	ID        string
	Workspace string
	Text      string
	Mode      string
	Status    string
	Outcome   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Inbox provides SQLite-backed persistence for inbound gateway requests.
// Every request is recorded before it runs so a crash leaves a trail.
type Inbox struct {
	db *sql.DB
}

// OpenInbox opens the SQLite database at dbPath and creates the inbox
// table if it doesn't exist.
func OpenInbox(dbPath string) (*Inbox, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open inbox database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS inbox_messages (
		id TEXT PRIMARY KEY,
		workspace TEXT NOT NULL,
		text TEXT NOT NULL,
		mode TEXT NOT NULL,
		status TEXT NOT NULL,
		outcome TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create inbox table: %w", err)
	}

	return &Inbox{db: db}, nil
}

// Close closes the database connection.
func (i *Inbox) Close() error {
	return i.db.Close()
}

// Record inserts a new pending message and returns it.
func (i *Inbox) Record(workspace, text, mode string) (*Message, error) {
	msg := &Message{
		ID:        uuid.New().String(),
		Workspace: workspace,
		Text:      text,
		Mode:      mode,
		Status:    MessagePending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	_, err := i.db.Exec(
		`INSERT INTO inbox_messages (id, workspace, text, mode, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.Workspace, msg.Text, msg.Mode, msg.Status, msg.CreatedAt, msg.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert inbox message: %w", err)
	}
	return msg, nil
}

// SetStatus transitions a message to the given status, recording an
// outcome summary alongside terminal states.
func (i *Inbox) SetStatus(id, status, outcome string) error {
	_, err := i.db.Exec(
		`UPDATE inbox_messages SET status = ?, outcome = ?, updated_at = ? WHERE id = ?`,
		status, outcome, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("update inbox message: %w", err)
	}
	return nil
}

// Get retrieves a message by ID. It returns nil if no message matches.
func (i *Inbox) Get(id string) (*Message, error) {
	row := i.db.QueryRow(
		`SELECT id, workspace, text, mode, status, outcome, created_at, updated_at
		 FROM inbox_messages WHERE id = ?`,
		id,
	)

	var msg Message
	err := row.Scan(&msg.ID, &msg.Workspace, &msg.Text, &msg.Mode, &msg.Status, &msg.Outcome, &msg.CreatedAt, &msg.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan inbox message: %w", err)
	}
	return &msg, nil
}

// List returns the most recent messages, newest first.
func (i *Inbox) List(limit int) ([]Message, error) {
	rows, err := i.db.Query(
		`SELECT id, workspace, text, mode, status, outcome, created_at, updated_at
		 FROM inbox_messages
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query inbox messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.Workspace, &msg.Text, &msg.Mode, &msg.Status, &msg.Outcome, &msg.CreatedAt, &msg.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inbox message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return messages, nil
}
