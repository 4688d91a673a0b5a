// Package store persists the per-user message log and preferences in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Message is one logged conversation message.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the SQLite-backed message log. The log is append-only and keyed
// by user; the core treats it as an opaque history source.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and ensures the schema.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS users (
        user_id TEXT PRIMARY KEY,
        persona TEXT NOT NULL DEFAULT '',
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS messages (
        id TEXT PRIMARY KEY,
        user_id TEXT NOT NULL,
        role TEXT NOT NULL CHECK (role IN ('user', 'assistant')),
        content TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE INDEX IF NOT EXISTS idx_messages_user_created
        ON messages (user_id, created_at);
    `
	_, err := s.db.Exec(schema)
	return err
}

// AppendMessage appends one message to a user's log.
func (s *Store) AppendMessage(ctx context.Context, userID, role, content string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO messages (id, user_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)",
		uuid.NewString(), userID, role, content, time.Now())
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// Recent returns a user's last n messages in chronological order.
func (s *Store) Recent(ctx context.Context, userID string, n int) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, user_id, role, content, created_at FROM (
            SELECT id, user_id, role, content, created_at
            FROM messages WHERE user_id = ?
            ORDER BY created_at DESC, id DESC LIMIT ?
        ) ORDER BY created_at ASC, id ASC`, userID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// ClearHistory deletes a user's entire message log and reports how many
// messages were removed.
func (s *Store) ClearHistory(ctx context.Context, userID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM messages WHERE user_id = ?", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return res.RowsAffected()
}

// SetPersona stores a user's assistant persona preference.
func (s *Store) SetPersona(ctx context.Context, userID, persona string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO users (user_id, persona) VALUES (?, ?)
        ON CONFLICT(user_id) DO UPDATE SET persona = excluded.persona`,
		userID, persona)
	if err != nil {
		return fmt.Errorf("failed to set persona: %w", err)
	}
	return nil
}

// GetPersona returns a user's stored persona preference, or empty when the
// user has never set one.
func (s *Store) GetPersona(ctx context.Context, userID string) (string, error) {
	var persona string
	err := s.db.QueryRowContext(ctx,
		"SELECT persona FROM users WHERE user_id = ?", userID).Scan(&persona)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query persona: %w", err)
	}
	return persona, nil
}
