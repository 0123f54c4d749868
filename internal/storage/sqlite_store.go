package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"sidekick/internal/models"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS notifications (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	title      TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications (created_at);
`

type SQLiteStore struct {
	path string
	mu   sync.Mutex
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create the data directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) AddNotification(n models.Notification) error {
	if s.db == nil {
		return fmt.Errorf("storage not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO notifications (id, kind, title, message, created_at) VALUES (?, ?, ?, ?, ?)",
		n.ID, string(n.Kind), n.Title, n.Message, n.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetNotifications(limit int) ([]models.Notification, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not initialized")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		"SELECT id, kind, title, message, created_at FROM notifications ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	return scanNotifications(rows)
}

func (s *SQLiteStore) CountSince(t time.Time) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("storage not initialized")
	}

	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM notifications WHERE created_at >= ?",
		t.UTC().Format(time.RFC3339Nano),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) PruneBefore(t time.Time) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("storage not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"DELETE FROM notifications WHERE created_at < ?",
		t.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune notifications: %w", err)
	}
	return res.RowsAffected()
}

// scanNotifications is shared by both stores: created_at comes back as an
// RFC 3339 string from sqlite and as a time.Time from postgres, so the rows
// are scanned into a raw value first.
func scanNotifications(rows *sql.Rows) ([]models.Notification, error) {
	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var kind string
		var createdAt any

		if err := rows.Scan(&n.ID, &kind, &n.Title, &n.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		n.Kind = models.NotificationKind(kind)
		switch v := createdAt.(type) {
		case time.Time:
			n.CreatedAt = v
		case string:
			parsed, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				return nil, fmt.Errorf("failed to parse created_at %q: %w", v, err)
			}
			n.CreatedAt = parsed
		case []byte:
			parsed, err := time.Parse(time.RFC3339Nano, string(v))
			if err != nil {
				return nil, fmt.Errorf("failed to parse created_at %q: %w", v, err)
			}
			n.CreatedAt = parsed
		default:
			return nil, fmt.Errorf("unexpected created_at type %T", createdAt)
		}

		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
