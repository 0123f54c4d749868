package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"sidekick/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS notifications (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	title      TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications (created_at);
`

// PostgresStore backs the notification history with a shared Postgres
// database, for setups where several machines feed one history.
type PostgresStore struct {
	connString string
	db         *sql.DB
}

func NewPostgresStore(connString string) *PostgresStore {
	return &PostgresStore{
		connString: connString,
	}
}

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connString)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) AddNotification(n models.Notification) error {
	if s.db == nil {
		return fmt.Errorf("storage not initialized")
	}

	_, err := s.db.Exec(
		`INSERT INTO notifications (id, kind, title, message, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO NOTHING`,
		n.ID, string(n.Kind), n.Title, n.Message, n.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetNotifications(limit int) ([]models.Notification, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not initialized")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		"SELECT id, kind, title, message, created_at FROM notifications ORDER BY created_at DESC LIMIT $1",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	return scanNotifications(rows)
}

func (s *PostgresStore) CountSince(t time.Time) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("storage not initialized")
	}

	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM notifications WHERE created_at >= $1",
		t.UTC(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) PruneBefore(t time.Time) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("storage not initialized")
	}

	res, err := s.db.Exec("DELETE FROM notifications WHERE created_at < $1", t.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune notifications: %w", err)
	}
	return res.RowsAffected()
}
