package storage

import (
	"path/filepath"
	"testing"
	"time"

	"sidekick/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleNotification(id string, createdAt time.Time) models.Notification {
	return models.Notification{
		ID:        id,
		Kind:      models.KindAlert,
		Title:     "🎯 Time For Your Habit!",
		Message:   "Boss, it's time for Gym (09:00). Have you started? Don't skip this!",
		CreatedAt: createdAt,
	}
}

func TestSQLiteStore_AddAndGet(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"n1", "n2", "n3"} {
		n := sampleNotification(id, base.Add(time.Duration(i)*time.Minute))
		if err := store.AddNotification(n); err != nil {
			t.Fatalf("AddNotification(%s) error = %v", id, err)
		}
	}

	got, err := store.GetNotifications(10)
	if err != nil {
		t.Fatalf("GetNotifications() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d notifications, want 3", len(got))
	}
	// Newest first
	if got[0].ID != "n3" || got[2].ID != "n1" {
		t.Errorf("wrong order: %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
	if got[0].Kind != models.KindAlert {
		t.Errorf("kind = %v, want %v", got[0].Kind, models.KindAlert)
	}
	if !got[2].CreatedAt.Equal(base) {
		t.Errorf("created_at = %v, want %v", got[2].CreatedAt, base)
	}
}

func TestSQLiteStore_GetRespectsLimit(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		n := sampleNotification(string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
		if err := store.AddNotification(n); err != nil {
			t.Fatalf("AddNotification() error = %v", err)
		}
	}

	got, err := store.GetNotifications(2)
	if err != nil {
		t.Fatalf("GetNotifications() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d notifications, want 2", len(got))
	}
}

func TestSQLiteStore_DuplicateIDOverwrites(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	if err := store.AddNotification(sampleNotification("n1", base)); err != nil {
		t.Fatalf("AddNotification() error = %v", err)
	}
	if err := store.AddNotification(sampleNotification("n1", base.Add(time.Minute))); err != nil {
		t.Fatalf("AddNotification() error = %v", err)
	}

	got, err := store.GetNotifications(10)
	if err != nil {
		t.Fatalf("GetNotifications() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d notifications, want 1", len(got))
	}
}

func TestSQLiteStore_CountSince(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		n := sampleNotification(string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour))
		if err := store.AddNotification(n); err != nil {
			t.Fatalf("AddNotification() error = %v", err)
		}
	}

	count, err := store.CountSince(base.Add(90 * time.Minute))
	if err != nil {
		t.Fatalf("CountSince() error = %v", err)
	}
	if count != 2 {
		t.Errorf("CountSince() = %d, want 2", count)
	}
}

func TestSQLiteStore_PruneBefore(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		n := sampleNotification(string(rune('a'+i)), base.Add(time.Duration(i)*24*time.Hour))
		if err := store.AddNotification(n); err != nil {
			t.Fatalf("AddNotification() error = %v", err)
		}
	}

	pruned, err := store.PruneBefore(base.Add(36 * time.Hour))
	if err != nil {
		t.Fatalf("PruneBefore() error = %v", err)
	}
	if pruned != 2 {
		t.Errorf("PruneBefore() = %d, want 2", pruned)
	}

	got, err := store.GetNotifications(10)
	if err != nil {
		t.Fatalf("GetNotifications() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d notifications after prune, want 2", len(got))
	}
}

func TestSQLiteStore_UninitializedErrors(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))

	if err := store.AddNotification(sampleNotification("n1", time.Now())); err == nil {
		t.Error("AddNotification() on uninitialized store should error")
	}
	if _, err := store.GetNotifications(10); err == nil {
		t.Error("GetNotifications() on uninitialized store should error")
	}
}
