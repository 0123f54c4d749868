package notify

import (
	"errors"
	"sync"
	"testing"
	"time"

	"sidekick/internal/models"
)

func TestSink_AddAssignsIDAndPrepends(t *testing.T) {
	sink := NewSink(time.Hour)

	first := sink.Add(models.Notification{Kind: models.KindInfo, Title: "first"})
	second := sink.Add(models.Notification{Kind: models.KindAlert, Title: "second"})

	if first == "" || second == "" {
		t.Fatal("Add returned empty id")
	}
	if first == second {
		t.Fatal("Add returned duplicate ids")
	}

	list := sink.List()
	if len(list) != 2 {
		t.Fatalf("List() length = %d, want 2", len(list))
	}
	if list[0].Title != "second" || list[1].Title != "first" {
		t.Errorf("List() order = [%s, %s], want newest first", list[0].Title, list[1].Title)
	}
	if list[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}
}

func TestSink_DuplicateTitlesStayDistinct(t *testing.T) {
	sink := NewSink(time.Hour)

	sink.Add(models.Notification{Title: "same"})
	sink.Add(models.Notification{Title: "same"})

	if got := sink.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2 (no collapsing)", got)
	}
}

func TestSink_RemoveIsIdempotent(t *testing.T) {
	sink := NewSink(time.Hour)

	id := sink.Add(models.Notification{Title: "bye"})
	sink.Remove(id)
	if got := sink.Len(); got != 0 {
		t.Fatalf("Len() after remove = %d, want 0", got)
	}

	// Removing again, or removing garbage, is a no-op
	sink.Remove(id)
	sink.Remove("no-such-id")
}

func TestSink_AutoDismissByDefault(t *testing.T) {
	sink := NewSink(20 * time.Millisecond)

	// Unmarked notifications dismiss themselves; persistent ones stay
	sink.Add(models.Notification{Title: "fleeting"})
	sink.Add(models.Notification{Title: "sticky", Persistent: true})

	deadline := time.After(2 * time.Second)
	for sink.Len() != 1 {
		select {
		case <-deadline:
			t.Fatal("auto-dismiss never fired")
		case <-time.After(5 * time.Millisecond):
		}
	}

	list := sink.List()
	if list[0].Title != "sticky" {
		t.Errorf("remaining notification = %q, want sticky", list[0].Title)
	}
}

func TestSink_Clear(t *testing.T) {
	sink := NewSink(time.Hour)

	sink.Add(models.Notification{Title: "a", Persistent: true})
	sink.Add(models.Notification{Title: "b"})
	sink.Clear()

	if got := sink.Len(); got != 0 {
		t.Errorf("Len() after clear = %d, want 0", got)
	}
}

func TestSink_ConcurrentAdds(t *testing.T) {
	sink := NewSink(time.Hour)

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				sink.Add(models.Notification{Title: "n"})
			}
		}()
	}
	wg.Wait()

	if got := sink.Len(); got != writers*perWriter {
		t.Errorf("Len() = %d, want %d (no lost or duplicated entries)", got, writers*perWriter)
	}

	seen := make(map[string]bool)
	for _, n := range sink.List() {
		if seen[n.ID] {
			t.Fatalf("duplicate id %s", n.ID)
		}
		seen[n.ID] = true
	}
}

func TestSink_ClosedDropsAdds(t *testing.T) {
	sink := NewSink(time.Hour)
	sink.Close()

	if id := sink.Add(models.Notification{Title: "late"}); id != "" {
		t.Errorf("Add on closed sink returned id %q, want empty", id)
	}
	if got := sink.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}

func TestSink_UpdatesSignal(t *testing.T) {
	sink := NewSink(time.Hour)

	sink.Add(models.Notification{Title: "ping"})

	select {
	case <-sink.Updates():
	case <-time.After(time.Second):
		t.Fatal("no update signal after Add")
	}
}

type recordingArchiver struct {
	mu   sync.Mutex
	seen []models.Notification
	err  error
}

func (a *recordingArchiver) AddNotification(n models.Notification) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seen = append(a.seen, n)
	return a.err
}

func TestSink_Archiver(t *testing.T) {
	sink := NewSink(time.Hour)
	archiver := &recordingArchiver{}
	sink.SetArchiver(archiver)

	sink.Add(models.Notification{Title: "kept"})

	archiver.mu.Lock()
	defer archiver.mu.Unlock()
	if len(archiver.seen) != 1 {
		t.Fatalf("archiver saw %d notifications, want 1", len(archiver.seen))
	}
	if archiver.seen[0].ID == "" {
		t.Error("archived notification missing id")
	}
}

func TestSink_ArchiverErrorDoesNotBlockAdd(t *testing.T) {
	sink := NewSink(time.Hour)
	sink.SetArchiver(&recordingArchiver{err: errors.New("disk full")})

	if id := sink.Add(models.Notification{Title: "still added"}); id == "" {
		t.Fatal("Add failed when archiver errored")
	}
	if got := sink.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}
