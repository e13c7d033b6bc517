package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/housemate/internal/models"
)

type recordingStore struct {
	saved []*models.Notification
	err   error
}

func (s *recordingStore) CreateNotifications(_ context.Context, n []*models.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, n...)
	return nil
}

type recordingPublisher struct {
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e Event) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func household() *models.Group {
	return &models.Group{
		ID: 4,
		Members: []models.Member{
			{ID: 1, LoginID: "alice"},
			{ID: 2, LoginID: "bob"},
			{ID: 3, LoginID: "carol"},
		},
	}
}

func TestNotify(t *testing.T) {
	at := time.Date(2025, 7, 24, 9, 0, 0, 0, time.UTC)
	store := &recordingStore{}
	pub := &recordingPublisher{}
	n := NewNotifier(store, pub)
	n.now = func() time.Time { return at }

	if err := n.Notify(context.Background(), household(), 1, models.NotifyPuzzleCreated, "alice added Trash day", 9); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	var got []int64
	for _, s := range store.saved {
		got = append(got, s.MemberID)
		if s.Type != models.NotifyPuzzleCreated || s.ResourceID != 9 || s.CreatedAt != "2025-07-24T09:00:00Z" {
			t.Errorf("notification = %+v", s)
		}
	}
	if diff := cmp.Diff([]int64{2, 3}, got); diff != "" {
		t.Errorf("recipients mismatch (-want +got):\n%s", diff)
	}

	want := []Event{{
		Type:       models.NotifyPuzzleCreated,
		GroupID:    4,
		MemberIDs:  []int64{2, 3},
		ResourceID: 9,
		Message:    "alice added Trash day",
		At:         at,
	}}
	if diff := cmp.Diff(want, pub.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if key := pub.events[0].RoutingKey(); key != "group.4.puzzle_created" {
		t.Errorf("routing key = %s", key)
	}
}

func TestNotifyPublishFailureIsNotAnError(t *testing.T) {
	store := &recordingStore{}
	n := NewNotifier(store, &recordingPublisher{err: errors.New("broker down")})

	if err := n.Notify(context.Background(), household(), 2, models.NotifyAccountCreated, "x", 1); err != nil {
		t.Fatalf("publish failure must not fail Notify: %v", err)
	}
	if len(store.saved) != 2 {
		t.Errorf("stored %d notifications, want 2", len(store.saved))
	}
}

func TestNotifyStoreFailure(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(&recordingStore{err: errors.New("disk full")}, pub)

	if err := n.Notify(context.Background(), household(), 1, models.NotifyAccountPaid, "x", 1); err == nil {
		t.Fatal("expected error")
	}
	if len(pub.events) != 0 {
		t.Error("nothing should be published when storing fails")
	}
}

func TestNotifyAloneIsNoop(t *testing.T) {
	store := &recordingStore{}
	pub := &recordingPublisher{}
	group := &models.Group{ID: 1, Members: []models.Member{{ID: 1}}}

	if err := NewNotifier(store, pub).Notify(context.Background(), group, 1, models.NotifyPuzzleCreated, "x", 1); err != nil {
		t.Fatal(err)
	}
	if len(store.saved) != 0 || len(pub.events) != 0 {
		t.Error("a sole member has nobody to notify")
	}
}

func TestEventFromJSON(t *testing.T) {
	if _, err := EventFromJSON([]byte("{")); err == nil {
		t.Error("expected error for truncated JSON")
	}
}
