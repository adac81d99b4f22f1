package dashboard

import (
	"context"
	"testing"
)

type fakeDashboardRepo struct {
	events []Event
}

func (r *fakeDashboardRepo) Events(ctx context.Context, userUUID string) ([]Event, error) {
	return r.events, nil
}

func TestForUserDeduplicates(t *testing.T) {
	repo := &fakeDashboardRepo{events: []Event{
		{Actor: "alice", ActorUUID: "u1", Action: ActionOwns, TargetKind: "Pet", TargetName: "Rex", Time: "2025-06-01T10:00:00Z", TargetUUID: "p1"},
		{Actor: "alice", ActorUUID: "u1", Action: ActionOwns, TargetKind: "Pet", TargetName: "Rex", Time: "2025-06-01T10:00:00Z", TargetUUID: "p1"},
		{Actor: "alice", ActorUUID: "u1", Action: ActionFavorited, TargetKind: "Location", TargetName: "Park", Time: "2025-06-02T10:00:00Z", TargetUUID: "l1"},
	}}
	svc := NewService(repo)

	feed, err := svc.ForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 events after dedup, got %d", len(feed))
	}
}

func TestForUserSortsReverseChronologically(t *testing.T) {
	repo := &fakeDashboardRepo{events: []Event{
		{ActorUUID: "u1", Action: ActionCreated, Time: "2025-06-01T10:00:00Z", TargetUUID: "l1"},
		{ActorUUID: "u2", Action: ActionReviewed, Time: "2025-06-03T10:00:00Z", TargetUUID: "r1"},
		{ActorUUID: "u1", Action: ActionFavorited, Time: "2025-06-02T10:00:00Z", TargetUUID: "l2"},
	}}
	svc := NewService(repo)

	feed, err := svc.ForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(feed) != 3 {
		t.Fatalf("expected 3 events, got %d", len(feed))
	}
	for i := 1; i < len(feed); i++ {
		if feed[i-1].Time < feed[i].Time {
			t.Fatalf("expected reverse chronological order, got %q before %q", feed[i-1].Time, feed[i].Time)
		}
	}
}

func TestForUserOrdersSubSecondTimestamps(t *testing.T) {
	// RFC3339Nano drops trailing fraction zeros, so these values do not
	// order lexicographically.
	repo := &fakeDashboardRepo{events: []Event{
		{ActorUUID: "u1", Action: ActionCreated, Time: "2025-01-01T00:00:00Z", TargetUUID: "l1"},
		{ActorUUID: "u1", Action: ActionFavorited, Time: "2025-01-01T00:00:00.5Z", TargetUUID: "l2"},
		{ActorUUID: "u1", Action: ActionReviewed, Time: "2025-01-01T00:00:00.51Z", TargetUUID: "r1"},
	}}
	svc := NewService(repo)

	feed, err := svc.ForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"r1", "l2", "l1"}
	if len(feed) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(feed))
	}
	for i, target := range want {
		if feed[i].TargetUUID != target {
			t.Fatalf("expected %q at position %d, got %q", target, i, feed[i].TargetUUID)
		}
	}
}

func TestForUserSameActionDifferentTargetsKept(t *testing.T) {
	repo := &fakeDashboardRepo{events: []Event{
		{ActorUUID: "u1", Action: ActionFavorited, Time: "2025-06-01T10:00:00Z", TargetUUID: "l1"},
		{ActorUUID: "u1", Action: ActionFavorited, Time: "2025-06-02T10:00:00Z", TargetUUID: "l2"},
	}}
	svc := NewService(repo)

	feed, err := svc.ForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 events, got %d", len(feed))
	}
}
