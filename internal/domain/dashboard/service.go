package dashboard

import (
	"context"
	"sort"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ForUser builds the activity feed for a user and their followees:
// deduplicated per (actor, action, target) and sorted reverse-
// chronologically.
func (s *Service) ForUser(ctx context.Context, userUUID string) ([]Event, error) {
	events, err := s.repo.Events(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	type key struct {
		actor  string
		action string
		target string
	}

	seen := make(map[key]struct{}, len(events))
	feed := make([]Event, 0, len(events))
	for _, event := range events {
		k := key{actor: event.ActorUUID, action: event.Action, target: event.TargetUUID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		feed = append(feed, event)
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return eventTime(feed[i]).After(eventTime(feed[j]))
	})

	return feed, nil
}

// eventTime parses the RFC 3339 edge timestamp. Lexicographic comparison is
// not enough: RFC3339Nano drops trailing fraction zeros, so "…00Z" would
// compare below "…00.5Z".
func eventTime(event Event) time.Time {
	parsed, _ := time.Parse(time.RFC3339Nano, event.Time)
	return parsed
}
