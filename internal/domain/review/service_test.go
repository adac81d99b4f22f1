package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"pawtrails/internal/domain/user"
)

type fakeReviewRepo struct {
	reviews   map[string]*Review
	writers   map[string]string
	locations map[string]string
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews:   make(map[string]*Review),
		writers:   make(map[string]string),
		locations: make(map[string]string),
	}
}

func (r *fakeReviewRepo) Create(ctx context.Context, rev *Review, writerUUID, locationUUID string) error {
	copied := *rev
	r.reviews[rev.UUID] = &copied
	r.writers[rev.UUID] = writerUUID
	r.locations[rev.UUID] = locationUUID
	return nil
}

func (r *fakeReviewRepo) GetByUUID(ctx context.Context, uuid string) (*Review, error) {
	rev, ok := r.reviews[uuid]
	if !ok {
		return nil, ErrReviewNotFound
	}
	copied := *rev
	return &copied, nil
}

func (r *fakeReviewRepo) ListForLocation(ctx context.Context, locationUUID string) ([]Review, error) {
	result := make([]Review, 0)
	for uuid, location := range r.locations {
		if location == locationUUID {
			result = append(result, *r.reviews[uuid])
		}
	}
	return result, nil
}

func (r *fakeReviewRepo) ListByWriter(ctx context.Context, writerUUID string) ([]Review, error) {
	result := make([]Review, 0)
	for uuid, writer := range r.writers {
		if writer == writerUUID {
			result = append(result, *r.reviews[uuid])
		}
	}
	return result, nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, rev *Review) error {
	if _, ok := r.reviews[rev.UUID]; !ok {
		return ErrReviewNotFound
	}
	copied := *rev
	r.reviews[rev.UUID] = &copied
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, uuid string) error {
	delete(r.reviews, uuid)
	delete(r.writers, uuid)
	delete(r.locations, uuid)
	return nil
}

func (r *fakeReviewRepo) Writer(ctx context.Context, reviewUUID string) (*user.User, error) {
	writer, ok := r.writers[reviewUUID]
	if !ok || writer == "" {
		return nil, nil
	}
	return &user.User{UUID: writer}, nil
}

func (r *fakeReviewRepo) CreateWriter(ctx context.Context, reviewUUID, userUUID string, at time.Time) (bool, error) {
	if writer := r.writers[reviewUUID]; writer != "" {
		return false, nil
	}
	r.writers[reviewUUID] = userUUID
	return true, nil
}

func (r *fakeReviewRepo) LocationOf(ctx context.Context, reviewUUID string) (string, error) {
	return r.locations[reviewUUID], nil
}

func (r *fakeReviewRepo) CreateFor(ctx context.Context, reviewUUID, locationUUID string, at time.Time) (bool, error) {
	if location := r.locations[reviewUUID]; location != "" {
		return false, nil
	}
	r.locations[reviewUUID] = locationUUID
	return true, nil
}

func TestCreateReviewValidation(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), "", "loc-1", CreateInput{Grade: 4}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing writer, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "user-1", "", CreateInput{Grade: 4}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing location, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "user-1", "loc-1", CreateInput{Grade: 6}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for grade out of range, got %v", err)
	}
	if len(repo.reviews) != 0 {
		t.Fatalf("expected nothing persisted")
	}
}

func TestCreateReviewPersistsEdges(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewService(repo)

	rev, err := svc.Create(context.Background(), "user-1", "loc-1", CreateInput{Comment: " great ", Grade: 5})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rev.Comment != "great" {
		t.Fatalf("expected comment trimmed, got %q", rev.Comment)
	}
	if repo.writers[rev.UUID] != "user-1" || repo.locations[rev.UUID] != "loc-1" {
		t.Fatalf("expected writer and location edges persisted")
	}
}

func TestAttachSecondWriterRejected(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewService(repo)

	rev, err := svc.Create(context.Background(), "user-1", "loc-1", CreateInput{Grade: 3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.AttachWriter(context.Background(), rev.UUID, "user-2"); !errors.Is(err, ErrWriterExists) {
		t.Fatalf("expected ErrWriterExists, got %v", err)
	}

	attached, err := svc.AttachWriter(context.Background(), rev.UUID, "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if attached {
		t.Fatalf("expected existing writer to report false")
	}
}

func TestAttachSecondLocationRejected(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewService(repo)

	rev, err := svc.Create(context.Background(), "user-1", "loc-1", CreateInput{Grade: 3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.AttachLocation(context.Background(), rev.UUID, "loc-2"); !errors.Is(err, ErrLocationAttached) {
		t.Fatalf("expected ErrLocationAttached, got %v", err)
	}
}

func TestUpdateReviewWriterOnly(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewService(repo)

	rev, err := svc.Create(context.Background(), "user-1", "loc-1", CreateInput{Grade: 3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	grade := 5
	if _, err := svc.Update(context.Background(), "stranger", rev.UUID, UpdateInput{Grade: &grade}); !errors.Is(err, ErrNotWriter) {
		t.Fatalf("expected ErrNotWriter, got %v", err)
	}

	updated, err := svc.Update(context.Background(), "user-1", rev.UUID, UpdateInput{Grade: &grade})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Grade != 5 {
		t.Fatalf("expected grade updated, got %d", updated.Grade)
	}
}

func TestDeleteReviewWriterOnly(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewService(repo)

	rev, err := svc.Create(context.Background(), "user-1", "loc-1", CreateInput{Grade: 3})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := svc.Delete(context.Background(), "stranger", rev.UUID); !errors.Is(err, ErrNotWriter) {
		t.Fatalf("expected ErrNotWriter, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", rev.UUID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.reviews[rev.UUID]; ok {
		t.Fatalf("expected review removed")
	}
}
