package tag

import (
	"context"
	"errors"
	"testing"
)

type fakeTagRepo struct {
	tags map[string]*Tag
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: make(map[string]*Tag)}
}

func (r *fakeTagRepo) Create(ctx context.Context, t *Tag) error {
	copied := *t
	r.tags[t.UUID] = &copied
	return nil
}

func (r *fakeTagRepo) GetByUUID(ctx context.Context, uuid string) (*Tag, error) {
	t, ok := r.tags[uuid]
	if !ok {
		return nil, ErrTagNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTagRepo) GetByName(ctx context.Context, name string) (*Tag, error) {
	for _, t := range r.tags {
		if t.Name == name {
			copied := *t
			return &copied, nil
		}
	}
	return nil, ErrTagNotFound
}

func (r *fakeTagRepo) List(ctx context.Context, skip, limit int) ([]Tag, error) {
	result := make([]Tag, 0, len(r.tags))
	for _, t := range r.tags {
		result = append(result, *t)
	}
	return result, nil
}

func (r *fakeTagRepo) Delete(ctx context.Context, uuid string) error {
	delete(r.tags, uuid)
	return nil
}

func TestCreateTagSuccess(t *testing.T) {
	repo := newFakeTagRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), "  quiet  ", "success")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Name != "quiet" {
		t.Fatalf("expected name trimmed, got %q", created.Name)
	}
	if created.Color != ColorSuccess {
		t.Fatalf("expected success color, got %q", created.Color)
	}
}

func TestCreateTagValidation(t *testing.T) {
	repo := newFakeTagRepo()
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), "ab", "primary"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short name, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "quiet", "magenta"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown color, got %v", err)
	}
}

func TestCreateTagNameTaken(t *testing.T) {
	repo := newFakeTagRepo()
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), "quiet", "primary"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "quiet", "danger"); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
}

func TestDeleteUnknownTag(t *testing.T) {
	repo := newFakeTagRepo()
	svc := NewService(repo)

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}

func TestParseColorPalette(t *testing.T) {
	for _, value := range []string{"primary", "secondary", "success", "danger", "warning", "info", "light", "dark"} {
		if _, err := ParseColor(value); err != nil {
			t.Fatalf("expected %q accepted, got %v", value, err)
		}
	}
	if _, err := ParseColor("fuchsia"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
