package tag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const minNameLength = 3

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create saves a new tag. The name acts as the dedup key; an existing name
// is a conflict, not a new node.
func (s *Service) Create(ctx context.Context, name, color string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if len(name) < minNameLength {
		return nil, fmt.Errorf("%w: name must be at least %d characters", ErrInvalidInput, minNameLength)
	}
	parsed, err := ParseColor(color)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, ErrTagNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	t := &Tag{
		UUID:      newUUID(),
		Name:      name,
		Color:     parsed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) GetByUUID(ctx context.Context, uuid string) (*Tag, error) {
	return s.repo.GetByUUID(ctx, uuid)
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]Tag, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.repo.List(ctx, skip, limit)
}

func (s *Service) Delete(ctx context.Context, uuid string) error {
	if _, err := s.repo.GetByUUID(ctx, uuid); err != nil {
		return err
	}
	return s.repo.Delete(ctx, uuid)
}

func newUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
