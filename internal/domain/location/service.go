package location

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pawtrails/internal/domain/tag"
	"pawtrails/internal/domain/user"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Name        string
	Description string
	Type        string
	Size        string
	Longitude   *float64
	Latitude    *float64
}

func (s *Service) Create(ctx context.Context, creatorUUID string, in CreateInput) (*Location, error) {
	if strings.TrimSpace(creatorUUID) == "" {
		return nil, fmt.Errorf("%w: location requires a creator", ErrInvalidInput)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Longitude == nil || in.Latitude == nil {
		return nil, fmt.Errorf("%w: location requires a geographic point", ErrInvalidInput)
	}
	locType, err := ParseType(in.Type)
	if err != nil {
		return nil, err
	}
	size, err := ParseSize(in.Size)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	l := &Location{
		UUID:        newUUID(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Type:        locType,
		Size:        size,
		Point:       Point{Longitude: *in.Longitude, Latitude: *in.Latitude},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, l, creatorUUID); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) GetByUUID(ctx context.Context, uuid string) (*Location, error) {
	return s.repo.GetByUUID(ctx, uuid)
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]Location, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.repo.List(ctx, skip, limit)
}

func (s *Service) ListByCreator(ctx context.Context, creatorUUID string) ([]Location, error) {
	return s.repo.ListByCreator(ctx, creatorUUID)
}

func (s *Service) ListFavoritedBy(ctx context.Context, userUUID string) ([]Location, error) {
	return s.repo.ListFavoritedBy(ctx, userUUID)
}

type UpdateInput struct {
	Name        *string
	Description *string
	Type        *string
	Size        *string
	Longitude   *float64
	Latitude    *float64
}

func (s *Service) Update(ctx context.Context, actorUUID, locationUUID string, in UpdateInput) (*Location, error) {
	l, err := s.repo.GetByUUID(ctx, locationUUID)
	if err != nil {
		return nil, err
	}
	if err := s.requireCreator(ctx, actorUUID, locationUUID); err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		l.Name = name
	}
	if in.Description != nil {
		l.Description = strings.TrimSpace(*in.Description)
	}
	if in.Type != nil {
		locType, err := ParseType(*in.Type)
		if err != nil {
			return nil, err
		}
		l.Type = locType
	}
	if in.Size != nil {
		size, err := ParseSize(*in.Size)
		if err != nil {
			return nil, err
		}
		l.Size = size
	}
	if in.Longitude != nil || in.Latitude != nil {
		if in.Longitude == nil || in.Latitude == nil {
			return nil, fmt.Errorf("%w: point requires both longitude and latitude", ErrInvalidInput)
		}
		l.Point = Point{Longitude: *in.Longitude, Latitude: *in.Latitude}
	}

	l.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) Delete(ctx context.Context, actorUUID, locationUUID string) error {
	if _, err := s.repo.GetByUUID(ctx, locationUUID); err != nil {
		return err
	}
	if err := s.requireCreator(ctx, actorUUID, locationUUID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, locationUUID)
}

func (s *Service) Search(ctx context.Context, opts SearchOptions) ([]Location, error) {
	if opts.Type != "" {
		locType, err := ParseType(string(opts.Type))
		if err != nil {
			return nil, err
		}
		opts.Type = locType
	}
	if opts.Size != "" {
		size, err := ParseSize(string(opts.Size))
		if err != nil {
			return nil, err
		}
		opts.Size = size
	}
	if opts.MinGrade < 0 || opts.MinGrade > 5 {
		return nil, fmt.Errorf("%w: grade %d is not in range 1..5", ErrInvalidInput, opts.MinGrade)
	}
	if opts.Distance != nil && opts.Distance.MaxKm <= 0 {
		return nil, fmt.Errorf("%w: max distance must be positive", ErrInvalidInput)
	}
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	if opts.Skip < 0 {
		opts.Skip = 0
	}
	return s.repo.Search(ctx, opts)
}

func (s *Service) Creator(ctx context.Context, locationUUID string) (*user.User, error) {
	if _, err := s.repo.GetByUUID(ctx, locationUUID); err != nil {
		return nil, err
	}
	return s.repo.Creator(ctx, locationUUID)
}

// AddCreator attaches a CREATED edge. A location can have at most one
// creator; a second one is rejected with ErrCreatorExists.
func (s *Service) AddCreator(ctx context.Context, locationUUID, userUUID string) (bool, error) {
	creator, err := s.repo.Creator(ctx, locationUUID)
	if err != nil {
		return false, err
	}
	if creator != nil {
		if creator.UUID == userUUID {
			return false, nil
		}
		return false, ErrCreatorExists
	}
	return s.repo.CreateCreator(ctx, locationUUID, userUUID, s.now().UTC())
}

func (s *Service) RemoveCreator(ctx context.Context, locationUUID, userUUID string) (bool, error) {
	return s.repo.DeleteCreator(ctx, locationUUID, userUUID)
}

func (s *Service) Tags(ctx context.Context, locationUUID string) ([]tag.Tag, error) {
	if _, err := s.repo.GetByUUID(ctx, locationUUID); err != nil {
		return nil, err
	}
	return s.repo.Tags(ctx, locationUUID)
}

func (s *Service) AddTag(ctx context.Context, actorUUID, locationUUID, tagUUID string) (bool, error) {
	if _, err := s.repo.GetByUUID(ctx, locationUUID); err != nil {
		return false, err
	}
	if err := s.requireCreator(ctx, actorUUID, locationUUID); err != nil {
		return false, err
	}
	return s.repo.CreateTag(ctx, locationUUID, tagUUID, s.now().UTC())
}

func (s *Service) RemoveTag(ctx context.Context, actorUUID, locationUUID, tagUUID string) (bool, error) {
	if _, err := s.repo.GetByUUID(ctx, locationUUID); err != nil {
		return false, err
	}
	if err := s.requireCreator(ctx, actorUUID, locationUUID); err != nil {
		return false, err
	}
	return s.repo.DeleteTag(ctx, locationUUID, tagUUID)
}

func (s *Service) Favorites(ctx context.Context, locationUUID string) ([]user.User, error) {
	if _, err := s.repo.GetByUUID(ctx, locationUUID); err != nil {
		return nil, err
	}
	return s.repo.Favorites(ctx, locationUUID)
}

func (s *Service) AddFavorite(ctx context.Context, userUUID, locationUUID string) (bool, error) {
	if _, err := s.repo.GetByUUID(ctx, locationUUID); err != nil {
		return false, err
	}
	return s.repo.CreateFavorite(ctx, locationUUID, userUUID, s.now().UTC())
}

func (s *Service) RemoveFavorite(ctx context.Context, userUUID, locationUUID string) (bool, error) {
	if _, err := s.repo.GetByUUID(ctx, locationUUID); err != nil {
		return false, err
	}
	return s.repo.DeleteFavorite(ctx, locationUUID, userUUID)
}

func (s *Service) requireCreator(ctx context.Context, actorUUID, locationUUID string) error {
	creator, err := s.repo.Creator(ctx, locationUUID)
	if err != nil {
		return err
	}
	if creator == nil || creator.UUID != actorUUID {
		return ErrNotCreator
	}
	return nil
}

func newUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
