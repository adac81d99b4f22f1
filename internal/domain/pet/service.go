package pet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

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
	Name   string
	Breed  string
	Energy int
	Size   string
}

func (s *Service) Create(ctx context.Context, ownerUUID string, in CreateInput) (*Pet, error) {
	if strings.TrimSpace(ownerUUID) == "" {
		return nil, fmt.Errorf("%w: pet requires at least one owner", ErrInvalidInput)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	breed := strings.TrimSpace(in.Breed)
	if breed == "" {
		return nil, fmt.Errorf("%w: breed is required", ErrInvalidInput)
	}
	energy := DefaultEnergy
	if in.Energy != 0 {
		var err error
		if energy, err = ParseEnergy(in.Energy); err != nil {
			return nil, err
		}
	}
	size := DefaultSize
	if in.Size != "" {
		var err error
		if size, err = ParseSize(in.Size); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	p := &Pet{
		UUID:      newUUID(),
		Name:      name,
		Breed:     breed,
		Energy:    energy,
		Size:      size,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p, ownerUUID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetByUUID(ctx context.Context, uuid string) (*Pet, error) {
	return s.repo.GetByUUID(ctx, uuid)
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]Pet, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.repo.List(ctx, skip, limit)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUUID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUUID)
}

type UpdateInput struct {
	Name   *string
	Breed  *string
	Energy *int
	Size   *string
}

func (s *Service) Update(ctx context.Context, actorUUID, petUUID string, in UpdateInput) (*Pet, error) {
	p, err := s.repo.GetByUUID(ctx, petUUID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, actorUUID, petUUID); err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		p.Name = name
	}
	if in.Breed != nil {
		breed := strings.TrimSpace(*in.Breed)
		if breed == "" {
			return nil, fmt.Errorf("%w: breed is required", ErrInvalidInput)
		}
		p.Breed = breed
	}
	if in.Energy != nil {
		energy, err := ParseEnergy(*in.Energy)
		if err != nil {
			return nil, err
		}
		p.Energy = energy
	}
	if in.Size != nil {
		size, err := ParseSize(*in.Size)
		if err != nil {
			return nil, err
		}
		p.Size = size
	}

	p.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, actorUUID, petUUID string) error {
	if _, err := s.repo.GetByUUID(ctx, petUUID); err != nil {
		return err
	}
	if err := s.requireOwner(ctx, actorUUID, petUUID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, petUUID)
}

func (s *Service) Owners(ctx context.Context, petUUID string) ([]user.User, error) {
	if _, err := s.repo.GetByUUID(ctx, petUUID); err != nil {
		return nil, err
	}
	return s.repo.Owners(ctx, petUUID)
}

// AddOwner adds an OWNS edge for ownerUUID. The acting user must already own
// the pet. Returns false if ownerUUID already owns it.
func (s *Service) AddOwner(ctx context.Context, actorUUID, petUUID, ownerUUID string) (bool, error) {
	if _, err := s.repo.GetByUUID(ctx, petUUID); err != nil {
		return false, err
	}
	if err := s.requireOwner(ctx, actorUUID, petUUID); err != nil {
		return false, err
	}
	return s.repo.CreateOwner(ctx, petUUID, ownerUUID, s.now().UTC())
}

// RemoveOwner detaches ownerUUID from the pet. When the last owner is
// removed the pet itself is deleted; petDeleted reports that to the caller.
func (s *Service) RemoveOwner(ctx context.Context, actorUUID, petUUID, ownerUUID string) (removed, petDeleted bool, err error) {
	if _, err := s.repo.GetByUUID(ctx, petUUID); err != nil {
		return false, false, err
	}
	if err := s.requireOwner(ctx, actorUUID, petUUID); err != nil {
		return false, false, err
	}

	removed, err = s.repo.DeleteOwner(ctx, petUUID, ownerUUID)
	if err != nil || !removed {
		return removed, false, err
	}

	owners, err := s.repo.Owners(ctx, petUUID)
	if err != nil {
		return true, false, err
	}
	if len(owners) == 0 {
		if err := s.repo.Delete(ctx, petUUID); err != nil {
			return true, false, err
		}
		petDeleted = true
	}
	return removed, petDeleted, nil
}

func (s *Service) requireOwner(ctx context.Context, actorUUID, petUUID string) error {
	owners, err := s.repo.Owners(ctx, petUUID)
	if err != nil {
		return err
	}
	for _, owner := range owners {
		if owner.UUID == actorUUID {
			return nil
		}
	}
	return ErrNotOwner
}

func newUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
