package pet

import (
	"context"
	"errors"
	"testing"
	"time"

	"pawtrails/internal/domain/user"
)

type fakePetRepo struct {
	pets   map[string]*Pet
	owners map[string][]string
}

func newFakePetRepo() *fakePetRepo {
	return &fakePetRepo{
		pets:   make(map[string]*Pet),
		owners: make(map[string][]string),
	}
}

func (r *fakePetRepo) Create(ctx context.Context, p *Pet, ownerUUID string) error {
	copied := *p
	r.pets[p.UUID] = &copied
	r.owners[p.UUID] = []string{ownerUUID}
	return nil
}

func (r *fakePetRepo) GetByUUID(ctx context.Context, uuid string) (*Pet, error) {
	p, ok := r.pets[uuid]
	if !ok {
		return nil, ErrPetNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePetRepo) List(ctx context.Context, skip, limit int) ([]Pet, error) {
	result := make([]Pet, 0, len(r.pets))
	for _, p := range r.pets {
		result = append(result, *p)
	}
	return result, nil
}

func (r *fakePetRepo) ListByOwner(ctx context.Context, ownerUUID string) ([]Pet, error) {
	result := make([]Pet, 0)
	for uuid, owners := range r.owners {
		for _, owner := range owners {
			if owner == ownerUUID {
				result = append(result, *r.pets[uuid])
			}
		}
	}
	return result, nil
}

func (r *fakePetRepo) Update(ctx context.Context, p *Pet) error {
	if _, ok := r.pets[p.UUID]; !ok {
		return ErrPetNotFound
	}
	copied := *p
	r.pets[p.UUID] = &copied
	return nil
}

func (r *fakePetRepo) Delete(ctx context.Context, uuid string) error {
	delete(r.pets, uuid)
	delete(r.owners, uuid)
	return nil
}

func (r *fakePetRepo) Owners(ctx context.Context, petUUID string) ([]user.User, error) {
	result := make([]user.User, 0)
	for _, owner := range r.owners[petUUID] {
		result = append(result, user.User{UUID: owner})
	}
	return result, nil
}

func (r *fakePetRepo) CreateOwner(ctx context.Context, petUUID, ownerUUID string, at time.Time) (bool, error) {
	for _, owner := range r.owners[petUUID] {
		if owner == ownerUUID {
			return false, nil
		}
	}
	r.owners[petUUID] = append(r.owners[petUUID], ownerUUID)
	return true, nil
}

func (r *fakePetRepo) DeleteOwner(ctx context.Context, petUUID, ownerUUID string) (bool, error) {
	owners := r.owners[petUUID]
	for i, owner := range owners {
		if owner == ownerUUID {
			r.owners[petUUID] = append(owners[:i], owners[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestCreatePetDefaults(t *testing.T) {
	repo := newFakePetRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Rex", Breed: "Labrador"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Energy != DefaultEnergy {
		t.Fatalf("expected default energy %d, got %d", DefaultEnergy, p.Energy)
	}
	if p.Size != DefaultSize {
		t.Fatalf("expected default size %q, got %q", DefaultSize, p.Size)
	}
	if owners := repo.owners[p.UUID]; len(owners) != 1 || owners[0] != "owner-1" {
		t.Fatalf("expected owner edge persisted, got %v", owners)
	}
}

func TestCreatePetWithoutOwner(t *testing.T) {
	repo := newFakePetRepo()
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), "", CreateInput{Name: "Rex", Breed: "Labrador"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.pets) != 0 {
		t.Fatalf("expected nothing persisted")
	}
}

func TestCreatePetValidation(t *testing.T) {
	repo := newFakePetRepo()
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), "owner-1", CreateInput{Breed: "Labrador"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Rex"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing breed, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Rex", Breed: "Lab", Energy: 9}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for energy out of range, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Rex", Breed: "Lab", Size: "giant"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown size, got %v", err)
	}
}

func TestUpdatePetOwnerOnly(t *testing.T) {
	repo := newFakePetRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Rex", Breed: "Labrador"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	name := "Buddy"
	if _, err := svc.Update(context.Background(), "stranger", p.UUID, UpdateInput{Name: &name}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	updated, err := svc.Update(context.Background(), "owner-1", p.UUID, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Name != "Buddy" {
		t.Fatalf("expected name updated, got %q", updated.Name)
	}
}

func TestRemoveLastOwnerDeletesPet(t *testing.T) {
	repo := newFakePetRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Rex", Breed: "Labrador"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	removed, petDeleted, err := svc.RemoveOwner(context.Background(), "owner-1", p.UUID, "owner-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !removed || !petDeleted {
		t.Fatalf("expected removed and pet deleted, got %v %v", removed, petDeleted)
	}
	if _, ok := repo.pets[p.UUID]; ok {
		t.Fatalf("expected pet removed from store")
	}
}

func TestRemoveOwnerKeepsPetWithRemainingOwners(t *testing.T) {
	repo := newFakePetRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Rex", Breed: "Labrador"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if added, err := svc.AddOwner(context.Background(), "owner-1", p.UUID, "owner-2"); err != nil || !added {
		t.Fatalf("expected owner added, got %v %v", added, err)
	}

	removed, petDeleted, err := svc.RemoveOwner(context.Background(), "owner-1", p.UUID, "owner-2")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !removed || petDeleted {
		t.Fatalf("expected removed without deletion, got %v %v", removed, petDeleted)
	}
	if _, ok := repo.pets[p.UUID]; !ok {
		t.Fatalf("expected pet kept")
	}
}

func TestAddOwnerDuplicate(t *testing.T) {
	repo := newFakePetRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "owner-1", CreateInput{Name: "Rex", Breed: "Labrador"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	added, err := svc.AddOwner(context.Background(), "owner-1", p.UUID, "owner-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if added {
		t.Fatalf("expected duplicate owner to report false")
	}
}

func TestParseSizeCaseInsensitive(t *testing.T) {
	size, err := ParseSize("  MEDIUM ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if size != SizeMedium {
		t.Fatalf("expected medium, got %q", size)
	}
}
