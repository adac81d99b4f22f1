package pet

import (
	"context"
	"time"

	"pawtrails/internal/domain/user"
)

type Repository interface {
	// Create persists the pet node together with its first OWNS edge in a
	// single statement; a pet never exists without an owner.
	Create(ctx context.Context, p *Pet, ownerUUID string) error
	GetByUUID(ctx context.Context, uuid string) (*Pet, error)
	List(ctx context.Context, skip, limit int) ([]Pet, error)
	ListByOwner(ctx context.Context, ownerUUID string) ([]Pet, error)
	Update(ctx context.Context, p *Pet) error
	Delete(ctx context.Context, uuid string) error

	Owners(ctx context.Context, petUUID string) ([]user.User, error)
	CreateOwner(ctx context.Context, petUUID, ownerUUID string, at time.Time) (bool, error)
	DeleteOwner(ctx context.Context, petUUID, ownerUUID string) (bool, error)
}
