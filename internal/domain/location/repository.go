package location

import (
	"context"
	"time"

	"pawtrails/internal/domain/tag"
	"pawtrails/internal/domain/user"
)

type Repository interface {
	// Create persists the location node together with its CREATED edge in a
	// single statement; a location never exists without its creator.
	Create(ctx context.Context, l *Location, creatorUUID string) error
	GetByUUID(ctx context.Context, uuid string) (*Location, error)
	List(ctx context.Context, skip, limit int) ([]Location, error)
	ListByCreator(ctx context.Context, creatorUUID string) ([]Location, error)
	ListFavoritedBy(ctx context.Context, userUUID string) ([]Location, error)
	Update(ctx context.Context, l *Location) error
	Delete(ctx context.Context, uuid string) error
	Search(ctx context.Context, opts SearchOptions) ([]Location, error)

	// Creator returns nil without an error when the location has no CREATED
	// edge.
	Creator(ctx context.Context, locationUUID string) (*user.User, error)
	CreateCreator(ctx context.Context, locationUUID, userUUID string, at time.Time) (bool, error)
	DeleteCreator(ctx context.Context, locationUUID, userUUID string) (bool, error)

	Tags(ctx context.Context, locationUUID string) ([]tag.Tag, error)
	CreateTag(ctx context.Context, locationUUID, tagUUID string, at time.Time) (bool, error)
	DeleteTag(ctx context.Context, locationUUID, tagUUID string) (bool, error)

	Favorites(ctx context.Context, locationUUID string) ([]user.User, error)
	CreateFavorite(ctx context.Context, locationUUID, userUUID string, at time.Time) (bool, error)
	DeleteFavorite(ctx context.Context, locationUUID, userUUID string) (bool, error)
}
