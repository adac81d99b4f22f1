package review

import (
	"context"
	"time"

	"pawtrails/internal/domain/user"
)

type Repository interface {
	// Create persists the review node together with its WROTE and FOR edges
	// in a single statement; a review never exists without exactly one
	// writer and one target location.
	Create(ctx context.Context, r *Review, writerUUID, locationUUID string) error
	GetByUUID(ctx context.Context, uuid string) (*Review, error)
	ListForLocation(ctx context.Context, locationUUID string) ([]Review, error)
	ListByWriter(ctx context.Context, writerUUID string) ([]Review, error)
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, uuid string) error

	// Writer returns nil without an error when the review has no WROTE edge.
	Writer(ctx context.Context, reviewUUID string) (*user.User, error)
	CreateWriter(ctx context.Context, reviewUUID, userUUID string, at time.Time) (bool, error)
	// LocationOf returns the uuid of the reviewed location, or "" when the
	// review has no FOR edge.
	LocationOf(ctx context.Context, reviewUUID string) (string, error)
	CreateFor(ctx context.Context, reviewUUID, locationUUID string, at time.Time) (bool, error)
}
