package user

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUUID(ctx context.Context, uuid string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, skip, limit int) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, uuid string) error

	// CreateFollow creates a FOLLOWS edge and reports whether it was newly
	// created. An existing edge is left untouched.
	CreateFollow(ctx context.Context, followerUUID, followeeUUID string, at time.Time) (bool, error)
	// DeleteFollow removes a FOLLOWS edge and reports whether one existed.
	DeleteFollow(ctx context.Context, followerUUID, followeeUUID string) (bool, error)
	Followers(ctx context.Context, uuid string) ([]User, error)
	Following(ctx context.Context, uuid string) ([]User, error)
}
