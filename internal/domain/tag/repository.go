package tag

import "context"

type Repository interface {
	Create(ctx context.Context, t *Tag) error
	GetByUUID(ctx context.Context, uuid string) (*Tag, error)
	GetByName(ctx context.Context, name string) (*Tag, error)
	List(ctx context.Context, skip, limit int) ([]Tag, error)
	Delete(ctx context.Context, uuid string) error
}
