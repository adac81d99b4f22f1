package dashboard

import "context"

type Repository interface {
	// Events returns the raw activity events of the given user and of every
	// user they follow: pet acquisitions, location creations, favorites and
	// written reviews. Order and duplicates are the service's problem.
	Events(ctx context.Context, userUUID string) ([]Event, error)
}
