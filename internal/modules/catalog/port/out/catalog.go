package out

import (
	"context"

	"learnify/internal/modules/catalog/domain"
)

type FixtureStore interface {
	CurrentUser(ctx context.Context) (domain.User, error)
	Courses(ctx context.Context) ([]domain.Course, error)
	Activities(ctx context.Context) ([]domain.Activity, error)
}

type ProfileStore interface {
	LoadOverlay(ctx context.Context, userID string) (domain.ProfileOverlay, error)
	SaveOverlay(ctx context.Context, userID string, overlay domain.ProfileOverlay) error
}

type ActivityLog interface {
	Append(ctx context.Context, activity domain.Activity) error
	List(ctx context.Context, userID string) ([]domain.Activity, error)
}
