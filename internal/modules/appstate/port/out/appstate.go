package out

import (
	"context"

	"learnify/internal/modules/appstate/domain"
)

type PreferencesStore interface {
	Load(ctx context.Context) (domain.Preferences, bool, error)
	Save(ctx context.Context, prefs domain.Preferences) error
}

type UserDirectory interface {
	CurrentUser(ctx context.Context) (id string, name string, err error)
	StudyStreak(ctx context.Context, userID string) (int, error)
}
