package out

import (
	"context"

	appstateout "learnify/internal/modules/appstate/port/out"
	catalogin "learnify/internal/modules/catalog/port/in"
)

type CatalogUserDirectory struct {
	users catalogin.UserUsecase
}

func NewCatalogUserDirectory(users catalogin.UserUsecase) appstateout.UserDirectory {
	return &CatalogUserDirectory{users: users}
}

func (d *CatalogUserDirectory) CurrentUser(ctx context.Context) (string, string, error) {
	user, err := d.users.GetCurrentUser(ctx)
	if err != nil {
		return "", "", err
	}
	return user.ID, user.Name, nil
}

func (d *CatalogUserDirectory) StudyStreak(ctx context.Context, userID string) (int, error) {
	stats, err := d.users.GetUserStats(ctx, userID)
	if err != nil {
		return 0, err
	}
	return stats.CurrentStreak, nil
}
