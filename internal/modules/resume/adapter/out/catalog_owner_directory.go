package out

import (
	"context"

	catalogin "learnify/internal/modules/catalog/port/in"
	resumeout "learnify/internal/modules/resume/port/out"
)

type CatalogOwnerDirectory struct {
	users catalogin.UserUsecase
}

func NewCatalogOwnerDirectory(users catalogin.UserUsecase) resumeout.OwnerDirectory {
	return &CatalogOwnerDirectory{users: users}
}

func (d *CatalogOwnerDirectory) CurrentOwner(ctx context.Context) (string, string, error) {
	user, err := d.users.GetCurrentUser(ctx)
	if err != nil {
		return "", "", err
	}
	return user.Name, user.Email, nil
}
