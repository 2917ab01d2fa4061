package out

import (
	"context"

	"learnify/internal/modules/resume/domain"
)

type ResumeStore interface {
	Load(ctx context.Context) (domain.Resume, bool, error)
	Save(ctx context.Context, resume domain.Resume) error
}

// OwnerDirectory seeds a new résumé with the signed-in user's contact data.
type OwnerDirectory interface {
	CurrentOwner(ctx context.Context) (name string, email string, err error)
}
