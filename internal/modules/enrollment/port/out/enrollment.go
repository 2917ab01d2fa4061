package out

import (
	"context"

	"learnify/internal/modules/enrollment/domain"
)

type WorkflowStore interface {
	Save(ctx context.Context, workflow domain.Workflow) error
	Load(ctx context.Context, id string) (domain.Workflow, error)
	Discard(ctx context.Context, id string) error
}

type CourseCatalog interface {
	CourseTitle(ctx context.Context, courseID string) (string, error)
	Enroll(ctx context.Context, courseID string, form domain.Form) error
}

// EnrollmentListener is told about every successful enrollment.
type EnrollmentListener interface {
	Enrolled(ctx context.Context, courseID string) error
}
