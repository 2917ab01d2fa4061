package out

import (
	"context"

	appstatein "learnify/internal/modules/appstate/port/in"
	enrollmentout "learnify/internal/modules/enrollment/port/out"
)

// AppStateListener resets local progress for newly enrolled courses.
type AppStateListener struct {
	state appstatein.Usecase
}

func NewAppStateListener(state appstatein.Usecase) enrollmentout.EnrollmentListener {
	return &AppStateListener{state: state}
}

func (l *AppStateListener) Enrolled(ctx context.Context, courseID string) error {
	_, err := l.state.MarkEnrolled(ctx, courseID)
	return err
}
