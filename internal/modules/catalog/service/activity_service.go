package service

import (
	"context"
	"fmt"
	"strings"

	"learnify/internal/modules/catalog/domain"
	catalogout "learnify/internal/modules/catalog/port/out"
	"learnify/internal/platform/clock"
	apperrors "learnify/internal/platform/errors"
	"learnify/internal/platform/id"
)

type ActivityService struct {
	clock    clock.Clock
	idGen    id.Generator
	fixtures catalogout.FixtureStore
	log      catalogout.ActivityLog
}

func NewActivityService(clock clock.Clock, idGen id.Generator, fixtures catalogout.FixtureStore, log catalogout.ActivityLog) *ActivityService {
	return &ActivityService{clock: clock, idGen: idGen, fixtures: fixtures, log: log}
}

// GetRecentActivities merges fixture activities with the local log, newest
// first.
func (s *ActivityService) GetRecentActivities(ctx context.Context, userID string) ([]domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fixtures, err := s.fixtures.Activities(ctx)
	if err != nil {
		return nil, err
	}
	logged, err := s.log.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Activity, 0, len(fixtures)+len(logged))
	for _, a := range fixtures {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	out = append(out, logged...)
	domain.SortRecent(out)
	return out, nil
}

// LogActivity assigns id and timestamp before persisting.
func (s *ActivityService) LogActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	if strings.TrimSpace(activity.UserID) == "" || strings.TrimSpace(activity.CourseID) == "" {
		return domain.Activity{}, fmt.Errorf("activity needs user and course: %w", apperrors.ErrInvalidInput)
	}
	switch activity.Type {
	case domain.ActivityEnrolled, domain.ActivityCompleted, domain.ActivityCertificate, domain.ActivityStarted, domain.ActivityProgressUpdate:
	default:
		return domain.Activity{}, fmt.Errorf("activity type %q: %w", activity.Type, apperrors.ErrInvalidInput)
	}
	activity.ID = s.idGen.New()
	activity.Date = s.clock.Now()
	if err := s.log.Append(ctx, activity); err != nil {
		return domain.Activity{}, err
	}
	return activity, nil
}
