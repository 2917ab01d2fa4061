package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"learnify/internal/modules/catalog/domain"
	catalogout "learnify/internal/modules/catalog/port/out"
	"learnify/internal/platform/clock"
	apperrors "learnify/internal/platform/errors"
)

type UserService struct {
	fixtures catalogout.FixtureStore
	profiles catalogout.ProfileStore
	sleeper  clock.Sleeper
	latency  time.Duration
}

func NewUserService(fixtures catalogout.FixtureStore, profiles catalogout.ProfileStore, sleeper clock.Sleeper, latency time.Duration) *UserService {
	return &UserService{fixtures: fixtures, profiles: profiles, sleeper: sleeper, latency: latency}
}

func (s *UserService) GetCurrentUser(ctx context.Context) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}
	user, err := s.fixtures.CurrentUser(ctx)
	if err != nil {
		return domain.User{}, err
	}
	overlay, err := s.profiles.LoadOverlay(ctx, user.ID)
	if err != nil {
		return domain.User{}, err
	}
	return overlay.Apply(user), nil
}

// UpdateUserProfile merges the patch into the stored overlay after the
// simulated round trip. A cancelled context leaves storage untouched.
func (s *UserService) UpdateUserProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (domain.User, error) {
	if patch.Email != nil && !strings.Contains(*patch.Email, "@") {
		return domain.User{}, fmt.Errorf("email %q: %w", *patch.Email, apperrors.ErrInvalidInput)
	}
	if err := s.sleeper.Sleep(ctx, s.latency); err != nil {
		return domain.User{}, err
	}
	user, err := s.fixtures.CurrentUser(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if user.ID != userID {
		return domain.User{}, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	overlay, err := s.profiles.LoadOverlay(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	overlay = overlay.Merge(patch)
	if err := s.profiles.SaveOverlay(ctx, userID, overlay); err != nil {
		return domain.User{}, err
	}
	return overlay.Apply(user), nil
}

func (s *UserService) RecordEnrollment(ctx context.Context, userID, courseID string) error {
	overlay, err := s.profiles.LoadOverlay(ctx, userID)
	if err != nil {
		return err
	}
	if !overlay.AddEnrolled(courseID) {
		return nil
	}
	return s.profiles.SaveOverlay(ctx, userID, overlay)
}

func (s *UserService) GetUserStats(ctx context.Context, userID string, activities []domain.Activity, now time.Time) (domain.UserStats, error) {
	user, err := s.GetCurrentUser(ctx)
	if err != nil {
		return domain.UserStats{}, err
	}
	if user.ID != userID {
		return domain.UserStats{}, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return domain.UserStats{
		CoursesCompleted:   len(user.CompletedCourses),
		CertificatesEarned: user.Certificates,
		StudyHours:         user.StudyHours,
		CurrentStreak:      domain.Streak(activities, now),
	}, nil
}
