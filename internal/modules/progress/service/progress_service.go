package service

import (
	"context"
	"fmt"

	"learnify/internal/modules/progress/domain"
	progressout "learnify/internal/modules/progress/port/out"
	apperrors "learnify/internal/platform/errors"
)

type ProgressService struct {
	store progressout.ProgressStore
}

func NewProgressService(store progressout.ProgressStore) *ProgressService {
	return &ProgressService{store: store}
}

// UpdateCourseProgress stores the percentage clamped to 0..100 and returns
// the stored value.
func (s *ProgressService) UpdateCourseProgress(ctx context.Context, courseID string, percent int) (int, error) {
	if err := domain.ValidateCourseID(courseID); err != nil {
		return 0, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	clamped := domain.Clamp(percent)
	if err := s.store.Set(ctx, courseID, clamped); err != nil {
		return 0, err
	}
	return clamped, nil
}

// GetCourseProgress is 0 for courses without a record.
func (s *ProgressService) GetCourseProgress(ctx context.Context, courseID string) (int, error) {
	if err := domain.ValidateCourseID(courseID); err != nil {
		return 0, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
	}
	percent, _, err := s.store.Get(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return percent, nil
}

func (s *ProgressService) GetAllProgress(ctx context.Context) (map[string]int, error) {
	return s.store.All(ctx)
}
