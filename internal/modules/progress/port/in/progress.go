package in

import (
	"context"

	"learnify/internal/modules/progress/dto"
)

type Usecase interface {
	UpdateCourseProgress(ctx context.Context, input dto.UpdateProgressInput) (dto.ProgressOutput, error)
	GetCourseProgress(ctx context.Context, courseID string) (dto.ProgressOutput, error)
	GetAllProgress(ctx context.Context) ([]dto.ProgressOutput, error)
}
