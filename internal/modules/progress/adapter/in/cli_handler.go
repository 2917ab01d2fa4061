package in

import (
	"context"

	"learnify/internal/modules/progress/dto"
	progressin "learnify/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Set(ctx context.Context, courseID string, percent int) (dto.ProgressOutput, error) {
	return h.usecase.UpdateCourseProgress(ctx, dto.UpdateProgressInput{CourseID: courseID, Percent: percent})
}

func (h CLIHandler) Get(ctx context.Context, courseID string) (dto.ProgressOutput, error) {
	return h.usecase.GetCourseProgress(ctx, courseID)
}

func (h CLIHandler) List(ctx context.Context) ([]dto.ProgressOutput, error) {
	return h.usecase.GetAllProgress(ctx)
}
