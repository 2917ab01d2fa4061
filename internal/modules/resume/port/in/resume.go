package in

import (
	"context"

	"learnify/internal/modules/resume/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.ResumeOutput, error)
	UpdatePersonal(ctx context.Context, input dto.PersonalInput) (dto.ResumeOutput, error)
	AddSection(ctx context.Context, kind string) (dto.SectionOutput, error)
	UpdateSection(ctx context.Context, input dto.UpdateSectionInput) (dto.ResumeOutput, error)
	DeleteSection(ctx context.Context, sectionID string) (dto.ResumeOutput, error)
	Export(ctx context.Context) (string, error)
}
