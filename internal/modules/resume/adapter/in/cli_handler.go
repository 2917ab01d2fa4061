package in

import (
	"context"

	"learnify/internal/modules/resume/dto"
	resumein "learnify/internal/modules/resume/port/in"
)

type CLIHandler struct {
	usecase resumein.Usecase
}

func NewCLIHandler(usecase resumein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (dto.ResumeOutput, error) {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) UpdatePersonal(ctx context.Context, input dto.PersonalInput) (dto.ResumeOutput, error) {
	return h.usecase.UpdatePersonal(ctx, input)
}

func (h CLIHandler) Add(ctx context.Context, kind string) (dto.SectionOutput, error) {
	return h.usecase.AddSection(ctx, kind)
}

func (h CLIHandler) Update(ctx context.Context, sectionID string, fields map[string]string) (dto.ResumeOutput, error) {
	return h.usecase.UpdateSection(ctx, dto.UpdateSectionInput{SectionID: sectionID, Fields: fields})
}

func (h CLIHandler) Delete(ctx context.Context, sectionID string) (dto.ResumeOutput, error) {
	return h.usecase.DeleteSection(ctx, sectionID)
}

func (h CLIHandler) Export(ctx context.Context) (string, error) {
	return h.usecase.Export(ctx)
}
