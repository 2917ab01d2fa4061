package usecase

import (
	"context"
	"fmt"
	"strings"

	"learnify/internal/modules/resume/domain"
	"learnify/internal/modules/resume/dto"
	resumein "learnify/internal/modules/resume/port/in"
	"learnify/internal/modules/resume/service"
	apperrors "learnify/internal/platform/errors"
)

type Interactor struct {
	svc *service.ResumeService
}

func NewInteractor(svc *service.ResumeService) resumein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) (dto.ResumeOutput, error) {
	return wrap(i.svc.Get(ctx))
}

func (i *Interactor) UpdatePersonal(ctx context.Context, input dto.PersonalInput) (dto.ResumeOutput, error) {
	return wrap(i.svc.UpdatePersonal(ctx, domain.PersonalInfo{
		FullName: strings.TrimSpace(input.FullName),
		Email:    strings.TrimSpace(input.Email),
		Phone:    strings.TrimSpace(input.Phone),
		Location: strings.TrimSpace(input.Location),
		Summary:  strings.TrimSpace(input.Summary),
	}))
}

func (i *Interactor) AddSection(ctx context.Context, kind string) (dto.SectionOutput, error) {
	_, section, err := i.svc.AddSection(ctx, domain.SectionKind(strings.ToLower(strings.TrimSpace(kind))))
	if err != nil {
		return dto.SectionOutput{}, err
	}
	return toSectionOutput(section), nil
}

func (i *Interactor) UpdateSection(ctx context.Context, input dto.UpdateSectionInput) (dto.ResumeOutput, error) {
	if strings.TrimSpace(input.SectionID) == "" {
		return dto.ResumeOutput{}, fmt.Errorf("section id is required: %w", apperrors.ErrInvalidInput)
	}
	return wrap(i.svc.UpdateSection(ctx, input.SectionID, input.Fields))
}

func (i *Interactor) DeleteSection(ctx context.Context, sectionID string) (dto.ResumeOutput, error) {
	return wrap(i.svc.DeleteSection(ctx, sectionID))
}

func (i *Interactor) Export(ctx context.Context) (string, error) {
	return i.svc.Export(ctx)
}

func wrap(r domain.Resume, err error) (dto.ResumeOutput, error) {
	if err != nil {
		return dto.ResumeOutput{}, err
	}
	out := dto.ResumeOutput{
		Personal: dto.PersonalInput{
			FullName: r.Personal.FullName,
			Email:    r.Personal.Email,
			Phone:    r.Personal.Phone,
			Location: r.Personal.Location,
			Summary:  r.Personal.Summary,
		},
		Sections:  make([]dto.SectionOutput, 0, len(r.Sections)),
		UpdatedAt: r.UpdatedAt,
	}
	for _, s := range r.Sections {
		out.Sections = append(out.Sections, toSectionOutput(s))
	}
	return out, nil
}

func toSectionOutput(s domain.Section) dto.SectionOutput {
	out := dto.SectionOutput{ID: s.ID, Kind: string(s.Kind)}
	field := func(name, value string) {
		out.Fields = append(out.Fields, dto.FieldOutput{Name: name, Value: value})
	}
	switch s.Kind {
	case domain.KindEducation:
		e := s.Education
		out.Title = e.Degree
		field("institution", e.Institution)
		field("degree", e.Degree)
		field("field", e.Field)
		field("startDate", e.StartDate)
		field("endDate", e.EndDate)
		field("description", e.Description)
	case domain.KindExperience:
		e := s.Experience
		out.Title = e.Position
		field("company", e.Company)
		field("position", e.Position)
		field("startDate", e.StartDate)
		field("endDate", e.EndDate)
		field("description", e.Description)
	case domain.KindSkill:
		out.Title = s.Skill.Category
		field("category", s.Skill.Category)
		field("skills", strings.Join(s.Skill.Skills, ", "))
	}
	if out.Title == "" {
		out.Title = "(untitled " + string(s.Kind) + ")"
	}
	return out
}
