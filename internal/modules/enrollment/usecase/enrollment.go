package usecase

import (
	"context"
	"errors"
	"fmt"

	"learnify/internal/modules/enrollment/domain"
	"learnify/internal/modules/enrollment/dto"
	enrollmentin "learnify/internal/modules/enrollment/port/in"
	"learnify/internal/modules/enrollment/service"
	apperrors "learnify/internal/platform/errors"
)

type Interactor struct {
	svc *service.EnrollmentService
}

func NewInteractor(svc *service.EnrollmentService) enrollmentin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Open(ctx context.Context, courseID string) (dto.WorkflowOutput, error) {
	workflow, err := i.svc.Open(ctx, courseID)
	if err != nil {
		return dto.WorkflowOutput{}, err
	}
	return toOutput(workflow, nil), nil
}

func (i *Interactor) Get(ctx context.Context, workflowID string) (dto.WorkflowOutput, error) {
	workflow, err := i.svc.Get(ctx, workflowID)
	if err != nil {
		return dto.WorkflowOutput{}, err
	}
	return toOutput(workflow, nil), nil
}

func (i *Interactor) SetField(ctx context.Context, input dto.SetFieldInput) (dto.WorkflowOutput, error) {
	workflow, err := i.svc.SetField(ctx, input.WorkflowID, input.Field, input.Value)
	if err != nil {
		return dto.WorkflowOutput{}, err
	}
	return toOutput(workflow, nil), nil
}

func (i *Interactor) Next(ctx context.Context, workflowID string) (dto.WorkflowOutput, error) {
	workflow, problems, err := i.svc.Next(ctx, workflowID)
	if err != nil {
		return toOutput(workflow, problems), err
	}
	return toOutput(workflow, problems), nil
}

func (i *Interactor) Back(ctx context.Context, workflowID string) (dto.WorkflowOutput, error) {
	workflow, exited, err := i.svc.Back(ctx, workflowID)
	if err != nil {
		return dto.WorkflowOutput{}, err
	}
	out := toOutput(workflow, nil)
	out.Exited = exited
	return out, nil
}

func (i *Interactor) Submit(ctx context.Context, workflowID string) (dto.WorkflowOutput, error) {
	workflow, err := i.svc.Submit(ctx, workflowID)
	return toOutput(workflow, validationProblems(err)), err
}

func (i *Interactor) Discard(ctx context.Context, workflowID string) error {
	return i.svc.Discard(ctx, workflowID)
}

// Complete fills every step from input.Values and submits. Unknown field
// names are rejected before the workflow is opened.
func (i *Interactor) Complete(ctx context.Context, input dto.CompleteInput) (dto.WorkflowOutput, error) {
	known := map[string]domain.Step{}
	for step := domain.StepPersonal; step <= domain.StepAdditional; step++ {
		for _, f := range domain.StepFields(step) {
			known[f.Name] = step
		}
	}
	for field := range input.Values {
		if _, ok := known[field]; !ok {
			return dto.WorkflowOutput{}, fmt.Errorf("unknown field %q: %w", field, apperrors.ErrInvalidInput)
		}
	}

	workflow, err := i.svc.Open(ctx, input.CourseID)
	if err != nil {
		return dto.WorkflowOutput{}, err
	}
	workflowID := workflow.ID
	var problems []domain.FieldError
	for step := domain.StepPersonal; step <= domain.StepAdditional; step++ {
		for _, f := range domain.StepFields(step) {
			value, ok := input.Values[f.Name]
			if !ok {
				continue
			}
			if workflow, err = i.svc.SetField(ctx, workflowID, f.Name, value); err != nil {
				_ = i.svc.Discard(ctx, workflowID)
				return dto.WorkflowOutput{}, err
			}
		}
		if step == domain.StepAdditional {
			break
		}
		var stepProblems []domain.FieldError
		workflow, stepProblems, err = i.svc.Next(ctx, workflowID)
		problems = append(problems, stepProblems...)
		if err != nil {
			_ = i.svc.Discard(ctx, workflowID)
			return toOutput(workflow, problems), err
		}
	}
	workflow, err = i.svc.Submit(ctx, workflowID)
	if blocked := validationProblems(err); blocked != nil {
		return toOutput(workflow, append(problems, blocked...)), err
	}
	problems = append(problems, workflow.Form.ValidateStep(domain.StepAdditional)...)
	if err != nil {
		return toOutput(workflow, problems), err
	}
	return toOutput(workflow, problems), nil
}

func validationProblems(err error) []domain.FieldError {
	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	return verr.Fields
}

func toOutput(w domain.Workflow, problems []domain.FieldError) dto.WorkflowOutput {
	out := dto.WorkflowOutput{
		ID:          w.ID,
		CourseID:    w.CourseID,
		CourseTitle: w.CourseTitle,
		Step:        int(w.Step),
		StepName:    w.Step.String(),
		Progress:    w.Progress(),
		Submitting:  w.Submitting,
		Done:        w.Done(),
		LastError:   w.LastError,
	}
	for _, f := range domain.StepFields(w.Step) {
		out.Fields = append(out.Fields, dto.FieldOutput{Name: f.Name, Label: f.Label, Value: w.Form.Get(f.Name), Required: f.Required})
	}
	for _, p := range problems {
		out.Problems = append(out.Problems, dto.FieldErrorOutput{Field: p.Field, Message: p.Message})
	}
	return out
}
