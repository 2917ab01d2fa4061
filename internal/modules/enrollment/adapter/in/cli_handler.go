package in

import (
	"context"

	"learnify/internal/modules/enrollment/dto"
	enrollmentin "learnify/internal/modules/enrollment/port/in"
)

type CLIHandler struct {
	usecase enrollmentin.Usecase
}

func NewCLIHandler(usecase enrollmentin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Enroll(ctx context.Context, courseID string, values map[string]string) (dto.WorkflowOutput, error) {
	return h.usecase.Complete(ctx, dto.CompleteInput{CourseID: courseID, Values: values})
}

func (h CLIHandler) Open(ctx context.Context, courseID string) (dto.WorkflowOutput, error) {
	return h.usecase.Open(ctx, courseID)
}

func (h CLIHandler) SetField(ctx context.Context, workflowID, field, value string) (dto.WorkflowOutput, error) {
	return h.usecase.SetField(ctx, dto.SetFieldInput{WorkflowID: workflowID, Field: field, Value: value})
}

func (h CLIHandler) Next(ctx context.Context, workflowID string) (dto.WorkflowOutput, error) {
	return h.usecase.Next(ctx, workflowID)
}

func (h CLIHandler) Back(ctx context.Context, workflowID string) (dto.WorkflowOutput, error) {
	return h.usecase.Back(ctx, workflowID)
}

func (h CLIHandler) Submit(ctx context.Context, workflowID string) (dto.WorkflowOutput, error) {
	return h.usecase.Submit(ctx, workflowID)
}

func (h CLIHandler) Discard(ctx context.Context, workflowID string) error {
	return h.usecase.Discard(ctx, workflowID)
}
