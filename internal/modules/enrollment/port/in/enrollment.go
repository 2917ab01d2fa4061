package in

import (
	"context"

	"learnify/internal/modules/enrollment/dto"
)

type Usecase interface {
	Open(ctx context.Context, courseID string) (dto.WorkflowOutput, error)
	Get(ctx context.Context, workflowID string) (dto.WorkflowOutput, error)
	SetField(ctx context.Context, input dto.SetFieldInput) (dto.WorkflowOutput, error)
	Next(ctx context.Context, workflowID string) (dto.WorkflowOutput, error)
	Back(ctx context.Context, workflowID string) (dto.WorkflowOutput, error)
	Submit(ctx context.Context, workflowID string) (dto.WorkflowOutput, error)
	Discard(ctx context.Context, workflowID string) error
	Complete(ctx context.Context, input dto.CompleteInput) (dto.WorkflowOutput, error)
}
