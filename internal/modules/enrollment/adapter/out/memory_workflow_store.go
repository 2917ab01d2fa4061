package out

import (
	"context"
	"fmt"
	"sync"

	"learnify/internal/modules/enrollment/domain"
	enrollmentout "learnify/internal/modules/enrollment/port/out"
	apperrors "learnify/internal/platform/errors"
)

// MemoryWorkflowStore never writes form data to disk. Discarded ids are
// remembered so callers can tell an exited workflow from an unknown one.
type MemoryWorkflowStore struct {
	mu        sync.Mutex
	workflows map[string]domain.Workflow
	discarded map[string]bool
}

func NewMemoryWorkflowStore() enrollmentout.WorkflowStore {
	return &MemoryWorkflowStore{workflows: map[string]domain.Workflow{}, discarded: map[string]bool{}}
}

func (s *MemoryWorkflowStore) Save(_ context.Context, workflow domain.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.discarded[workflow.ID] {
		return apperrors.ErrWorkflowExited
	}
	s.workflows[workflow.ID] = workflow
	return nil
}

func (s *MemoryWorkflowStore) Load(_ context.Context, id string) (domain.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.discarded[id] {
		return domain.Workflow{}, apperrors.ErrWorkflowExited
	}
	workflow, ok := s.workflows[id]
	if !ok {
		return domain.Workflow{}, fmt.Errorf("workflow %s: %w", id, apperrors.ErrNotFound)
	}
	return workflow, nil
}

func (s *MemoryWorkflowStore) Discard(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workflows, id)
	s.discarded[id] = true
	return nil
}
