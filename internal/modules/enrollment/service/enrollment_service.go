package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"learnify/internal/modules/enrollment/domain"
	enrollmentout "learnify/internal/modules/enrollment/port/out"
	apperrors "learnify/internal/platform/errors"
	"learnify/internal/platform/id"
	"learnify/internal/platform/logger"
)

// ValidationError carries field problems when strict validation blocks a
// transition.
type ValidationError struct {
	Fields []domain.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Message)
	}
	return "invalid enrollment form: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

type EnrollmentService struct {
	store    enrollmentout.WorkflowStore
	catalog  enrollmentout.CourseCatalog
	listener enrollmentout.EnrollmentListener
	idGen    id.Generator
	strict   bool
	log      *logger.Logger

	mu sync.Mutex
}

func NewEnrollmentService(store enrollmentout.WorkflowStore, catalog enrollmentout.CourseCatalog, listener enrollmentout.EnrollmentListener, idGen id.Generator, strict bool, log *logger.Logger) *EnrollmentService {
	if log == nil {
		log = logger.Nop()
	}
	return &EnrollmentService{store: store, catalog: catalog, listener: listener, idGen: idGen, strict: strict, log: log}
}

// Open resolves the course once. Unknown ids fail with ErrNotFound.
func (s *EnrollmentService) Open(ctx context.Context, courseID string) (domain.Workflow, error) {
	if strings.TrimSpace(courseID) == "" {
		return domain.Workflow{}, fmt.Errorf("course id is required: %w", apperrors.ErrInvalidInput)
	}
	title, err := s.catalog.CourseTitle(ctx, courseID)
	if err != nil {
		return domain.Workflow{}, err
	}
	workflow := domain.NewWorkflow(s.idGen.New(), courseID, title)
	if err := s.store.Save(ctx, workflow); err != nil {
		return domain.Workflow{}, err
	}
	s.log.Debug("enrollment opened", "workflow_id", workflow.ID, "course_id", courseID)
	return workflow, nil
}

func (s *EnrollmentService) Get(ctx context.Context, workflowID string) (domain.Workflow, error) {
	return s.store.Load(ctx, workflowID)
}

func (s *EnrollmentService) mutate(ctx context.Context, workflowID string, fn func(*domain.Workflow) error) (domain.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	workflow, err := s.store.Load(ctx, workflowID)
	if err != nil {
		return domain.Workflow{}, err
	}
	if err := fn(&workflow); err != nil {
		return workflow, err
	}
	if err := s.store.Save(ctx, workflow); err != nil {
		return domain.Workflow{}, err
	}
	return workflow, nil
}

func (s *EnrollmentService) SetField(ctx context.Context, workflowID, field, value string) (domain.Workflow, error) {
	return s.mutate(ctx, workflowID, func(w *domain.Workflow) error {
		return w.SetField(field, value)
	})
}

// Next advances one step. The current step's field problems are always
// returned; with strict validation they also block the transition.
func (s *EnrollmentService) Next(ctx context.Context, workflowID string) (domain.Workflow, []domain.FieldError, error) {
	var problems []domain.FieldError
	workflow, err := s.mutate(ctx, workflowID, func(w *domain.Workflow) error {
		if w.Done() {
			return apperrors.ErrWorkflowTerminal
		}
		problems = w.Form.ValidateStep(w.Step)
		if s.strict && len(problems) > 0 {
			return &ValidationError{Fields: problems}
		}
		return w.Next()
	})
	return workflow, problems, err
}

// Back returns exited=true when the workflow was discarded.
func (s *EnrollmentService) Back(ctx context.Context, workflowID string) (domain.Workflow, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	workflow, err := s.store.Load(ctx, workflowID)
	if err != nil {
		return domain.Workflow{}, false, err
	}
	exited, err := workflow.Back()
	if err != nil {
		return workflow, false, err
	}
	if exited {
		if err := s.store.Discard(ctx, workflowID); err != nil {
			return domain.Workflow{}, false, err
		}
		s.log.Debug("enrollment exited", "workflow_id", workflowID)
		return workflow, true, nil
	}
	if err := s.store.Save(ctx, workflow); err != nil {
		return domain.Workflow{}, false, err
	}
	return workflow, false, nil
}

// Submit enrolls from the last step. Only one submit may be pending; a
// failed submit leaves the workflow on the last step so it can be retried.
func (s *EnrollmentService) Submit(ctx context.Context, workflowID string) (domain.Workflow, error) {
	pending, err := s.mutate(ctx, workflowID, func(w *domain.Workflow) error {
		if s.strict && !w.Done() && !w.Submitting {
			if problems := w.Form.ValidateAll(); len(problems) > 0 {
				return &ValidationError{Fields: problems}
			}
		}
		return w.BeginSubmit()
	})
	if err != nil {
		return pending, err
	}

	enrollErr := s.catalog.Enroll(ctx, pending.CourseID, pending.Form)

	workflow, err := s.mutate(context.WithoutCancel(ctx), workflowID, func(w *domain.Workflow) error {
		w.FinishSubmit(enrollErr)
		return nil
	})
	if err != nil {
		return domain.Workflow{}, err
	}
	if enrollErr != nil {
		s.log.Warn("enrollment failed", "workflow_id", workflowID, "course_id", pending.CourseID, "error", enrollErr)
		return workflow, enrollErr
	}
	if s.listener != nil {
		if err := s.listener.Enrolled(ctx, workflow.CourseID); err != nil {
			s.log.Warn("enrollment listener failed", "course_id", workflow.CourseID, "error", err)
		}
	}
	s.log.Info("enrollment completed", "workflow_id", workflowID, "course_id", workflow.CourseID)
	return workflow, nil
}

func (s *EnrollmentService) Discard(ctx context.Context, workflowID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Discard(ctx, workflowID)
}
