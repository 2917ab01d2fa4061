package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	enrollmentout "learnify/internal/modules/enrollment/adapter/out"
	"learnify/internal/modules/enrollment/domain"
	"learnify/internal/modules/enrollment/dto"
	enrollmentin "learnify/internal/modules/enrollment/port/in"
	enrollmentport "learnify/internal/modules/enrollment/port/out"
	"learnify/internal/modules/enrollment/service"
	"learnify/internal/modules/enrollment/usecase"
	apperrors "learnify/internal/platform/errors"
	"learnify/internal/platform/id"
)

type fakeCatalog struct {
	mu       sync.Mutex
	titles   map[string]string
	enrolled []string
	failWith error
	release  chan struct{}
	started  chan struct{}
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{titles: map[string]string{"c1": "Go Fundamentals", "c2": "Advanced Go Concurrency"}}
}

func (f *fakeCatalog) CourseTitle(_ context.Context, courseID string) (string, error) {
	title, ok := f.titles[courseID]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return title, nil
}

func (f *fakeCatalog) Enroll(ctx context.Context, courseID string, _ domain.Form) error {
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.enrolled = append(f.enrolled, courseID)
	return nil
}

type fakeListener struct {
	mu      sync.Mutex
	courses []string
}

func (f *fakeListener) Enrolled(_ context.Context, courseID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.courses = append(f.courses, courseID)
	return nil
}

func newUsecase(catalog *fakeCatalog, listener enrollmentport.EnrollmentListener, strict bool) enrollmentin.Usecase {
	return usecase.NewInteractor(service.NewEnrollmentService(
		enrollmentout.NewMemoryWorkflowStore(), catalog, listener, id.UUID{}, strict, nil,
	))
}

func TestEnrollmentHappyPath(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	catalog := newFakeCatalog()
	listener := &fakeListener{}
	uc := newUsecase(catalog, listener, false)

	opened, err := uc.Open(ctx, "c1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if opened.Step != 1 || opened.Progress != 33 || opened.CourseTitle != "Go Fundamentals" {
		t.Fatalf("unexpected opened workflow %+v", opened)
	}
	second, err := uc.Next(ctx, opened.ID)
	if err != nil || second.Step != 2 || second.Progress != 67 {
		t.Fatalf("expected step 2 at 67%%, got %+v err=%v", second, err)
	}
	if len(second.Problems) == 0 {
		t.Fatalf("permissive mode still reports problems for empty fields")
	}
	third, err := uc.Next(ctx, opened.ID)
	if err != nil || third.Step != 3 || third.Progress != 100 {
		t.Fatalf("expected step 3, got %+v err=%v", third, err)
	}
	done, err := uc.Submit(ctx, opened.ID)
	if err != nil || !done.Done || done.StepName != "success" {
		t.Fatalf("expected success, got %+v err=%v", done, err)
	}
	if len(catalog.enrolled) != 1 || catalog.enrolled[0] != "c1" {
		t.Fatalf("expected one enrollment in c1, got %v", catalog.enrolled)
	}
	if len(listener.courses) != 1 {
		t.Fatalf("listener must be told about the enrollment")
	}
	if _, err := uc.Next(ctx, opened.ID); !errors.Is(err, apperrors.ErrWorkflowTerminal) {
		t.Fatalf("success must be terminal, got %v", err)
	}
	if _, err := uc.Submit(ctx, opened.ID); !errors.Is(err, apperrors.ErrWorkflowTerminal) {
		t.Fatalf("success must be terminal, got %v", err)
	}
}

func TestOpenUnknownCourse(t *testing.T) {
	t.Parallel()
	uc := newUsecase(newFakeCatalog(), nil, false)
	if _, err := uc.Open(context.Background(), "nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBackFromFirstStepDiscardsWorkflow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(newFakeCatalog(), nil, false)
	opened, _ := uc.Open(ctx, "c1")
	out, err := uc.Back(ctx, opened.ID)
	if err != nil || !out.Exited {
		t.Fatalf("expected exit, got %+v err=%v", out, err)
	}
	if _, err := uc.Get(ctx, opened.ID); !errors.Is(err, apperrors.ErrWorkflowExited) {
		t.Fatalf("expected exited workflow, got %v", err)
	}
	if _, err := uc.Next(ctx, opened.ID); !errors.Is(err, apperrors.ErrWorkflowExited) {
		t.Fatalf("expected exited workflow, got %v", err)
	}
}

func TestSubmitOnlyFromLastStep(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(newFakeCatalog(), nil, false)
	opened, _ := uc.Open(ctx, "c1")
	if _, err := uc.Submit(ctx, opened.ID); !errors.Is(err, apperrors.ErrInvalidStep) {
		t.Fatalf("expected invalid step, got %v", err)
	}
}

func TestConcurrentSubmitIsRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	catalog := newFakeCatalog()
	catalog.release = make(chan struct{})
	catalog.started = make(chan struct{})
	uc := newUsecase(catalog, nil, false)
	opened, _ := uc.Open(ctx, "c2")
	_, _ = uc.Next(ctx, opened.ID)
	_, _ = uc.Next(ctx, opened.ID)

	result := make(chan error, 1)
	go func() {
		_, err := uc.Submit(ctx, opened.ID)
		result <- err
	}()
	select {
	case <-catalog.started:
	case <-time.After(2 * time.Second):
		t.Fatalf("first submit never reached the catalogue")
	}
	if _, err := uc.Submit(ctx, opened.ID); !errors.Is(err, apperrors.ErrSubmitInProgress) {
		t.Fatalf("expected submit in progress, got %v", err)
	}
	pending, _ := uc.Get(ctx, opened.ID)
	if !pending.Submitting {
		t.Fatalf("expected pending submit to be visible")
	}
	close(catalog.release)
	if err := <-result; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if len(catalog.enrolled) != 1 {
		t.Fatalf("expected exactly one enrollment, got %v", catalog.enrolled)
	}
}

func TestFailedSubmitStaysOnLastStep(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	catalog := newFakeCatalog()
	catalog.failWith = errors.New("service unavailable")
	uc := newUsecase(catalog, nil, false)
	opened, _ := uc.Open(ctx, "c1")
	_, _ = uc.Next(ctx, opened.ID)
	_, _ = uc.Next(ctx, opened.ID)
	out, err := uc.Submit(ctx, opened.ID)
	if err == nil {
		t.Fatalf("expected submit failure")
	}
	if out.Step != 3 || out.Submitting || out.LastError == "" {
		t.Fatalf("expected retryable step 3, got %+v", out)
	}
	catalog.failWith = nil
	if out, err := uc.Submit(ctx, opened.ID); err != nil || !out.Done {
		t.Fatalf("retry should succeed, got %+v err=%v", out, err)
	}
}

func TestStrictValidationBlocksNext(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(newFakeCatalog(), nil, true)
	opened, _ := uc.Open(ctx, "c1")
	out, err := uc.Next(ctx, opened.ID)
	if !errors.Is(err, apperrors.ErrInvalidInput) || len(out.Problems) != 5 {
		t.Fatalf("expected five blocking problems, got %+v err=%v", out.Problems, err)
	}
	current, _ := uc.Get(ctx, opened.ID)
	if current.Step != 1 {
		t.Fatalf("blocked transition must not move, got step %d", current.Step)
	}
}

func TestCompleteFillsAndSubmits(t *testing.T) {
	t.Parallel()
	catalog := newFakeCatalog()
	uc := newUsecase(catalog, nil, true)
	values := map[string]string{
		"fullName": "Marina Alves", "email": "marina@example.com", "phone": "11999990000",
		"dateOfBirth": "1994-05-17", "documentNumber": "12345678900",
		"zipCode": "01310-100", "street": "Av. Paulista", "number": "1000",
		"neighborhood": "Bela Vista", "city": "São Paulo", "state": "SP",
		"educationLevel": "bachelor", "occupation": "developer", "hearAboutUs": "friend",
		"goals": "learn go", "marketingConsent": "no",
	}
	out, err := uc.Complete(context.Background(), dto.CompleteInput{CourseID: "c1", Values: values})
	if err != nil || !out.Done || len(out.Problems) != 0 {
		t.Fatalf("expected clean enrollment, got %+v err=%v", out, err)
	}
	if _, err := uc.Complete(context.Background(), dto.CompleteInput{CourseID: "c1", Values: map[string]string{"shoeSize": "42"}}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected unknown field to be rejected, got %v", err)
	}
	delete(values, "city")
	if _, err := uc.Complete(context.Background(), dto.CompleteInput{CourseID: "c1", Values: values}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("strict mode must reject a missing city, got %v", err)
	}
}
