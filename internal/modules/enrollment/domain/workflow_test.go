package domain_test

import (
	"errors"
	"testing"

	"learnify/internal/modules/enrollment/domain"
	apperrors "learnify/internal/platform/errors"
)

func TestWorkflowStepsAndProgress(t *testing.T) {
	t.Parallel()
	w := domain.NewWorkflow("w1", "c1", "Go Fundamentals")
	if w.Step != domain.StepPersonal || w.Progress() != 33 {
		t.Fatalf("expected step 1 at 33%%, got %d at %d", w.Step, w.Progress())
	}
	if err := w.Next(); err != nil || w.Progress() != 67 {
		t.Fatalf("expected 67%% at step 2, got %d err=%v", w.Progress(), err)
	}
	if err := w.Next(); err != nil || w.Step != domain.StepAdditional || w.Progress() != 100 {
		t.Fatalf("expected step 3 at 100%%, got %d err=%v", w.Step, err)
	}
	if err := w.Next(); !errors.Is(err, apperrors.ErrInvalidStep) {
		t.Fatalf("next past the last step must fail, got %v", err)
	}
}

func TestBackAtFirstStepExits(t *testing.T) {
	t.Parallel()
	w := domain.NewWorkflow("w1", "c1", "")
	_ = w.Next()
	exited, err := w.Back()
	if err != nil || exited || w.Step != domain.StepPersonal {
		t.Fatalf("expected to return to step 1, got step %d exited=%t err=%v", w.Step, exited, err)
	}
	exited, err = w.Back()
	if err != nil || !exited {
		t.Fatalf("expected exit at step 1, got exited=%t err=%v", exited, err)
	}
}

func TestSubmitLifecycle(t *testing.T) {
	t.Parallel()
	w := domain.NewWorkflow("w1", "c1", "")
	if err := w.BeginSubmit(); !errors.Is(err, apperrors.ErrInvalidStep) {
		t.Fatalf("submit before last step must fail, got %v", err)
	}
	_ = w.Next()
	_ = w.Next()
	if err := w.BeginSubmit(); err != nil {
		t.Fatalf("begin submit: %v", err)
	}
	if err := w.BeginSubmit(); !errors.Is(err, apperrors.ErrSubmitInProgress) {
		t.Fatalf("second submit must be rejected, got %v", err)
	}
	if _, err := w.Back(); !errors.Is(err, apperrors.ErrSubmitInProgress) {
		t.Fatalf("navigation during submit must be rejected, got %v", err)
	}
	w.FinishSubmit(errors.New("network down"))
	if w.Step != domain.StepAdditional || w.LastError == "" || w.Submitting {
		t.Fatalf("failed submit must stay at step 3, got %+v", w)
	}
	_ = w.BeginSubmit()
	w.FinishSubmit(nil)
	if !w.Done() || w.Progress() != 100 {
		t.Fatalf("expected success, got %+v", w)
	}
	if err := w.Next(); !errors.Is(err, apperrors.ErrWorkflowTerminal) {
		t.Fatalf("success must be terminal, got %v", err)
	}
	if _, err := w.Back(); !errors.Is(err, apperrors.ErrWorkflowTerminal) {
		t.Fatalf("success must be terminal, got %v", err)
	}
}

func TestFormFieldsAndValidation(t *testing.T) {
	t.Parallel()
	form := domain.Form{}
	errs := form.ValidateStep(domain.StepPersonal)
	if len(errs) != 5 || errs[0].Field != "fullName" {
		t.Fatalf("expected five personal errors, got %+v", errs)
	}
	values := map[string]string{
		"fullName":       "Marina Alves",
		"email":          "marina@example.com",
		"phone":          "+55 11 99999-0000",
		"dateOfBirth":    "1994-05-17",
		"documentNumber": "123.456.789-00",
	}
	for field, value := range values {
		if err := form.Set(field, value); err != nil {
			t.Fatalf("set %s: %v", field, err)
		}
	}
	if errs := form.ValidateStep(domain.StepPersonal); len(errs) != 0 {
		t.Fatalf("expected valid personal info, got %+v", errs)
	}
	_ = form.Set("email", "not-an-email")
	if errs := form.ValidateStep(domain.StepPersonal); len(errs) != 1 || errs[0].Field != "email" {
		t.Fatalf("expected email error, got %+v", errs)
	}
	if err := form.Set("favouriteColour", "blue"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if err := form.Set("marketingConsent", "yes"); err != nil || form.Get("marketingConsent") != "yes" {
		t.Fatalf("expected consent to be recorded, err=%v", err)
	}
	if errs := form.ValidateStep(domain.StepAddress); len(errs) != 6 {
		t.Fatalf("complement is optional, expected six address errors, got %d", len(errs))
	}
	for _, step := range []domain.Step{domain.StepPersonal, domain.StepAddress, domain.StepAdditional} {
		for _, f := range domain.StepFields(step) {
			if err := form.Set(f.Name, form.Get(f.Name)); err != nil {
				t.Fatalf("field %s must round trip: %v", f.Name, err)
			}
		}
	}
}
