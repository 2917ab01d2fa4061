package domain

import (
	"math"

	apperrors "learnify/internal/platform/errors"
)

type Step int

const (
	StepPersonal   Step = 1
	StepAddress    Step = 2
	StepAdditional Step = 3
	StepSuccess    Step = 4
)

const FormSteps = 3

func (s Step) String() string {
	switch s {
	case StepPersonal:
		return "personal"
	case StepAddress:
		return "address"
	case StepAdditional:
		return "additional"
	case StepSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Workflow is one in-progress enrollment. It lives in memory only.
type Workflow struct {
	ID          string
	CourseID    string
	CourseTitle string
	Step        Step
	Form        Form
	Submitting  bool
	LastError   string
}

func NewWorkflow(id, courseID, courseTitle string) Workflow {
	return Workflow{ID: id, CourseID: courseID, CourseTitle: courseTitle, Step: StepPersonal}
}

func (w Workflow) Done() bool {
	return w.Step == StepSuccess
}

// Progress is round(step / 3 * 100), so 33, 67 and 100 for the form steps.
func (w Workflow) Progress() int {
	step := int(w.Step)
	if step > FormSteps {
		step = FormSteps
	}
	return int(math.Round(float64(step) / FormSteps * 100))
}

func (w Workflow) guard() error {
	if w.Done() {
		return apperrors.ErrWorkflowTerminal
	}
	if w.Submitting {
		return apperrors.ErrSubmitInProgress
	}
	return nil
}

func (w *Workflow) Next() error {
	if err := w.guard(); err != nil {
		return err
	}
	if w.Step >= StepAdditional {
		return apperrors.ErrInvalidStep
	}
	w.Step++
	return nil
}

// Back moves one step back. At the first step it reports exit and the
// caller discards the workflow.
func (w *Workflow) Back() (bool, error) {
	if err := w.guard(); err != nil {
		return false, err
	}
	if w.Step == StepPersonal {
		return true, nil
	}
	w.Step--
	return false, nil
}

func (w *Workflow) SetField(field, value string) error {
	if err := w.guard(); err != nil {
		return err
	}
	return w.Form.Set(field, value)
}

func (w *Workflow) BeginSubmit() error {
	if err := w.guard(); err != nil {
		return err
	}
	if w.Step != StepAdditional {
		return apperrors.ErrInvalidStep
	}
	w.Submitting = true
	w.LastError = ""
	return nil
}

// FinishSubmit ends a pending submit. Failure keeps the workflow on the
// last form step.
func (w *Workflow) FinishSubmit(err error) {
	w.Submitting = false
	if err != nil {
		w.LastError = err.Error()
		return
	}
	w.Step = StepSuccess
}
