package enroll

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	enrollmentdto "learnify/internal/modules/enrollment/dto"
	apperrors "learnify/internal/platform/errors"
	"learnify/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Open(ctx context.Context, courseID string) (enrollmentdto.WorkflowOutput, error)
	SetField(ctx context.Context, workflowID, field, value string) (enrollmentdto.WorkflowOutput, error)
	Next(ctx context.Context, workflowID string) (enrollmentdto.WorkflowOutput, error)
	Back(ctx context.Context, workflowID string) (enrollmentdto.WorkflowOutput, error)
	Submit(ctx context.Context, workflowID string) (enrollmentdto.WorkflowOutput, error)
	Discard(ctx context.Context, workflowID string) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type StepMsg struct {
	Workflow enrollmentdto.WorkflowOutput
	Err      error
}

// ExitedMsg is emitted when the wizard is left, either by backing out of the
// first step or by acknowledging a finished enrollment.
type ExitedMsg struct {
	CourseID string
	Enrolled bool
}

// EnrolledMsg is emitted once when a submit succeeds.
type EnrolledMsg struct {
	CourseID    string
	CourseTitle string
}

type stage int

const (
	stageIdle stage = iota
	stageLoading
	stageForm
	stageSubmitting
	stageSuccess
	stageNotFound
)

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	wf       enrollmentdto.WorkflowOutput
	inputs   []textinput.Model
	focus    int
	bar      progress.Model
	spinner  spinner.Model
	stage    stage
	courseID string
	status   string
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{
		port:    port,
		bar:     progress.New(progress.WithSolidFill(string(theme.Lavender))),
		spinner: sp,
	}
}

// Active reports whether the wizard holds a workflow and should receive all
// key input.
func (m Model) Active() bool {
	return m.stage != stageIdle
}

// Open starts a new workflow for courseID, discarding any unfinished one.
func (m *Model) Open(courseID string) tea.Cmd {
	previous := m.wf.ID
	if m.stage == stageSuccess {
		previous = ""
	}
	m.stage = stageLoading
	m.courseID = courseID
	m.status = ""
	m.wf = enrollmentdto.WorkflowOutput{}
	port := m.port
	return tea.Batch(func() tea.Msg {
		ctx := context.Background()
		if previous != "" {
			_ = port.Discard(ctx, previous)
		}
		wf, err := port.Open(ctx, courseID)
		return StepMsg{Workflow: wf, Err: err}
	}, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(20, min(60, msg.Width-10))
		return m, nil

	case spinner.TickMsg:
		if m.stage == stageLoading || m.stage == stageSubmitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case StepMsg:
		return m.applyStep(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.stage == stageForm && m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) applyStep(msg StepMsg) (Model, tea.Cmd) {
	wasSubmitting := m.stage == stageSubmitting
	switch {
	case errors.Is(msg.Err, apperrors.ErrNotFound) && m.wf.ID == "":
		m.stage = stageNotFound
		return m, nil
	case msg.Err != nil:
		m.status = msg.Err.Error()
		if msg.Workflow.ID != "" {
			m.wf = msg.Workflow
		}
		if m.wf.ID == "" {
			m.stage = stageNotFound
			return m, nil
		}
		m.stage = stageForm
		return m, m.resetInputs()
	}

	m.wf = msg.Workflow
	if m.wf.Exited {
		m.stage = stageIdle
		courseID := m.wf.CourseID
		m.wf = enrollmentdto.WorkflowOutput{}
		return m, func() tea.Msg { return ExitedMsg{CourseID: courseID} }
	}
	if m.wf.Done {
		m.stage = stageSuccess
		m.inputs = nil
		if wasSubmitting {
			wf := m.wf
			return m, func() tea.Msg { return EnrolledMsg{CourseID: wf.CourseID, CourseTitle: wf.CourseTitle} }
		}
		return m, nil
	}
	m.stage = stageForm
	m.status = problemSummary(m.wf.Problems)
	return m, m.resetInputs()
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.stage {
	case stageNotFound:
		if msg.String() == "esc" || msg.String() == "enter" {
			m.stage = stageIdle
			courseID := m.courseID
			return m, func() tea.Msg { return ExitedMsg{CourseID: courseID} }
		}
		return m, nil
	case stageSuccess:
		if msg.String() == "esc" || msg.String() == "enter" {
			m.stage = stageIdle
			wf := m.wf
			m.wf = enrollmentdto.WorkflowOutput{}
			return m, func() tea.Msg { return ExitedMsg{CourseID: wf.CourseID, Enrolled: true} }
		}
		return m, nil
	case stageLoading, stageSubmitting, stageIdle:
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		return m, m.focusField(m.focus + 1)
	case "shift+tab", "up":
		return m, m.focusField(m.focus - 1)
	case "esc":
		return m, m.stepCmd(false)
	case "enter":
		if m.focus < len(m.inputs)-1 {
			return m, m.focusField(m.focus + 1)
		}
		return m, m.stepCmd(true)
	case "ctrl+s":
		return m, m.stepCmd(true)
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	switch m.stage {
	case stageIdle:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("Pick a course in the Catalogue and press e to enroll."))
	case stageLoading:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Opening enrollment…")
	case stageNotFound:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Bad.Render("Course not found: "+m.courseID)+"\n\n"+theme.Muted.Render("enter: back to catalogue"))
	case stageSuccess:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Good.Render("✓ Enrolled in "+m.wf.CourseTitle)+"\n\n"+
				m.bar.ViewAs(1)+"\n\n"+theme.Muted.Render("enter: back to catalogue"))
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Enroll · "+m.wf.CourseTitle) + "\n")
	fmt.Fprintf(&sb, "%s  %s\n\n", theme.Muted.Render(fmt.Sprintf("Step %d of 3 · %s", m.wf.Step, m.wf.StepName)), m.bar.ViewAs(float64(m.wf.Progress)/100))

	problems := map[string]string{}
	for _, p := range m.wf.Problems {
		problems[p.Field] = p.Message
	}
	for i, f := range m.wf.Fields {
		label := f.Label
		if f.Required {
			label += " *"
		}
		style := theme.Muted
		if i == m.focus {
			style = theme.Hot
		}
		sb.WriteString(style.Render(label) + "\n")
		if i < len(m.inputs) {
			sb.WriteString(m.inputs[i].View() + "\n")
		}
		if msg, ok := problems[f.Name]; ok {
			sb.WriteString(theme.Bad.Render("  "+msg) + "\n")
		}
		sb.WriteString("\n")
	}
	if m.stage == stageSubmitting {
		sb.WriteString(m.spinner.View() + " Submitting…\n")
	} else if m.status != "" {
		sb.WriteString(theme.Bad.Render(m.status) + "\n")
	}
	action := "next"
	if m.wf.Step == 3 {
		action = "submit"
	}
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("tab/↑↓: field  enter: %s  ctrl+s: %s now  esc: back", action, action)))
	return theme.Pane.Width(max(40, m.width-4)).Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resetInputs() tea.Cmd {
	m.inputs = make([]textinput.Model, len(m.wf.Fields))
	for i, f := range m.wf.Fields {
		ti := textinput.New()
		ti.Placeholder = f.Label
		ti.CharLimit = 200
		ti.SetValue(f.Value)
		m.inputs[i] = ti
	}
	m.focus = 0
	return m.focusField(0)
}

func (m *Model) focusField(i int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	if i < 0 {
		i = len(m.inputs) - 1
	}
	i %= len(m.inputs)
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focus = i
	return m.inputs[i].Focus()
}

// stepCmd writes the edited values to the workflow and then moves forward
// (submitting on the last step) or back.
func (m *Model) stepCmd(forward bool) tea.Cmd {
	wf := m.wf
	values := make([]string, len(m.inputs))
	for i := range m.inputs {
		values[i] = m.inputs[i].Value()
	}
	port := m.port
	submit := forward && wf.Step == 3
	if submit {
		m.stage = stageSubmitting
	}
	run := func() tea.Msg {
		ctx := context.Background()
		for i, f := range wf.Fields {
			if i < len(values) && values[i] != f.Value {
				if _, err := port.SetField(ctx, wf.ID, f.Name, values[i]); err != nil {
					return StepMsg{Err: err}
				}
			}
		}
		var (
			out enrollmentdto.WorkflowOutput
			err error
		)
		switch {
		case submit:
			out, err = port.Submit(ctx, wf.ID)
		case forward:
			out, err = port.Next(ctx, wf.ID)
		default:
			out, err = port.Back(ctx, wf.ID)
		}
		return StepMsg{Workflow: out, Err: err}
	}
	if submit {
		return tea.Batch(run, m.spinner.Tick)
	}
	return run
}

func problemSummary(problems []enrollmentdto.FieldErrorOutput) string {
	if len(problems) == 0 {
		return ""
	}
	return fmt.Sprintf("%d field(s) on the previous step need attention", len(problems))
}
