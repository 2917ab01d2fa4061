package resume

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	resumedto "learnify/internal/modules/resume/dto"
	"learnify/internal/platform/markdown"
	"learnify/internal/ui/theme"
)

type Port interface {
	Show(ctx context.Context) (resumedto.ResumeOutput, error)
	UpdatePersonal(ctx context.Context, input resumedto.PersonalInput) (resumedto.ResumeOutput, error)
	Add(ctx context.Context, kind string) (resumedto.SectionOutput, error)
	Update(ctx context.Context, sectionID string, fields map[string]string) (resumedto.ResumeOutput, error)
	Delete(ctx context.Context, sectionID string) (resumedto.ResumeOutput, error)
	Export(ctx context.Context) (string, error)
}

// LoadedMsg carries the résumé and its rendered markdown body. Action is a
// short status line for the app model.
type LoadedMsg struct {
	Resume resumedto.ResumeOutput
	Body   string
	Action string
	Err    error
}

type Model struct {
	port      Port
	resume    resumedto.ResumeOutput
	body      string
	viewport  viewport.Model
	spinner   spinner.Model
	renderer  *glamour.TermRenderer
	themePref string
	loading   bool
	width     int
	height    int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, viewport: viewport.New(0, 0), spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(""), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height
		m.rebuildRenderer()
		m.viewport.SetContent(m.render())

	case LoadedMsg:
		m.loading = false
		if msg.Err == nil || msg.Body != "" {
			m.resume = msg.Resume
			m.body = msg.Body
		}
		m.viewport.SetContent(m.render())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	var vCmd tea.Cmd
	m.viewport, vCmd = m.viewport.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading résumé…")
	}
	return m.viewport.View()
}

// SetTheme switches the markdown style.
func (m *Model) SetTheme(pref string) {
	if pref == m.themePref {
		return
	}
	m.themePref = pref
	m.rebuildRenderer()
	m.viewport.SetContent(m.render())
}

func (m Model) Reload(action string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		return load(context.Background(), port, action, nil)
	}
}

func (m Model) AddCmd(kind string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		ctx := context.Background()
		section, err := port.Add(ctx, kind)
		return load(ctx, port, "added "+section.Kind+" section "+section.ID, err)
	}
}

func (m Model) UpdateCmd(sectionID string, fields map[string]string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		ctx := context.Background()
		_, err := port.Update(ctx, sectionID, fields)
		return load(ctx, port, "updated section "+sectionID, err)
	}
}

func (m Model) DeleteCmd(sectionID string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		ctx := context.Background()
		_, err := port.Delete(ctx, sectionID)
		return load(ctx, port, "deleted section "+sectionID, err)
	}
}

// PersonalCmd applies field=value pairs on top of the current personal info.
func (m Model) PersonalCmd(fields map[string]string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		ctx := context.Background()
		current, err := port.Show(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		p := current.Personal
		for k, v := range fields {
			switch k {
			case "fullName", "name":
				p.FullName = v
			case "email":
				p.Email = v
			case "phone":
				p.Phone = v
			case "location":
				p.Location = v
			case "summary":
				p.Summary = v
			default:
				return load(ctx, port, "", fmt.Errorf("unknown personal field %q", k))
			}
		}
		_, err = port.UpdatePersonal(ctx, p)
		return load(ctx, port, "updated personal info", err)
	}
}

func load(ctx context.Context, port Port, action string, actionErr error) LoadedMsg {
	r, err := port.Show(ctx)
	if err != nil {
		return LoadedMsg{Err: err}
	}
	exported, err := port.Export(ctx)
	if err != nil {
		return LoadedMsg{Resume: r, Err: err}
	}
	_, body, err := markdown.SplitFrontmatter(exported)
	if err != nil {
		body = exported
	}
	if actionErr != nil {
		return LoadedMsg{Resume: r, Body: body, Err: actionErr}
	}
	return LoadedMsg{Resume: r, Body: body, Action: action}
}

func (m *Model) rebuildRenderer() {
	if r, err := theme.NewRenderer(m.themePref, max(20, m.width-4)); err == nil {
		m.renderer = r
	}
}

func (m Model) render() string {
	var sb strings.Builder
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(m.body); err == nil {
			sb.WriteString(rendered)
		} else {
			sb.WriteString(m.body)
		}
	} else {
		sb.WriteString(m.body)
	}
	sb.WriteString("\n" + theme.Title.Render("Sections") + "\n")
	if len(m.resume.Sections) == 0 {
		sb.WriteString(theme.Muted.Render("  none yet, try :resume:add education") + "\n")
	}
	for _, s := range m.resume.Sections {
		fmt.Fprintf(&sb, "  %s  %-10s %s\n", theme.Muted.Render(s.ID), s.Kind, s.Title)
	}
	sb.WriteString("\n" + theme.Muted.Render(":resume:add <kind>  :resume:set <id> field=value…  :resume:delete <id>  :resume:personal field=value…"))
	return sb.String()
}
