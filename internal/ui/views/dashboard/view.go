package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "learnify/internal/modules/catalog/dto"
	progressdto "learnify/internal/modules/progress/dto"
	"learnify/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type CatalogPort interface {
	Profile(ctx context.Context) (catalogdto.UserOutput, error)
	Stats(ctx context.Context) (catalogdto.StatsOutput, error)
	RecentActivities(ctx context.Context) ([]catalogdto.ActivityOutput, error)
	Recommended(ctx context.Context, userID string) ([]catalogdto.CourseOutput, error)
	Enrolled(ctx context.Context) ([]catalogdto.CourseOutput, error)
}

type ProgressPort interface {
	List(ctx context.Context) ([]progressdto.ProgressOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// LoadedMsg carries one dashboard snapshot. Partial failures keep whatever
// loaded and report the first error.
type LoadedMsg struct {
	User        catalogdto.UserOutput
	Stats       catalogdto.StatsOutput
	Activities  []catalogdto.ActivityOutput
	Recommended []catalogdto.CourseOutput
	Enrolled    []catalogdto.CourseOutput
	Progress    map[string]int
	Err         error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	catalog  CatalogPort
	progress ProgressPort
	data     LoadedMsg
	bar      progress.Model
	viewport viewport.Model
	spinner  spinner.Model
	loading  bool
	width    int
	height   int
}

func New(catalog CatalogPort, prog ProgressPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		catalog:  catalog,
		progress: prog,
		bar:      progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Green)), progress.WithoutPercentage()),
		viewport: viewport.New(0, 0),
		spinner:  sp,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height
		m.bar.Width = max(10, msg.Width/3)
		m.viewport.SetContent(m.render())

	case LoadedMsg:
		m.loading = false
		m.data = msg
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
			m.spinner.View()+" Loading dashboard…")
	}
	return m.viewport.View()
}

// Reload fetches a fresh snapshot. Reads go through the request cache so a
// reload after a mutation only refetches what was invalidated.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		out := LoadedMsg{Progress: map[string]int{}}
		keep := func(err error) {
			if err != nil && out.Err == nil {
				out.Err = err
			}
		}
		var err error
		out.User, err = m.catalog.Profile(ctx)
		keep(err)
		out.Stats, err = m.catalog.Stats(ctx)
		keep(err)
		out.Activities, err = m.catalog.RecentActivities(ctx)
		keep(err)
		out.Recommended, err = m.catalog.Recommended(ctx, out.User.ID)
		keep(err)
		out.Enrolled, err = m.catalog.Enrolled(ctx)
		keep(err)
		if m.progress != nil {
			entries, err := m.progress.List(ctx)
			keep(err)
			for _, e := range entries {
				out.Progress[e.CourseID] = e.Percent
			}
		}
		return out
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) render() string {
	d := m.data
	var sb strings.Builder
	if d.User.Name != "" {
		sb.WriteString(theme.Title.Render("Welcome back, "+firstName(d.User.Name)) + "\n\n")
	}
	if d.Err != nil {
		sb.WriteString(theme.Bad.Render("some data failed to load: "+d.Err.Error()) + "\n\n")
	}

	cards := []string{
		card("Completed", fmt.Sprintf("%d", d.Stats.CoursesCompleted)),
		card("Certificates", fmt.Sprintf("%d", d.Stats.CertificatesEarned)),
		card("Study hours", fmt.Sprintf("%.1f", d.Stats.StudyHours)),
		card("Streak", fmt.Sprintf("%d days", d.Stats.CurrentStreak)),
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n")

	sb.WriteString(theme.Title.Render("Continue learning") + "\n")
	if len(d.Enrolled) == 0 {
		sb.WriteString(theme.Muted.Render("  not enrolled in any course yet") + "\n")
	}
	for _, c := range d.Enrolled {
		pct := d.Progress[c.ID]
		fmt.Fprintf(&sb, "  %-36s %s %3d%%\n", truncate(c.Title, 36), m.bar.ViewAs(float64(pct)/100), pct)
	}

	sb.WriteString("\n" + theme.Title.Render("Recommended for you") + "\n")
	for _, c := range d.Recommended {
		fmt.Fprintf(&sb, "  %s %-36s %s\n", theme.Star.Render(fmt.Sprintf("%.1f★", c.Rating)), truncate(c.Title, 36), theme.Muted.Render(c.Category))
	}

	sb.WriteString("\n" + theme.Title.Render("Recent activity") + "\n")
	if len(d.Activities) == 0 {
		sb.WriteString(theme.Muted.Render("  nothing yet") + "\n")
	}
	for _, a := range d.Activities {
		line := fmt.Sprintf("  %s  %-16s %s", a.Date.Local().Format("02 Jan 15:04"), activityLabel(a.Type), a.CourseTitle)
		if a.Progress != nil {
			line += fmt.Sprintf(" (%d%%)", *a.Progress)
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func card(label, value string) string {
	return theme.Pane.Width(18).Render(theme.Muted.Render(label) + "\n" + theme.Hot.Render(value))
}

func activityLabel(kind string) string {
	switch kind {
	case "enrolled":
		return "enrolled in"
	case "completed":
		return "completed"
	case "certificate":
		return "certificate for"
	case "started":
		return "started"
	case "progress_update":
		return "progressed in"
	}
	return kind
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
