package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	catalogdto "learnify/internal/modules/catalog/dto"
	"learnify/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	ListCourses(ctx context.Context) ([]catalogdto.CourseOutput, error)
	ShowCourse(ctx context.Context, id string) (catalogdto.CourseOutput, error)
	Search(ctx context.Context, query string) ([]catalogdto.CourseOutput, error)
	Filter(ctx context.Context, category, level, price, duration string) ([]catalogdto.CourseOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type CoursesLoadedMsg struct {
	Courses []catalogdto.CourseOutput
	Label   string
	Err     error
}

type DetailLoadedMsg struct {
	Course catalogdto.CourseOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type courseItem struct {
	course   catalogdto.CourseOutput
	favorite bool
	percent  int
	enrolled bool
}

func (i courseItem) Title() string {
	title := i.course.Title
	if i.favorite {
		title = "★ " + title
	}
	return title
}

func (i courseItem) Description() string {
	price := "free"
	if i.course.Price > 0 {
		price = fmt.Sprintf("R$ %.2f", i.course.Price)
	}
	desc := fmt.Sprintf("%s · %s · %.1f★ · %s", i.course.Category, i.course.Level, i.course.Rating, price)
	if i.enrolled {
		desc += fmt.Sprintf(" · %d%%", i.percent)
	}
	return desc
}

func (i courseItem) FilterValue() string {
	return i.course.Title + " " + i.course.Category + " " + i.course.Instructor.Name
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      Port
	list      list.Model
	detail    catalogdto.CourseOutput
	preview   viewport.Model
	spinner   spinner.Model
	renderer  *glamour.TermRenderer
	themePref string
	favorites map[string]bool
	progress  map[string]int
	enrolled  map[string]bool
	courses   []catalogdto.CourseOutput
	loading   bool
	width     int
	height    int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Catalogue"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:      port,
		list:      l,
		preview:   vp,
		spinner:   sp,
		favorites: map[string]bool{},
		progress:  map[string]int{},
		enrolled:  map[string]bool{},
		loading:   true,
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
		m.resize()

	case CoursesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Catalogue: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Catalogue"
		if msg.Label != "" {
			m.list.Title += " · " + msg.Label
		}
		m.courses = msg.Courses
		cmds = append(cmds, m.refreshItems())
		if len(msg.Courses) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Courses[0].ID))
		} else {
			m.detail = catalogdto.CourseOutput{}
			m.preview.SetContent(theme.Muted.Render("No courses match."))
		}

	case DetailLoadedMsg:
		if msg.Err != nil {
			m.preview.SetContent(theme.Bad.Render("Course not found: " + msg.Err.Error()))
			return m, nil
		}
		m.detail = msg.Course
		m.preview.SetContent(m.renderDetail())
		m.preview.GotoTop()

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(courseItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.course.ID))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading courses…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Reload lists the whole catalogue.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		courses, err := m.port.ListCourses(context.Background())
		return CoursesLoadedMsg{Courses: courses, Err: err}
	}
}

func (m Model) SearchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		courses, err := m.port.Search(context.Background(), query)
		return CoursesLoadedMsg{Courses: courses, Label: fmt.Sprintf("search %q", query), Err: err}
	}
}

func (m Model) FilterCmd(category, level, price, duration string) tea.Cmd {
	return func() tea.Msg {
		courses, err := m.port.Filter(context.Background(), category, level, price, duration)
		label := strings.Join(nonEmpty(category, level, price, duration), " ")
		return CoursesLoadedMsg{Courses: courses, Label: "filter " + label, Err: err}
	}
}

// SetState refreshes markers derived from the app state. Enrolled courses
// show their progress.
func (m *Model) SetState(favorites []string, progress map[string]int, themePref string) tea.Cmd {
	m.favorites = map[string]bool{}
	for _, id := range favorites {
		m.favorites[id] = true
	}
	m.progress = map[string]int{}
	m.enrolled = map[string]bool{}
	for id, pct := range progress {
		m.progress[id] = pct
		m.enrolled[id] = true
	}
	if themePref != m.themePref {
		m.themePref = themePref
		m.rebuildRenderer()
		if m.detail.ID != "" {
			m.preview.SetContent(m.renderDetail())
		}
	}
	return m.refreshItems()
}

func (m Model) SelectedCourse() (catalogdto.CourseOutput, bool) {
	if item, ok := m.list.SelectedItem().(courseItem); ok {
		return item.course, true
	}
	return catalogdto.CourseOutput{}, false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) refreshItems() tea.Cmd {
	items := make([]list.Item, len(m.courses))
	for i, c := range m.courses {
		items[i] = courseItem{course: c, favorite: m.favorites[c.ID], percent: m.progress[c.ID], enrolled: m.enrolled[c.ID]}
	}
	return m.list.SetItems(items)
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
	m.rebuildRenderer()
	if m.detail.ID != "" {
		m.preview.SetContent(m.renderDetail())
	}
}

func (m *Model) rebuildRenderer() {
	if r, err := theme.NewRenderer(m.themePref, m.preview.Width); err == nil {
		m.renderer = r
	}
}

func (m Model) renderDetail() string {
	md := CourseMarkdown(m.detail)
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(md); err == nil {
			return rendered + theme.Muted.Render("e: enroll  f: favourite")
		}
	}
	return md
}

// CourseMarkdown renders a course detail page.
func CourseMarkdown(c catalogdto.CourseOutput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n%s\n\n", c.Title, c.Description)
	price := "**Free**"
	if c.Price > 0 {
		price = fmt.Sprintf("**R$ %.2f**", c.Price)
		if c.OriginalPrice != nil && *c.OriginalPrice > c.Price {
			price += fmt.Sprintf(" ~~R$ %.2f~~", *c.OriginalPrice)
		}
	}
	fmt.Fprintf(&sb, "| Level | Duration | Rating | Students | Price |\n|---|---|---|---|---|\n")
	fmt.Fprintf(&sb, "| %s | %.1fh | %.1f | %d | %s |\n\n", c.Level, c.Duration, c.Rating, c.StudentsCount, price)

	fmt.Fprintf(&sb, "## Instructor\n\n**%s**", c.Instructor.Name)
	if c.Instructor.Experience != "" {
		fmt.Fprintf(&sb, " · %s", c.Instructor.Experience)
	}
	sb.WriteString("\n\n")
	if c.Instructor.Bio != "" {
		sb.WriteString(c.Instructor.Bio + "\n\n")
	}

	writeList(&sb, "What you will learn", c.LearningOutcomes)
	if len(c.Modules) > 0 {
		fmt.Fprintf(&sb, "## Curriculum (%d lessons)\n\n", c.LessonCount)
		for i, mod := range c.Modules {
			fmt.Fprintf(&sb, "%d. **%s**", i+1, mod.Title)
			if mod.Duration != nil {
				fmt.Fprintf(&sb, " (%.1fh)", *mod.Duration)
			}
			sb.WriteString("\n")
			for _, lesson := range mod.Lessons {
				fmt.Fprintf(&sb, "   - %s\n", lesson)
			}
		}
		sb.WriteString("\n")
	}
	writeList(&sb, "Requirements", c.Requirements)
	writeList(&sb, "Includes", c.Features)
	if len(c.Tags) > 0 {
		sb.WriteString("`" + strings.Join(c.Tags, "` `") + "`\n")
	}
	return sb.String()
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
	sb.WriteString("\n")
}

func nonEmpty(values ...string) []string {
	out := []string{}
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		course, err := m.port.ShowCourse(context.Background(), id)
		return DetailLoadedMsg{Course: course, Err: err}
	}
}
