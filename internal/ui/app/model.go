package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appstatedto "learnify/internal/modules/appstate/dto"
	progressdto "learnify/internal/modules/progress/dto"
	"learnify/internal/ui/components"
	"learnify/internal/ui/theme"
	catalogview "learnify/internal/ui/views/catalog"
	dashboardview "learnify/internal/ui/views/dashboard"
	enrollview "learnify/internal/ui/views/enroll"
	resumeview "learnify/internal/ui/views/resume"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.
// Sub-view ports are defined in their own packages.

type CatalogPort interface {
	catalogview.Port
	dashboardview.CatalogPort
}

type ProgressPort interface {
	dashboardview.ProgressPort
	Set(ctx context.Context, courseID string, percent int) (progressdto.ProgressOutput, error)
}

type AppStatePort interface {
	Show(ctx context.Context) (appstatedto.StateOutput, error)
	Login(ctx context.Context, email, password string) (appstatedto.StateOutput, error)
	SetTheme(ctx context.Context, theme string) (appstatedto.StateOutput, error)
	SetLanguage(ctx context.Context, language string) (appstatedto.StateOutput, error)
	SetSidebarCollapsed(ctx context.Context, collapsed bool) (appstatedto.StateOutput, error)
	ToggleFavorite(ctx context.Context, courseID string) (appstatedto.FavoriteOutput, error)
	LogStudy(ctx context.Context, minutes int) (appstatedto.StateOutput, error)
	Logout(ctx context.Context) (appstatedto.StateOutput, error)
}

type Handlers struct {
	Catalog    CatalogPort
	Progress   ProgressPort
	Enrollment enrollview.Port
	AppState   AppStatePort
	Resume     resumeview.Port
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabCatalog
	tabEnroll
	tabResume
	tabCount
)

var tabLabels = [tabCount]string{
	"Dashboard", "Catalogue", "Enroll", "Résumé",
}

// ─── async messages ───────────────────────────────────────────────────────────

type stateLoadedMsg struct {
	state    appstatedto.StateOutput
	progress map[string]int
	status   string
	err      error
}

type statusMsg struct {
	text string
	err  error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Enroll   key.Binding
	Favorite key.Binding
	Sidebar  key.Binding
	Refresh  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enroll:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "enroll in course")),
		Favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle favourite")),
		Sidebar:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "toggle sidebar")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enroll, k.Favorite},
		{k.Sidebar, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the app state
// snapshot, the help overlay and the command palette. Rendering is delegated
// to sub-views.
type Model struct {
	ctx      context.Context
	handlers Handlers

	dashView    dashboardview.Model
	catalogView catalogview.Model
	enrollView  enrollview.Model
	resumeView  resumeview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	state     appstatedto.StateOutput
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(ctx context.Context, h Handlers) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	return Model{
		ctx:         ctx,
		handlers:    h,
		dashView:    dashboardview.New(h.Catalog, h.Progress),
		catalogView: catalogview.New(h.Catalog),
		enrollView:  enrollview.New(h.Enrollment),
		resumeView:  resumeview.New(h.Resume),
		activeTab:   tabDashboard,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashView.Init(),
		m.catalogView.Init(),
		m.resumeView.Init(),
		m.loadStateCmd(""),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts key input while open.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case stateLoadedMsg:
		if msg.err != nil {
			m.status = "state: " + msg.err.Error()
			return m, nil
		}
		resized := m.state.SidebarCollapsed != msg.state.SidebarCollapsed
		m.state = msg.state
		if msg.status != "" {
			m.status = msg.status
		}
		m.resumeView.SetTheme(m.state.Theme)
		cmds = append(cmds, m.catalogView.SetState(m.state.FavoriteCourses, msg.progress, m.state.Theme))
		if resized {
			m.propagateSize()
		}
		return m, tea.Batch(cmds...)

	case statusMsg:
		if msg.err != nil {
			m.status = msg.text + ": " + msg.err.Error()
		} else {
			m.status = msg.text
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case catalogview.CoursesLoadedMsg, catalogview.DetailLoadedMsg:
		var cmd tea.Cmd
		m.catalogView, cmd = m.catalogView.Update(msg)
		return m, cmd

	case dashboardview.LoadedMsg:
		var cmd tea.Cmd
		m.dashView, cmd = m.dashView.Update(msg)
		return m, cmd

	case resumeview.LoadedMsg:
		switch {
		case msg.Err != nil:
			m.status = "résumé: " + msg.Err.Error()
		case msg.Action != "":
			m.status = msg.Action
		}
		var cmd tea.Cmd
		m.resumeView, cmd = m.resumeView.Update(msg)
		return m, cmd

	case enrollview.StepMsg:
		var cmd tea.Cmd
		m.enrollView, cmd = m.enrollView.Update(msg)
		return m, cmd

	case enrollview.EnrolledMsg:
		m.status = "enrolled in " + msg.CourseTitle
		return m, tea.Batch(m.dashView.Reload(), m.loadStateCmd(""))

	case enrollview.ExitedMsg:
		m.activeTab = tabCatalog
		if !msg.Enrolled {
			m.status = "enrollment cancelled"
		}
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// The wizard and list filters own the keyboard while active.
		if m.activeTab == tabEnroll && m.enrollView.Active() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			break
		}
		if m.activeTab == tabCatalog && m.catalogView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "[":
			return m, m.sidebarCmd(!m.state.SidebarCollapsed)
		case "r":
			return m, m.refreshCmd()
		case "e":
			if m.activeTab == tabCatalog {
				if c, ok := m.catalogView.SelectedCourse(); ok {
					return m, m.openEnrollment(c.ID)
				}
			}
		case "f":
			if m.activeTab == tabCatalog {
				if c, ok := m.catalogView.SelectedCourse(); ok {
					return m, m.favoriteCmd(c.ID)
				}
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabDashboard:
		m.dashView, tabCmd = m.dashView.Update(msg)
	case tabCatalog:
		m.catalogView, tabCmd = m.catalogView.Update(msg)
	case tabEnroll:
		m.enrollView, tabCmd = m.enrollView.Update(msg)
	case tabResume:
		m.resumeView, tabCmd = m.resumeView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
		if !m.state.SidebarCollapsed {
			content = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(contentH), content)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.View()
	case tabCatalog:
		return m.catalogView.View()
	case tabEnroll:
		return m.enrollView.View()
	case tabResume:
		return m.resumeView.View()
	}
	return ""
}

const sidebarWidth = 26

func (m Model) renderSidebar(height int) string {
	var sb strings.Builder
	name := m.state.UserName
	if !m.state.Authenticated {
		name = "guest"
	}
	sb.WriteString(theme.Title.Render(name) + "\n\n")
	fmt.Fprintf(&sb, "%s %dm\n", theme.Muted.Render("studied"), m.state.TotalStudyTime)
	fmt.Fprintf(&sb, "%s %dd\n\n", theme.Muted.Render("streak "), m.state.StudyStreak)
	sb.WriteString(theme.Muted.Render("favourites") + "\n")
	if len(m.state.FavoriteCourses) == 0 {
		sb.WriteString(theme.Muted.Render("  none") + "\n")
	}
	for _, id := range m.state.FavoriteCourses {
		sb.WriteString(theme.Star.Render("  ★ ") + id + "\n")
	}
	return lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(height).
		Background(theme.Mantle).
		Padding(0, 1).
		Render(sb.String())
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "learnify  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.state.Authenticated {
		left = theme.Hot.Render("● "+m.state.UserName) + "  " + left
	}
	right := theme.Muted.Render(fmt.Sprintf("%s/%s  ?:help  tab:switch  :::palette  q:quit", m.state.Theme, m.state.Language))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	selected := ""
	if c, ok := m.catalogView.SelectedCourse(); ok {
		selected = c.ID
	}
	courseArg := func(i int) string {
		if len(parts) > i {
			return parts[i]
		}
		return selected
	}

	switch parts[0] {
	case "course:all":
		m.activeTab = tabCatalog
		return m, m.catalogView.Reload()

	case "course:search":
		if len(parts) < 2 {
			m.status = "usage: course:search <query>"
			return m, nil
		}
		m.activeTab = tabCatalog
		return m, m.catalogView.SearchCmd(strings.Join(parts[1:], " "))

	case "course:filter":
		fields, err := components.Assignments(parts[1:])
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.activeTab = tabCatalog
		return m, m.catalogView.FilterCmd(fields["category"], fields["level"], fields["price"], fields["duration"])

	case "enroll":
		id := courseArg(1)
		if id == "" {
			m.status = "no course selected"
			return m, nil
		}
		return m, m.openEnrollment(id)

	case "fav":
		id := courseArg(1)
		if id == "" {
			m.status = "no course selected"
			return m, nil
		}
		return m, m.favoriteCmd(id)

	case "progress:set":
		if len(parts) < 2 {
			m.status = "usage: progress:set <percent> [course-id]"
			return m, nil
		}
		pct, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid percent"
			return m, nil
		}
		id := courseArg(2)
		if id == "" {
			m.status = "no course selected"
			return m, nil
		}
		return m, m.progressCmd(id, pct)

	case "study":
		if len(parts) < 2 {
			m.status = "usage: study <minutes>"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid minutes"
			return m, nil
		}
		return m, m.stateCmd("logged study time", func(ctx context.Context) (appstatedto.StateOutput, error) {
			return m.handlers.AppState.LogStudy(ctx, minutes)
		})

	case "theme":
		if len(parts) < 2 {
			m.status = "usage: theme <light|dark|system>"
			return m, nil
		}
		return m, m.stateCmd("theme "+parts[1], func(ctx context.Context) (appstatedto.StateOutput, error) {
			return m.handlers.AppState.SetTheme(ctx, parts[1])
		})

	case "lang":
		if len(parts) < 2 {
			m.status = "usage: lang <pt|en>"
			return m, nil
		}
		return m, m.stateCmd("language "+parts[1], func(ctx context.Context) (appstatedto.StateOutput, error) {
			return m.handlers.AppState.SetLanguage(ctx, parts[1])
		})

	case "sidebar":
		return m, m.sidebarCmd(!m.state.SidebarCollapsed)

	case "login":
		if len(parts) < 3 {
			m.status = "usage: login <email> <password>"
			return m, nil
		}
		return m, m.stateCmd("signed in", func(ctx context.Context) (appstatedto.StateOutput, error) {
			return m.handlers.AppState.Login(ctx, parts[1], parts[2])
		})

	case "logout":
		return m, m.stateCmd("signed out", m.handlers.AppState.Logout)

	case "resume:add":
		if len(parts) < 2 {
			m.status = "usage: resume:add <education|experience|skill>"
			return m, nil
		}
		m.activeTab = tabResume
		return m, m.resumeView.AddCmd(parts[1])

	case "resume:set":
		if len(parts) < 3 {
			m.status = "usage: resume:set <section-id> field=value..."
			return m, nil
		}
		fields, err := components.Assignments(parts[2:])
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.activeTab = tabResume
		return m, m.resumeView.UpdateCmd(parts[1], fields)

	case "resume:delete":
		if len(parts) < 2 {
			m.status = "usage: resume:delete <section-id>"
			return m, nil
		}
		m.activeTab = tabResume
		return m, m.resumeView.DeleteCmd(parts[1])

	case "resume:personal":
		fields, err := components.Assignments(parts[1:])
		if err != nil || len(fields) == 0 {
			m.status = "usage: resume:personal field=value..."
			return m, nil
		}
		m.activeTab = tabResume
		return m, m.resumeView.PersonalCmd(fields)

	case "refresh":
		return m, m.refreshCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	w := m.width
	if !m.state.SidebarCollapsed {
		w -= sidebarWidth
	}
	sz := tea.WindowSizeMsg{Width: w, Height: m.height - 3}
	m.dashView, _ = m.dashView.Update(sz)
	m.catalogView, _ = m.catalogView.Update(sz)
	m.enrollView, _ = m.enrollView.Update(sz)
	m.resumeView, _ = m.resumeView.Update(sz)
}

func (m *Model) openEnrollment(courseID string) tea.Cmd {
	m.activeTab = tabEnroll
	return m.enrollView.Open(courseID)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) refreshCmd() tea.Cmd {
	return tea.Batch(m.dashView.Reload(), m.catalogView.Reload(), m.resumeView.Reload(""), m.loadStateCmd("refreshed"))
}

// loadStateCmd reads the app state together with the stored progress of
// every enrolled course.
func (m Model) loadStateCmd(status string) tea.Cmd {
	h := m.handlers
	ctx := m.ctx
	return func() tea.Msg {
		st, err := h.AppState.Show(ctx)
		if err != nil {
			return stateLoadedMsg{err: err}
		}
		return stateLoadedMsg{state: st, progress: enrolledProgress(ctx, h, st), status: status}
	}
}

func enrolledProgress(ctx context.Context, h Handlers, st appstatedto.StateOutput) map[string]int {
	out := map[string]int{}
	if user, err := h.Catalog.Profile(ctx); err == nil {
		for _, id := range user.EnrolledCourses {
			out[id] = 0
		}
	}
	for id, pct := range st.Progress {
		out[id] = pct
	}
	if entries, err := h.Progress.List(ctx); err == nil {
		for _, e := range entries {
			if _, enrolled := out[e.CourseID]; enrolled {
				out[e.CourseID] = e.Percent
			}
		}
	}
	return out
}

func (m Model) stateCmd(done string, fn func(ctx context.Context) (appstatedto.StateOutput, error)) tea.Cmd {
	h := m.handlers
	ctx := m.ctx
	return func() tea.Msg {
		st, err := fn(ctx)
		if err != nil {
			return statusMsg{text: done, err: err}
		}
		return stateLoadedMsg{state: st, progress: enrolledProgress(ctx, h, st), status: done}
	}
}

func (m Model) sidebarCmd(collapsed bool) tea.Cmd {
	return m.stateCmd("sidebar toggled", func(ctx context.Context) (appstatedto.StateOutput, error) {
		return m.handlers.AppState.SetSidebarCollapsed(ctx, collapsed)
	})
}

func (m Model) favoriteCmd(courseID string) tea.Cmd {
	return m.stateCmd("favourites updated", func(ctx context.Context) (appstatedto.StateOutput, error) {
		out, err := m.handlers.AppState.ToggleFavorite(ctx, courseID)
		return out.State, err
	})
}

func (m Model) progressCmd(courseID string, percent int) tea.Cmd {
	h := m.handlers
	ctx := m.ctx
	return tea.Sequence(func() tea.Msg {
		out, err := h.Progress.Set(ctx, courseID, percent)
		return statusMsg{text: fmt.Sprintf("progress %s = %d%%", courseID, out.Percent), err: err}
	}, tea.Batch(m.dashView.Reload(), m.loadStateCmd("")))
}
