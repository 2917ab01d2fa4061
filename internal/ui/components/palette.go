package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"learnify/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

// Command describes one palette entry. Name is what the user types first,
// Usage lists its arguments.
type Command struct {
	Name  string
	Usage string
	Help  string
}

// Commands must stay in sync with the switch in app/model.go executePalette.
var Commands = []Command{
	{"course:all", "", "show the whole catalogue"},
	{"course:search", "<query>", "search titles, descriptions and instructors"},
	{"course:filter", "category=<c> level=<l> price=<free|paid> duration=<short|medium|long>", "narrow the catalogue"},
	{"enroll", "[course-id]", "open the enrollment wizard"},
	{"fav", "[course-id]", "toggle a favourite"},
	{"progress:set", "<percent> [course-id]", "record course progress"},
	{"study", "<minutes>", "add study time"},
	{"theme", "<light|dark|system>", "switch colour scheme"},
	{"lang", "<pt|en>", "switch language"},
	{"sidebar", "", "collapse or expand the sidebar"},
	{"login", "<email> <password>", "sign in"},
	{"logout", "", "sign out"},
	{"resume:add", "<education|experience|skill>", "append an empty section"},
	{"resume:set", "<section-id> field=value...", "edit a section"},
	{"resume:delete", "<section-id>", "remove a section"},
	{"resume:personal", "field=value...", "edit name, email, phone, location, summary"},
	{"refresh", "", "reload every view"},
}

const (
	maxSuggestions = 5
	maxHistory     = 20
)

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Palette is a command-palette overlay backed by bubbles/textinput. It
// remembers submitted commands; up and down walk that history and tab
// completes the command name.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	history []string
	cursor  int
}

// NewPalette creates an inactive Palette ready to be opened.
func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

// Visible reports whether the palette is currently shown.
func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.cursor = len(p.history)
	p.input.SetValue("")
	return p.input.Focus()
}

// SetWidth sets the render width for the overlay.
func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.remember(val)
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "up":
			p.recall(-1)
			return p, nil
		case "down":
			p.recall(1)
			return p, nil
		case "tab":
			if matches := Suggest(p.input.Value()); len(matches) > 0 && !strings.Contains(p.input.Value(), " ") {
				p.input.SetValue(matches[0].Name + " ")
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if matches := Suggest(p.input.Value()); len(matches) > 0 {
		sb.WriteString("\n")
		for _, c := range matches {
			line := c.Name
			if c.Usage != "" {
				line += " " + c.Usage
			}
			sb.WriteString(hintStyle.Render("  "+line) + "\n")
			sb.WriteString(theme.Muted.Render("      "+c.Help) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}

// Suggest returns up to five commands whose name starts with the first word
// of input. Once arguments are being typed only the exact command is kept.
func Suggest(input string) []Command {
	input = strings.ToLower(strings.TrimLeft(input, " "))
	name, _, typingArgs := strings.Cut(input, " ")
	var out []Command
	for _, c := range Commands {
		if typingArgs && c.Name != name {
			continue
		}
		if strings.HasPrefix(c.Name, name) {
			out = append(out, c)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p *Palette) remember(val string) {
	if val == "" || (len(p.history) > 0 && p.history[len(p.history)-1] == val) {
		return
	}
	p.history = append(p.history, val)
	if len(p.history) > maxHistory {
		p.history = p.history[len(p.history)-maxHistory:]
	}
}

func (p *Palette) recall(step int) {
	if len(p.history) == 0 {
		return
	}
	p.cursor = min(max(p.cursor+step, 0), len(p.history))
	if p.cursor == len(p.history) {
		p.input.SetValue("")
		return
	}
	p.input.SetValue(p.history[p.cursor])
	p.input.CursorEnd()
}
