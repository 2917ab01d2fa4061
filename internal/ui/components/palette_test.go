package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSuggestByPrefix(t *testing.T) {
	t.Parallel()

	got := Suggest("resume:")
	if len(got) != 4 {
		t.Fatalf("expected 4 resume commands, got %v", got)
	}
	if got := Suggest("course:search rust"); len(got) != 1 || got[0].Name != "course:search" {
		t.Fatalf("expected exact command once arguments start, got %v", got)
	}
	if got := Suggest("nope"); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %v", got)
	}
	if got := Suggest(""); len(got) != maxSuggestions {
		t.Fatalf("expected %d suggestions for empty input, got %d", maxSuggestions, len(got))
	}
}

func TestPaletteSubmitAndHistory(t *testing.T) {
	t.Parallel()

	p := NewPalette()
	p.Open()
	for _, r := range "study 30" {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatal("palette should close on enter")
	}
	submit, ok := cmd().(PaletteSubmitMsg)
	if !ok || submit.Input != "study 30" {
		t.Fatalf("unexpected submit %#v", cmd())
	}

	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if p.input.Value() != "study 30" {
		t.Fatalf("expected history recall, got %q", p.input.Value())
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if p.input.Value() != "" {
		t.Fatalf("expected empty input past history end, got %q", p.input.Value())
	}
}

func TestPaletteTabCompletes(t *testing.T) {
	t.Parallel()

	p := NewPalette()
	p.Open()
	for _, r := range "log" {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if p.input.Value() != "login " {
		t.Fatalf("expected completion to login, got %q", p.input.Value())
	}
}
