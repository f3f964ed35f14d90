package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPaletteSubmitAndHints(t *testing.T) {
	t.Parallel()
	p := NewPalette([]string{"start <profile-id>", "stop <method>", "timeout"})
	if p.Visible() {
		t.Fatal("palette must start closed")
	}
	p.Open()
	for _, r := range "st" {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if got := p.Matching(); len(got) != 2 {
		t.Fatalf("expected two matching hints, got %v", got)
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() || cmd == nil {
		t.Fatal("enter must close the palette and emit a command")
	}
	msg, ok := cmd().(PaletteSubmitMsg)
	if !ok || msg.Input != "st" {
		t.Fatalf("unexpected submit message: %#v", msg)
	}
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()
	p := NewPalette(nil)
	p.Open()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatal("esc must close the palette")
	}
	if _, ok := cmd().(PaletteCancelMsg); !ok {
		t.Fatal("expected PaletteCancelMsg")
	}
}
