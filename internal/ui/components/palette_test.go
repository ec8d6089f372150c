package components_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"pmhub/internal/ui/components"
)

func TestHintsFilterByPrefix(t *testing.T) {
	t.Parallel()
	if got := components.Hints("todo:"); len(got) != 2 {
		t.Fatalf("expected two todo hints, got %v", got)
	}
	if got := components.Hints(""); len(got) != 5 {
		t.Fatalf("expected hints capped at five, got %v", got)
	}
	if got := components.Hints("zzz"); len(got) != 0 {
		t.Fatalf("expected no hints, got %v", got)
	}
}

func TestPaletteSubmitAndCancel(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("today")})
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() || cmd == nil {
		t.Fatalf("enter should close the palette and emit a command")
	}
	if msg, ok := cmd().(components.PaletteSubmitMsg); !ok || msg.Input != "today" {
		t.Fatalf("unexpected submit message %#v", cmd())
	}

	p.Open()
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatalf("esc should close the palette")
	}
	if _, ok := cmd().(components.PaletteCancelMsg); !ok {
		t.Fatalf("expected cancel message")
	}
}
