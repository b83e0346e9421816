package repl

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/dice/log"
)

func typeText(t *testing.T, m model, s string) model {
	t.Helper()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})

	mm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}

	return mm
}

func press(t *testing.T, m model, k tea.KeyType) (model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(tea.KeyMsg{Type: k})

	mm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}

	return mm, cmd
}

func TestModel_EnterRecordsHistory(t *testing.T) {
	m := newModel(context.Background(), NewHistory(""), log.Logger{})

	m = typeText(t, m, "2d6")
	if !strings.Contains(m.View(), "needs d6 d6") {
		t.Errorf("hint not updated:\n%s", m.View())
	}

	m, cmd := press(t, m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected output command")
	}

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	if got := m.history.Entries(); len(got) != 1 || got[0] != "2d6" {
		t.Errorf("history = %v", got)
	}

	m, _ = press(t, m, tea.KeyUp)
	if m.input.Value() != "2d6" {
		t.Errorf("history recall = %q, want 2d6", m.input.Value())
	}

	m, _ = press(t, m, tea.KeyDown)
	if m.input.Value() != "" {
		t.Errorf("history exit = %q, want empty", m.input.Value())
	}
}

func TestModel_TabCompletesCommand(t *testing.T) {
	m := newModel(context.Background(), NewHistory(""), log.Logger{})

	m = typeText(t, m, ":qu")
	m, _ = press(t, m, tea.KeyTab)

	if m.input.Value() != ":quit" {
		t.Errorf("completion = %q, want :quit", m.input.Value())
	}

	m, _ = press(t, m, tea.KeyEnter)
	if !m.quitting {
		t.Error(":quit did not quit")
	}
}

func TestModel_CtrlC(t *testing.T) {
	m := newModel(context.Background(), NewHistory(""), log.Logger{})

	m = typeText(t, m, "d20")
	m, _ = press(t, m, tea.KeyCtrlC)

	if m.quitting || m.input.Value() != "" {
		t.Fatalf("first Ctrl+C should clear input, got quitting=%v input=%q",
			m.quitting, m.input.Value())
	}

	m, _ = press(t, m, tea.KeyCtrlC)
	if !m.quitting {
		t.Error("Ctrl+C on empty line should quit")
	}

	if m.View() != "" {
		t.Errorf("View() after quit = %q", m.View())
	}
}
