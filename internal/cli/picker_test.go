package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{}
}

func TestRootListModelNavigation(t *testing.T) {
	m := rootListModel{roots: []string{"a.c", "b.c", "c.c"}}

	next, _ := m.Update(keyMsg("down"))
	m = next.(rootListModel)
	next, _ = m.Update(keyMsg("down"))
	m = next.(rootListModel)
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}

	// Cursor clamps at the last entry.
	next, _ = m.Update(keyMsg("down"))
	m = next.(rootListModel)
	if m.cursor != 2 {
		t.Fatalf("cursor moved past the end: %d", m.cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(rootListModel)
	next, _ = m.Update(keyMsg("enter"))
	m = next.(rootListModel)
	if m.selected != "b.c" {
		t.Errorf("selected = %q, want %q", m.selected, "b.c")
	}
}

func TestRootListModelCancel(t *testing.T) {
	m := rootListModel{roots: []string{"a.c", "b.c"}}
	next, _ := m.Update(keyMsg("esc"))
	m = next.(rootListModel)
	if !m.quit {
		t.Error("esc did not cancel the selection")
	}
	if m.selected != "" {
		t.Errorf("cancelled selection = %q, want empty", m.selected)
	}
}

func TestPickRootSingleRootSkipsUI(t *testing.T) {
	got, err := pickRoot([]string{"only.c"})
	if err != nil {
		t.Fatalf("pickRoot() unexpected error: %v", err)
	}
	if got != "only.c" {
		t.Errorf("pickRoot() = %q, want %q", got, "only.c")
	}
}
