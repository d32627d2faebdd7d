package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// rootListModel is the bubbletea model for interactive root selection,
// used by `tangle --select` when a document defines several roots.
type rootListModel struct {
	roots    []string
	cursor   int
	selected string
	quit     bool
}

func (m rootListModel) Init() tea.Cmd { return nil }

func (m rootListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.roots)-1 {
			m.cursor++
		}
	case "enter":
		m.selected = m.roots[m.cursor]
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		m.quit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m rootListModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Select a root to tangle") + "\n\n")
	for i, root := range m.roots {
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("› "+root) + "\n")
			continue
		}
		b.WriteString(listNormalStyle.Render("  "+root) + "\n")
	}
	b.WriteString("\n" + listDimStyle.Render("↑/↓ move · enter select · q cancel") + "\n")
	return b.String()
}

// pickRoot runs the interactive selection list and returns the chosen
// root target, or "" if the user cancelled.
func pickRoot(roots []string) (string, error) {
	if len(roots) == 1 {
		return roots[0], nil
	}
	final, err := tea.NewProgram(rootListModel{roots: roots}).Run()
	if err != nil {
		return "", fmt.Errorf("interactive selection: %w", err)
	}
	m := final.(rootListModel)
	if m.quit {
		return "", nil
	}
	return m.selected, nil
}
