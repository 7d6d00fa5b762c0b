package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"tabstack/internal/stack"
)

func newHelpModel() help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted))
	h.Styles.ShortSeparator = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted))
	return h
}

// RenderKeyBar renders the single-key bindings active in mode as one line.
func RenderKeyBar(keyHandler *KeyHandler, mode stack.Mode, width int) string {
	if keyHandler == nil {
		return ""
	}
	h := newHelpModel()
	h.Width = width
	return h.ShortHelpView(NewKeyMap(keyHandler.Registry, keyHandler, mode).ShortHelp())
}

// RenderKeybindHelp produces the transient help box shown after SPC.
// When the handler has a buffer (e.g. "SPC o"), it shows next-level hints.
func RenderKeybindHelp(keyHandler *KeyHandler, mode stack.Mode) string {
	if keyHandler == nil || !keyHandler.LeaderWaiting {
		return ""
	}
	bindings := NewKeyMap(keyHandler.Registry, keyHandler, mode).ShortHelp()
	if len(bindings) == 0 {
		return ""
	}
	helpContent := newHelpModel().ShortHelpView(bindings)

	prefix := keyHandler.CurrentSeq()
	if prefix == "" {
		prefix = keyHandler.LeaderSeq
	}
	content := Styles.Muted.Render(prefix) + " " + helpContent
	return Styles.LeaderBox.Render(content)
}
