package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tabstack/internal/telemetry"
	"tabstack/internal/ui/textutil"
)

// TransitionsUpdateMsg carries a fresh snapshot of recorded transitions.
type TransitionsUpdateMsg struct {
	Transitions []telemetry.Transition
}

// TraceView lists recent stack transitions as a tree, newest first.
type TraceView struct {
	transitions []telemetry.Transition
	viewport    viewport.Model
	width       int
	height      int
	visible     bool
}

// Ensure TraceView implements View
var _ View = (*TraceView)(nil)

// NewTraceView creates a hidden trace view.
func NewTraceView() *TraceView {
	vp := viewport.New(34, 20)
	vp.Style = Styles.Panel
	return &TraceView{viewport: vp, width: 34, height: 20}
}

// Init implements View
func (v *TraceView) Init() tea.Cmd {
	return v.viewport.Init()
}

// Update implements View
func (v *TraceView) Update(msg tea.Msg) (View, tea.Cmd) {
	if !v.visible {
		return v, nil
	}
	switch msg := msg.(type) {
	case TransitionsUpdateMsg:
		v.transitions = msg.Transitions
		v.refreshContent()
		return v, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "pgdown":
			v.viewport.PageDown()
			return v, nil
		case "pgup":
			v.viewport.PageUp()
			return v, nil
		}
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View implements View
func (v *TraceView) View() string {
	if !v.visible {
		return ""
	}
	return v.viewport.View()
}

// SetSize sets the outer size of the trace view.
func (v *TraceView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = height
	v.refreshContent()
}

// SetVisible sets whether the trace view is visible
func (v *TraceView) SetVisible(visible bool) {
	v.visible = visible
	if visible {
		v.refreshContent()
	}
}

// IsVisible returns whether the trace view is visible
func (v *TraceView) IsVisible() bool {
	return v.visible
}

// Width is the outer width when visible, otherwise zero.
func (v *TraceView) Width() int {
	if !v.visible {
		return 0
	}
	return v.width
}

func (v *TraceView) refreshContent() {
	lines := []string{Styles.Title.Render("Transitions"), ""}
	if len(v.transitions) == 0 {
		lines = append(lines, Styles.Empty.Render("  (none yet)"))
		v.viewport.SetContent(strings.Join(lines, "\n"))
		return
	}
	for i, tr := range v.transitions {
		lines = append(lines, v.renderTransition(tr, i == len(v.transitions)-1)...)
	}
	v.viewport.SetContent(strings.Join(lines, "\n"))
}

// renderTransition renders one transition and its attributes as a subtree.
func (v *TraceView) renderTransition(tr telemetry.Transition, isLast bool) []string {
	connector, childPrefix := "├─", "│  "
	if isLast {
		connector, childPrefix = "└─", "   "
	}

	statusIcon, statusColor := "✓", "2"
	if tr.Superseded {
		statusIcon, statusColor = "↷", ColorMuted
	}
	line := connector + " " + tr.Kind + " " + Styles.Muted.Render(formatDuration(tr.Duration)) +
		" " + lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor)).Render(statusIcon)
	lines := []string{line}

	keys := make([]string, 0, len(tr.Attributes))
	for k := range tr.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		c := "├─"
		if i == len(keys)-1 {
			c = "└─"
		}
		text := fmt.Sprintf("%s%s %s=%s", childPrefix, c, k, tr.Attributes[k])
		lines = append(lines, Styles.Muted.Render(textutil.Truncate(text, v.width-4)))
	}
	return lines
}

// formatDuration formats a duration in milliseconds, or seconds past one.
func formatDuration(d time.Duration) string {
	if d >= time.Second {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}
