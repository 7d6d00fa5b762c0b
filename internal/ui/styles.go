package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles, stack chrome
	ColorHighlight = "205" // Magenta - selected card, key hints
	ColorDanger    = "196" // Red - dying cards
	ColorMuted     = "241" // Gray - hints, faded cards
	ColorText      = "252" // Light gray - card text
	ColorDim       = "238" // Dark gray - background grid
)

// Styles contains shared style definitions used across views.
var Styles = struct {
	Title     lipgloss.Style // Bold accent - header
	Status    lipgloss.Style // Accent - mode and policy
	Muted     lipgloss.Style // Dimmed text
	Empty     lipgloss.Style // Empty state text
	Panel     lipgloss.Style // Side panel box
	LeaderBox lipgloss.Style // Leader help box

	CardNormal   lipgloss.Style // Card border and label
	CardSelected lipgloss.Style // Selected card
	CardFaded    lipgloss.Style // Card with alpha below one half
	CardDying    lipgloss.Style // Card being discarded
	Background   lipgloss.Style // Empty canvas cells
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Panel: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	LeaderBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1).
		MarginTop(1),

	CardNormal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	CardSelected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	CardFaded: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	CardDying: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Background: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim)),
}
