// Package ui renders pathmark output: plain command results through Printer
// and the interactive bookmark picker through Picker.
package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors
var (
	Accent      = lipgloss.Color("#8BC34A") // names
	Muted       = lipgloss.Color("#6B7280") // timestamps, hints
	Destructive = lipgloss.Color("#e53935") // errors
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
)

// Styles holds the styles used by Printer, bound to one renderer so color
// is only emitted when that renderer's output is a terminal.
type Styles struct {
	Name    lipgloss.Style
	Path    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles builds Styles for r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Name:    r.NewStyle().Bold(true).Foreground(Accent),
		Path:    r.NewStyle(),
		Muted:   r.NewStyle().Foreground(Muted),
		Success: r.NewStyle().Foreground(Success),
		Warning: r.NewStyle().Foreground(Warning),
		Error:   r.NewStyle().Bold(true).Foreground(Destructive),
	}
}
