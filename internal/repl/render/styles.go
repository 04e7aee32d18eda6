// Package render provides console output rendering for the chat REPL.
package render

import (
	"github.com/charmbracelet/lipgloss"
)

// ANSI color codes
const (
	ColorCyan   = lipgloss.Color("12") // Agent reply header
	ColorYellow = lipgloss.Color("11") // Spinner, banner labels
	ColorGray   = lipgloss.Color("8")  // Dim/secondary (ids, notices)
)

// Prefixes used when labelling agent replies.
const (
	AgentLabel     = "Agent"
	LabelSeparator = "::"
)

// palette holds the styles bound to one lipgloss renderer, so that color
// output follows the capabilities of the writer being rendered to.
type palette struct {
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	dim     lipgloss.Style
	spinner lipgloss.Style
}

func newPalette(r *lipgloss.Renderer) palette {
	return palette{
		header:  r.NewStyle().Foreground(ColorCyan).Bold(true),
		label:   r.NewStyle().Foreground(ColorYellow),
		value:   r.NewStyle(),
		dim:     r.NewStyle().Foreground(ColorGray),
		spinner: r.NewStyle().Foreground(ColorYellow),
	}
}
