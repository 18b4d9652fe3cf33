// Package styles holds the color palette, the style-string syntax used by
// the style options, and per-extension file icons.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - default dark theme
var (
	// Primary colors
	Primary = lipgloss.Color("#7C3AED") // Purple
	Accent  = lipgloss.Color("#F59E0B") // Amber

	// Status colors
	Error = lipgloss.Color("#EF4444") // Red

	// Text colors
	TextPrimary = lipgloss.Color("#F9FAFB")
	TextMuted   = lipgloss.Color("#6B7280")

	ToastErrorTextColor = lipgloss.Color("#FFFFFF")
)

// Default style strings for the style options.
const (
	DefaultIconStyle      = "lightyellow"
	DefaultDirNameStyle   = "lightblue+b"
	DefaultFileNameStyle  = ""
	DefaultHighlightStyle = "+r"
)

// Status line styles
var (
	StatusInfo = lipgloss.NewStyle().
			Foreground(TextPrimary)

	StatusError = lipgloss.NewStyle().
			Background(Error).
			Foreground(ToastErrorTextColor).
			Bold(true)

	PromptLabel = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)
)

// Symlinks are drawn in italics after the name style is applied.
var SymlinkName = lipgloss.NewStyle().Italic(true)

// Help overlay frame
var HelpFrame = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Primary)
