// Package styles holds the adaptive color palette and lipgloss styles used by
// console output. Colors adapt to light and dark terminal backgrounds.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	ColorError = lipgloss.AdaptiveColor{Light: "#D73737", Dark: "#FF5555"}

	ColorWarning = lipgloss.AdaptiveColor{Light: "#E67E22", Dark: "#FFB86C"}

	ColorSuccess = lipgloss.AdaptiveColor{Light: "#27AE60", Dark: "#50FA7B"}

	ColorInfo = lipgloss.AdaptiveColor{Light: "#2980B9", Dark: "#8BE9FD"}

	ColorComment = lipgloss.AdaptiveColor{Light: "#6C7A89", Dark: "#6272A4"}

	ColorBorder = lipgloss.AdaptiveColor{Light: "#BDC3C7", Dark: "#44475A"}
)

var (
	Error = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	Warning = lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)

	Success = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)

	Info = lipgloss.NewStyle().Foreground(ColorInfo)

	Verbose = lipgloss.NewStyle().Italic(true).Foreground(ColorComment)

	TableHeader = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo).Padding(0, 1)

	TableCell = lipgloss.NewStyle().Padding(0, 1)

	TableBorder = lipgloss.NewStyle().Foreground(ColorBorder)

	TableTitle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
)
