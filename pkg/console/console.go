// Package console formats operator-facing messages and tables for stderr.
//
// Messages carry an icon prefix and are colored with lipgloss when stderr is
// a terminal; when it is not (CI logs, tests) the plain text is returned.
package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/githubnext/runner-guard/pkg/styles"
	"github.com/githubnext/runner-guard/pkg/tty"
)

// isTTY is checked at call time through this var so tests can pin it.
var isTTY = tty.IsStderrTerminal

func applyStyle(style lipgloss.Style, text string) string {
	if !isTTY() {
		return text
	}
	return style.Render(text)
}

// FormatInfoMessage formats an informational line.
func FormatInfoMessage(message string) string {
	return applyStyle(styles.Info, "ℹ ") + message
}

// FormatSuccessMessage formats a success line.
func FormatSuccessMessage(message string) string {
	return applyStyle(styles.Success, "✓ ") + message
}

// FormatWarningMessage formats a warning line.
func FormatWarningMessage(message string) string {
	return applyStyle(styles.Warning, "⚠ ") + message
}

// FormatErrorMessage formats an error line.
func FormatErrorMessage(message string) string {
	return applyStyle(styles.Error, "✗ ") + message
}

// FormatVerboseMessage formats a line shown only with --verbose.
func FormatVerboseMessage(message string) string {
	return applyStyle(styles.Verbose, "🔍 "+message)
}

// FormatListItem formats one bullet of a list.
func FormatListItem(item string) string {
	return "  • " + item
}

// FormatList formats items as a bulleted block, one per line.
func FormatList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = FormatListItem(item)
	}
	return strings.Join(lines, "\n")
}
