package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/githubnext/runner-guard/pkg/logger"
	"github.com/githubnext/runner-guard/pkg/styles"
)

var tableLog = logger.New("console:table")

// TableConfig describes a table to render.
type TableConfig struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTable renders config as a bordered table. It returns "" when there
// are no headers.
func RenderTable(config TableConfig) string {
	if len(config.Headers) == 0 {
		return ""
	}
	tableLog.Printf("Rendering table: title=%q, columns=%d, rows=%d", config.Title, len(config.Headers), len(config.Rows))

	t := table.New().
		Headers(config.Headers...).
		Rows(config.Rows...).
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.TableBorder).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeader
			}
			return styles.TableCell
		})

	var output strings.Builder
	if config.Title != "" {
		output.WriteString(applyStyle(styles.TableTitle, config.Title))
		output.WriteString("\n")
	}
	output.WriteString(t.Render())
	output.WriteString("\n")
	return output.String()
}
