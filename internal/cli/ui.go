package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/badjano/favtree/internal/tree"
)

var (
	colorGreen = lipgloss.Color("35")  // Green - success
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleID          = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess   = "✓"
	iconInfo      = "›"
	iconCollapsed = "+"
	iconExpanded  = "-"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", styleIconSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", styleIconInfo.Render(iconInfo), fmt.Sprintf(format, args...))
}

// writeRows prints rows as an indented tree, two spaces per depth
func writeRows(w io.Writer, rows []tree.Row) {
	for _, row := range rows {
		marker := iconExpanded
		if row.Collapsed {
			marker = iconCollapsed
		}
		fmt.Fprintf(w, "%s%s %s %s\n", strings.Repeat("  ", row.Depth), marker, row.Name, styleID.Render(fmt.Sprintf("#%d", row.ID)))
	}
}

// writeMatches prints search results with the path to each match
func writeMatches(w io.Writer, rows []tree.Row) {
	for _, row := range rows {
		fmt.Fprintf(w, "%s %s\n", row.Element.Path(" / "), styleID.Render(fmt.Sprintf("#%d", row.ID)))
	}
}
