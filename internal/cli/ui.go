package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// =============================================================================
// Palette and styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim    = lipgloss.NewStyle().Foreground(colorDim)
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	styleValue       = lipgloss.NewStyle().Foreground(colorWhite)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
)

// statusIcons prefix the one-line status messages.
var statusIcons = map[string]lipgloss.Style{
	"✓": lipgloss.NewStyle().Foreground(colorGreen),
	"✗": lipgloss.NewStyle().Foreground(colorRed),
	"!": lipgloss.NewStyle().Foreground(colorYellow),
	"›": lipgloss.NewStyle().Foreground(colorGray),
}

// =============================================================================
// Status lines
// =============================================================================

func printStatus(w io.Writer, icon, msg string) {
	fmt.Fprintln(w, statusIcons[icon].Render(icon)+" "+msg)
}

func printSuccess(w io.Writer, format string, args ...any) {
	printStatus(w, "✓", fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	printStatus(w, "✗", fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	printStatus(w, "!", statusIcons["!"].Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	printStatus(w, "›", fmt.Sprintf(format, args...))
}

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, "  "+styleKey.Render(key)+" "+styleValue.Render(value))
}

// printStats prints "n nodes · m edges · cached|fresh".
func printStats(w io.Writer, nodeCount, edgeCount int, cached bool) {
	status := lipgloss.NewStyle().Foreground(colorGray).Render("fresh")
	if cached {
		status = lipgloss.NewStyle().Foreground(colorGreen).Render("cached")
	}
	sep := StyleDim.Render(" · ")
	fmt.Fprintln(w, "  "+strings.Join([]string{
		StyleDim.Render(fmt.Sprintf("%d nodes", nodeCount)),
		StyleDim.Render(fmt.Sprintf("%d edges", edgeCount)),
		status,
	}, sep))
}

// =============================================================================
// Tables
// =============================================================================

// renderTable draws rows under headers with a rounded border. Columns listed
// in numeric are right-aligned.
func renderTable(headers []string, rows [][]string, numeric ...int) string {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleTableHeader.Padding(0, 1)
			case right[col]:
				return styleTableCell.Align(lipgloss.Right)
			}
			return styleTableCell
		}).
		Render()
}

// formatValue renders a value with four decimals.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
