package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/porytext/pkg/dialogue"
	"github.com/yaklabco/porytext/pkg/textpos"
)

// Table formatting constants.
const (
	overflowSymbol   = "!"
	tablePadding     = 2
	tableColumnCount = 4 // LOC, WIDTH, STATUS, TEXT
	minLocWidth      = 7
	minWidthWidth    = 5
	statusWidth      = 9
	minTextWidth     = 20
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow represents one measured line in the width table.
type TableRow struct {
	Location string
	Text     string
	Width    int
	MaxWidth int
}

// Overflows reports whether the row is wider than its limit.
func (r TableRow) Overflows() bool {
	return r.Width > r.MaxWidth
}

// TableFormatter formats measured lines as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// MeasureRows converts measured dialogue lines into table rows. Locations
// are 1-based line and UTF-16 column pairs.
func MeasureRows(content string, lines []dialogue.Line, maxWidth int) []TableRow {
	idx := textpos.New(content)
	rows := make([]TableRow, 0, len(lines))
	for _, line := range lines {
		pos := idx.Position(line.Start)
		rows = append(rows, TableRow{
			Location: fmt.Sprintf("%d:%d", pos.Line, pos.Column),
			Text:     content[line.Start:line.End],
			Width:    line.Width,
			MaxWidth: maxWidth,
		})
	}
	return rows
}

// FormatTable formats the rows of each file as a table, with a light
// separator between files. Files with no rows are left out.
func (t *TableFormatter) FormatTable(paths []string, groups [][]TableRow) string {
	var nonEmpty [][]TableRow
	var names []string
	for i, group := range groups {
		if len(group) == 0 {
			continue
		}
		nonEmpty = append(nonEmpty, group)
		if i < len(paths) {
			names = append(names, paths[i])
		} else {
			names = append(names, "")
		}
	}
	if len(nonEmpty) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(nonEmpty)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for i, group := range nonEmpty {
		if i > 0 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		if names[i] != "" {
			builder.WriteString(" " + t.styles.FilePath.Render(names[i]))
			builder.WriteString("\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths))
			builder.WriteString("\n")
		}
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	builder.WriteString(t.formatFooter(nonEmpty))
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	loc   int
	width int
	text  int
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(groups [][]TableRow) columnWidths {
	widths := columnWidths{
		loc:   minLocWidth,
		width: minWidthWidth,
		text:  minTextWidth,
	}

	for _, group := range groups {
		for _, row := range group {
			widths.loc = max(widths.loc, len(row.Location))
			widths.width = max(widths.width, len(formatPixels(row.Width)))
			widths.text = max(widths.text, DisplayWidth(row.Text))
		}
	}

	// Constrain to terminal width by shrinking the text column.
	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.text = max(minTextWidth, widths.text-(total-t.termWidth))
	}

	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.loc + widths.width + statusWidth + widths.text + tablePadding*tableColumnCount
}

// formatHeader formats the table header row.
func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %*s  %-*s  %-*s",
		widths.loc, "LOC",
		widths.width, "WIDTH",
		statusWidth, "STATUS",
		widths.text, "TEXT",
	)
	return t.styles.TableHeader.Render(header)
}

// formatSeparator formats a separator line.
func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.calculateTotalWidth(widths)))
}

// formatRow formats a single row, styled by whether it fits.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	status := "fits"
	rowStyle := t.styles.TableFitsRow
	if row.Overflows() {
		status = overflowSymbol + " " + strconv.Itoa(row.Width-row.MaxWidth) + "px"
		rowStyle = t.styles.TableOverRow
	}

	content := fmt.Sprintf(" %-*s  %*s  %-*s  %s",
		widths.loc, row.Location,
		widths.width, formatPixels(row.Width),
		statusWidth, status,
		truncateText(expandTabs(row.Text), widths.text),
	)

	return rowStyle.Render(content)
}

// formatFooter counts rows and overflowing rows across all groups.
func (t *TableFormatter) formatFooter(groups [][]TableRow) string {
	var lines, overflowing, maxWidth int
	for _, group := range groups {
		for _, row := range group {
			lines++
			if row.Overflows() {
				overflowing++
			}
			maxWidth = row.MaxWidth
		}
	}

	parts := []string{count(lines, "line", "lines")}
	if overflowing > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d overflowing", overflowing)))
	} else {
		parts = append(parts, t.styles.Success.Render("all fit"))
	}
	parts = append(parts, t.styles.Dim.Render("max "+formatPixels(maxWidth)))

	legend := ""
	if t.colorEnabled {
		legend = "  " + t.styles.TableLegend.Render("Legend:") + " " +
			t.styles.TableOverRow.Render(overflowSymbol+" = overflowing")
	}

	return " " + strings.Join(parts, " | ") + legend
}

func formatPixels(px int) string {
	return strconv.Itoa(px) + "px"
}

// truncateText truncates text to maxCols display columns, adding "..." if truncated.
func truncateText(text string, maxCols int) string {
	if runewidth.StringWidth(text) <= maxCols {
		return text
	}
	if maxCols <= 3 {
		return runewidth.Truncate(text, maxCols, "")
	}
	return runewidth.Truncate(text, maxCols, "...")
}
