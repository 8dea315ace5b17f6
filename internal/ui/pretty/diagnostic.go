package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/fontwidth"
	"github.com/yaklabco/porytext/pkg/lint"
)

// tabWidth is the number of columns a tab occupies in source context.
const tabWidth = 4

// FormatDiagnostic formats a single diagnostic for terminal output.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, showContext bool) string {
	var builder strings.Builder

	// Location: path:line:col
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
	)

	severity := s.FormatSeverity(diag.Severity)
	ruleDisplay := s.RuleID.Render("(" + diag.RuleID + ")")

	// Main line: location  severity  message  (rule-id)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		severity,
		s.Message.Render(diag.Message),
		ruleDisplay,
	))

	if showContext && diag.SourceLine != "" {
		builder.WriteString(s.FormatSourceContext(diag.SourceLine, diag.Spans))
	}

	if excess := diag.Excess(); excess > 0 {
		builder.WriteString("    " + s.Dim.Render(fmt.Sprintf("%dpx over; shorten the text or add a line break", excess)) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext renders the source line with its spans highlighted and,
// when part of it overflows, a marker under the overflowing text.
// Span offsets are bytes into line.
func (s *Styles) FormatSourceContext(line string, spans []fontwidth.Span) string {
	var builder strings.Builder

	// Indent to align with diagnostic output
	const indent = "        "

	var rendered strings.Builder
	pos := 0
	markerStart, markerWidth := -1, 0

	for _, span := range spans {
		start := clamp(span.Start, pos, len(line))
		end := clamp(span.End, start, len(line))

		rendered.WriteString(s.SourceLine.Render(expandTabs(line[pos:start])))

		text := expandTabs(line[start:end])
		if span.Class == fontwidth.Overflows {
			rendered.WriteString(s.Overflows.Render(text))
			if markerStart < 0 {
				markerStart = DisplayWidth(line[:start])
				markerWidth = runewidth.StringWidth(text)
			}
		} else {
			rendered.WriteString(s.Fits.Render(text))
		}
		pos = end
	}
	rendered.WriteString(s.SourceLine.Render(expandTabs(line[pos:])))

	builder.WriteString(indent + rendered.String() + "\n")

	if markerStart >= 0 {
		marker := "^" + strings.Repeat("~", max(markerWidth-1, 0))
		builder.WriteString(indent + strings.Repeat(" ", markerStart) + s.Caret.Render(marker) + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// DisplayWidth returns the number of terminal columns text occupies, with
// tabs expanded.
func DisplayWidth(text string) int {
	return runewidth.StringWidth(expandTabs(text))
}

func expandTabs(text string) string {
	if !strings.Contains(text, "\t") {
		return text
	}
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
}

func clamp(value, lo, hi int) int {
	return min(max(value, lo), hi)
}
