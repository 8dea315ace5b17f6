package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/runner"
)

const (
	summaryDividerWidth = 40
	summaryLabelWidth   = 21
)

// summaryRow is one "label: value" line of the summary block. Optional rows
// are dropped when their value is zero.
type summaryRow struct {
	label    string
	value    int
	style    lipgloss.Style
	optional bool
}

// severityCount pairs a severity with its style and nouns.
type severityCount struct {
	count     int
	style     lipgloss.Style
	one, many string
	label     string
}

func (s *Styles) severities(stats runner.Stats) []severityCount {
	return []severityCount{
		{stats.Count(config.SeverityError), s.Error, "error", "errors", "Errors:"},
		{stats.Count(config.SeverityWarning), s.Warning, "warning", "warnings", "Warnings:"},
		{stats.Count(config.SeverityInfo), s.Info, "info", "info", "Info:"},
	}
}

// FormatSummaryOneLine condenses stats to one line, for example
// "3 issues (3 warnings) in 2 files, 4 calls converted in 1 file".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var line string

	if stats.DiagnosticsTotal == 0 {
		line = s.Success.Render("No issues found") + s.Dim.Render(fmt.Sprintf(
			" (%s checked, %d lines measured)",
			count(stats.FilesProcessed, "file", "files"), stats.LinesMeasured))
	} else {
		var breakdown []string
		for _, sev := range s.severities(stats) {
			if sev.count > 0 {
				breakdown = append(breakdown, sev.style.Render(count(sev.count, sev.one, sev.many)))
			}
		}

		line = count(stats.DiagnosticsTotal, "issue", "issues")
		if len(breakdown) > 0 {
			line += " (" + strings.Join(breakdown, ", ") + ")"
		}
		line += " in " + count(stats.FilesWithIssues, "file", "files")
	}

	if stats.Conversions > 0 {
		line += ", " + s.Success.Render(fmt.Sprintf("%s converted in %s",
			count(stats.Conversions, "call", "calls"),
			count(stats.FilesModified, "file", "files")))
	}

	return line + "\n"
}

// FormatSummary renders stats as a titled block ending in an overall status.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	b.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	groups := [][]summaryRow{
		{
			{"Files checked:", stats.FilesProcessed, s.SummaryValue, false},
			{"Files with issues:", stats.FilesWithIssues, s.Failure, true},
			{"Files modified:", stats.FilesModified, s.Success, true},
			{"Files skipped:", stats.FilesSkipped, s.Warning, true},
			{"Files with errors:", stats.FilesErrored, s.Failure, true},
		},
		{
			{"Lines measured:", stats.LinesMeasured, s.SummaryValue, false},
			{"Calls converted:", stats.Conversions, s.Success, true},
		},
		{
			{"Total issues:", stats.DiagnosticsTotal, s.SummaryValue, false},
		},
	}
	for _, sev := range s.severities(stats) {
		groups[2] = append(groups[2], summaryRow{"  " + sev.label, sev.count, sev.style, true})
	}

	for _, group := range groups {
		for _, row := range group {
			if row.optional && row.value == 0 {
				continue
			}
			fmt.Fprintf(&b, "%-*s%s\n", summaryLabelWidth, "  "+row.label, row.style.Render(strconv.Itoa(row.value)))
		}
		b.WriteString("\n")
	}

	switch {
	case stats.Count(config.SeverityError) > 0:
		b.WriteString(s.Failure.Render("Check failed with errors"))
	case stats.Count(config.SeverityWarning) > 0:
		b.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		b.WriteString(s.Success.Render("Check passed"))
	}
	b.WriteString("\n")

	return b.String()
}

// count formats n with the matching noun.
func count(n int, one, many string) string {
	if n == 1 {
		return strconv.Itoa(n) + " " + one
	}
	return strconv.Itoa(n) + " " + many
}
