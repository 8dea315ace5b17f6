// Package lint checks dialogue widths and drives the safe conversion of
// Poryscript files.
package lint

import (
	"fmt"

	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/fontwidth"
)

// RuleWidth identifies diagnostics for text that overflows the message box.
const RuleWidth = "width"

// Diagnostic represents a single issue found in a file.
type Diagnostic struct {
	// RuleID is the identifier of the check that produced this diagnostic.
	RuleID string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// StartLine is the 1-based line number where the issue starts.
	StartLine int

	// StartColumn is the 1-based UTF-16 column where the issue starts.
	StartColumn int

	// EndLine is the 1-based line number where the issue ends.
	EndLine int

	// EndColumn is the 1-based UTF-16 column where the issue ends.
	EndColumn int

	// StartOffset and EndOffset are UTF-16 code-unit offsets into the file.
	StartOffset int
	EndOffset   int

	// Width is the measured pixel width of the text.
	Width int

	// MaxWidth is the limit the text was checked against.
	MaxWidth int

	// SourceLine is the physical line holding the text, without its line break.
	SourceLine string

	// Spans classify the text; offsets are bytes into SourceLine. Text that
	// continues past a physical line break extends beyond SourceLine.
	Spans []fontwidth.Span

	// FileSpans are Spans with UTF-16 code-unit offsets from the start of
	// the file.
	FileSpans []fontwidth.Span
}

// Excess returns how many pixels the text is over the limit.
func (d *Diagnostic) Excess() int {
	return max(d.Width-d.MaxWidth, 0)
}

// OverflowColumn returns the 1-based byte column in SourceLine where the
// text starts to overflow, or 0 when nothing overflows.
func (d *Diagnostic) OverflowColumn() int {
	for _, span := range d.Spans {
		if span.Class == fontwidth.Overflows {
			return span.Start + 1
		}
	}
	return 0
}

// WidthMessage formats the message reported for an overflowing line.
func WidthMessage(width, maxWidth int) string {
	return fmt.Sprintf("Line width %dpx exceeds maximum %dpx", width, maxWidth)
}
