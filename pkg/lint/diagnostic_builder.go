package lint

import (
	"github.com/yaklabco/porytext/pkg/config"
	"github.com/yaklabco/porytext/pkg/dialogue"
	"github.com/yaklabco/porytext/pkg/fontwidth"
	"github.com/yaklabco/porytext/pkg/textpos"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic for the given rule.
func NewDiagnostic(ruleID, filePath, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:   ruleID,
			FilePath: filePath,
			Message:  message,
		},
	}
}

// NewWidthDiagnostic builds the diagnostic for a measured line that overflows maxWidth.
func NewWidthDiagnostic(filePath string, idx *textpos.Index, line dialogue.Line, maxWidth int) Diagnostic {
	return NewDiagnostic(RuleWidth, filePath, WidthMessage(line.Width, maxWidth)).
		At(idx, line.Start, line.End).
		WithWidth(line.Width, maxWidth).
		WithSpans(idx, line.Spans).
		Build()
}

// At sets the position from byte offsets into the indexed document.
func (b *DiagnosticBuilder) At(idx *textpos.Index, start, end int) *DiagnosticBuilder {
	startPos := idx.Position(start)
	endPos := idx.Position(end)

	b.diag.StartLine = startPos.Line
	b.diag.StartColumn = startPos.Column
	b.diag.EndLine = endPos.Line
	b.diag.EndColumn = endPos.Column
	b.diag.StartOffset = idx.UTF16Offset(start)
	b.diag.EndOffset = idx.UTF16Offset(end)
	b.diag.SourceLine = idx.Line(startPos.Line)
	return b
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithWidth records the measured width and the limit.
func (b *DiagnosticBuilder) WithWidth(width, maxWidth int) *DiagnosticBuilder {
	b.diag.Width = width
	b.diag.MaxWidth = maxWidth
	return b
}

// WithSpans takes spans in document byte offsets. It stores them relative to
// the diagnostic's source line and, in FileSpans, as UTF-16 offsets into the
// whole document. Call At first.
func (b *DiagnosticBuilder) WithSpans(idx *textpos.Index, spans []fontwidth.Span) *DiagnosticBuilder {
	lineStart := idx.LineStart(b.diag.StartLine)
	b.diag.Spans = fontwidth.Offset(spans, -lineStart)

	if len(spans) == 0 {
		b.diag.FileSpans = nil
		return b
	}
	b.diag.FileSpans = make([]fontwidth.Span, len(spans))
	for i, span := range spans {
		span.Start = idx.UTF16Offset(span.Start)
		span.End = idx.UTF16Offset(span.End)
		b.diag.FileSpans[i] = span
	}
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
