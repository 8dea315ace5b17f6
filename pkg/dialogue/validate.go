package dialogue

import (
	"strings"

	"github.com/yaklabco/porytext/pkg/fontwidth"
)

// DefaultMaxWidth is the pixel width of the standard message box.
const DefaultMaxWidth = 208

// Line is one rendered line of a string literal with its width breakdown.
// Offsets are absolute byte offsets into the validated document.
type Line struct {
	Start int
	End   int
	Width int
	Spans []fontwidth.Span
}

// Overflows reports whether any part of the line exceeds the limit.
func (l Line) Overflows() bool {
	return fontwidth.Overflowing(l.Spans)
}

// Validator measures every line of the string literals passed to a set of
// calls against a maximum pixel width.
type Validator struct {
	table    *fontwidth.Table
	maxWidth int
	locator  *Locator
}

// NewValidator returns a Validator. A nil table uses the default widths,
// a non-positive maxWidth uses DefaultMaxWidth, and no names uses
// DefaultValidateNames.
func NewValidator(table *fontwidth.Table, maxWidth int, names ...string) *Validator {
	if table == nil {
		table = fontwidth.Default()
	}
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if len(names) == 0 {
		names = DefaultValidateNames()
	}

	return &Validator{
		table:    table,
		maxWidth: maxWidth,
		locator:  NewLocator(names...),
	}
}

// MaxWidth returns the limit lines are classified against.
func (v *Validator) MaxWidth() int {
	return v.maxWidth
}

// Validate returns the measured lines of doc in document order.
//
// A literal holding line breaks and no escape codes is raw text: each
// trimmed, non-blank physical line is measured on its own. Any other
// non-empty literal is formatted text and is measured per escape-separated
// segment.
func (v *Validator) Validate(doc string) []Line {
	var lines []Line

	for _, site := range v.locator.Locate(doc) {
		for _, seg := range site.Segments {
			switch {
			case strings.Contains(seg.Text, "\n") && !HasEscapeCodes(seg.Text):
				lines = v.appendRaw(lines, seg)
			case seg.Text != "":
				lines = v.appendFormatted(lines, seg)
			}
		}
	}

	return lines
}

func (v *Validator) appendRaw(lines []Line, seg Segment) []Line {
	offset := seg.Start
	for _, physical := range strings.SplitAfter(seg.Text, "\n") {
		content := strings.TrimRight(physical, "\r\n")
		trimmed := strings.TrimSpace(content)
		if trimmed != "" {
			start := offset + strings.Index(content, trimmed)
			lines = append(lines, v.measure(trimmed, start))
		}
		offset += len(physical)
	}
	return lines
}

func (v *Validator) appendFormatted(lines []Line, seg Segment) []Line {
	offset := seg.Start
	for _, part := range escapePattern.Split(seg.Text, -1) {
		if part != "" {
			lines = append(lines, v.measure(part, offset))
		}
		offset += len(part) + len(EscapeNewline)
	}
	return lines
}

func (v *Validator) measure(text string, start int) Line {
	spans := v.table.Classify(text, v.maxWidth)
	return Line{
		Start: start,
		End:   start + len(text),
		Width: v.table.Measure(text),
		Spans: fontwidth.Offset(spans, start),
	}
}
