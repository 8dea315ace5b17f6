package dialogue

import (
	"fmt"
	"strings"

	"github.com/yaklabco/porytext/pkg/fix"
)

// Mode selects the conversion direction.
type Mode int

const (
	// Format converts raw calls to formatted calls.
	Format Mode = iota

	// Unformat converts formatted calls back to raw calls.
	Unformat
)

// String returns the command name of the mode.
func (m Mode) String() string {
	switch m {
	case Format:
		return "format"
	case Unformat:
		return "unformat"
	default:
		return "unknown"
	}
}

// Range is a byte range [Start, End) of a document.
type Range struct {
	Start int
	End   int
}

// WholeDocument returns the range covering all of doc.
func WholeDocument(doc string) Range {
	return Range{Start: 0, End: len(doc)}
}

// Contains reports whether [start, end) lies inside r.
func (r Range) Contains(start, end int) bool {
	return start >= r.Start && end <= r.End
}

// Converter rewrites the calls of a document in one direction. The zero
// value formats fmsgbox calls into msgbox calls.
type Converter struct {
	Mode Mode

	// RawName is the marker function for raw text. Defaults to DefaultRawName.
	RawName string

	// FormattedName is the engine function. Defaults to DefaultFormattedName.
	FormattedName string
}

// SourceName returns the function the converter looks for.
func (c *Converter) SourceName() string {
	if c.Mode == Unformat {
		return c.formattedName()
	}
	return c.rawName()
}

// TargetName returns the function the converter writes.
func (c *Converter) TargetName() string {
	if c.Mode == Unformat {
		return c.rawName()
	}
	return c.formattedName()
}

// Edits scans doc and returns one replacement per converted call whose
// source span lies within scope. The document is not modified; apply the
// result with fix.Apply. Calls that do not need converting produce no edit.
func (c *Converter) Edits(doc string, scope Range) []fix.TextEdit {
	eol := DetectEOL(doc)
	builder := fix.NewEditBuilder()

	for _, site := range NewLocator(c.SourceName()).Locate(doc) {
		if !scope.Contains(site.Start, site.End) {
			continue
		}

		switch c.Mode {
		case Format:
			builder.ReplaceIfChanged(doc, site.Start, site.End, FormatCall(site, FormatOptions{
				Name: c.formattedName(),
				EOL:  eol,
			}))
		case Unformat:
			if text, ok := UnformatCall(site, UnformatOptions{Name: c.rawName(), EOL: eol}); ok {
				builder.ReplaceIfChanged(doc, site.Start, site.End, text)
			}
		}
	}

	return builder.Edits
}

// Convert applies the converter to scope and returns the new document and
// the number of converted calls.
func (c *Converter) Convert(doc string, scope Range) (string, int, error) {
	edits := c.Edits(doc, scope)
	if len(edits) == 0 {
		return doc, 0, nil
	}

	out, err := fix.Apply(doc, edits)
	if err != nil {
		return doc, 0, err
	}
	return out, len(edits), nil
}

// Status returns the message shown after converting count calls.
func (c *Converter) Status(count int) string {
	src := c.SourceName()
	if c.Mode == Unformat {
		if count == 0 {
			return "No formatted " + src + "() calls found to unformat."
		}
		return fmt.Sprintf("Unformatted %d %s() call(s) to %s().", count, src, c.TargetName())
	}

	if count == 0 {
		return "No " + src + "() calls found to format."
	}
	return fmt.Sprintf("Formatted %d %s() call(s).", count, src)
}

// DetectEOL returns "\r\n" when doc uses CRLF line endings and "\n" otherwise.
func DetectEOL(doc string) string {
	if i := strings.IndexByte(doc, '\n'); i > 0 && doc[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

func (c *Converter) rawName() string {
	if c.RawName == "" {
		return DefaultRawName
	}
	return c.RawName
}

func (c *Converter) formattedName() string {
	if c.FormattedName == "" {
		return DefaultFormattedName
	}
	return c.FormattedName
}
