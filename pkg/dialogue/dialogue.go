// Package dialogue converts Poryscript message-box text between its raw
// multi-line form and the engine's escape-coded form, and measures how the
// resulting lines fit in the in-game text box.
//
// Everything in this package is a pure function of its inputs. Offsets are
// byte offsets into the document string; see package textpos for conversion
// to editor (UTF-16) positions.
package dialogue

import "regexp"

// Escape codes that end a line of formatted text.
const (
	// EscapeNewline ends the first line of a paragraph.
	EscapeNewline = `\n`

	// EscapeLine ends a continuation line (scrolls the box).
	EscapeLine = `\l`

	// EscapeParagraph ends a paragraph (waits for input, clears the box).
	EscapeParagraph = `\p`
)

// Default function names.
const (
	// DefaultRawName is the marker for text that still needs formatting.
	DefaultRawName = "fmsgbox"

	// DefaultFormattedName is the engine call formatted text is written to.
	DefaultFormattedName = "msgbox"
)

// DefaultValidateNames returns the calls whose string literals are
// width-checked by default.
func DefaultValidateNames() []string {
	return []string{"fmsgbox", "msgbox", "format", "message"}
}

//nolint:gochecknoglobals // Compiled once.
var escapePattern = regexp.MustCompile(`\\[nlp]`)

// HasEscapeCodes reports whether text contains \n, \l or \p.
func HasEscapeCodes(text string) bool {
	return escapePattern.MatchString(text)
}

// Segment is the inner content of one double-quoted literal.
// Start and End delimit Text in the document, excluding the quotes.
type Segment struct {
	Text  string
	Start int
	End   int
}

// CallSite is a located call of a recognized function with at least one
// string literal argument.
type CallSite struct {
	// Start is the offset of the indentation preceding the name.
	Start int

	// End is the offset just past the closing parenthesis.
	End int

	// Indent is the run of spaces and tabs immediately before Name.
	Indent string

	// Name is the function name as written.
	Name string

	// Args is the raw text between the parentheses.
	Args string

	// Segments are the string literals in argument order.
	Segments []Segment

	// TrailingArgs is the comma-introduced text after the last literal,
	// for example ", MSGBOX_AUTOCLOSE". Empty when there is none.
	TrailingArgs string
}

// Texts returns the contents of the call's string literals in order.
func (c CallSite) Texts() []string {
	texts := make([]string, len(c.Segments))
	for i, seg := range c.Segments {
		texts[i] = seg.Text
	}
	return texts
}
